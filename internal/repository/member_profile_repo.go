package repository

import (
	"context"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

type UpdateMemberProfileInput struct {
	FullName  *string
	Age       *int
	Gender    *string
	HeightCM  *float64
	WeightKG  *float64
	Goals     *[]string
	Diet      *string
	GymID     *int64
	PackageID *int64
}

type MemberProfileRepository struct {
	db DBTX
}

func NewMemberProfileRepository(db DBTX) *MemberProfileRepository {
	return &MemberProfileRepository{db: db}
}

func (r *MemberProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO member_profiles (user_id)
		VALUES ($1)
	`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *MemberProfileRepository) GetByUserID(
	ctx context.Context,
	userID int64,
) (*models.MemberProfile, error) {
	query := `
		SELECT id, user_id, full_name, avatar_url, age, gender, height_cm, weight_kg,
		       goals, diet, gym_id, package_id, onboarding_complete, created_at, updated_at
		FROM member_profiles
		WHERE user_id = $1
	`
	var profile models.MemberProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.Age,
		&profile.Gender,
		&profile.HeightCM,
		&profile.WeightKG,
		&profile.Goals,
		&profile.Diet,
		&profile.GymID,
		&profile.PackageID,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *MemberProfileRepository) Update(
	ctx context.Context,
	userID int64,
	input UpdateMemberProfileInput,
) (*models.MemberProfile, error) {
	query := `
		UPDATE member_profiles
		SET full_name = COALESCE($2, full_name),
		    age = COALESCE($3, age),
		    gender = COALESCE($4, gender),
		    height_cm = COALESCE($5, height_cm),
		    weight_kg = COALESCE($6, weight_kg),
		    goals = COALESCE($7, goals),
		    diet = COALESCE($8, diet),
		    gym_id = COALESCE($9, gym_id),
		    package_id = COALESCE($10, package_id),
		    onboarding_complete = TRUE,
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, full_name, avatar_url, age, gender, height_cm, weight_kg,
		          goals, diet, gym_id, package_id, onboarding_complete, created_at, updated_at
	`
	var profile models.MemberProfile
	err := r.db.QueryRow(
		ctx,
		query,
		userID,
		input.FullName,
		input.Age,
		input.Gender,
		input.HeightCM,
		input.WeightKG,
		input.Goals,
		input.Diet,
		input.GymID,
		input.PackageID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.Age,
		&profile.Gender,
		&profile.HeightCM,
		&profile.WeightKG,
		&profile.Goals,
		&profile.Diet,
		&profile.GymID,
		&profile.PackageID,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *MemberProfileRepository) UpdateAvatarURL(
	ctx context.Context,
	userID int64,
	avatarURL string,
) error {
	query := `
		UPDATE member_profiles
		SET avatar_url = $2, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, avatarURL)
	return err
}
