package repository

import (
	"context"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

type GymRepository struct {
	db DBTX
}

func NewGymRepository(db DBTX) *GymRepository {
	return &GymRepository{db: db}
}

func (r *GymRepository) List(ctx context.Context) ([]models.Gym, error) {
	query := `
		SELECT id, name, address, phone, created_at
		FROM gyms
		ORDER BY name ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gyms := make([]models.Gym, 0)
	for rows.Next() {
		var gym models.Gym
		if err := rows.Scan(&gym.ID, &gym.Name, &gym.Address, &gym.Phone, &gym.CreatedAt); err != nil {
			return nil, err
		}
		gyms = append(gyms, gym)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *GymRepository) GetByID(ctx context.Context, gymID int64) (*models.Gym, error) {
	query := `
		SELECT id, name, address, phone, created_at
		FROM gyms
		WHERE id = $1
	`
	var gym models.Gym
	err := r.db.QueryRow(ctx, query, gymID).
		Scan(&gym.ID, &gym.Name, &gym.Address, &gym.Phone, &gym.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &gym, nil
}

func (r *GymRepository) ListPackages(
	ctx context.Context,
	gymID int64,
) ([]models.MembershipPackage, error) {
	query := `
		SELECT id, gym_id, name, price_monthly, perks, created_at
		FROM membership_packages
		WHERE gym_id = $1
		ORDER BY price_monthly ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]models.MembershipPackage, 0)
	for rows.Next() {
		var pkg models.MembershipPackage
		if err := rows.Scan(
			&pkg.ID,
			&pkg.GymID,
			&pkg.Name,
			&pkg.PriceMonthly,
			&pkg.Perks,
			&pkg.CreatedAt,
		); err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}

// OperatorGymID resolves which gym an operator account manages.
func (r *GymRepository) OperatorGymID(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT gym_id
		FROM gym_operators
		WHERE user_id = $1
	`
	var gymID int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&gymID); err != nil {
		return 0, err
	}
	return gymID, nil
}

func (r *GymRepository) CountMembers(ctx context.Context, gymID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM member_profiles
		WHERE gym_id = $1
	`
	var count int
	if err := r.db.QueryRow(ctx, query, gymID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
