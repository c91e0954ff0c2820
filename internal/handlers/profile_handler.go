package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/repository"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const maxAvatarSizeBytes = 5 << 20

var allowedAvatarExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

type ProfileHandler struct {
	profileRepo    *repository.MemberProfileRepository
	storageService services.StorageService
}

func NewProfileHandler(
	profileRepo *repository.MemberProfileRepository,
	storageService services.StorageService,
) *ProfileHandler {
	return &ProfileHandler{
		profileRepo:    profileRepo,
		storageService: storageService,
	}
}

type updateProfileRequest struct {
	FullName  *string   `json:"full_name"`
	Age       *int      `json:"age"`
	Gender    *string   `json:"gender"`
	HeightCM  *float64  `json:"height_cm"`
	WeightKG  *float64  `json:"weight_kg"`
	Goals     *[]string `json:"goals"`
	Diet      *string   `json:"diet"`
	GymID     *int64    `json:"gym_id"`
	PackageID *int64    `json:"package_id"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "member" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "member" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.profileRepo.Update(c.Context(), userID, repository.UpdateMemberProfileInput{
		FullName:  req.FullName,
		Age:       req.Age,
		Gender:    req.Gender,
		HeightCM:  req.HeightCM,
		WeightKG:  req.WeightKG,
		Goals:     req.Goals,
		Diet:      req.Diet,
		GymID:     req.GymID,
		PackageID: req.PackageID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "member" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if h.storageService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Avatar storage is not configured"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}
	if fileHeader.Size > maxAvatarSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar must be 5MB or smaller"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, allowed := allowedAvatarExtensions[ext]; !allowed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar must be a jpg, png or webp image"})
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read avatar"})
	}
	defer file.Close()

	filename := fmt.Sprintf("%d-%s%s", userID, uuid.NewString(), ext)
	avatarURL, err := h.storageService.UploadFile(c.Context(), file, filename, "avatars")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload avatar"})
	}

	if err := h.profileRepo.UpdateAvatarURL(c.Context(), userID, avatarURL); err != nil {
		_ = h.storageService.DeleteFile(c.Context(), avatarURL)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save avatar"})
	}

	if profile.AvatarURL != nil && *profile.AvatarURL != "" {
		_ = h.storageService.DeleteFile(c.Context(), *profile.AvatarURL)
	}

	return c.JSON(fiber.Map{"avatar_url": avatarURL})
}

func validateProfileUpdateRequest(req updateProfileRequest) string {
	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		return "full_name must not be empty"
	}
	if req.Age != nil && (*req.Age < 13 || *req.Age > 120) {
		return "age must be between 13 and 120"
	}
	if req.HeightCM != nil && *req.HeightCM <= 0 {
		return "height_cm must be greater than 0"
	}
	if req.WeightKG != nil && *req.WeightKG <= 0 {
		return "weight_kg must be greater than 0"
	}
	if req.Goals != nil {
		for _, goal := range *req.Goals {
			if strings.TrimSpace(goal) == "" {
				return "goals must not contain empty entries"
			}
		}
	}
	if req.GymID != nil && *req.GymID <= 0 {
		return "gym_id must be greater than 0"
	}
	if req.PackageID != nil && *req.PackageID <= 0 {
		return "package_id must be greater than 0"
	}
	return ""
}

var _ services.StorageService = (*services.SupabaseStorageService)(nil)
