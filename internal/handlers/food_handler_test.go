package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type stubFoodRecommender struct {
	result    []models.FoodWithScore
	err       error
	lastPrefs services.FoodPreferences
}

func (s *stubFoodRecommender) RecommendFoods(_ context.Context, prefs services.FoodPreferences) ([]models.FoodWithScore, error) {
	s.lastPrefs = prefs
	return s.result, s.err
}

func newFoodTestApp(handler *FoodHandler, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Get("/api/v1/foods/recommended", handler.GetRecommendedFoods)
	return app
}

func TestGetRecommendedFoodsUsesProfilePreferences(t *testing.T) {
	diet := "Vegan"
	goals := []string{"Lose weight"}
	recommender := &stubFoodRecommender{
		result: []models.FoodWithScore{
			{Food: models.Food{ID: 4, Name: "Tofu Stir Fry"}, Score: 51.5},
		},
	}
	handler := &FoodHandler{
		service: recommender,
		profileRepo: &stubProfileReader{profile: &models.MemberProfile{
			UserID: 42,
			Goals:  &goals,
			Diet:   &diet,
		}},
	}
	app := newFoodTestApp(handler, "member")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods/recommended", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if recommender.lastPrefs.Diet != "Vegan" {
		t.Fatalf("expected Vegan preference, got %q", recommender.lastPrefs.Diet)
	}
	if len(recommender.lastPrefs.Goals) != 1 || recommender.lastPrefs.Goals[0] != "Lose weight" {
		t.Fatalf("unexpected goals %v", recommender.lastPrefs.Goals)
	}

	var body struct {
		Foods []models.FoodWithScore `json:"foods"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Foods) != 1 || body.Foods[0].Name != "Tofu Stir Fry" {
		t.Fatalf("unexpected foods %+v", body.Foods)
	}
}

func TestGetRecommendedFoodsEmptyListIsOK(t *testing.T) {
	handler := &FoodHandler{
		service:     &stubFoodRecommender{result: []models.FoodWithScore{}},
		profileRepo: &stubProfileReader{profile: &models.MemberProfile{UserID: 42}},
	}
	app := newFoodTestApp(handler, "member")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods/recommended", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGetRecommendedFoodsMissingProfile(t *testing.T) {
	handler := &FoodHandler{
		service:     &stubFoodRecommender{},
		profileRepo: &stubProfileReader{err: pgx.ErrNoRows},
	}
	app := newFoodTestApp(handler, "member")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods/recommended", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetRecommendedFoodsRejectsOperator(t *testing.T) {
	handler := &FoodHandler{
		service:     &stubFoodRecommender{},
		profileRepo: &stubProfileReader{profile: &models.MemberProfile{UserID: 42}},
	}
	app := newFoodTestApp(handler, "operator")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods/recommended", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}
