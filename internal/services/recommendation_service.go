package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	"github.com/patrickmn/go-cache"
)

const maxRecommendations = 20

const foodCatalogCacheKey = "food-catalog"

// Keyword lists are matched case-insensitively against the food's display
// name. This is a heuristic over names, not category tags, and its false
// positives ("chicken-fried tofu") are part of the expected behavior.
var (
	meatKeywords    = []string{"chicken", "beef", "turkey", "pork", "bacon", "steak", "sirloin"}
	dairyKeywords   = []string{"milk", "cheese", "yogurt", "egg", "butter", "cottage"}
	seafoodKeywords = []string{"salmon", "shrimp", "tuna", "cod", "trout"}
)

var muscleGoals = map[string]struct{}{
	"Gain muscle":       {},
	"Increase strength": {},
	"Powerlifting":      {},
	"Bodybuilding":      {},
}

// FoodPreferences is the caller-supplied snapshot of the member's declared
// goals and diet. Only the first goal participates in scoring.
type FoodPreferences struct {
	Goals []string
	Diet  string
}

func PreferencesFromProfile(profile *models.MemberProfile) FoodPreferences {
	prefs := FoodPreferences{}
	if profile == nil {
		return prefs
	}
	if profile.Goals != nil {
		prefs.Goals = *profile.Goals
	}
	if profile.Diet != nil {
		prefs.Diet = *profile.Diet
	}
	return prefs
}

type foodCatalog interface {
	ListAll(ctx context.Context) ([]models.Food, error)
}

type RecommendationService struct {
	foodRepo foodCatalog
	catalog  *cache.Cache
}

func NewRecommendationService(foodRepo foodCatalog) *RecommendationService {
	return &RecommendationService{
		foodRepo: foodRepo,
		catalog:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

// RecommendFoods returns up to 20 catalog entries allowed by the member's
// diet, highest score first. An empty result is a valid outcome, not an
// error: nothing in the catalog fits the diet.
func (s *RecommendationService) RecommendFoods(
	ctx context.Context,
	prefs FoodPreferences,
) ([]models.FoodWithScore, error) {
	foods, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return RankFoods(foods, prefs), nil
}

func (s *RecommendationService) loadCatalog(ctx context.Context) ([]models.Food, error) {
	if cached, found := s.catalog.Get(foodCatalogCacheKey); found {
		return cached.([]models.Food), nil
	}

	foods, err := s.foodRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.catalog.Set(foodCatalogCacheKey, foods, cache.DefaultExpiration)
	return foods, nil
}

// RankFoods is the pure core: filter by diet, score, stable-sort descending,
// cap at 20. Ties keep catalog order.
func RankFoods(foods []models.Food, prefs FoodPreferences) []models.FoodWithScore {
	ranked := make([]models.FoodWithScore, 0, len(foods))
	for _, food := range foods {
		if !allowedByDiet(food, prefs.Diet) {
			continue
		}
		ranked = append(ranked, models.FoodWithScore{
			Food:  food,
			Score: scoreFood(food, prefs),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}
	return ranked
}

func allowedByDiet(food models.Food, diet string) bool {
	name := strings.ToLower(food.Name)
	switch diet {
	case "Vegetarian":
		return !containsAny(name, meatKeywords)
	case "Vegan":
		return !containsAny(name, meatKeywords) && !containsAny(name, dairyKeywords)
	case "Pescatarian":
		// Seafood keywords exempt a food from the meat rejection entirely.
		return !containsAny(name, meatKeywords) || containsAny(name, seafoodKeywords)
	case "Low-carb", "Ketogenic":
		return macroValue(food.Carbs) <= 10
	default:
		return true
	}
}

func scoreFood(food models.Food, prefs FoodPreferences) float64 {
	score := food.Protein*4 - food.Calories/40 + macroValue(food.Fiber)

	primary := primaryGoal(prefs.Goals)
	if _, ok := muscleGoals[primary]; ok || prefs.Diet == "High-protein" {
		score += food.Protein * 2
	}
	if primary == "Lose weight" || primary == "Maintain weight" {
		score += (140 - food.Calories) / 5
	}
	if prefs.Diet == "Low-carb" || prefs.Diet == "Ketogenic" {
		score -= macroValue(food.Carbs)
	}

	return score
}

func primaryGoal(goals []string) string {
	if len(goals) == 0 {
		return ""
	}
	return goals[0]
}

func containsAny(name string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

func macroValue(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
