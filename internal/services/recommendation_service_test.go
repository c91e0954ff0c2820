package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

func fptr(v float64) *float64 {
	return &v
}

func food(id int64, name string, calories, protein float64, carbs, fiber *float64) models.Food {
	return models.Food{
		ID:       id,
		Name:     name,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fiber:    fiber,
	}
}

func rankedNames(ranked []models.FoodWithScore) []string {
	names := make([]string, 0, len(ranked))
	for _, item := range ranked {
		names = append(names, item.Name)
	}
	return names
}

func TestRankFoodsVegetarianExcludesMeatOnly(t *testing.T) {
	foods := []models.Food{
		food(1, "Grilled Chicken Breast", 165, 31, fptr(0), fptr(0)),
		food(2, "Beef Steak", 271, 26, fptr(0), fptr(0)),
		food(3, "Cheese Omelette", 310, 20, fptr(2), fptr(0)),
		food(4, "Grilled Salmon", 208, 20, fptr(0), fptr(0)),
		food(5, "Lentil Soup", 185, 12, fptr(27), fptr(8)),
	}

	ranked := RankFoods(foods, FoodPreferences{Diet: "Vegetarian"})

	for _, item := range ranked {
		if item.Name == "Grilled Chicken Breast" || item.Name == "Beef Steak" {
			t.Fatalf("vegetarian result contains meat: %s", item.Name)
		}
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 foods, got %d: %v", len(ranked), rankedNames(ranked))
	}
}

func TestRankFoodsVeganExcludesMeatAndDairy(t *testing.T) {
	foods := []models.Food{
		food(1, "Cheese Omelette", 310, 20, fptr(2), fptr(0)),
		food(2, "Greek Yogurt", 59, 10, fptr(3.6), fptr(0)),
		food(3, "Hard Boiled Egg", 78, 6.3, fptr(0.6), fptr(0)),
		food(4, "Tofu Stir Fry", 180, 15, fptr(9), fptr(2)),
		food(5, "Turkey Sandwich", 320, 22, fptr(38), fptr(3)),
	}

	ranked := RankFoods(foods, FoodPreferences{Diet: "Vegan"})

	if len(ranked) != 1 || ranked[0].Name != "Tofu Stir Fry" {
		t.Fatalf("expected only Tofu Stir Fry, got %v", rankedNames(ranked))
	}
}

func TestRankFoodsVeganDoesNotFilterSeafood(t *testing.T) {
	foods := []models.Food{
		food(1, "Grilled Salmon", 208, 20, fptr(0), fptr(0)),
	}

	ranked := RankFoods(foods, FoodPreferences{Diet: "Vegan"})

	if len(ranked) != 1 {
		t.Fatalf("expected salmon to pass the vegan filter, got %v", rankedNames(ranked))
	}
}

func TestRankFoodsPescatarianSeafoodExemptsMeatRejection(t *testing.T) {
	foods := []models.Food{
		food(1, "Grilled Salmon", 208, 20, fptr(0), fptr(0)),
		food(2, "Beef Salmon Burger", 400, 28, fptr(20), fptr(1)),
		food(3, "Beef Steak", 271, 26, fptr(0), fptr(0)),
		food(4, "Quinoa Salad", 220, 8, fptr(39), fptr(5)),
	}

	ranked := RankFoods(foods, FoodPreferences{Diet: "Pescatarian"})

	names := rankedNames(ranked)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 foods, got %v", names)
	}
	for _, name := range names {
		if name == "Beef Steak" {
			t.Fatalf("pescatarian result contains plain meat: %v", names)
		}
	}
	found := false
	for _, name := range names {
		if name == "Beef Salmon Burger" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Beef Salmon Burger to be allowed, got %v", names)
	}
}

func TestRankFoodsKetogenicCarbBoundary(t *testing.T) {
	foods := []models.Food{
		food(1, "At Limit", 200, 10, fptr(10), nil),
		food(2, "Over Limit", 200, 10, fptr(10.01), nil),
		food(3, "No Carb Data", 200, 10, nil, nil),
	}

	ranked := RankFoods(foods, FoodPreferences{Diet: "Ketogenic"})

	names := rankedNames(ranked)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 foods, got %v", names)
	}
	for _, name := range names {
		if name == "Over Limit" {
			t.Fatalf("food above the carb limit passed the filter: %v", names)
		}
	}
}

func TestRankFoodsBaseScore(t *testing.T) {
	foods := []models.Food{
		food(1, "Plain", 200, 10, nil, fptr(3)),
	}

	ranked := RankFoods(foods, FoodPreferences{})

	// 10*4 - 200/40 + 3 = 38
	if len(ranked) != 1 || ranked[0].Score != 38 {
		t.Fatalf("expected score 38, got %+v", ranked)
	}
}

func TestRankFoodsMuscleGoalDoublesDownOnProtein(t *testing.T) {
	foods := []models.Food{
		food(1, "Plain", 200, 10, nil, nil),
	}

	base := RankFoods(foods, FoodPreferences{})[0].Score
	boosted := RankFoods(foods, FoodPreferences{Goals: []string{"Gain muscle"}})[0].Score

	if boosted != base+20 {
		t.Fatalf("expected +%v protein bonus, base %v boosted %v", 20.0, base, boosted)
	}
}

func TestRankFoodsHighProteinDietGetsProteinBonus(t *testing.T) {
	foods := []models.Food{
		food(1, "Plain", 200, 10, nil, nil),
	}

	base := RankFoods(foods, FoodPreferences{})[0].Score
	boosted := RankFoods(foods, FoodPreferences{Diet: "High-protein"})[0].Score

	if boosted != base+20 {
		t.Fatalf("expected protein bonus, base %v boosted %v", base, boosted)
	}
}

func TestRankFoodsWeightGoalFavorsLightFoods(t *testing.T) {
	foods := []models.Food{
		food(1, "Light", 90, 10, nil, nil),
	}

	base := RankFoods(foods, FoodPreferences{})[0].Score
	boosted := RankFoods(foods, FoodPreferences{Goals: []string{"Lose weight"}})[0].Score

	// (140 - 90) / 5 = 10
	if boosted != base+10 {
		t.Fatalf("expected +10 calorie bonus, base %v boosted %v", base, boosted)
	}
}

func TestRankFoodsOnlyFirstGoalCounts(t *testing.T) {
	foods := []models.Food{
		food(1, "Plain", 200, 10, nil, nil),
	}

	base := RankFoods(foods, FoodPreferences{})[0].Score
	secondary := RankFoods(foods, FoodPreferences{
		Goals: []string{"Improve endurance", "Gain muscle"},
	})[0].Score

	if secondary != base {
		t.Fatalf("secondary goal changed the score: base %v got %v", base, secondary)
	}
}

func TestRankFoodsLowCarbPenalizesCarbs(t *testing.T) {
	foods := []models.Food{
		food(1, "Some Carbs", 200, 10, fptr(8), nil),
	}

	ranked := RankFoods(foods, FoodPreferences{Diet: "Low-carb"})

	// 10*4 - 200/40 + 0 - 8 = 27
	if len(ranked) != 1 || ranked[0].Score != 27 {
		t.Fatalf("expected score 27, got %+v", ranked)
	}
}

func TestRankFoodsTiesKeepCatalogOrder(t *testing.T) {
	foods := []models.Food{
		food(1, "First", 200, 10, nil, nil),
		food(2, "Second", 200, 10, nil, nil),
		food(3, "Third", 200, 10, nil, nil),
	}

	ranked := RankFoods(foods, FoodPreferences{})

	names := rankedNames(ranked)
	if names[0] != "First" || names[1] != "Second" || names[2] != "Third" {
		t.Fatalf("tied foods reordered: %v", names)
	}
}

func TestRankFoodsIsDeterministic(t *testing.T) {
	foods := make([]models.Food, 0, 30)
	for i := 0; i < 30; i++ {
		foods = append(foods, food(int64(i+1), fmt.Sprintf("Food %d", i), float64(100+i%7*10), float64(5+i%5), fptr(float64(i%12)), nil))
	}
	prefs := FoodPreferences{Goals: []string{"Lose weight"}, Diet: "Low-carb"}

	first := rankedNames(RankFoods(foods, prefs))
	for run := 0; run < 5; run++ {
		again := rankedNames(RankFoods(foods, prefs))
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed from %d to %d", run, len(first), len(again))
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("run %d: order changed at %d: %s vs %s", run, i, first[i], again[i])
			}
		}
	}
}

func TestRankFoodsCapsAtTwenty(t *testing.T) {
	foods := make([]models.Food, 0, 25)
	for i := 0; i < 25; i++ {
		foods = append(foods, food(int64(i+1), fmt.Sprintf("Food %d", i), 150, float64(i), nil, nil))
	}

	ranked := RankFoods(foods, FoodPreferences{})

	if len(ranked) != 20 {
		t.Fatalf("expected 20 foods, got %d", len(ranked))
	}
	if ranked[0].Name != "Food 24" {
		t.Fatalf("expected highest-protein food first, got %s", ranked[0].Name)
	}
}

func TestRankFoodsEmptyCatalog(t *testing.T) {
	ranked := RankFoods(nil, FoodPreferences{Diet: "Vegan"})
	if len(ranked) != 0 {
		t.Fatalf("expected empty result, got %d", len(ranked))
	}
}

type stubFoodCatalog struct {
	foods []models.Food
	err   error
	calls int
}

func (s *stubFoodCatalog) ListAll(_ context.Context) ([]models.Food, error) {
	s.calls++
	return s.foods, s.err
}

func TestRecommendFoodsCachesCatalog(t *testing.T) {
	catalog := &stubFoodCatalog{foods: []models.Food{
		food(1, "Lentil Soup", 185, 12, fptr(27), fptr(8)),
	}}
	service := NewRecommendationService(catalog)

	for i := 0; i < 3; i++ {
		if _, err := service.RecommendFoods(context.Background(), FoodPreferences{}); err != nil {
			t.Fatalf("RecommendFoods: %v", err)
		}
	}

	if catalog.calls != 1 {
		t.Fatalf("expected 1 catalog load, got %d", catalog.calls)
	}
}

func TestRecommendFoodsPropagatesCatalogError(t *testing.T) {
	catalog := &stubFoodCatalog{err: errors.New("db down")}
	service := NewRecommendationService(catalog)

	if _, err := service.RecommendFoods(context.Background(), FoodPreferences{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestPreferencesFromProfileNilSafe(t *testing.T) {
	prefs := PreferencesFromProfile(nil)
	if len(prefs.Goals) != 0 || prefs.Diet != "" {
		t.Fatalf("expected zero preferences, got %+v", prefs)
	}

	diet := "Vegan"
	goals := []string{"Lose weight"}
	prefs = PreferencesFromProfile(&models.MemberProfile{Goals: &goals, Diet: &diet})
	if prefs.Diet != "Vegan" || len(prefs.Goals) != 1 || prefs.Goals[0] != "Lose weight" {
		t.Fatalf("unexpected preferences: %+v", prefs)
	}
}
