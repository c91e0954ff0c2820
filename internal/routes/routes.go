package routes

import (
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/config"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/handlers"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/middleware"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/repository"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/services"
	bookingws "github.com/Dkharvari1/GymPlusPlus-sub000/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewMemberProfileRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	gymRepo := repository.NewGymRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)
	mealRepo := repository.NewMealRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)

	var storageService services.StorageService
	if cfg.SupabaseURL != "" && cfg.SupabaseBucket != "" && cfg.SupabaseServiceKey != "" {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	bookingHub := bookingws.NewHub()
	go bookingHub.Run()

	reservationService := services.NewReservationService(bookingRepo, bookingHub)
	recommendationService := services.NewRecommendationService(foodRepo)
	checkInService := services.NewCheckInService(
		checkInRepo,
		profileRepo,
		gymRepo,
		time.Duration(cfg.CheckInCodeTTLSecs)*time.Second,
	)
	dashboardService := services.NewDashboardService(gymRepo, checkInRepo, bookingRepo)

	authHandler := handlers.NewAuthHandler(db, userRepo, profileRepo, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileRepo, storageService)
	bookingHandler := handlers.NewBookingHandler(reservationService, profileRepo, bookingHub, cfg.JWTSecret)
	foodHandler := handlers.NewFoodHandler(recommendationService, profileRepo)
	checkInHandler := handlers.NewCheckInHandler(checkInService)
	mealHandler := handlers.NewMealHandler(mealRepo)
	workoutHandler := handlers.NewWorkoutHandler(workoutRepo)
	gymHandler := handlers.NewGymHandler(gymRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	members := authProtected.Group("/members")
	members.Get("/profile", profileHandler.GetProfile)
	members.Put("/profile", profileHandler.UpdateProfile)
	members.Post("/profile/avatar", profileHandler.UploadAvatar)

	gyms := authProtected.Group("/gyms")
	gyms.Get("", gymHandler.ListGyms)
	gyms.Get("/:id", gymHandler.GetGym)

	bookings := authProtected.Group("/bookings")
	bookings.Get("/availability", bookingHandler.GetAvailability)
	bookings.Post("", bookingHandler.Reserve)
	bookings.Get("", bookingHandler.ListBookings)

	foods := authProtected.Group("/foods")
	foods.Get("/recommended", foodHandler.GetRecommendedFoods)

	checkIns := authProtected.Group("/check-ins")
	checkIns.Post("/code", checkInHandler.IssueCode)
	checkIns.Post("/scan", checkInHandler.Scan)
	checkIns.Get("/today", checkInHandler.ListToday)

	meals := authProtected.Group("/meals")
	meals.Post("", mealHandler.LogMeal)
	meals.Get("", mealHandler.ListMeals)

	workouts := authProtected.Group("/workouts")
	workouts.Get("", workoutHandler.ListWorkouts)

	dashboard := authProtected.Group("/dashboard")
	dashboard.Get("", dashboardHandler.GetSummary)

	api.Use("/v1/ws/bookings", bookingHandler.WebSocketAuth)
	api.Get("/v1/ws/bookings", websocket.New(bookingHandler.HandleWebSocket))
}
