package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnloop/internal/config"
	"learnloop/internal/database"
	"learnloop/internal/handlers"
	"learnloop/internal/repository"
	"learnloop/internal/security"
	"learnloop/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	ringRepo := repository.NewRingRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	lessonRepo := repository.NewLessonRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	familyService := service.NewFamilyService(userRepo, childRepo)
	activityService := service.NewActivityService(activityRepo, ringRepo)
	ringService := service.NewRingService(ringRepo, progressRepo)
	vocabService := service.NewVocabularyService(cfg.DatamuseBaseURL, cfg.DictionaryBaseURL)
	dashboardService := service.NewDashboardService(childRepo, activityRepo, progressRepo, lessonRepo, activityService)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	kidTokens := security.NewKidTokenIssuer(cfg.KidSessionSecret, cfg.KidSessionDuration)
	loginLimiter := security.NewRateLimiter(10, time.Minute)

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService, kidTokens, loginLimiter)
	authHandler := handlers.NewAuthHandler(authService, emailService, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectBaseURL)
	childrenHandler := handlers.NewChildrenHandler(familyService, dashboardService)
	kidAuthHandler := handlers.NewKidAuthHandler(familyService, kidTokens, cfg.KidSessionDuration, loginLimiter)
	quizHandler := handlers.NewQuizHandler(quizRepo, ringService, familyService)
	ringHandler := handlers.NewRingHandler(ringService, familyService)
	timerHandler := handlers.NewTimerHandler(activityService, familyService)
	vocabHandler := handlers.NewVocabHandler(vocabService)
	lessonHandler := handlers.NewLessonHandler(lessonRepo, activityService, familyService)

	// Setup routes
	mux := http.NewServeMux()

	// Parent auth
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("GET /auth/google/start", authHandler.StartGoogleOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleOAuthCallback)

	// Kid auth
	mux.HandleFunc("POST /api/kid-auth", kidAuthHandler.Login)
	mux.HandleFunc("POST /api/kid-auth/logout", kidAuthHandler.Logout)

	// Children management (parent only)
	mux.HandleFunc("POST /api/children", middleware.RequireAuth(childrenHandler.Create))
	mux.HandleFunc("GET /api/children", middleware.RequireAuth(childrenHandler.List))
	mux.HandleFunc("PUT /api/children/{id}", middleware.RequireAuth(childrenHandler.Update))
	mux.HandleFunc("DELETE /api/children/{id}", middleware.RequireAuth(childrenHandler.Delete))
	mux.HandleFunc("POST /api/children/{id}/pin", middleware.RequireAuth(childrenHandler.RegeneratePin))
	mux.HandleFunc("GET /api/children/{id}/achievements", middleware.RequireAuth(childrenHandler.Achievements))
	mux.HandleFunc("GET /api/progress", middleware.RequireAuth(childrenHandler.Progress))

	// Rings (reads allow kid sessions, saves are parent only)
	mux.HandleFunc("GET /api/ring-assignments", middleware.RequireAnyAuth(ringHandler.Get))
	mux.HandleFunc("PUT /api/ring-assignments", middleware.RequireAuth(ringHandler.Save))

	// Activity and progress
	mux.HandleFunc("POST /api/timer-log", middleware.RequireAnyAuth(timerHandler.Log))
	mux.HandleFunc("GET /api/daily-progress", middleware.RequireAnyAuth(timerHandler.Daily))
	mux.HandleFunc("GET /api/weekly-progress", middleware.RequireAnyAuth(timerHandler.Weekly))

	// Placement quizzes
	mux.HandleFunc("GET /api/quiz", middleware.RequireAnyAuth(quizHandler.Get))
	mux.HandleFunc("POST /api/quiz", middleware.RequireAnyAuth(quizHandler.Submit))

	// Lessons
	mux.HandleFunc("GET /api/lessons", middleware.RequireAnyAuth(lessonHandler.List))
	mux.HandleFunc("POST /api/lesson-complete", middleware.RequireAnyAuth(lessonHandler.Complete))

	// Vocabulary game
	mux.HandleFunc("GET /api/vocabulary", middleware.RequireAnyAuth(vocabHandler.WordSet))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired parent sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
	}
}
