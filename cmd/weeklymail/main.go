package main

import (
	"context"
	"flag"
	"log"
	"time"

	"learnloop/internal/config"
	"learnloop/internal/database"
	"learnloop/internal/repository"
	"learnloop/internal/service"
)

// Sends the weekly progress summary email to every parent. Intended to
// run from cron once a week.
func main() {
	dryRun := flag.Bool("dry-run", false, "Build summaries but do not send email")
	flag.Parse()

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	ringRepo := repository.NewRingRepository(db)

	activityService := service.NewActivityService(activityRepo, ringRepo)
	dashboardService := service.NewDashboardService(childRepo, activityRepo, progressRepo, lessonRepo, activityService)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	parents, err := userRepo.ListUsers()
	if err != nil {
		log.Fatalf("Failed to list parents: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sent := 0
	for i := range parents {
		parent := &parents[i]

		summaries, err := dashboardService.WeeklySummaries(parent.ID)
		if err != nil {
			log.Printf("Skipping %s: failed to build summaries: %v", parent.Email, err)
			continue
		}
		if len(summaries) == 0 {
			continue
		}

		if *dryRun {
			log.Printf("[dry-run] Would email %s (%d children)", parent.Email, len(summaries))
			continue
		}

		if err := emailService.SendWeeklySummary(ctx, parent, summaries); err != nil {
			log.Printf("Failed to email %s: %v", parent.Email, err)
			continue
		}
		sent++
	}

	log.Printf("Weekly summary run complete: %d emails sent", sent)
}
