package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"promoplace-backend/internal/config"
	"promoplace-backend/internal/jobs"
	"promoplace-backend/internal/logger"
	"promoplace-backend/internal/repository/postgres"
	"promoplace-backend/internal/scheduler"
	"promoplace-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'recalculate-scores', 'check-update-frequency', 'all-daily')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Promoplace cronjob runner...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	emailSvc := service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	notifier := service.NewNotifierService(store.NotificationRepository, store.UserRepository, emailSvc)

	jobServices := &jobs.Services{
		TrustScore: service.NewTrustScoreService(store.PromoterRepository, store.ScoreConfigRepository, store.AuditRepository),
		Badge:      service.NewBadgeService(store.BadgeRepository, store.PromoterRepository, store.AuditRepository, notifier),
		Sanctions: service.NewSanctionsService(store.PromoterRepository, store.ProjectRepository, store.AuditRepository, notifier,
			service.SanctionsConfig{
				UpdateCadenceDays: cfg.Scoring.UpdateCadenceDays,
				RestrictionDays:   cfg.Scoring.RestrictionDays,
			}),
	}

	jobRunner := jobs.NewJobRunner(jobServices, cfg)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	cronScheduler.Stop()
}

func runJobOnce(jr *jobs.JobRunner, name string) {
	switch name {
	case "recalculate-scores":
		jr.RecalculateTrustScores()
	case "check-update-frequency":
		jr.CheckUpdateFrequency()
	case "remove-expired-restrictions":
		jr.RemoveExpiredRestrictions()
	case "check-expired-badges":
		jr.CheckExpiredBadges()
	case "auto-award-badges":
		jr.AutoAwardBadges()
	case "all-daily":
		jr.RunAllDailyJobs()
	default:
		logger.Error("Unknown job name", "job", name)
	}
}
