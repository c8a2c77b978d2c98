package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	api "promoplace-backend/internal/api/http"
	"promoplace-backend/internal/config"
	"promoplace-backend/internal/logger"
	"promoplace-backend/internal/repository/postgres"
	"promoplace-backend/internal/security"
	"promoplace-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Promoplace backend...", "log_level", cfg.Log.Level, "address", cfg.GetServerAddress())

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

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	emailSvc := service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	notifier := service.NewNotifierService(store.NotificationRepository, store.UserRepository, emailSvc)

	services := api.Services{
		Auth:        service.NewAuthService(store.UserRepository, tokenManager),
		TrustScore:  service.NewTrustScoreService(store.PromoterRepository, store.ScoreConfigRepository, store.AuditRepository),
		Badge:       service.NewBadgeService(store.BadgeRepository, store.PromoterRepository, store.AuditRepository, notifier),
		Compliance:  service.NewComplianceService(store.PromoterRepository, store.AuditRepository, notifier),
		ScoreConfig: service.NewScoreConfigService(store.ScoreConfigRepository, store.AuditRepository),
	}

	router := api.NewRouter(services, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
