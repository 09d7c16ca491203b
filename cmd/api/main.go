package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/teamflow/finance-service/internal/config"
	"github.com/teamflow/finance-service/internal/handler"
	"github.com/teamflow/finance-service/internal/integrations/reportsvc"
	"github.com/teamflow/finance-service/internal/jobs"
	"github.com/teamflow/finance-service/internal/middleware"
	"github.com/teamflow/finance-service/internal/repository"
	"github.com/teamflow/finance-service/internal/service"
	"github.com/teamflow/finance-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	_ = godotenv.Load()
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, sender, logger, cfg)

	// Reports resolve remote-first when a report service is configured
	var remote *reportsvc.Client
	if cfg.ReportSvcURL != "" {
		remote = reportsvc.NewClient(cfg.ReportSvcURL, logger)
	}
	reports := reportsvc.NewTieredSource(remote, svc, logger)

	h := handler.NewHandler(svc, reports)

	// Start background jobs
	scheduler := jobs.NewScheduler(svc, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/records", h.CreateRecord).Methods("POST")
	authRouter.HandleFunc("/records", h.ListRecords).Methods("GET")
	authRouter.HandleFunc("/records/{id}", h.DeleteRecord).Methods("DELETE")
	authRouter.HandleFunc("/analytics/trends", h.Trends).Methods("GET")
	authRouter.HandleFunc("/analytics/export", h.ExportCSV).Methods("GET")
	authRouter.HandleFunc("/analytics/export/xml", h.ExportXML).Methods("GET")
	authRouter.HandleFunc("/funds/distribute", h.DistributeBudget).Methods("POST")
	authRouter.HandleFunc("/funds", h.ListFunds).Methods("GET")
	authRouter.HandleFunc("/funds/{id}/category", h.ReassignFundCategory).Methods("PUT")
	authRouter.HandleFunc("/shares/calculate", h.CalculateShares).Methods("POST")
	authRouter.HandleFunc("/shares", h.UpdateShares).Methods("PUT")
	authRouter.HandleFunc("/shares", h.ListShares).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
