package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "rentaldesk-backend/internal/api/http"
	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository/postgres"
	"rentaldesk-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentalDesk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	pricingEngine := service.NewPricingEngine(store)
	availability := service.NewAvailabilityChecker(store, pricingEngine)
	quotationSvc := service.NewQuotationService(store, pricingEngine, cfg.TotalTaxRate())
	orderSvc := service.NewOrderService(store, service.NewLateFeeCalculator())
	invoiceSvc := service.NewInvoiceService(store, service.GSTRates{
		CGST: cfg.Tax.CGSTRate(),
		SGST: cfg.Tax.SGSTRate(),
		IGST: cfg.Tax.IGSTRate(),
	}, int32(cfg.Rental.InvoiceDueDays))
	notificationSvc := service.NewNotificationService(store)

	// Initialize HTTP handlers and router
	handlers := httpapi.NewHandlers(availability, pricingEngine, quotationSvc, orderSvc, invoiceSvc, notificationSvc)
	router := httpapi.NewRouter(handlers)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
