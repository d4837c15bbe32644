// main.go
package main

import (
	"log"

	"mess-booking/cmd"
	"mess-booking/internal/data/repository"
	"mess-booking/internal/wire"
	"mess-booking/pkg/database"
	"mess-booking/pkg/payment"
	"mess-booking/pkg/ticket"
	"mess-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment gateway is optional; without a secret key bookings stay
	// pending until confirmed manually.
	var gateway payment.Gateway
	if config.Stripe.SecretKey != "" {
		gateway = payment.NewStripeGateway(config.Stripe, logger)
		logger.Info("Stripe payment gateway configured")
	} else {
		gateway = payment.NewNoopGateway()
		logger.Warn("No payment gateway configured, bookings will stay pending")
	}

	// Ticket generator
	tickets, err := ticket.NewPDFGenerator(config.Ticket.Dir, logger)
	if err != nil {
		logger.Fatal("Failed to init ticket generator", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, gateway, tickets, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
