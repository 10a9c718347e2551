package main

import (
	"fmt"
	"os"

	"billsplit-service/internal/handler"
	"billsplit-service/internal/middleware"
	"billsplit-service/internal/service"
	"billsplit-service/pkg/config"
	"billsplit-service/pkg/database"
	"billsplit-service/pkg/jwtutil"
	"billsplit-service/pkg/logger"
	"billsplit-service/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found or error loading: %v\n", err)
	}

	// Load configuration
	conf, err := config.Load("billsplit")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	// Initialize database connection
	db, err := database.Connect(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	// Run migrations for protocol models
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database models")
	}

	// Initialize the protocol service and bootstrap the contract state
	svc := service.New(db, service.Config{
		OwnerAddress:    conf.Protocol.OwnerAddress,
		EscrowAddress:   conf.Protocol.EscrowAddress,
		PlatformFeeRate: conf.Protocol.PlatformFeeRate,
		SessionExpiry:   conf.Protocol.SessionExpiry,
	}, log)
	if err := svc.EnsureContractState(); err != nil {
		log.Fatal("Failed to bootstrap contract state")
	}

	// Initialize JWT utility
	jwtConfig := &jwtutil.JWTConfig{
		SigningKey:      conf.JWT.SigningKey,
		ExpirationHours: conf.JWT.ExpirationHours,
	}
	jwt := jwtutil.NewJWTUtil(jwtConfig)

	h := handler.New(svc)

	// Initialize Echo framework
	e := echo.New()

	// Apply middleware
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(metrics.Middleware())

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// Public routes
	e.GET("/billsplit/hello", handler.Hello)
	e.GET("/health", handler.HealthCheck)
	e.GET("/status", h.ContractStatus)
	e.GET("/merchants/:address", h.GetMerchant)
	e.GET("/sessions/:id", h.GetSession)
	e.GET("/sessions/:id/participants/:address", h.GetParticipant)

	// Secured routes - require authentication
	auth := middleware.JWTAuthMiddleware(jwt)

	merchants := e.Group("/merchants")
	merchants.Use(auth)
	merchants.POST("", h.RegisterMerchant)

	sessions := e.Group("/sessions")
	sessions.Use(auth)
	sessions.POST("", h.CreateSession)
	sessions.POST("/:id/join", h.JoinSession)
	sessions.POST("/:id/dispute", h.RaiseDispute)
	sessions.POST("/:id/expire", h.ExpireSession)
	sessions.POST("/:id/complete", h.CompleteSession)

	// Owner administration; the service checks the caller against the
	// recorded contract owner
	admin := e.Group("/admin")
	admin.Use(auth)
	admin.POST("/merchants/:address/blacklist", h.SetBlacklist)
	admin.POST("/shutdown", h.SetShutdown)
	admin.POST("/fee-rate", h.SetFeeRate)

	// Start server
	log.Info("Starting billsplit-service on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
