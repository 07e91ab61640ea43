package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/app"
	"github.com/nekogravitycat/courtmaster-backend/internal/config"
	"github.com/nekogravitycat/courtmaster-backend/internal/db"
	"github.com/nekogravitycat/courtmaster-backend/internal/events"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appCfg := app.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.Origins(),
		ReportCacheTTL: cfg.ReportCacheTTL,
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTAccessTokenTTL,
		PasswordCost:   cfg.BcryptCost,
		Location:       cfg.Location,
		AdminUsername:  cfg.AdminUsername,
		AdminPassword:  cfg.AdminPassword,
	}

	// Connect DB and apply schema
	if cfg.StorageDriver == config.DriverPostgres {
		pool, err := db.NewPool(ctx, cfg.DBDSN, db.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			ConnectAttempts: cfg.DBConnectAttempts,
		})
		if err != nil {
			log.Fatalf("failed to connect to db: %v", err)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("failed to migrate db: %v", err)
		}
		appCfg.DBPool = pool
	} else {
		log.Println("using in-memory storage; data is lost on exit")
	}

	// Report cache
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		appCfg.Redis = rdb
	}

	// Booking events
	if cfg.RabbitURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.RabbitURL, cfg.BookingExchange)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer publisher.Close()
		appCfg.Publisher = publisher
	}

	container, err := app.NewContainer(ctx, appCfg)
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
