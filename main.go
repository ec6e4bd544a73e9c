package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-booths/internal/auth"
	"ms-booths/internal/booth"
	"ms-booths/internal/booth/booth_api"
	booth_db "ms-booths/internal/booth/db"
	rediswrap "ms-booths/internal/booth/redis"
	"ms-booths/internal/category"
	"ms-booths/internal/category/category_api"
	category_db "ms-booths/internal/category/db"
	"ms-booths/internal/config"
	"ms-booths/internal/database/migrations"
	"ms-booths/internal/kafka"
	"ms-booths/internal/logger"
	"ms-booths/internal/reservation"
	"ms-booths/internal/reservation/pass"
	"ms-booths/internal/reservation/reservation_api"
)

func verifyConnections(ctx context.Context, cfg *config.Config, log *logger.Logger) (*bun.DB, *redis.Client) {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)
	log.Info("DATABASE", "PostgreSQL connection successful")

	bunDB := bun.NewDB(sqldb, pgdialect.New())

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))

	return bunDB, redisClient
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Booth Service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	log.Info("APP", "Verifying database connections")
	bunDB, redisClient := verifyConnections(ctx, cfg, log)
	defer bunDB.Close()
	defer redisClient.Close()

	if cfg.Database.MigrateOnStart {
		runner := migrations.NewRunner(bunDB, migrations.Options{MigrationsDir: cfg.Database.MigrationsDir})
		if err := runner.MigrateUp(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
		}
		log.Info("DATABASE", "Migrations applied")
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		log.Info("KAFKA", fmt.Sprintf("Kafka producer initialized for %v", cfg.Kafka.Brokers))

		requiredTopics := []string{
			cfg.Kafka.Topics.BoothReserved,
			cfg.Kafka.Topics.BoothStatus,
			cfg.Kafka.Topics.CategoryChanged,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
	} else {
		producer = kafka.NewDisabledProducer()
		log.Warn("KAFKA", "Kafka disabled, domain events will be dropped")
	}
	defer producer.Close()

	rules := booth.DefaultRules()
	if cfg.Booking.StrictTransitions {
		rules = booth.StrictRules()
		log.Info("APP", "Strict status transition rules enabled")
	}

	boothStore := &booth_db.DB{Bun: bunDB}
	categoryStore := &category_db.DB{Bun: bunDB}
	bookingLocks := rediswrap.NewRedis(redisClient, cfg.Booking.LockTTL)

	categoryService := category.NewCategoryService(categoryStore, producer, log)
	boothService := booth.NewBoothService(boothStore, producer, rules, log)
	reservationService := reservation.NewReservationService(
		boothStore,
		bookingLocks,
		producer,
		pass.NewGenerator(cfg.Auth.PassSecret),
		log,
	)

	categoryHandler := category_api.NewHandler(categoryService, log)
	boothHandler := booth_api.NewHandler(boothService, log)
	reservationHandler := reservation_api.NewHandler(reservationService, log)

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "x-enterprise-id"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.AdminMiddleware(cfg.Auth.OIDCIssuer, cfg.Auth.AdminAuthEnabled))
			categoryHandler.RegisterRoutes(r)
			boothHandler.RegisterRoutes(r)
		})
		log.Info("ROUTER", "Admin routes registered under /api/admin")

		r.Route("/enterprise", func(r chi.Router) {
			r.Use(auth.EnterpriseIdentity())
			reservationHandler.RegisterRoutes(r)
		})
		log.Info("ROUTER", "Enterprise routes registered under /api/enterprise")
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Booth Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "Booth Service shutdown complete")
	}
}
