package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/time/rate"

	"storefront/internal/api"
	"storefront/internal/config"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/migrations"
)

func connectDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	log.Printf("✅ Connected to DB %s", path)
	return db, nil
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := connectDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to DB %s: %v", cfg.DBPath, err)
	}
	defer db.Close()

	if err := migrations.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
	seeded, err := migrations.SeedIfEmpty(db)
	if err != nil {
		log.Printf("⚠️ Seeding failed: %v", err)
	} else if seeded {
		log.Println("🔥 Seeded minimal product")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer kafkaWriter.Close()

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	catalogService := service.NewCatalogService(*productRepo, rdb)
	orderService := service.NewOrderService(*orderRepo, *productRepo, kafkaWriter, cfg.StockPolicy)
	adminService := service.NewAdminService(*productRepo, *orderRepo, catalogService, kafkaWriter, cfg.StockPolicy)
	authService := service.NewAuthService(&cfg)

	authHandler := api.NewAuthHandler(*authService)
	catalogHandler := api.NewCatalogHandler(*catalogService)
	orderHandler := api.NewOrderHandler(*orderService)
	adminHandler := api.NewAdminHandler(*adminService)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     40,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.POST("/api/login", authHandler.Login)
	e.GET("/api/products", catalogHandler.GetProducts)
	e.POST("/api/orders", orderHandler.CreateOrder)
	e.GET("/api/orders/:id", orderHandler.GetOrder)

	admin := e.Group("/api/admin", api.AdminTokenMiddleware(cfg.JWTSecret))
	admin.GET("/products", catalogHandler.GetProducts)
	admin.GET("/orders", adminHandler.GetOrders)
	admin.PUT("/variant/:id", adminHandler.UpdateVariant)
	admin.POST("/product/:id/variant", adminHandler.AddVariant)
	admin.DELETE("/variant/:id", adminHandler.DeleteVariant)
	admin.POST("/orders/:id/status", adminHandler.SetOrderStatus)

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "storefront",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = e.Shutdown(ctx)
}
