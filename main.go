package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"go.uber.org/zap"

	"axflo_backend/internals/configs"
	database "axflo_backend/internals/databases"
	scheduler "axflo_backend/internals/features/users/auth/scheduler"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
	middlewares "axflo_backend/internals/middlewares"
	routes "axflo_backend/internals/route"
	"axflo_backend/internals/seeds"
)

func main() {
	seedOnly := flag.Bool("seed", false, "run the seeders and exit")
	flag.Parse()

	configs.LoadEnv()
	log := configs.Log()
	defer func() { _ = log.Sync() }()

	// 🔌 DB connect + pool + schema
	database.ConnectDB()
	database.TunePool()
	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatal("❌ auto-migrate failed", zap.Error(err))
	}

	if *seedOnly {
		seeds.RunAllSeeds(database.DB)
		return
	}
	if configs.GetEnvBool("SEED_ON_BOOT", false) {
		seeds.RunAllSeeds(database.DB)
	}
	database.WarmUpQueries()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helpers.ErrorHandler,
		BodyLimit:               12 * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + per-request timeout
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("requestid", id)
		ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app)

	cron, err := scheduler.Start(database.DB)
	if err != nil {
		log.Fatal("❌ scheduler failed to start", zap.Error(err))
	}

	routes.SetupRoutes(app, database.DB, storage.NewFromConfig())

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	go func() {
		log.Info("✅ Listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown: stop cron, drain HTTP, close pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-cron.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
