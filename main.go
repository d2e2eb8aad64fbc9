package main

import (
	"context"
	"fmt"
	"os"

	"vibe_backend/assets"
	"vibe_backend/cache"
	"vibe_backend/composer"
	"vibe_backend/core"
	"vibe_backend/export"
	"vibe_backend/layout"
	"vibe_backend/logging"
	"vibe_backend/offload"
	"vibe_backend/render"
	"vibe_backend/shutdown"
	"vibe_backend/webui"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Use fmt here since logger isn't initialized yet
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	isDevelopment := os.Getenv("DEV_MODE") == "true"

	logger, err := logging.NewLogger(isDevelopment, "app.log")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(core.ExitCodeError)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Printf("Failed to sync logger: %v\n", syncErr)
		}
	}()

	config, err := core.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	fmt.Println("Startup validation:")
	if result := core.RunStartupValidation(config, os.Stdout); !result.Success {
		logger.Error("Startup validation failed")
		os.Exit(core.ExitCodeError)
	}

	logger.Info("Configuration loaded",
		zap.String("addr", config.Addr()),
		zap.String("output_dir", config.OutputDir),
		zap.Duration("asset_timeout", config.AssetTimeout),
		zap.Duration("encode_timeout", config.EncodeTimeout),
		zap.Bool("cache_enabled", config.CacheEnabled),
		zap.Int("workers", config.Workers),
		zap.Bool("dev_mode", isDevelopment),
	)

	manager := shutdown.NewManager(logger)
	manager.Register("logger", 50, func(ctx context.Context) error {
		return logger.Sync()
	})

	// Layout presets: optional YAML overrides on top of the built-in
	// per-variant defaults.
	presets, err := layout.LoadPresets(config.LayoutPresetsPath)
	if err != nil {
		logger.Fatal("Failed to load layout presets", zap.Error(err))
	}

	// Render cache is optional; the composer runs uncached without it.
	var blobCache composer.BlobCache
	if config.CacheEnabled {
		store, err := cache.NewStore(config.CacheDBPath, logger)
		if err != nil {
			logger.Fatal("Failed to open render cache", zap.Error(err))
		}
		blobCache = store
		manager.Register("render-cache", 30, func(ctx context.Context) error {
			return store.Close()
		})
	}

	loader := assets.NewLoader(config, logger)
	renderer := render.NewRenderer(assets.NewFontPool(config.FontPath))
	generator := composer.NewGenerator(loader, renderer, presets, blobCache, logger, config)

	pool := offload.NewPool(generator, config.Workers, logger)
	manager.Register("offload-pool", 20, func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	exporter := export.NewExporter(config, logger)
	manager.Register("export-artifacts", 40, func(ctx context.Context) error {
		exporter.Cleanup()
		return nil
	})

	server := webui.NewServer(webui.DefaultServerConfig(config), pool, exporter, manager.Context(), logger)
	manager.Register("http-server", 10, func(ctx context.Context) error {
		return server.Shutdown(ctx)
	})

	manager.Start()

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
			manager.Trigger()
		}
	}()

	manager.Wait()
	logger.Info("Shutting down...")
	os.Exit(manager.Shutdown())
}
