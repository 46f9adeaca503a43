package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/uzhavar-connect/appconfig"
	"github.com/SaiNageswarS/uzhavar-connect/controller"
	"github.com/SaiNageswarS/uzhavar-connect/directory"
	"github.com/SaiNageswarS/uzhavar-connect/mcp"
	"github.com/SaiNageswarS/uzhavar-connect/middleware"
	"github.com/SaiNageswarS/uzhavar-connect/rover"
	"go.uber.org/zap"
)

func main() {
	dotenv.LoadEnv()
	ctx := getCancellableContext()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.ini"
	}
	cfg, err := appconfig.LoadAppConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.String("path", configPath), zap.Error(err))
	}

	source, closeSource, err := cfg.BuildSource()
	if err != nil {
		logger.Fatal("Failed to open NGO data source", zap.Error(err))
	}
	defer closeSource()

	dir := directory.New(source, cfg.DirectoryOptions())
	if _, err := dir.Reload(ctx); err != nil {
		logger.Fatal("Initial NGO directory load failed", zap.Error(err))
	}

	if cfg.NGOWatchFiles && cfg.NGOSource == appconfig.SourceFile {
		watcher, err := directory.NewWatcher(cfg.DataPaths().Files(), dir, cfg.NGOWatchDebounce)
		if err != nil {
			logger.Fatal("Failed to create NGO data watcher", zap.Error(err))
		}
		if err := watcher.Start(ctx); err != nil {
			logger.Fatal("Failed to start NGO data watcher", zap.Error(err))
		}
		defer watcher.Stop()
	}

	registry := rover.NewRegistry(cfg.RoverIDs...)

	boot, err := server.New().
		GRPCPort(cfg.GRPCPort).
		HTTPPort(cfg.HTTPPort).
		ProvideFunc(func() *appconfig.AppConfig { return cfg }).
		ProvideFunc(func() *directory.Directory { return dir }).
		ProvideFunc(func() *rover.Registry { return registry }).
		AddRestController(controller.ProvideNGOController).
		AddRestController(controller.ProvideMetadataController).
		AddRestController(controller.ProvideRoverController).
		WithMCP(mcp.Implementation(), nil).
		WithMCPMiddleware(middleware.Handler).
		AddMCPConfigurator(mcp.NewNGOTools).
		Build()

	if err != nil {
		logger.Fatal("Dependency Injection Failed", zap.Error(err))
	}

	boot.Serve(ctx)
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
