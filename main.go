package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fairway-collective/roundhouse/app"
	"github.com/fairway-collective/roundhouse/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Printf("Application error: %v", err)
	}

	if err := application.Close(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
