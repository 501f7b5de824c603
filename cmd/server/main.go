package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server"
	"github.com/dmitrijs2005/planit/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
