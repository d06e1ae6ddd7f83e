package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/adminapi/internal/buildinfo"
	"github.com/dmitrijs2005/adminapi/internal/logging"
	"github.com/dmitrijs2005/adminapi/internal/server"
	"github.com/dmitrijs2005/adminapi/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(logging.Options{Format: "json", Level: "info"})
	ctx := context.Background()

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
