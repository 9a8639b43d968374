package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/deusflow/newsroom/internal/app"
	"github.com/deusflow/newsroom/internal/logger"
)

func main() {
	envErr := godotenv.Load()

	logger.Init("newsroom")
	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("could not load .env", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Error("newsroom stopped", "error", err)
		os.Exit(1)
	}
}
