package main

import (
	"context"
	"log/slog"
	"os"

	"dataclean/internal/app"
	"dataclean/internal/infrastructure"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	application, err := app.NewApplication()
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	return application.Run(context.Background())
}
