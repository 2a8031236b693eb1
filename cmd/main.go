package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/venturegate/validation-backend/internal/app"
	"github.com/venturegate/validation-backend/internal/observability"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	shutdownTracing := observability.InitOTel(context.Background(), application.Log, observability.OtelConfig{
		ServiceName: os.Getenv("OTEL_SERVICE_NAME"),
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	if shutdownTracing != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				application.Log.Warn("Tracing shutdown failed", "error", err)
			}
		}()
	}

	application.Start()

	addr := ":" + application.Cfg.Port
	application.Log.Info("Starting HTTP server", "addr", addr)
	if err := application.Run(addr); err != nil {
		application.Log.Error("HTTP server exited", "error", err)
		os.Exit(1)
	}
}
