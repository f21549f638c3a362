// Command main is the entry point for the StuntCare backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stuntcare/internal/bootstrap"
	"stuntcare/internal/config"
	"stuntcare/internal/observability"
	"stuntcare/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName: "stuntcare-api",
		Environment: cfg.Env,
		Enabled:     cfg.Env != "test",
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	runtime, err := bootstrap.InitRuntime(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	srv := server.NewServer(cfg, runtime.Store, runtime.Blobs, runtime.Provider, runtime.Redis)
	app := srv.App()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
		if runtime.Redis != nil {
			if err := runtime.Redis.Close(); err != nil {
				log.Printf("Redis shutdown error: %v", err)
			}
		}
	}()

	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
