package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"notes-sharing-be/internal/bootstrap"
	"notes-sharing-be/internal/config"
	"notes-sharing-be/internal/server"
	"notes-sharing-be/internal/tracer"
	"notes-sharing-be/pkg/database"
)

func main() {
	cfg := config.Load()

	if cfg.Auth.JWTSecret == "" || cfg.Auth.RefreshTokenSecret == "" {
		log.Fatal("JWT_SECRET and REFRESH_TOKEN_SECRET must be set")
	}
	if cfg.Database.Connection == "" {
		log.Fatal("DB_URI must be set")
	}

	shutdownTracer := tracer.InitTracer()
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	container := bootstrap.NewContainer(cfg, db)
	defer container.Close()

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	go func() {
		if err := container.ConsumerService.ConsumeNoteActivity(consumerCtx); err != nil {
			container.Logger.Error("main", "note activity consumer stopped", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	srv := server.New(cfg, container)

	go func() {
		if err := srv.Listen(); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()
	container.Logger.Info("main", "server started", map[string]interface{}{
		"port": cfg.App.Port,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("main", "shutting down", nil)
	if err := srv.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
