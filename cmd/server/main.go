package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anshul-dev/notesvault/internal/api"
	"github.com/anshul-dev/notesvault/internal/api/handlers"
	"github.com/anshul-dev/notesvault/internal/api/services"
	"github.com/anshul-dev/notesvault/internal/auth"
	"github.com/anshul-dev/notesvault/internal/config"
	"github.com/anshul-dev/notesvault/internal/repositories"
	"github.com/anshul-dev/notesvault/internal/views"
)

func main() {
	cfg := config.Load()

	db, err := repositories.ConnectDatabase(cfg.DB_URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	renderer, err := views.New(cfg.TemplateDir)
	if err != nil {
		log.Fatal("Failed to parse templates:", err)
	}

	blobs := repositories.NewS3BlobStore(cfg.S3)
	sessions := auth.NewSessionCodec(cfg.SessionSecret)

	h := handlers.New(
		repositories.NewGormUserStore(db),
		repositories.NewGormPublicNoteStore(db),
		repositories.NewGormPrivateNoteStore(db),
		blobs,
		sessions,
		renderer,
		services.NewGoogleOauthConfig(cfg),
		cfg,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(h, sessions, cfg),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting NotesVault server on port: %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Server error:", err)
	}
	log.Println("Server stopped")
}
