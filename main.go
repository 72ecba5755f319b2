// Package main our entry point.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/johndosdos/escola/internal/auth"
	"github.com/johndosdos/escola/internal/config"
	"github.com/johndosdos/escola/internal/handler"
	"github.com/johndosdos/escola/internal/notify"
	ratelimiter "github.com/johndosdos/escola/internal/rate_limiter"
	"github.com/johndosdos/escola/internal/store"
	"github.com/johndosdos/escola/internal/store/memstore"
	"github.com/johndosdos/escola/internal/store/pgstore"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Starting application...")

	// Init store
	var repo store.Repository
	var dbConn *pgxpool.Pool
	if cfg.DBURL != "" {
		log.Println("Initializing Database connection...")

		dbConn, err = pgxpool.New(ctx, cfg.DBURL)
		if err != nil {
			log.Fatalf("could not connect to the postgresql database: %v", err)
		}

		if err := pgstore.Migrate(ctx, dbConn); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		pg := pgstore.New(dbConn)
		if err := pg.Seed(ctx); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
		repo = pg
	} else {
		log.Println("DB_URL is not set; keeping messages in memory")
		repo = memstore.New(cfg.FetchDelay)
	}

	authn, err := auth.NewAuthenticator(cfg.DemoLogin, cfg.SeedPassword)
	if err != nil {
		log.Fatalf("failed to create authenticator: %v", err)
	}

	loginLimit := ratelimiter.NewIPRateLimiter(cfg.LoginRateRequests, cfg.LoginRateWindow, ratelimiter.CleanupOpts{
		TTL:      10 * time.Minute,
		Interval: time.Minute,
	})
	defer loginLimit.Stop()

	// hub.Run fans notices out to the connected browsers.
	hub := notify.NewHub()
	go hub.Run(ctx)

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       30 * time.Second,
		Handler: handler.Routes(handler.Deps{
			Repo: repo,
			Hub:  hub,
			Auth: authn,
			Session: handler.SessionOpts{
				Secret: cfg.JWTSecret,
				Issuer: cfg.JWTIssuer,
				TTL:    cfg.SessionTTL,
			},
			LoginLimit: loginLimit,
			SchoolName: cfg.SchoolName,
		}),
	}

	go func() {
		log.Printf("Server starting at 0.0.0.0:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutdown signal received; shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println(err)
	}

	// Close DB connection.
	if dbConn != nil {
		dbConn.Close()
	}

	log.Println("Server stopped")
}
