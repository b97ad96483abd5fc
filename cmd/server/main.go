package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"inaudible/internal/config"
	"inaudible/internal/content"
	"inaudible/internal/handlers"
	"inaudible/internal/locale"
	"inaudible/internal/middleware"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	repo := content.NewDiskRepository(cfg.ContentDir)
	if err := checkContent(repo, cfg.StrictContent); err != nil {
		log.Fatal(err)
	}

	router, err := newRouter(cfg, repo)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Starting server on :%s (commit: %s, content: %s)", cfg.Port, CommitSHA, cfg.ContentDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func newRouter(cfg *config.Config, repo *content.Repository) (http.Handler, error) {
	templates, err := handlers.ParseTemplates()
	if err != nil {
		return nil, err
	}

	site := handlers.Site{
		Title:       cfg.SiteTitle,
		Description: cfg.SiteDescription,
		Author:      cfg.SiteAuthor,
	}
	h := handlers.New(repo, templates, locale.NewNegotiator(cfg.Locales, cfg.DefaultLocale), site, cfg.BaseURL)
	limiter := middleware.NewRateLimiterMiddleware(rate.Limit(cfg.RateLimit), cfg.RateBurst, cfg.TrustProxy)

	return h.Router(middleware.LoggingMiddleware, limiter.Middleware), nil
}

// checkContent validates the content tree at startup. Problems are logged;
// with strict set they abort startup.
func checkContent(repo *content.Repository, strict bool) error {
	report, err := repo.Validate()
	if err != nil {
		return err
	}
	for _, p := range report.Problems {
		log.Printf("Content problem: %s", p)
	}
	log.Printf("Loaded %d episodes from %s (%d problems)", report.Episodes, repo.Root(), len(report.Problems))
	if strict && !report.OK() {
		return errors.New("content validation failed and STRICT_CONTENT is set")
	}
	return nil
}
