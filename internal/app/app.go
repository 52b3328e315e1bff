package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"orcafacil/go_backend/internal/app/config"
	apphttp "orcafacil/go_backend/internal/app/http"
	"orcafacil/go_backend/internal/app/http/handlers"
	"orcafacil/go_backend/internal/app/logging"
	"orcafacil/go_backend/internal/app/workspace"
	"orcafacil/go_backend/internal/domain/quote/pdf/gofpdf"
	"orcafacil/go_backend/internal/infra/api"
	"orcafacil/go_backend/internal/infra/db/postgres"
	"orcafacil/go_backend/internal/infra/notes"
	"orcafacil/go_backend/internal/infra/state"
)

// Run serves until SIGINT or SIGTERM.
func Run(cfg config.Config) error {
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	remote, err := api.New(cfg.QuoteAPIURL, httpClient, log.Named("api"))
	if err != nil {
		return err
	}
	suggester := notes.New(notes.Config{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
	}, httpClient, log.Named("notes"))

	manager := workspace.NewManager(remote, store, suggester, log.Named("workspace"))
	h := handlers.New(manager, gofpdf.New(log.Named("pdf")), log)
	router := apphttp.NewRouter(cfg, h, log.Named("http"))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("quote_api", cfg.QuoteAPIURL))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore picks Postgres when DATABASE_URL is set and memory otherwise.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (state.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info("state store: memory")
		return state.NewMemory(), func() {}, nil
	}
	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	store, err := postgres.NewStateStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info("state store: postgres")
	return store, db.Close, nil
}
