package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/api"
	"github.com/abcstfabu/kapparot-online/pkg/config"
	"github.com/abcstfabu/kapparot-online/pkg/flow"
	"github.com/abcstfabu/kapparot-online/pkg/handlers"
	"github.com/abcstfabu/kapparot-online/pkg/handlers/donations"
	"github.com/abcstfabu/kapparot-online/pkg/handlers/pages"
	"github.com/abcstfabu/kapparot-online/pkg/middleware"
	"github.com/abcstfabu/kapparot-online/pkg/scheduler"
	"github.com/abcstfabu/kapparot-online/pkg/session"
	"github.com/abcstfabu/kapparot-online/pkg/sheets"
	"github.com/abcstfabu/kapparot-online/pkg/storage"
	dydbstore "github.com/abcstfabu/kapparot-online/pkg/storage/dynamodb"
	"github.com/abcstfabu/kapparot-online/pkg/storage/memory"
	redisstore "github.com/abcstfabu/kapparot-online/pkg/storage/redis"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("unable to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if missing := cfg.MissingRecommended(); len(missing) > 0 {
		logger.Warn("recommended environment variables are not set", "missing", missing)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := newKeyValueStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("unable to create session store", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	store := storage.NewLocalStore(kv, logger)

	sheetsClient, err := sheets.New(ctx, sheets.Config{
		AppsScriptURL: cfg.AppsScriptURL,
		APIKey:        cfg.SheetsAPIKey,
		SheetID:       cfg.SheetID,
		SheetName:     cfg.SheetName,
		Timeout:       cfg.SheetsTimeout,
		HTTPClient:    http.DefaultClient,
	})
	if err != nil {
		logger.Error("unable to create spreadsheet client", "error", err)
		os.Exit(1)
	}
	logger.Info("remote logging", "configured", sheetsClient.Configured(), "method", sheetsClient.Method())

	sched, err := newScheduler(ctx, cfg, sheetsClient, logger)
	if err != nil {
		logger.Error("unable to create scheduler", "error", err)
		os.Exit(1)
	}

	machine := flow.New(store, sched, sheetsClient, flow.PaymentURLs{
		Stripe: cfg.StripeURL,
		PayPal: cfg.PayPalURL,
		Matbia: cfg.MatbiaURL,
		OJC:    cfg.OJCURL,
	}, cfg.ContactEmail, logger)

	pagesHandler, err := pages.NewPagesHandler(machine, pages.Site{
		Name:         cfg.AppName,
		Description:  cfg.AppDescription,
		ContactEmail: cfg.ContactEmail,
	}, logger)
	if err != nil {
		logger.Error("unable to create pages handler", "error", err)
		os.Exit(1)
	}

	handler := handlers.NewApiHandler(pagesHandler, donations.NewDonationsHandler(sheetsClient, logger))

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(session.Middleware(session.Options{
		CookieName: cfg.SessionCookieName,
		Secure:     cfg.SessionCookieSecure,
		MaxAge:     cfg.SessionTTL,
	}))

	api.HandlerFromMux(handler, router)

	logger.Info("starting server", "port", cfg.HTTPPort, "storage", cfg.StorageBackend)

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	if err := run(ctx, srv, sched, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

const shutdownTimeout = 15 * time.Second

// run serves until ctx is done, then drains in-flight requests and waits for
// log events still being delivered in-process.
func run(ctx context.Context, srv *http.Server, sched scheduler.Scheduler, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)

	if async, ok := sched.(*scheduler.Async); ok {
		async.Wait()
	}
	return err
}

func newKeyValueStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.KeyValueStore, error) {
	switch cfg.StorageBackend {
	case config.BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		return dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.SessionsTableName, cfg.SessionTTL), nil
	case config.BackendRedis:
		kv, err := redisstore.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		kv := memory.New(cfg.SessionTTL)
		kv.StartSweeper(ctx, time.Minute)
		logger.Info("using in-memory session store; sessions are lost on restart")
		return kv, nil
	}
}

// newScheduler sends log events to SQS when a queue is configured and
// otherwise delivers them from a background goroutine.
func newScheduler(ctx context.Context, cfg *config.Config, client sheets.Client, logger *slog.Logger) (scheduler.Scheduler, error) {
	if cfg.SQSQueueURL == "" {
		return scheduler.NewAsync(client, logger), nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL), nil
}
