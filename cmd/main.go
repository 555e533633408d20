package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"stashboard/internal/config"
	"stashboard/internal/domain/service/dashboard"
	"stashboard/internal/infrastructure/credentials"
	"stashboard/internal/infrastructure/poeninja"
	"stashboard/internal/infrastructure/trade"
	"stashboard/internal/server"
	"stashboard/internal/worker"
	"stashboard/pkg/contextx"
	"stashboard/pkg/httpx"
	"stashboard/pkg/logx"
	"stashboard/pkg/metrics"
	"stashboard/pkg/middlewarex"
	"stashboard/pkg/probe"
)

const (
	appName    = "stashboard"
	appVersion = "dev"

	httpServerReadHeaderTimeout = 5 * time.Second
	httpLogFieldMaxLen          = 8192
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{ //nolint:exhaustruct
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	if err := run(ctx, log); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func run(ctx context.Context, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	ctx = contextx.WithLogger(ctx, log)

	creds := credentials.NewStatic(cfg.Trade.Origin, trade.SessionCookieName, cfg.Trade.SessionID)

	var transport http.RoundTripper = httpx.NewSessionCookieRoundTripper(
		http.DefaultTransport, creds, cfg.Trade.Origin, trade.SessionCookieName,
	)

	if cfg.HTTP.LogDumps {
		transport = httpx.NewLoggingRoundTripper(
			transport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(httpLogFieldMaxLen),
		)
	}

	httpClient := &http.Client{ //nolint:exhaustruct
		Timeout:   cfg.Trade.RequestTimeout,
		Transport: transport,
	}

	tradeClient := trade.NewClient(cfg.Trade.BaseURL, cfg.Trade.Origin, httpClient, creds).
		WithChunkInterval(cfg.Trade.ChunkInterval).
		WithMaxChunkRetries(cfg.Trade.MaxChunkRetries)

	ninjaClient := poeninja.NewClient(cfg.Ninja.BaseURL, httpClient)

	dashboardService := dashboard.New(tradeClient, tradeClient, ninjaClient).
		WithListingTTL(cfg.Dashboard.ListingTTL).
		WithSalesTTL(cfg.Dashboard.SalesTTL)

	router := chi.NewRouter()
	router.Use(
		middlewarex.Recovery,
		middlewarex.TraceID,
		middlewarex.Logger,
	)

	if cfg.HTTP.LogDumps {
		masker := logx.NewSensitiveDataMasker()
		router.Use(
			middlewarex.RequestLogging(masker, httpLogFieldMaxLen),
			middlewarex.ResponseLogging(masker, httpLogFieldMaxLen),
		)
	}

	server.NewServer(server.NewDashboardServer(dashboardService, server.Defaults{
		Account:        cfg.Dashboard.Account,
		League:         cfg.Dashboard.League,
		Realm:          cfg.Dashboard.Realm,
		ThresholdHours: cfg.Dashboard.StaleThresholdHours,
	})).RegisterRoutes(router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return runHTTPServer(groupCtx, cfg.HTTP.ListenAddress, router)
	})

	group.Go(func() error {
		return probe.NewServer(cfg.HTTP.ProbeListenAddress, probe.Options{
			Name:    appName,
			Version: appVersion,
			League:  cfg.Dashboard.League,
		}).Run(groupCtx)
	})

	group.Go(func() error {
		return metrics.NewPrometheusServer(cfg.HTTP.MetricsListenAddress).Run(groupCtx)
	})

	if cfg.Dashboard.RefreshInterval > 0 && cfg.Dashboard.Account != "" && cfg.Dashboard.League != "" {
		refresher := worker.NewRefresher(dashboardService, dashboard.Query{
			Account:        cfg.Dashboard.Account,
			League:         cfg.Dashboard.League,
			Realm:          cfg.Dashboard.Realm,
			ThresholdHours: cfg.Dashboard.StaleThresholdHours,
		}, cfg.Dashboard.RefreshInterval).WithSales()

		group.Go(func() error {
			if err := refresher.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("refresher.Run: %w", err)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("group.Wait: %w", err)
	}

	return nil
}

func runHTTPServer(ctx context.Context, listenAddress string, router chi.Router) error {
	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              listenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			contextx.LoggerFromContextOrDefault(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	contextx.LoggerFromContextOrDefault(ctx).Info("http server started", slog.String("address", listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	return nil
}
