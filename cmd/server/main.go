package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stbr_web/internal/app/di"
	"stbr_web/internal/app/router"
	chartadapters "stbr_web/internal/feature/chart/adapters"
	charthandler "stbr_web/internal/feature/chart/transport/handler"
	chartusecase "stbr_web/internal/feature/chart/usecase"
	portfolioadapters "stbr_web/internal/feature/portfolio/adapters"
	portfoliohandler "stbr_web/internal/feature/portfolio/transport/handler"
	portfoliousecase "stbr_web/internal/feature/portfolio/usecase"
	searchhandler "stbr_web/internal/feature/search/transport/handler"
	"stbr_web/internal/platform/config"
	"stbr_web/internal/platform/http/handler"
	"stbr_web/internal/platform/logging"
	"stbr_web/internal/shared/asset"
	"stbr_web/internal/web"
)

func main() {
	cfg := config.Load()

	logFile, err := logging.Setup(cfg.LogLevel, cfg.LogFile, true)
	if err != nil {
		slog.Error("logger setup failed", "error", err)
		os.Exit(1)
	}
	defer func() { _ = logFile.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Backend / Redis
	client := di.NewBackendClient(cfg)
	rdb := di.NewRedis(ctx, cfg)
	checks := map[string]handler.Check{}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// Usecase
	tickers, searchUC := di.NewSearchUsecase(cfg, client, di.NewTickerSource(cfg, client, rdb))
	chartUC := chartusecase.NewChartUsecase(chartadapters.NewFigureSource(client))
	portfolioUC := portfoliousecase.NewPortfolioUsecase(portfolioadapters.NewAnalyzer(client))

	// 画面表示時と同様に crypto / stock の一覧を先に温めておく
	go tickers.Prefetch(ctx, asset.Crypto, asset.Stock)

	// ルータ生成
	r := router.NewRouter(
		web.IndexPage{
			DebounceMS:    cfg.DebounceWait.Milliseconds(),
			Classes:       asset.Classes,
			DefaultSymbol: "BTC",
		},
		router.Handlers{
			Search:    searchhandler.NewSearchHandler(searchUC, tickers),
			Chart:     charthandler.NewChartHandler(chartUC),
			Portfolio: portfoliohandler.NewPortfolioHandler(portfolioUC),
		},
		checks,
	)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.ServerAddr, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
