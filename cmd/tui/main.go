package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"stbr_web/internal/app/di"
	chartadapters "stbr_web/internal/feature/chart/adapters"
	chartusecase "stbr_web/internal/feature/chart/usecase"
	"stbr_web/internal/feature/search/usecase"
	"stbr_web/internal/platform/config"
	"stbr_web/internal/platform/logging"
	"stbr_web/internal/shared/asset"
	"stbr_web/internal/tui"
)

func main() {
	cfg := config.Load()

	// 画面を汚さないようログはファイルのみに出力する
	logFile, err := logging.Setup(cfg.LogLevel, cfg.LogFile, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger setup failed:", err)
		os.Exit(1)
	}
	defer func() { _ = logFile.Close() }()

	ctx := context.Background()
	client := di.NewBackendClient(cfg)
	rdb := di.NewRedis(ctx, cfg)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	tickers, searchUC := di.NewSearchUsecase(cfg, client, di.NewTickerSource(cfg, client, rdb))
	go tickers.Prefetch(ctx, asset.Crypto, asset.Stock)

	renderer := tui.NewRenderer()
	ctrl := usecase.NewController(searchUC, renderer, cfg.DebounceWait)
	charts := chartusecase.NewChartUsecase(chartadapters.NewFigureSource(client))

	p := tea.NewProgram(tui.NewModel(ctrl, charts, asset.Crypto))
	renderer.Attach(p.Send)

	if _, err := p.Run(); err != nil {
		slog.Error("tui exited with error", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctrl.Close()
}
