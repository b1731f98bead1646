package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"
	"github.com/redis/go-redis/v9"

	"stbr_web/internal/app/di"
	"stbr_web/internal/cli"
	portfolioadapters "stbr_web/internal/feature/portfolio/adapters"
	portfoliousecase "stbr_web/internal/feature/portfolio/usecase"
	"stbr_web/internal/platform/config"
	"stbr_web/internal/platform/logging"
)

func main() {
	cfg := config.Load()

	logFile, err := logging.Setup(cfg.LogLevel, cfg.LogFile, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger setup failed:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	client := di.NewBackendClient(cfg)
	var rdb *redis.Client

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&cli.AnalyzeCmd{
		NewAnalyzer: func() cli.PortfolioAnalyzer {
			return portfoliousecase.NewPortfolioUsecase(portfolioadapters.NewAnalyzer(client))
		},
		Out: os.Stdout,
		Err: os.Stderr,
	}, "")
	commander.Register(&cli.PrefetchCmd{
		NewWarmer: func() cli.TickerWarmer {
			rdb = di.NewRedis(ctx, cfg)
			if rdb == nil {
				slog.Warn("Redis disabled. Prefetch only checks that the backend answers.")
			}
			return di.NewTickerSource(cfg, client, rdb)
		},
		Out: os.Stdout,
	}, "")

	flag.Parse()
	status := commander.Execute(ctx)

	if rdb != nil {
		_ = rdb.Close()
	}
	stop()
	_ = logFile.Close()
	os.Exit(int(status))
}
