package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/subcommands"

	"stbr_web/internal/shared/asset"
)

// TickerWarmer refreshes the shared ticker cache for one asset class.
type TickerWarmer interface {
	Invalidate(ctx context.Context, assetType string) error
	AvailableTickers(ctx context.Context, assetType string) ([]string, error)
}

// PrefetchCmd drops and reloads the shared ticker lists so that new
// sessions start warm.
type PrefetchCmd struct {
	NewWarmer func() TickerWarmer
	Out       io.Writer

	timeout time.Duration
}

var _ subcommands.Command = (*PrefetchCmd)(nil)

func (*PrefetchCmd) Name() string     { return "prefetch" }
func (*PrefetchCmd) Synopsis() string { return "reloads the shared ticker cache" }
func (*PrefetchCmd) Usage() string {
	return `prefetch [-timeout 30s]

Reloads the ticker list of every remote-backed asset class into Redis.
`
}

func (c *PrefetchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.timeout, "timeout", 30*time.Second, "timeout per asset class")
}

func (c *PrefetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	warmer := c.NewWarmer()
	status := subcommands.ExitSuccess

	for _, class := range asset.Classes {
		if class == asset.Cash {
			continue
		}
		n, err := c.warm(ctx, warmer, class)
		if err != nil {
			slog.Error("prefetch failed", "asset_type", class, "error", err)
			fmt.Fprintf(c.Out, "%-8s failed: %v\n", class, err)
			status = subcommands.ExitFailure
			continue
		}
		slog.Info("prefetch completed", "asset_type", class, "tickers", n)
		fmt.Fprintf(c.Out, "%-8s %d tickers\n", class, n)
	}
	return status
}

func (c *PrefetchCmd) warm(ctx context.Context, w TickerWarmer, class asset.Class) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := w.Invalidate(ctx, string(class)); err != nil {
		return 0, fmt.Errorf("invalidate: %w", err)
	}
	tickers, err := w.AvailableTickers(ctx, string(class))
	if err != nil {
		return 0, err
	}
	return len(tickers), nil
}
