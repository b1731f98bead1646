package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"

	"stbr_web/internal/feature/portfolio/domain"
	"stbr_web/internal/feature/portfolio/domain/entity"
)

// PortfolioAnalyzer is satisfied by the portfolio usecase.
type PortfolioAnalyzer interface {
	Analyze(ctx context.Context, rows []entity.HoldingInput) (*entity.Report, error)
}

// AnalyzeCmd submits holdings for analysis and prints the report table.
type AnalyzeCmd struct {
	// NewAnalyzer is called once flags are parsed, so wiring only happens when the command runs.
	NewAnalyzer func() PortfolioAnalyzer
	Out         io.Writer
	Err         io.Writer

	file    string
	color   bool
	timeout time.Duration
}

var _ subcommands.Command = (*AnalyzeCmd)(nil)

func (*AnalyzeCmd) Name() string     { return "analyze" }
func (*AnalyzeCmd) Synopsis() string { return "analyzes a portfolio and prints the STBR report" }
func (*AnalyzeCmd) Usage() string {
	return `analyze [-file holdings.json] [TYPE:TICKER:SHARES ...]

Holdings come from -file (the JSON body the web form posts) and/or arguments,
e.g. "crypto:BTC:0.5 stock:AAPL:10 cash:CASH:2500".
`
}

func (c *AnalyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "JSON holdings file")
	f.BoolVar(&c.color, "color", true, "color rows by signal")
	f.DurationVar(&c.timeout, "timeout", 60*time.Second, "analysis request timeout")
}

func (c *AnalyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var rows []entity.HoldingInput
	if c.file != "" {
		fromFile, err := readHoldingsFile(c.file)
		if err != nil {
			fmt.Fprintln(c.Err, "Error:", err)
			return subcommands.ExitFailure
		}
		rows = append(rows, fromFile...)
	}
	for _, arg := range f.Args() {
		h, err := ParseHolding(arg)
		if err != nil {
			fmt.Fprintln(c.Err, "Error:", err)
			return subcommands.ExitUsageError
		}
		rows = append(rows, h)
	}
	if len(rows) == 0 {
		fmt.Fprint(c.Err, c.Usage())
		return subcommands.ExitUsageError
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	report, err := c.NewAnalyzer().Analyze(ctx, rows)
	if err != nil {
		c.printError(rows, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintln(c.Out, RenderReport(report, c.color))
	switch report.ChartState {
	case entity.ChartOK:
		fmt.Fprintf(c.Out, "Chart: %s (%d trace(s))\n", report.Chart.Title(), report.Chart.TraceCount())
	case entity.ChartError:
		fmt.Fprintln(c.Out, "Chart: could not be displayed")
	case entity.ChartEmpty:
		fmt.Fprintln(c.Out, "Chart: no assets with positive value to chart")
	}
	return subcommands.ExitSuccess
}

func (c *AnalyzeCmd) printError(rows []entity.HoldingInput, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintln(c.Err, "Please fix the following inputs (use ticker CASH for cash):")
		for _, is := range verr.Issues {
			row := rows[is.Row]
			fmt.Fprintf(c.Err, "  row %d %s:%s:%s  %s (%s)\n",
				is.Row+1, row.AssetType, row.Ticker, row.Shares, is.Field, is.Severity)
		}
	case errors.Is(err, domain.ErrNoHoldings):
		fmt.Fprintln(c.Err, "Please add at least one holding to analyze.")
	default:
		fmt.Fprintln(c.Err, "Error:", err)
	}
}

func readHoldingsFile(path string) ([]entity.HoldingInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadHoldings(f)
}
