package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/kjstillabower/weatherman/internal/config"
	"github.com/kjstillabower/weatherman/internal/loader"
	"github.com/kjstillabower/weatherman/internal/observability"
	"github.com/kjstillabower/weatherman/internal/parser"
	"github.com/kjstillabower/weatherman/internal/report"
	"github.com/kjstillabower/weatherman/internal/service"
)

// Exit codes.
const (
	exitOK            = 0
	exitFatal         = 1
	exitReportsFailed = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// periodArg is one report flag as given on the command line.
type periodArg struct {
	kind   report.Kind
	period string
}

type invocation struct {
	dataDir    string
	configPath string
	periods    []periodArg
}

// parseArgs accepts an optional leading data directory followed by report flags.
// Report flags may repeat; their order is kept.
func parseArgs(args []string, stderr io.Writer) (invocation, error) {
	var inv invocation
	fs := flag.NewFlagSet("weatherman", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: weatherman [data_directory] [-e YEAR] [-a YEAR/MONTH] [-b YEAR/MONTH] [-c YEAR/MONTH] ...")
		fs.PrintDefaults()
	}
	fs.StringVar(&inv.configPath, "config", "", "YAML config `file` (default config/$ENV_NAME.yaml)")
	for _, k := range report.Kinds {
		k := k
		fs.Func(k.Flag(), k.Usage(), func(v string) error {
			inv.periods = append(inv.periods, periodArg{kind: k, period: v})
			return nil
		})
	}

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		inv.dataDir = args[0]
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return invocation{}, err
	}
	switch {
	case fs.NArg() == 1 && inv.dataDir == "":
		inv.dataDir = fs.Arg(0)
	case fs.NArg() > 0:
		return invocation{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return inv, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	inv, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "weatherman: %v\n", err)
		return exitFatal
	}

	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return exitFatal
	}

	cfg, err := config.Load(inv.configPath)
	if err != nil {
		logger.Error("config", zap.Error(err))
		_ = logger.Sync()
		return exitFatal
	}
	// Flush failures are logged by FlushTelemetry; a stderr sync error is expected on terminals.
	defer func() { _ = observability.FlushTelemetry(context.Background(), logger, cfg.MetricsTextfile) }()

	dataDir := inv.dataDir
	if dataDir == "" {
		dataDir = cfg.DataDir
	}

	reqs := make([]report.Request, 0, len(inv.periods))
	for _, pa := range inv.periods {
		req, err := report.NewRequest(pa.kind, pa.period, cfg.FilePrefix)
		if err != nil {
			fmt.Fprintf(stderr, "weatherman: %v\n", err)
			return exitFatal
		}
		reqs = append(reqs, req)
	}
	if len(reqs) == 0 {
		fmt.Fprintln(stderr, "No reports requested")
		return exitFatal
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := parser.New(parser.Schema{
		MaxTemperature: cfg.Columns.MaxTemperature,
		MinTemperature: cfg.Columns.MinTemperature,
		MaxHumidity:    cfg.Columns.MaxHumidity,
		MeanHumidity:   cfg.Columns.MeanHumidity,
	}, cfg.Delimiter)
	set, err := loader.New(p, logger).Load(ctx, dataDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFatal
	}
	if set.Len() == 0 {
		fmt.Fprintln(stderr, "No data found")
		return exitFatal
	}

	out, _ := stdout.(*os.File)
	renderer := report.NewRenderer(stdout, report.ColorEnabled(cfg.Color, out))
	if err := renderer.RequestedReports(reqs); err != nil {
		logger.Error("write output", zap.Error(err))
		return exitFatal
	}

	svc := service.New(set, renderer, logger)
	if failed := svc.RunAll(ctx, reqs); failed > 0 {
		logger.Warn("some reports failed", zap.Int("failed", failed), zap.Int("requested", len(reqs)))
		return exitReportsFailed
	}
	return exitOK
}
