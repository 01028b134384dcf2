// Package app wires configuration, logging, and the export pipeline behind
// the ddexport command line.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/crimson-sun/ddexport/internal/config"
	"github.com/crimson-sun/ddexport/internal/connector"
	"github.com/crimson-sun/ddexport/internal/logging"
	"github.com/crimson-sun/ddexport/internal/output/csvfile"
	"github.com/crimson-sun/ddexport/internal/pipeline"
	"github.com/crimson-sun/ddexport/internal/timefmt"

	// Register connector implementations.
	_ "github.com/crimson-sun/ddexport/internal/connector/datadog"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Run executes one export and returns the process exit code. The written
// file's path is printed to stdout; diagnostics go to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "ddexport: %v\n", err)
		return ExitError
	}

	logging.Init(stderr, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level), "run_id", uuid.NewString())

	path, err := export(ctx, cfg, opts)
	if err != nil {
		slog.Error("export failed", "error", err)
		return ExitError
	}
	fmt.Fprintln(stdout, path)
	return ExitOK
}

func export(ctx context.Context, cfg config.Config, opts options) (string, error) {
	start, err := timefmt.ParseLocal(opts.start)
	if err != nil {
		return "", fmt.Errorf("--start: %w", err)
	}
	end, err := timefmt.ParseLocal(opts.end)
	if err != nil {
		return "", fmt.Errorf("--end: %w", err)
	}

	ctor, err := connector.Get(cfg.Connector.Provider)
	if err != nil {
		return "", err
	}

	if len(opts.filters) > 0 {
		slog.Debug("filters are accepted but not applied", "filters", []string(opts.filters))
	}

	connCfg := connector.ConnectorConfig{
		Provider: cfg.Connector.Provider,
		APIKey:   cfg.Connector.APIKey,
		AppKey:   cfg.Connector.AppKey,
		Endpoint: cfg.Connector.Endpoint,
		Timeout:  cfg.Connector.Timeout,
		MaxPages: opts.maxPages,
	}
	params := connector.QueryParams{
		Query:   opts.query,
		Start:   start,
		End:     end,
		Limit:   opts.limit,
		Filters: opts.filters,
	}

	slog.Info("starting export",
		"connector", connCfg.Provider,
		"query", params.Query,
		"from", timefmt.ToWire(start),
		"to", timefmt.ToWire(end),
		"limit", params.Limit,
	)

	return pipeline.New(ctor(), csvfile.WriteRows).Export(ctx, connCfg, params, opts.output)
}
