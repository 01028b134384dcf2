package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/ddexport/internal/connector"
	"github.com/crimson-sun/ddexport/internal/extract"
	"github.com/crimson-sun/ddexport/internal/model"
)

// WriteFunc persists rows under base and returns the written path.
type WriteFunc func(ctx context.Context, rows []model.Row, base string) (string, error)

// Pipeline connects a connector, the token extractor, and an output writer.
type Pipeline struct {
	connector connector.Connector
	write     WriteFunc
}

// New creates a Pipeline from the given components.
func New(conn connector.Connector, write WriteFunc) *Pipeline {
	return &Pipeline{
		connector: conn,
		write:     write,
	}
}

// Export fetches every matching log, extracts one row per log, and writes
// the rows. Nothing is written unless fetching and extraction both succeed.
func (p *Pipeline) Export(ctx context.Context, cfg connector.ConnectorConfig, params connector.QueryParams, base string) (string, error) {
	records, err := p.connector.Query(ctx, cfg, params)
	if err != nil {
		return "", fmt.Errorf("pipeline query: %w", err)
	}
	slog.Info("fetched logs", "records", len(records))

	rows, err := extract.Rows(records)
	if err != nil {
		return "", fmt.Errorf("pipeline extract: %w", err)
	}

	path, err := p.write(ctx, rows, base)
	if err != nil {
		return "", fmt.Errorf("pipeline output: %w", err)
	}
	slog.Info("wrote export", "path", path, "rows", len(rows))
	return path, nil
}
