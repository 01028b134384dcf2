package connector

import (
	"context"
	"time"

	"github.com/crimson-sun/ddexport/internal/model"
)

//go:generate mockgen -source=connector.go -destination=../mocks/connector/connector_mock.go -package=connector_mock

// Connector defines the interface all log source connectors must implement.
type Connector interface {
	// Query fetches every log matching params, following pagination until
	// the source reports no more pages.
	Query(ctx context.Context, cfg ConnectorConfig, params QueryParams) ([]model.LogRecord, error)
}

// ConnectorConfig holds provider-specific connection settings.
type ConnectorConfig struct {
	Provider string
	APIKey   string
	AppKey   string
	Endpoint string
	Timeout  time.Duration // 0 = transport default
	MaxPages int           // 0 = unbounded
}

// QueryParams defines the search to run.
type QueryParams struct {
	Query   string
	Start   time.Time
	End     time.Time
	Limit   int
	Filters []string // accepted on the command line, not sent
}
