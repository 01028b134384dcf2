package datadog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/ddexport/internal/connector"
	"github.com/crimson-sun/ddexport/internal/connector/httpclient"
	"github.com/crimson-sun/ddexport/internal/model"
	"github.com/crimson-sun/ddexport/internal/timefmt"
)

const (
	defaultEndpoint = "https://api.datadoghq.com"
	listPath        = "/api/v1/logs-queries/list"
)

// ErrPageLimit is returned when pagination runs past ConnectorConfig.MaxPages.
var ErrPageLimit = errors.New("page limit exceeded")

func init() {
	connector.Register("datadog", func() connector.Connector {
		return &Connector{}
	})
}

// Connector implements the connector.Connector interface for Datadog's
// log list API.
type Connector struct{}

// Request and response types (unexported).

type listRequest struct {
	Query   string    `json:"query"`
	Time    timeRange `json:"time"`
	Limit   int       `json:"limit"`
	StartAt string    `json:"startAt,omitempty"`
}

type timeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type listResponse struct {
	Logs      []model.LogRecord `json:"logs"`
	NextLogID string            `json:"nextLogId"`
}

// Query fetches all pages for params and returns their logs in arrival order.
func (c *Connector) Query(ctx context.Context, cfg connector.ConnectorConfig, params connector.QueryParams) ([]model.LogRecord, error) {
	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = defaultEndpoint
	}
	client := httpclient.New(baseURL, cfg.APIKey, cfg.AppKey, httpclient.WithTimeout(cfg.Timeout))
	return FetchAll(ctx, client, params, cfg.MaxPages)
}

// FetchAll follows the nextLogId cursor until a response omits it.
// maxPages <= 0 places no bound on the number of requests.
func FetchAll(ctx context.Context, client *httpclient.Client, params connector.QueryParams, maxPages int) ([]model.LogRecord, error) {
	req := listRequest{
		Query: params.Query,
		Time: timeRange{
			From: timefmt.ToWire(params.Start),
			To:   timefmt.ToWire(params.End),
		},
		Limit: params.Limit,
	}

	var results []model.LogRecord
	for page := 1; ; page++ {
		if maxPages > 0 && page > maxPages {
			return nil, fmt.Errorf("datadog connector: %w (%d)", ErrPageLimit, maxPages)
		}

		var resp listResponse
		if err := client.PostJSON(ctx, listPath, req, &resp); err != nil {
			return nil, fmt.Errorf("datadog connector: page %d: %w", page, err)
		}
		results = append(results, resp.Logs...)

		slog.Debug("fetched page",
			"connector", "datadog",
			"page", page,
			"records", len(resp.Logs),
			"has_cursor", resp.NextLogID != "",
		)

		if resp.NextLogID == "" {
			break
		}
		req.StartAt = resp.NextLogID
	}

	if results == nil {
		results = []model.LogRecord{}
	}
	return results, nil
}
