package output

import (
	"context"

	"github.com/crimson-sun/ddexport/internal/model"
)

// Output defines the interface for extracted row destinations.
type Output interface {
	Write(ctx context.Context, row model.Row) error
	Close() error
}
