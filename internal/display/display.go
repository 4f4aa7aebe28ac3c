// Package display shows a rendered figure. Backends block until the user
// is done with the figure or the context is cancelled.
package display

import (
	"context"

	"github.com/banshee-data/datplot/internal/figure"
)

// Backend shows a figure.
type Backend interface {
	Show(ctx context.Context, fig *figure.Figure) error
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, fig *figure.Figure) error

// Show implements Backend.
func (f BackendFunc) Show(ctx context.Context, fig *figure.Figure) error {
	return f(ctx, fig)
}
