// Package mock provides test doubles for bikeshare interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/bikeshare"
)

// Interface compliance checks.
var _ bikeshare.Loader = (*Loader)(nil)

// Loader is a test double for bikeshare.Loader.
// Set LoadFn before calling Load.
type Loader struct {
	LoadFn func(ctx context.Context, city bikeshare.City) (*bikeshare.Dataset, error)
}

// Load delegates to LoadFn.
func (l *Loader) Load(ctx context.Context, city bikeshare.City) (*bikeshare.Dataset, error) {
	return l.LoadFn(ctx, city)
}

// Analyze returns an AnalyzeFunc that always yields result and err, sending
// events to the handler first.
func Analyze(result *bikeshare.Result, err error, events ...bikeshare.Event) bikeshare.AnalyzeFunc {
	return func(_ context.Context, _ bikeshare.FilterSpec, onEvent func(bikeshare.Event)) (*bikeshare.Result, error) {
		if onEvent != nil {
			for _, e := range events {
				onEvent(e)
			}
		}
		return result, err
	}
}
