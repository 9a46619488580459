package provider

import (
	"context"

	"github.com/Digital-Shane/title-crawl/internal/catalog"
)

type progressKey struct{}

// WithProgress returns a context that asks providers to report crawl
// progress to fn while building an episode list.
func WithProgress(ctx context.Context, fn func(catalog.Progress)) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

// ProgressFromContext returns the callback set by WithProgress, or nil.
func ProgressFromContext(ctx context.Context) func(catalog.Progress) {
	fn, _ := ctx.Value(progressKey{}).(func(catalog.Progress))
	return fn
}
