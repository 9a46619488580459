package catalog

import (
	"context"

	"github.com/Digital-Shane/title-crawl/internal/listing"
)

// Finalize numbers entries 1..n in discovery order and returns them in
// reverse discovery order, highest ordinal first. The input slice is left
// untouched.
func Finalize(discovered []Entry) []Entry {
	out := make([]Entry, len(discovered))
	for i, e := range discovered {
		e.Ordinal = i + 1
		out[len(discovered)-1-i] = e
	}
	return out
}

// ListEpisodes crawls the series at seriesURL and returns its final catalog.
// Either the whole catalog is returned or an error; there is no partial result.
func ListEpisodes(ctx context.Context, lister listing.Lister, seriesURL string, cfg TraversalConfig) ([]Entry, error) {
	discovered, err := Traverse(ctx, lister, seriesURL, cfg)
	if err != nil {
		return nil, err
	}
	return Finalize(discovered), nil
}
