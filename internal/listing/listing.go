// Package listing fetches one page of a web directory listing and turns it
// into ordered rows.
package listing

import (
	"context"
	"fmt"
)

// Row is a single entry of a directory listing page.
type Row struct {
	// Name is the display text of the entry with any trailing "/" removed.
	Name string
	// Href is the link target exactly as it appears in the page.
	Href string
	// Size is the size column text ("350.2 MiB"), empty when the row has none.
	Size string
}

// Lister produces the rows of the directory listing found at location.
// Rows are returned in page order.
type Lister interface {
	List(ctx context.Context, location string) ([]Row, error)
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc func(ctx context.Context, location string) ([]Row, error)

// List calls f(ctx, location).
func (f ListerFunc) List(ctx context.Context, location string) ([]Row, error) {
	return f(ctx, location)
}

// FetchError reports that a listing page could not be fetched or parsed.
type FetchError struct {
	Location   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Location, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
