package noobsubs

import (
	"context"
	"net/url"
	"strings"

	"github.com/Digital-Shane/title-crawl/internal/listing"
	"github.com/Digital-Shane/title-crawl/internal/provider"
)

// hiddenRoots are root listing rows that are not series.
var hiddenRoots = map[string]bool{
	"..":   true,
	"gifs": true,
}

// Popular lists every series folder at the server root.
func (p *Provider) Popular(ctx context.Context) ([]provider.Series, error) {
	return p.browse(ctx, func(listing.Row) bool { return true })
}

// Search filters the root listing by name. Rows sized in KiB are loose
// files rather than series folders and are left out.
func (p *Provider) Search(ctx context.Context, query string) ([]provider.Series, error) {
	q := strings.ToLower(query)
	return p.browse(ctx, func(row listing.Row) bool {
		if !strings.Contains(strings.ToLower(row.Name), q) {
			return false
		}
		return !strings.Contains(row.Size, " KiB")
	})
}

func (p *Provider) browse(ctx context.Context, keep func(listing.Row) bool) ([]provider.Series, error) {
	root, err := p.resolve("/")
	if err != nil {
		return nil, provider.InvalidInput(providerName, err)
	}
	rows, err := p.lister.List(ctx, root)
	if err != nil {
		return nil, p.wrap(ctx, err)
	}

	base, err := url.Parse(root)
	if err != nil {
		return nil, provider.InvalidInput(providerName, err)
	}

	series := make([]provider.Series, 0, len(rows))
	for _, row := range rows {
		if row.Name == "" || row.Href == "" || hiddenRoots[row.Name] || !keep(row) {
			continue
		}
		u, err := base.Parse(row.Href)
		if err != nil {
			continue
		}
		series = append(series, provider.Series{Title: row.Name, URL: u.String()})
	}
	return series, nil
}
