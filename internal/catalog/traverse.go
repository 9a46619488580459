package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Digital-Shane/title-crawl/internal/listing"
	"github.com/Digital-Shane/title-crawl/internal/log"
	"github.com/Digital-Shane/title-crawl/internal/media"
	"github.com/mhmtszr/concurrent-swiss-map"
	"github.com/rs/zerolog"
)

// DefaultMaxDepth bounds how many directory levels below the root are entered
// when TraversalConfig.MaxDepth is not set.
const DefaultMaxDepth = 32

// ErrNoRoot is returned when a traversal is started without a root location.
var ErrNoRoot = errors.New("catalog: no root location")

// TraversalConfig carries the knobs of one traversal.
type TraversalConfig struct {
	// IgnoreExtras skips rows named "extras" (any case).
	IgnoreExtras bool
	// MaxDepth limits directory nesting below the root; <= 0 means DefaultMaxDepth.
	MaxDepth int
	// OnVisit, when set, is called after every directory listing is fetched.
	OnVisit func(Progress)
	// Logger receives guard warnings and skip details. Nil disables logging.
	Logger *zerolog.Logger
}

// Progress is a snapshot of a running traversal.
type Progress struct {
	// Location is the directory that was just listed.
	Location    string
	Directories int
	Entries     int
	// RootRows and RootRowsStarted count the rows of the root listing and
	// how many of them the walk has reached so far.
	RootRows        int
	RootRowsStarted int
}

// frame is one directory on the traversal stack.
type frame struct {
	location *url.URL
	rows     []listing.Row
	next     int
	depth    int
	// pending belongs to the parent row that named this directory and also
	// carries a media suffix; it is emitted once the directory is exhausted.
	pending *Entry
}

type traversal struct {
	lister      listing.Lister
	cfg         TraversalConfig
	logger      zerolog.Logger
	visited     *csmap.CsMap[string, struct{}]
	offset      int
	stack       []*frame
	entries     []Entry
	directories int
}

// Traverse walks the directory tree below root depth-first and returns every
// media entry in discovery order, without ordinals.
//
// Rows are handled in the order the lister returns them. A directory row is
// fully explored before the next row of its parent is looked at. Any fetch
// error or context cancellation aborts the whole walk and nothing is returned.
func Traverse(ctx context.Context, lister listing.Lister, root string, cfg TraversalConfig) ([]Entry, error) {
	if strings.TrimSpace(root) == "" {
		return nil, ErrNoRoot
	}
	rootURL, err := url.Parse(root)
	if err != nil {
		return nil, fmt.Errorf("parse root %q: %w", root, err)
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	t := &traversal{
		lister:  lister,
		cfg:     cfg,
		logger:  logger,
		visited: csmap.Create[string, struct{}](),
		offset:  rootOffset(rootURL),
	}
	if _, err := t.enter(ctx, rootURL, 0, nil); err != nil {
		return nil, err
	}

	for len(t.stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		top := t.stack[len(t.stack)-1]
		if top.next >= len(top.rows) {
			t.stack = t.stack[:len(t.stack)-1]
			if top.pending != nil {
				t.emit(*top.pending)
			}
			continue
		}

		row := top.rows[top.next]
		top.next++
		if err := t.visit(ctx, top, row); err != nil {
			return nil, err
		}
	}

	return t.entries, nil
}

// visit applies the inclusion rules to one row of dir.
func (t *traversal) visit(ctx context.Context, dir *frame, row listing.Row) error {
	if reason := t.skipReason(row); reason != "" {
		t.logger.Debug().Str("name", row.Name).Str("href", row.Href).Str("reason", reason).Msg("row skipped")
		log.LogSkip(dir.location.String()+row.Href, reason)
		return nil
	}

	child, err := dir.location.Parse(row.Href)
	if err != nil {
		t.logger.Debug().Err(err).Str("href", row.Href).Msg("row skipped")
		log.LogSkip(row.Href, "unresolvable link")
		return nil
	}

	var entry *Entry
	if media.IsVideo(leafName(child)) {
		e := newEntry(child, row, t.offset)
		entry = &e
	}

	if strings.HasSuffix(child.String(), "/") {
		entered, err := t.enter(ctx, child, dir.depth+1, entry)
		if err != nil {
			return err
		}
		if entered {
			return nil
		}
	}

	if entry != nil {
		t.emit(*entry)
	}
	return nil
}

// skipReason reports why row must not be followed, or "" to keep it.
func (t *traversal) skipReason(row listing.Row) string {
	switch {
	case row.Name == "" || row.Href == "":
		return "malformed row"
	case row.Name == "OST" || strings.Contains(strings.ToLower(row.Name), "original sound"):
		return "soundtrack"
	case t.cfg.IgnoreExtras && strings.EqualFold(row.Name, "extras"):
		return "extras folder"
	case row.Href == ".." || row.Href == "../":
		return "parent directory"
	}
	return ""
}

// enter lists loc and pushes it on the stack. It reports false without error
// when a guard keeps the directory from being entered; pending is then left
// to the caller.
func (t *traversal) enter(ctx context.Context, loc *url.URL, depth int, pending *Entry) (bool, error) {
	key := loc.String()
	if depth > t.cfg.MaxDepth {
		t.logger.Warn().Str("location", key).Int("max_depth", t.cfg.MaxDepth).Msg("directory too deep, not entered")
		log.LogSkip(key, "max depth")
		return false, nil
	}
	if t.visited.Has(key) {
		t.logger.Warn().Str("location", key).Msg("directory already listed, not entered again")
		log.LogSkip(key, "already listed")
		return false, nil
	}
	t.visited.Store(key, struct{}{})

	rows, err := t.lister.List(ctx, key)
	log.LogFetch(key, err == nil, err)
	if err != nil {
		return false, err
	}

	t.directories++
	t.stack = append(t.stack, &frame{location: loc, rows: rows, depth: depth, pending: pending})
	if t.cfg.OnVisit != nil {
		root := t.stack[0]
		t.cfg.OnVisit(Progress{
			Location:        key,
			Directories:     t.directories,
			Entries:         len(t.entries),
			RootRows:        len(root.rows),
			RootRowsStarted: root.next,
		})
	}
	return true, nil
}

func (t *traversal) emit(e Entry) {
	t.entries = append(t.entries, e)
	log.LogEmit(e.URL, e.Title)
}
