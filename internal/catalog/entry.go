package catalog

import (
	"net/url"
	"strings"

	"github.com/Digital-Shane/title-crawl/internal/listing"
	"github.com/Digital-Shane/title-crawl/internal/media"
)

// Entry is one playable file of a series catalog.
type Entry struct {
	// Ordinal is the 1-based position assigned by Finalize. Zero until then.
	Ordinal        int      `json:"ordinal"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Segments       []string `json:"segments"`
	SeasonLabel    string   `json:"season_label,omitempty"`
	ExtraInfoLabel string   `json:"extra_info_label,omitempty"`
	SizeLabel      string   `json:"size_label,omitempty"`
}

// Caption joins the size, season and extra-info labels into the single
// context line shown under an entry's title.
func (e Entry) Caption() string {
	return e.SizeLabel + e.SeasonLabel + e.ExtraInfoLabel
}

// newEntry builds the entry for the media file at u listed by row. offset
// is the number of leading path segments above the series folder, so that
// segment 0 of the entry is the folder the traversal started in.
func newEntry(u *url.URL, row listing.Row, offset int) Entry {
	segments := media.Segments(u)
	if offset > 0 && offset < len(segments) {
		segments = segments[offset:]
	}
	// A directory whose own name carries a media suffix ends in an empty segment.
	if n := len(segments); n > 1 && segments[n-1] == "" {
		segments = segments[:n-1]
	}
	ann := media.Annotate(segments)

	size := ""
	if row.Size != "" {
		size = row.Size + media.LabelSeparator
	}

	return Entry{
		Title:          ann.FolderTag + media.CleanTitle(segments[len(segments)-1]),
		URL:            u.String(),
		Segments:       segments,
		SeasonLabel:    ann.SeasonLabel,
		ExtraInfoLabel: ann.ExtraInfoLabel,
		SizeLabel:      size,
	}
}

// rootOffset counts the path segments of root above its last folder.
func rootOffset(root *url.URL) int {
	p := strings.Trim(root.Path, "/")
	if p == "" {
		return 0
	}
	return strings.Count(p, "/")
}

// leafName returns the last non-empty path segment of u.
func leafName(u *url.URL) string {
	p := strings.TrimSuffix(u.Path, "/")
	return p[strings.LastIndex(p, "/")+1:]
}
