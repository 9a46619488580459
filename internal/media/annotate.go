package media

import (
	"net/url"
	"regexp"
	"strings"
)

// LabelSeparator joins the parts of an entry's context line.
const LabelSeparator = " • "

// seasonInfoRe captures the release info a season folder carries at its end:
// "Season 1 (2019) [1080p]" -> "(2019)".
var seasonInfoRe = regexp.MustCompile(`(\([\s\w-]+\))(?: ?\[[\s\w-]+\])?$`)

// Annotation holds the labels derived from where a media file sits below the
// catalog root.
type Annotation struct {
	// SeasonLabel is the season folder's trailing "(...)" group plus
	// LabelSeparator, or empty.
	SeasonLabel string
	// ExtraInfoLabel is "/a/b" built from the folders between the season
	// folder and the file, or empty.
	ExtraInfoLabel string
	// FolderTag is "[<season folder>] ", prefixed to titles of files that
	// live below a season folder.
	FolderTag string
}

// Segments splits the decoded path of u into its segments. The leading slash
// is dropped and a trailing slash yields a final empty segment, so
// "https://host/show/ep.mkv" gives ["show", "ep.mkv"].
func Segments(u *url.URL) []string {
	return strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
}

// Annotate derives the season, extra-info and folder labels for a media file
// located at segments. Segment 0 is the catalog root and the last segment is
// the file itself.
func Annotate(segments []string) Annotation {
	var a Annotation
	if len(segments) < 2 {
		return a
	}

	if m := seasonInfoRe.FindStringSubmatch(segments[1]); m != nil {
		a.SeasonLabel = m[1] + LabelSeparator
	}

	if len(segments) > 2 {
		a.FolderTag = "[" + Normalize(segments[1]) + "] "
	}

	if len(segments) > 3 {
		between := segments[2 : len(segments)-1]
		parts := make([]string, len(between))
		for i, seg := range between {
			parts[i] = Normalize(seg)
		}
		a.ExtraInfoLabel = "/" + strings.Join(parts, "/")
	}

	return a
}
