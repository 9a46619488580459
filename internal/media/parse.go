package media

import (
	"regexp"
	"strings"
)

// Filename normalization utilities.
//
// Directory listings name their entries after the release: a leading group
// tag, the title, then any number of trailing bracketed or parenthesized
// annotations (group, resolution, codec, year). These helpers peel those
// annotations off to leave a display title, and recognise the small closed
// set of container suffixes the catalog treats as playable.
var (
	// VideoFormats lists the recognised media-file suffixes, in the order
	// they are stripped from a leaf name.
	VideoFormats = []string{".mkv", ".mp4", ".avi"}

	// leadingTagRe matches one leading group tag: "[Group] Title".
	leadingTagRe = regexp.MustCompile(`^\[\w+\] `)

	// trailingInfoRe matches one trailing "[...]" or "(...)" group, optionally
	// followed by a media suffix which is kept when the group is removed.
	trailingInfoRe = regexp.MustCompile(`( ?\[[\s\w-]+\]| ?\([\s\w-]+\))(\.mkv|\.mp4|\.avi)?$`)
)

// IsVideo reports whether name ends with one of VideoFormats.
func IsVideo(name string) bool {
	for _, ext := range VideoFormats {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Normalize strips a leading group tag and every trailing bracketed or
// parenthesized annotation from raw, keeping a trailing media suffix in place.
//
//	"[Grp] Episode 01 (BD) [1080p].mkv" -> "Episode 01.mkv"
//
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(raw string) string {
	name := raw
	for leadingTagRe.MatchString(name) {
		name = leadingTagRe.ReplaceAllString(name, "")
	}

	for {
		loc := trailingInfoRe.FindStringSubmatchIndex(name)
		if loc == nil {
			return name
		}
		suffix := ""
		if loc[4] >= 0 {
			suffix = name[loc[4]:loc[5]]
		}
		name = name[:loc[0]] + suffix
	}
}

// CleanTitle turns a media leaf name into its display title: each known
// suffix is removed in turn and the remainder normalized after every step.
func CleanTitle(leaf string) string {
	title := leaf
	for _, ext := range VideoFormats {
		title = Normalize(strings.TrimSuffix(title, ext))
	}
	return title
}
