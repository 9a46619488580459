package media

import (
	"testing"
)

func TestIsVideo(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want bool
	}{
		{"01.mkv", true},
		{"clip.mp4", true},
		{"old.avi", true},
		{"clip.MP4", false}, // suffix match is case-sensitive
		{"trailer.webm", false},
		{"notes.txt", false},
		{"Season 1/", false},
	}
	for _, tc := range tests {
		if got := IsVideo(tc.in); got != tc.want {
			t.Errorf("IsVideo(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "Episode 01", "Episode 01"},
		{"LeadingTag", "[NoobSubs] Episode 01", "Episode 01"},
		{"LeadingTagNeedsSpace", "[NoobSubs]Episode 01", "[NoobSubs]Episode 01"},
		{"TrailingBracket", "Episode 01 [1080p]", "Episode 01"},
		{"TrailingParen", "Episode 01 (BD)", "Episode 01"},
		{"StackedKeepsSuffix", "Episode 01 (Group) [1080p].mkv", "Episode 01.mkv"},
		{"SuffixAfterGroup", "01 [Group].mkv", "01.mkv"},
		{"BracketWithoutSpace", "Title[x264-10bit]", "Title"},
		{"AllMetadata", "[Grp] Show (2019) [BD 1080p] (Dual Audio).mp4", "Show.mp4"},
		{"MiddleGroupKept", "Show (2019) Special", "Show (2019) Special"},
		{"UnknownSuffixBlocks", "Episode [1080p].webm", "Episode [1080p].webm"},
		{"PunctuationInsideGroup", "Episode [1080p.x265]", "Episode [1080p.x265]"},
		{"OnlyGroups", "[A] [B]", ""},
		{"Empty", "", ""},
	}
	for _, tc := range tests {
		c := tc
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(c.in); got != c.want {
				t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		"Episode 01",
		"[Grp] [Other] Episode 01",
		"[Grp] Episode 01 (BD) [1080p].mkv",
		"Season 1 (2019) [1080p]",
		"(a)(b)(c)",
		"[A] (B) [C].avi",
		"Movie (2020) - Part 2 [x265].mp4",
		"Extras [NCOP]",
		"  [A] trailing space ",
		"[a] [b] [c] d [e]",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"01.mkv", "01"},
		{"01 [Group].mkv", "01"},
		{"[Grp] Episode 05 (BD) [1080p].mp4", "Episode 05"},
		{"Movie.avi", "Movie"},
		{"Clip.mp4.mkv", "Clip"},
		{"Clip.mkv.mp4", "Clip.mkv"},
		{"notes.txt", "notes.txt"},
	}
	for _, tc := range tests {
		if got := CleanTitle(tc.in); got != tc.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
