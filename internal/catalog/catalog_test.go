package catalog

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/Digital-Shane/title-crawl/internal/listing"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// site is a fake directory tree keyed by decoded URL path.
type site map[string][]listing.Row

// lister serves the tree and records every listed path. Unknown paths fail
// like a 404 would.
func (s site) lister(calls *[]string) listing.Lister {
	return listing.ListerFunc(func(ctx context.Context, location string) ([]listing.Row, error) {
		u, err := url.Parse(location)
		if err != nil {
			return nil, err
		}
		if calls != nil {
			*calls = append(*calls, u.Path)
		}
		rows, ok := s[u.Path]
		if !ok {
			return nil, &listing.FetchError{Location: location, StatusCode: 404}
		}
		return rows, nil
	})
}

func dir(name string) listing.Row  { return listing.Row{Name: name, Href: name + "/"} }
func file(name string) listing.Row { return listing.Row{Name: name, Href: name} }

func urls(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.URL
	}
	return out
}

func TestListEpisodesFileAtRoot(t *testing.T) {
	s := site{"/Show/": {file("01.mkv")}}

	got, err := ListEpisodes(context.Background(), s.lister(nil), "https://host/Show/", TraversalConfig{IgnoreExtras: true})
	if err != nil {
		t.Fatalf("ListEpisodes() error = %v", err)
	}

	want := []Entry{{
		Ordinal:  1,
		Title:    "01",
		URL:      "https://host/Show/01.mkv",
		Segments: []string{"Show", "01.mkv"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListEpisodes() mismatch (-want +got)\n%s", diff)
	}
}

func TestListEpisodesSeasonFolder(t *testing.T) {
	s := site{
		"/Show/":                 {listing.Row{Name: "Season 1 (2019)", Href: "Season%201%20(2019)/"}},
		"/Show/Season 1 (2019)/": {listing.Row{Name: "01 [Group].mkv", Href: "01%20%5BGroup%5D.mkv", Size: "350.2 MiB"}},
	}

	got, err := ListEpisodes(context.Background(), s.lister(nil), "https://host/Show/", TraversalConfig{IgnoreExtras: true})
	if err != nil {
		t.Fatalf("ListEpisodes() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListEpisodes() returned %d entries, want 1", len(got))
	}

	e := got[0]
	if e.Title != "[Season 1] 01" {
		t.Errorf("Title = %q, want %q", e.Title, "[Season 1] 01")
	}
	if e.SeasonLabel != "(2019) • " {
		t.Errorf("SeasonLabel = %q, want %q", e.SeasonLabel, "(2019) • ")
	}
	if e.ExtraInfoLabel != "" {
		t.Errorf("ExtraInfoLabel = %q, want empty", e.ExtraInfoLabel)
	}
	if e.Caption() != "350.2 MiB • (2019) • " {
		t.Errorf("Caption() = %q", e.Caption())
	}
	if diff := cmp.Diff([]string{"Show", "Season 1 (2019)", "01 [Group].mkv"}, e.Segments); diff != "" {
		t.Errorf("Segments mismatch (-want +got)\n%s", diff)
	}
}

func TestListEpisodesNestedRoot(t *testing.T) {
	tests := []struct {
		name string
		site site
		want Entry
	}{
		{
			name: "file at root",
			site: site{"/pub/Show/": {file("01.mkv")}},
			want: Entry{
				Ordinal:  1,
				Title:    "01",
				Segments: []string{"Show", "01.mkv"},
			},
		},
		{
			name: "season folder",
			site: site{
				"/pub/Show/":                 {listing.Row{Name: "Season 1 (2019)", Href: "Season%201%20(2019)/"}},
				"/pub/Show/Season 1 (2019)/": {file("01 [Group].mkv")},
			},
			want: Entry{
				Ordinal:     1,
				Title:       "[Season 1] 01",
				Segments:    []string{"Show", "Season 1 (2019)", "01 [Group].mkv"},
				SeasonLabel: "(2019) • ",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListEpisodes(context.Background(), tt.site.lister(nil), "https://host/pub/Show/", TraversalConfig{IgnoreExtras: true})
			if err != nil {
				t.Fatalf("ListEpisodes() error = %v", err)
			}
			if diff := cmp.Diff([]Entry{tt.want}, got, cmpopts.IgnoreFields(Entry{}, "URL")); diff != "" {
				t.Errorf("ListEpisodes() mismatch (-want +got)\n%s", diff)
			}
		})
	}
}

func TestRootOffset(t *testing.T) {
	tests := []struct {
		root string
		want int
	}{
		{"https://host/", 0},
		{"https://host/Show/", 0},
		{"https://host/pub/Show/", 1},
		{"https://host/a/b/Show/", 2},
	}
	for _, tt := range tests {
		u, _ := url.Parse(tt.root)
		if got := rootOffset(u); got != tt.want {
			t.Errorf("rootOffset(%q) = %d, want %d", tt.root, got, tt.want)
		}
	}
}

func TestTraverseExtraInfoLabel(t *testing.T) {
	s := site{
		"/Show/":                                     {dir("Season 2 [BD]")},
		"/Show/Season 2 [BD]/":                       {dir("Disc 1 (Remux)")},
		"/Show/Season 2 [BD]/Disc 1 (Remux)/":        {dir("Part A")},
		"/Show/Season 2 [BD]/Disc 1 (Remux)/Part A/": {file("[Grp] Ep 03 (x264).mp4")},
	}

	got, err := Traverse(context.Background(), s.lister(nil), "https://host/Show/", TraversalConfig{})
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Traverse() returned %d entries, want 1", len(got))
	}
	if got[0].ExtraInfoLabel != "/Disc 1/Part A" {
		t.Errorf("ExtraInfoLabel = %q, want %q", got[0].ExtraInfoLabel, "/Disc 1/Part A")
	}
	if got[0].Title != "[Season 2] Ep 03" {
		t.Errorf("Title = %q, want %q", got[0].Title, "[Season 2] Ep 03")
	}
	if got[0].SeasonLabel != "" {
		t.Errorf("SeasonLabel = %q, want empty", got[0].SeasonLabel)
	}
	if got[0].Ordinal != 0 {
		t.Errorf("Traverse() should leave ordinals unset, got %d", got[0].Ordinal)
	}
}

func TestTraverseExcludesSoundtracks(t *testing.T) {
	s := site{
		"/Show/":                              {dir("OST"), dir("Season 1")},
		"/Show/OST/":                          {file("theme.mkv")},
		"/Show/Season 1/":                     {dir("Original Soundtrack"), dir("OST"), file("01.mkv")},
		"/Show/Season 1/Original Soundtrack/": {file("bgm.mp4")},
		"/Show/Season 1/OST/":                 {file("op.avi")},
	}
	var calls []string

	got, err := ListEpisodes(context.Background(), s.lister(&calls), "https://host/Show/", TraversalConfig{IgnoreExtras: true})
	if err != nil {
		t.Fatalf("ListEpisodes() error = %v", err)
	}
	if diff := cmp.Diff([]string{"https://host/Show/Season%201/01.mkv"}, urls(got)); diff != "" {
		t.Errorf("entries mismatch (-want +got)\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/Show/", "/Show/Season 1/"}, calls); diff != "" {
		t.Errorf("excluded folders should never be listed (-want +got)\n%s", diff)
	}
}

func TestTraverseOSTMatchIsExact(t *testing.T) {
	s := site{"/Show/": {file("OSTRICH.mkv"), file("ost.mkv")}}

	got, err := Traverse(context.Background(), s.lister(nil), "https://host/Show/", TraversalConfig{})
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Traverse() returned %d entries, want 2", len(got))
	}
}

func TestTraverseExtrasToggle(t *testing.T) {
	s := site{
		"/Show/":          {dir("Extras"), dir("Season 1")},
		"/Show/Extras/":   {file("nced.mkv")},
		"/Show/Season 1/": {file("01.mkv")},
	}

	tests := []struct {
		name         string
		ignoreExtras bool
		want         []string
	}{
		{
			name:         "ignored",
			ignoreExtras: true,
			want:         []string{"https://host/Show/Season%201/01.mkv"},
		},
		{
			name:         "included",
			ignoreExtras: false,
			want: []string{
				"https://host/Show/Extras/nced.mkv",
				"https://host/Show/Season%201/01.mkv",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Traverse(context.Background(), s.lister(nil), "https://host/Show/", TraversalConfig{IgnoreExtras: tt.ignoreExtras})
			if err != nil {
				t.Fatalf("Traverse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, urls(got)); diff != "" {
				t.Errorf("entries mismatch (-want +got)\n%s", diff)
			}
			if tt.ignoreExtras {
				for _, e := range got {
					for _, seg := range e.Segments {
						if strings.EqualFold(seg, "extras") {
							t.Errorf("entry %q is below an extras folder", e.URL)
						}
					}
				}
			}
		})
	}
}

func TestListEpisodesReversesDiscoveryOrder(t *testing.T) {
	s := site{"/Show/": {file("C.mkv"), file("B.mkv"), file("A.mkv")}}

	got, err := ListEpisodes(context.Background(), s.lister(nil), "https://host/Show/", TraversalConfig{})
	if err != nil {
		t.Fatalf("ListEpisodes() error = %v", err)
	}

	type view struct {
		Title   string
		Ordinal int
	}
	var gotView []view
	for _, e := range got {
		gotView = append(gotView, view{e.Title, e.Ordinal})
	}
	want := []view{{"A", 3}, {"B", 2}, {"C", 1}}
	if diff := cmp.Diff(want, gotView); diff != "" {
		t.Errorf("ListEpisodes() order mismatch (-want +got)\n%s", diff)
	}
}

func TestListEpisodesOrdinalsAndInversion(t *testing.T) {
	s := site{
		"/Show/":                   {dir("Season 2"), dir("Season 1"), file("Movie.mkv")},
		"/Show/Season 2/":          {file("04.mkv"), file("03.mkv"), dir("Specials")},
		"/Show/Season 2/Specials/": {file("SP1.avi")},
		"/Show/Season 1/":          {file("02.mp4"), file("01.mp4"), file("notes.txt")},
	}
	lister := s.lister(nil)
	ctx := context.Background()

	discovered, err := Traverse(ctx, lister, "https://host/Show/", TraversalConfig{})
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}
	final, err := ListEpisodes(ctx, lister, "https://host/Show/", TraversalConfig{})
	if err != nil {
		t.Fatalf("ListEpisodes() error = %v", err)
	}

	if len(final) != 6 {
		t.Fatalf("ListEpisodes() returned %d entries, want 6", len(final))
	}
	seen := map[int]bool{}
	for _, e := range final {
		if e.Ordinal < 1 || e.Ordinal > len(final) || seen[e.Ordinal] {
			t.Errorf("ordinal %d is out of range or duplicated", e.Ordinal)
		}
		seen[e.Ordinal] = true
	}

	reversed := urls(discovered)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	if diff := cmp.Diff(reversed, urls(final)); diff != "" {
		t.Errorf("final order is not the reverse of discovery order (-want +got)\n%s", diff)
	}

	wantDiscovery := []string{
		"https://host/Show/Season%202/04.mkv",
		"https://host/Show/Season%202/03.mkv",
		"https://host/Show/Season%202/Specials/SP1.avi",
		"https://host/Show/Season%201/02.mp4",
		"https://host/Show/Season%201/01.mp4",
		"https://host/Show/Movie.mkv",
	}
	if diff := cmp.Diff(wantDiscovery, urls(discovered)); diff != "" {
		t.Errorf("discovery order mismatch (-want +got)\n%s", diff)
	}
}

func TestTraverseDirectoryWithMediaSuffix(t *testing.T) {
	s := site{
		"/Show/":           {listing.Row{Name: "Movie.mkv", Href: "Movie.mkv/"}, file("02.mkv")},
		"/Show/Movie.mkv/": {file("extra.mp4")},
	}

	got, err := Traverse(context.Background(), s.lister(nil), "https://host/Show/", TraversalConfig{})
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}

	want := []string{
		"https://host/Show/Movie.mkv/extra.mp4",
		"https://host/Show/Movie.mkv/",
		"https://host/Show/02.mkv",
	}
	if diff := cmp.Diff(want, urls(got)); diff != "" {
		t.Fatalf("entries mismatch (-want +got)\n%s", diff)
	}
	if got[1].Title != "Movie" {
		t.Errorf("directory entry Title = %q, want %q", got[1].Title, "Movie")
	}
	if diff := cmp.Diff([]string{"Show", "Movie.mkv"}, got[1].Segments); diff != "" {
		t.Errorf("directory entry Segments mismatch (-want +got)\n%s", diff)
	}
}

func TestTraverseSkipsParentAndMalformedRows(t *testing.T) {
	s := site{"/Show/": {
		{Name: "..", Href: "../"},
		{Name: "Parent Directory", Href: ".."},
		{Name: "", Href: "nameless.mkv"},
		{Name: "linkless.mkv", Href: ""},
		file("01.mkv"),
	}}
	var calls []string

	got, err := Traverse(context.Background(), s.lister(&calls), "https://host/Show/", TraversalConfig{})
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}
	if diff := cmp.Diff([]string{"https://host/Show/01.mkv"}, urls(got)); diff != "" {
		t.Errorf("entries mismatch (-want +got)\n%s", diff)
	}
	if len(calls) != 1 {
		t.Errorf("listed %v, want only the root", calls)
	}
}

func TestTraverseCycleGuard(t *testing.T) {
	s := site{
		"/Show/":          {{Name: "again", Href: "../Show/"}, {Name: "self", Href: "./"}, dir("Season 1")},
		"/Show/Season 1/": {{Name: "up", Href: "/Show/"}, file("01.mkv")},
	}
	var calls []string

	got, err := Traverse(context.Background(), s.lister(&calls), "https://host/Show/", TraversalConfig{})
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}
	if diff := cmp.Diff([]string{"/Show/", "/Show/Season 1/"}, calls); diff != "" {
		t.Errorf("each directory should be listed once (-want +got)\n%s", diff)
	}
	if len(got) != 1 {
		t.Errorf("Traverse() returned %d entries, want 1", len(got))
	}
}

func TestTraverseDepthGuard(t *testing.T) {
	s := site{
		"/a/":     {dir("b")},
		"/a/b/":   {dir("c"), file("x.mkv")},
		"/a/b/c/": {file("y.mkv")},
	}
	var calls []string

	got, err := Traverse(context.Background(), s.lister(&calls), "https://host/a/", TraversalConfig{MaxDepth: 1})
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}
	if diff := cmp.Diff([]string{"https://host/a/b/x.mkv"}, urls(got)); diff != "" {
		t.Errorf("entries mismatch (-want +got)\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/a/", "/a/b/"}, calls); diff != "" {
		t.Errorf("listed paths mismatch (-want +got)\n%s", diff)
	}
}

func TestTraverseFetchErrorDiscardsEntries(t *testing.T) {
	s := site{
		"/Show/":          {dir("Season 1"), dir("Season 2")},
		"/Show/Season 1/": {file("01.mkv"), file("02.mkv")},
		// Season 2 is missing and fails to list.
	}

	got, err := ListEpisodes(context.Background(), s.lister(nil), "https://host/Show/", TraversalConfig{})
	if err == nil {
		t.Fatal("ListEpisodes() expected an error")
	}
	if got != nil {
		t.Errorf("ListEpisodes() returned %d entries alongside an error", len(got))
	}
	var fetchErr *listing.FetchError
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != 404 {
		t.Errorf("error = %v, want the lister's FetchError", err)
	}
}

func TestTraverseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lister := listing.ListerFunc(func(ctx context.Context, location string) ([]listing.Row, error) {
		cancel()
		return []listing.Row{file("01.mkv"), dir("Season 1")}, nil
	})

	got, err := Traverse(ctx, lister, "https://host/Show/", TraversalConfig{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Traverse() error = %v, want context.Canceled", err)
	}
	if got != nil {
		t.Errorf("Traverse() returned entries after cancellation: %v", got)
	}
}

func TestTraverseNoRoot(t *testing.T) {
	_, err := Traverse(context.Background(), site{}.lister(nil), "  ", TraversalConfig{})
	if !errors.Is(err, ErrNoRoot) {
		t.Errorf("Traverse() error = %v, want ErrNoRoot", err)
	}
}

func TestTraverseReportsProgress(t *testing.T) {
	s := site{
		"/Show/":          {file("00.mkv"), dir("Season 1")},
		"/Show/Season 1/": {file("01.mkv")},
	}
	var visits []Progress

	_, err := Traverse(context.Background(), s.lister(nil), "https://host/Show/", TraversalConfig{
		OnVisit: func(p Progress) { visits = append(visits, p) },
	})
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}

	want := []Progress{
		{Location: "https://host/Show/", Directories: 1, Entries: 0, RootRows: 2, RootRowsStarted: 0},
		{Location: "https://host/Show/Season%201/", Directories: 2, Entries: 1, RootRows: 2, RootRowsStarted: 2},
	}
	if diff := cmp.Diff(want, visits); diff != "" {
		t.Errorf("progress mismatch (-want +got)\n%s", diff)
	}
}

func TestFinalize(t *testing.T) {
	discovered := []Entry{{Title: "c"}, {Title: "b"}, {Title: "a"}}

	got := Finalize(discovered)

	want := []Entry{{Title: "a", Ordinal: 3}, {Title: "b", Ordinal: 2}, {Title: "c", Ordinal: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Finalize() mismatch (-want +got)\n%s", diff)
	}
	for _, e := range discovered {
		if e.Ordinal != 0 {
			t.Errorf("Finalize() mutated its input: %+v", discovered)
			break
		}
	}
	if out := Finalize(nil); len(out) != 0 {
		t.Errorf("Finalize(nil) = %v, want empty", out)
	}
}
