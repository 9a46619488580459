package theme

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Icons selects the glyph set drawn next to crawl statistics.
type Icons string

const (
	IconsAuto  Icons = "auto"
	IconsEmoji Icons = "emoji"
	IconsASCII Icons = "ascii"
)

// ParseIcons validates an icons setting. An empty value means IconsAuto.
func ParseIcons(s string) (Icons, error) {
	switch mode := Icons(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return IconsAuto, nil
	case IconsAuto, IconsEmoji, IconsASCII:
		return mode, nil
	default:
		return "", fmt.Errorf("icons must be one of auto, emoji, ascii; got %q", s)
	}
}

// Palette is the set of colors the crawl screen is drawn with.
type Palette struct {
	Header  lipgloss.Color
	Status  lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Failure lipgloss.Color
}

// Badge picks the color of a status badge.
type Badge int

const (
	BadgeRunning Badge = iota
	BadgeDone
	BadgeFailed
)

// Theme holds the palette and glyphs of the crawl screen.
type Theme struct {
	palette Palette
	glyphs  map[string]string
}

// Option configures a Theme built by New.
type Option func(*Theme)

// WithIcons picks the glyph set. IconsAuto falls back to ASCII over SSH and
// on Windows consoles.
func WithIcons(mode Icons) Option {
	return func(t *Theme) {
		switch mode {
		case IconsASCII:
			t.glyphs = asciiGlyphs
		case IconsEmoji:
			t.glyphs = emojiGlyphs
		default:
			t.glyphs = autoGlyphs()
		}
	}
}

// New returns the default theme with opts applied.
func New(opts ...Option) Theme {
	t := Theme{
		palette: Palette{
			Header:  lipgloss.Color("#2f4f7f"),
			Status:  lipgloss.Color("#4a6fa5"),
			Accent:  lipgloss.Color("#7fb3e0"),
			Text:    lipgloss.Color("#f8f8f8"),
			Muted:   lipgloss.Color("#9ba8c0"),
			Success: lipgloss.Color("#5dc796"),
			Failure: lipgloss.Color("#f04c56"),
		},
		glyphs: autoGlyphs(),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Default returns New with no options.
func Default() Theme {
	return New()
}

// Palette returns the theme colors.
func (t Theme) Palette() Palette {
	return t.palette
}

// Icon returns the glyph for name, or "" when the set has none.
func (t Theme) Icon(name string) string {
	return t.glyphs[name]
}

func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Background(t.palette.Header).
		Foreground(t.palette.Text).
		Align(lipgloss.Center)
}

func (t Theme) StatusBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.palette.Status).
		Foreground(t.palette.Text).
		Padding(0, 1)
}

func (t Theme) PanelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.palette.Accent).
		Padding(1)
}

// CaptionStyle renders the location currently being listed.
func (t Theme) CaptionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.palette.Muted).
		Italic(true)
}

func (t Theme) BadgeStyle(b Badge) lipgloss.Style {
	bg := t.palette.Accent
	switch b {
	case BadgeDone:
		bg = t.palette.Success
	case BadgeFailed:
		bg = t.palette.Failure
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Background(bg).
		Foreground(t.palette.Text)
}

// ProgressGradient returns the start and end colors of the progress bar.
func (t Theme) ProgressGradient() (string, string) {
	return string(t.palette.Header), string(t.palette.Accent)
}

func autoGlyphs() map[string]string {
	if limitedTerminal() {
		return asciiGlyphs
	}
	return emojiGlyphs
}

func limitedTerminal() bool {
	for _, key := range []string{"SSH_CLIENT", "SSH_TTY", "SSH_CONNECTION"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return runtime.GOOS == "windows"
}

// Glyph tables are shared between themes and never written.
var emojiGlyphs = map[string]string{
	"folder":  "📁",
	"episode": "🎬",
	"stats":   "📊",
}

var asciiGlyphs = map[string]string{
	"folder":  "[D]",
	"episode": "[E]",
	"stats":   "[#]",
}
