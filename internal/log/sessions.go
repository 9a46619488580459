package log

import (
	"fmt"
	"time"
)

// SessionSummary is one past session prepared for display.
type SessionSummary struct {
	Session      *LogSession
	RelativeTime string
	Icon         string
}

// Summaries returns the newest sessions, up to limit (0 for all), ready for
// the sessions listing.
func Summaries(limit int) ([]SessionSummary, error) {
	sessions, err := ReadSessions(limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, SessionSummary{
			Session:      session,
			RelativeTime: formatRelativeTime(session.Metadata.Timestamp),
			Icon:         commandIcon(session.Metadata.CommandArgs),
		})
	}
	return summaries, nil
}

func formatRelativeTime(t time.Time) string {
	duration := time.Since(t)
	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		return fmt.Sprintf("%d minute%s ago", mins, plural(mins))
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func commandIcon(args []string) string {
	if len(args) == 0 {
		return "❓"
	}

	switch args[0] {
	case "series":
		return "📺"
	case "search":
		return "🔎"
	case "episodes":
		return "🎬"
	case "videos":
		return "🎥"
	default:
		return "📝"
	}
}
