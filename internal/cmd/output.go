package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Digital-Shane/title-crawl/internal/catalog"
	"github.com/Digital-Shane/title-crawl/internal/log"
	"github.com/Digital-Shane/title-crawl/internal/provider"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
)

// Column widths used when results are rendered as tables.
const (
	titleWidth   = 60
	captionWidth = 48
	urlWidth     = 72
)

// format selects how results are written.
type format int

const (
	formatTable format = iota
	formatPlain
	formatJSON
)

func outputFormat() format {
	switch {
	case jsonOut:
		return formatJSON
	case plainOut:
		return formatPlain
	default:
		return formatTable
	}
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// truncate shortens s to width terminal cells.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSeries(w io.Writer, f format, series []provider.Series) error {
	switch f {
	case formatJSON:
		return writeJSON(w, series)
	case formatPlain:
		for _, s := range series {
			fmt.Fprintf(w, "%s\t%s\n", s.Title, s.URL)
		}
		return nil
	}

	if len(series) == 0 {
		fmt.Fprintln(w, "No series found.")
		return nil
	}
	rows := make([][]string, 0, len(series))
	for _, s := range series {
		rows = append(rows, []string{truncate(s.Title, titleWidth), truncate(s.URL, urlWidth)})
	}
	fmt.Fprintln(w, renderTable([]string{"Title", "URL"}, rows, nil))
	return nil
}

func printEpisodes(w io.Writer, f format, entries []catalog.Entry) error {
	switch f {
	case formatJSON:
		return writeJSON(w, entries)
	case formatPlain:
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Ordinal, e.Title, e.Caption(), e.URL)
		}
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No episodes found.")
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Ordinal),
			truncate(e.Title, titleWidth),
			truncate(e.Caption(), captionWidth),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"#", "Title", "Details"}, rows, []columnAlignment{alignRight}))
	return nil
}

func printVideos(w io.Writer, f format, videos []provider.Video) error {
	switch f {
	case formatJSON:
		return writeJSON(w, videos)
	case formatPlain:
		for _, v := range videos {
			fmt.Fprintf(w, "%s\t%s\n", v.Quality, v.URL)
		}
		return nil
	}

	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []string{v.Quality, v.URL})
	}
	fmt.Fprintln(w, renderTable([]string{"Quality", "URL"}, rows, nil))
	return nil
}

func printSessions(w io.Writer, f format, summaries []log.SessionSummary) error {
	if f == formatJSON {
		sessions := make([]log.SessionMetadata, 0, len(summaries))
		for _, s := range summaries {
			sessions = append(sessions, s.Session.Metadata)
		}
		return writeJSON(w, sessions)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No crawl sessions found.")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		meta := s.Session.Metadata
		command := ""
		if len(meta.CommandArgs) > 0 {
			command = truncate(strings.Join(meta.CommandArgs, " "), titleWidth)
		}
		if f == formatPlain {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", meta.SessionID, s.RelativeTime, meta.Fetches, meta.Entries, meta.FailedOps)
			continue
		}
		rows = append(rows, []string{
			s.Icon + " " + command,
			s.RelativeTime,
			strconv.Itoa(meta.Fetches),
			strconv.Itoa(meta.Entries),
			strconv.Itoa(meta.FailedOps),
		})
	}
	if f == formatPlain {
		return nil
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Command", "When", "Fetches", "Entries", "Failed"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
	return nil
}
