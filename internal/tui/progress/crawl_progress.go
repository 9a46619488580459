package progress

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Digital-Shane/title-crawl/internal/catalog"
	"github.com/Digital-Shane/title-crawl/internal/tui/theme"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// CrawlFunc builds one episode catalog, reporting every listed directory to
// onVisit.
type CrawlFunc func(ctx context.Context, onVisit func(catalog.Progress)) ([]catalog.Entry, error)

// CrawlProgressModel is a full-screen Bubble Tea model shown while a series
// folder is crawled. Once it quits the caller reads Entries and Err.
type CrawlProgressModel struct {
	// config
	title string
	crawl CrawlFunc

	// crawl progress
	latest catalog.Progress
	done   bool

	// layout
	width  int
	height int

	// result
	entries []catalog.Entry
	err     error

	// components
	progress progress.Model
	spinner  spinner.Model
	msgCh    chan tea.Msg
	ctx      context.Context
	cancel   context.CancelFunc

	theme theme.Theme
}

// crawlProgressMsg carries one directory visit.
type crawlProgressMsg catalog.Progress

// crawlCompleteMsg carries the crawl result.
type crawlCompleteMsg struct {
	entries []catalog.Entry
	err     error
}

// NewCrawlProgressModel creates a model that runs crawl once started. ctx
// bounds the crawl; quitting the screen cancels it.
func NewCrawlProgressModel(ctx context.Context, title string, crawl CrawlFunc, th theme.Theme) *CrawlProgressModel {
	p := progress.New(progress.WithGradient(th.ProgressGradient()))
	p.Width = 50

	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(th.Palette().Accent)

	ctx, cancel := context.WithCancel(ctx)
	return &CrawlProgressModel{
		title:    title,
		crawl:    crawl,
		width:    80,
		height:   12,
		progress: p,
		spinner:  s,
		msgCh:    make(chan tea.Msg, 64),
		ctx:      ctx,
		cancel:   cancel,
		theme:    th,
	}
}

// Init kicks off the asynchronous crawl.
func (m *CrawlProgressModel) Init() tea.Cmd {
	go m.crawlAsync()
	return tea.Batch(m.waitForMsg(), m.spinner.Tick)
}

func (m *CrawlProgressModel) waitForMsg() tea.Cmd { return func() tea.Msg { return <-m.msgCh } }

func (m *CrawlProgressModel) crawlAsync() {
	entries, err := m.crawl(m.ctx, func(p catalog.Progress) {
		select {
		case m.msgCh <- crawlProgressMsg(p):
		default:
		}
	})
	select {
	case m.msgCh <- crawlCompleteMsg{entries: entries, err: err}:
	case <-m.ctx.Done():
	}
}

// Update processes Bubble Tea messages.
func (m *CrawlProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progress.Width = max(msg.Width-4, 10)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			m.cancel()
			m.err = context.Canceled
			m.done = true
			return m, tea.Quit
		}
	case crawlProgressMsg:
		m.latest = catalog.Progress(msg)
		cmd := m.progress.SetPercent(m.ratio())
		// Always continue waiting so we can receive crawlCompleteMsg.
		return m, tea.Batch(cmd, m.waitForMsg())
	case crawlCompleteMsg:
		m.entries, m.err = msg.entries, msg.err
		m.done = true
		m.cancel()
		if m.err == nil {
			m.latest.Entries = len(m.entries)
			m.latest.RootRowsStarted = m.latest.RootRows
		}
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// ratio estimates completion from how far the walk is through the root listing.
func (m *CrawlProgressModel) ratio() float64 {
	if m.latest.RootRows == 0 {
		return 0
	}
	return math.Min(float64(m.latest.RootRowsStarted)/float64(m.latest.RootRows), 1)
}

// View renders the progress UI.
func (m *CrawlProgressModel) View() string {
	if m.err != nil {
		return m.theme.BadgeStyle(theme.BadgeFailed).Render("FAILED") + fmt.Sprintf(" Error: %v\n", m.err)
	}

	location := m.latest.Location
	if location == "" {
		location = "connecting..."
	}
	location = runewidth.Truncate(location, max(m.width-14, 10), "...")

	statsLines := []string{
		fmt.Sprintf("%s Directories listed: %d", m.theme.Icon("folder"), m.latest.Directories),
		fmt.Sprintf("%s Episodes found: %d", m.theme.Icon("episode"), m.latest.Entries),
		fmt.Sprintf("%s Top-level folders: %d/%d", m.theme.Icon("stats"), m.latest.RootRowsStarted, m.latest.RootRows),
	}

	sections := []string{
		m.theme.HeaderStyle().Width(m.width).Render("Crawling " + m.title),
		m.progress.View(),
		m.spinner.View() + " Listing " + m.theme.CaptionStyle().Render(location),
	}

	panel := m.theme.PanelStyle()
	panelWidth := max(m.width-panel.GetHorizontalFrameSize(), 0)
	sections = append(sections, panel.Width(panelWidth).Render(strings.Join(statsLines, "\n")))

	badge := m.theme.BadgeStyle(theme.BadgeRunning).Render("CRAWLING")
	status := "press esc to cancel"
	if m.done {
		badge = m.theme.BadgeStyle(theme.BadgeDone).Render("DONE")
		status = fmt.Sprintf("%d episodes", len(m.entries))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		badge,
		m.theme.StatusBarStyle().Width(max(m.width-lipgloss.Width(badge), 0)).Render(status),
	))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Entries returns the crawled catalog.
func (m *CrawlProgressModel) Entries() []catalog.Entry { return m.entries }

// Err returns the crawl error, context.Canceled if the user quit early.
func (m *CrawlProgressModel) Err() error { return m.err }
