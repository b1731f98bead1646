// Package tui はbubbleteaによる端末版フロントエンドです。
// 検索コントローラへキー入力を渡し、候補リストとチャートの要約を表示します。
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chartusecase "stbr_web/internal/feature/chart/usecase"
	"stbr_web/internal/feature/search/domain/entity"
	"stbr_web/internal/shared/asset"
	"stbr_web/internal/shared/plot"
	"stbr_web/internal/shared/status"
)

// chartTimeout bounds a single chart request from the terminal.
const chartTimeout = 30 * time.Second

// SearchController is the part of the search controller the model drives.
type SearchController interface {
	Input(keywords string, class asset.Class)
	Clear()
	Select(m entity.Match) string
	Close()
}

// ChartLoader loads the chart for a symbol.
type ChartLoader interface {
	Load(ctx context.Context, symbol string, class asset.Class) (*plot.Figure, error)
}

type chartMsg struct {
	symbol string
	fig    *plot.Figure
	err    error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	classStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	levelStyles = map[status.Level]lipgloss.Style{
		status.Info:    lipgloss.NewStyle(),
		status.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		status.Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		status.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// Model is the bubbletea model of the terminal front end.
type Model struct {
	ctrl   SearchController
	charts ChartLoader

	input   textinput.Model
	class   asset.Class
	matches []entity.Match
	cursor  int
	lastSeq uint64

	status  status.Status
	chart   *plot.Figure
	pending string // 表示待ちのチャート銘柄
}

// NewModel creates the model. class is the initially selected asset class.
func NewModel(ctrl SearchController, charts ChartLoader, class asset.Class) Model {
	ti := textinput.New()
	ti.Placeholder = "Symbol (e.g., BTC, AAPL)"
	ti.CharLimit = 32
	ti.Focus()

	return Model{ctrl: ctrl, charts: charts, input: ti, class: class}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case suggestionsMsg:
		// 後から届いた古いリストは捨てる
		if msg.seq <= m.lastSeq {
			return m, nil
		}
		m.lastSeq = msg.seq
		m.matches = msg.matches
		if m.cursor >= len(m.matches) {
			m.cursor = 0
		}
		return m, nil

	case chartMsg:
		if msg.symbol != m.pending {
			return m, nil
		}
		m.status = chartusecase.StatusOf(msg.err)
		m.chart = msg.fig
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.ctrl.Close()
		return m, tea.Quit

	case tea.KeyTab:
		m.class = m.class.Next()
		m.input.SetValue("")
		m.ctrl.Clear()
		return m, nil

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
		return m, nil

	case tea.KeyEnter:
		symbol := m.input.Value()
		if m.cursor < len(m.matches) {
			symbol = m.ctrl.Select(m.matches[m.cursor])
		} else {
			m.ctrl.Clear()
		}
		m.input.SetValue(symbol)
		m.matches = nil
		m.cursor = 0
		m.chart = nil
		m.pending = symbol
		m.status = status.Status{Text: fmt.Sprintf("Fetching data for %s...", strings.TrimSpace(symbol)), Level: status.Info}
		return m, m.loadChart(symbol, m.class)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.cursor = 0
		m.ctrl.Input(after, m.class)
	}
	return m, cmd
}

func (m Model) loadChart(symbol string, class asset.Class) tea.Cmd {
	charts := m.charts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chartTimeout)
		defer cancel()
		fig, err := charts.Load(ctx, symbol, class)
		return chartMsg{symbol: symbol, fig: fig, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Short-Term Bubble Risk"))
	b.WriteString("  ")
	b.WriteString(classStyle.Render("[" + m.class.String() + "]"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	for i, match := range m.matches {
		line := match.Symbol
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		if match.Name != "" {
			line += " " + nameStyle.Render(match.Name)
		}
		b.WriteString("  " + line + "\n")
	}

	if m.status.Text != "" {
		b.WriteString("\n")
		b.WriteString(levelStyles[m.status.Level].Render(m.status.Text))
		b.WriteString("\n")
	}
	if m.chart != nil {
		title := m.chart.Title()
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&b, "%s: %d trace(s)\n", title, m.chart.TraceCount())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: asset class  ↑/↓: move  enter: select & chart  esc: quit"))
	b.WriteString("\n")
	return b.String()
}
