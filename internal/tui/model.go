package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"podtopics/internal/assemble"
	"podtopics/internal/domain"
)

// Model is the Bubble Tea model for browsing a segmented episode.
type Model struct {
	output   domain.IndexedOutput
	viewport viewport.Model
	cursor   int
	ready    bool
	status   string
}

// New creates a topic browser over the given output.
func New(output domain.IndexedOutput) Model {
	vp := viewport.New(0, 0)
	return Model{
		output:   output,
		viewport: vp,
		status:   fmt.Sprintf("%d topics. Up/down to browse, q to quit.", len(output.Topics)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := detailBoxStyle.GetFrameSize()
		reserved := listHeight(len(m.output.Topics)) + 3 // header + spacer + status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-fh)
		m.viewport.SetContent(m.renderDetail())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "down", "j":
			if len(m.output.Topics) > 0 {
				m.cursor = (m.cursor + 1) % len(m.output.Topics)
				m.viewport.SetContent(m.renderDetail())
			}
			return m, nil
		case "up", "k":
			if len(m.output.Topics) > 0 {
				m.cursor = (m.cursor - 1 + len(m.output.Topics)) % len(m.output.Topics)
				m.viewport.SetContent(m.renderDetail())
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the topic list above the detail pane.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Topics: " + m.output.AudioFile)
	list := m.renderList()
	detail := detailBoxStyle.Render(m.viewport.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + list + "\n" + detail + "\n" + status
}

// renderList shows a window of at most listHeight rows around the cursor so
// long episodes never push the detail pane off-screen.
func (m Model) renderList() string {
	h := listHeight(len(m.output.Topics))
	start := 0
	if m.cursor >= h {
		start = m.cursor - h + 1
	}
	var b strings.Builder
	for i := start; i < start+h && i < len(m.output.Topics); i++ {
		t := m.output.Topics[i]
		line := fmt.Sprintf("%s  %-30s  %6.1fs  %s",
			assemble.TopicTag(i), clip(t.Title, 30), t.Duration(), sentimentGlyph(t.Sentiment))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderDetail() string {
	if len(m.output.Topics) == 0 {
		return "No topics."
	}
	t := m.output.Topics[m.cursor]
	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%.1fs - %.1fs]\n\n", t.Title, t.Start, t.End)
	b.WriteString(t.Summary + "\n\n")
	if len(t.Keywords) > 0 {
		b.WriteString("Keywords: " + strings.Join(t.Keywords, ", ") + "\n")
	}
	fmt.Fprintf(&b, "Sentiment: %s (%.2f)\n", t.Sentiment, t.SentimentScore)
	if t.BoundaryConfidence != nil {
		fmt.Fprintf(&b, "Boundary confidence: %.2f\n", *t.BoundaryConfidence)
	}
	b.WriteString("\n")
	for _, seg := range t.Segments {
		fmt.Fprintf(&b, "[%7.1fs] %s\n", seg.Start, seg.Translation)
	}
	return b.String()
}

func sentimentGlyph(s domain.Sentiment) string {
	switch s {
	case domain.SentimentPositive:
		return positiveStyle.Render("+")
	case domain.SentimentNegative:
		return negativeStyle.Render("-")
	default:
		return "·"
	}
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func listHeight(topics int) int {
	if topics > 10 {
		return 10
	}
	return topics
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	detailBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	positiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	negativeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
