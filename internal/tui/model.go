package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ragdebug/internal/domain"
)

// Model is the Bubble Tea model for the diagnostic dashboard. It is a
// pure consumer of an AnalysisResult; no fetching happens here.
type Model struct {
	result   domain.AnalysisResult
	service  string
	viewport viewport.Model
	cursor   int
	ready    bool
}

// New creates a dashboard over a finished analysis.
func New(result domain.AnalysisResult, service string) Model {
	vp := viewport.New(0, 0)
	return Model{result: result, service: service, viewport: vp}
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := chunkBoxStyle.GetFrameSize()
		reserved := 6 // header, status badge, metrics, spacer, footer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentChunk())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "down", "j":
			if len(m.result.RetrievedChunks) > 0 {
				m.cursor = (m.cursor + 1) % len(m.result.RetrievedChunks)
				m.viewport.SetContent(m.renderCurrentChunk())
			}
			return m, nil
		case "up", "k":
			if len(m.result.RetrievedChunks) > 0 {
				m.cursor = (m.cursor - 1 + len(m.result.RetrievedChunks)) % len(m.result.RetrievedChunks)
				m.viewport.SetContent(m.renderCurrentChunk())
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the dashboard layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("RAG Context Debugger") + dimStyle.Render("  "+m.service)
	badge := m.statusBadge()
	metrics := fmt.Sprintf("chunks=%d  avg_relevance=%.3f  diversity=%.3f",
		m.result.Health.ChunkCount,
		m.result.Health.AvgRelevanceScore,
		m.result.Health.SemanticDiversityScore)
	chunks := chunkBoxStyle.Render(m.viewport.View())
	footer := dimStyle.Render("up/down: chunk  q: quit")
	return header + "\n" + badge + "\n" + metrics + "\n" + chunks + "\n" + footer
}

func (m Model) statusBadge() string {
	label := " " + string(m.result.Health.Status) + " "
	var badge string
	switch m.result.Health.Status {
	case domain.StatusHealthy:
		badge = healthyBadgeStyle.Render(label)
	case domain.StatusWarning:
		badge = warningBadgeStyle.Render(label)
	default:
		badge = criticalBadgeStyle.Render(label)
	}
	message := m.result.Health.Message
	if m.result.Err != nil {
		message += "  (" + *m.result.Err + ")"
	}
	return badge + " " + message
}

func (m Model) renderCurrentChunk() string {
	chunks := m.result.RetrievedChunks
	if len(chunks) == 0 {
		body := "No context chunks were retrieved."
		if m.result.GeneratedAnswer != "" {
			body += "\n\nAnswer surface:\n" + m.result.GeneratedAnswer
		}
		return body
	}
	c := chunks[m.cursor]
	title := fmt.Sprintf("Chunk %d/%d  score=%.2f", m.cursor+1, len(chunks), c.Score)
	body := title + "\n\n" + c.Text
	if m.result.GeneratedAnswer != "" {
		body += "\n\n" + dimStyle.Render(fmt.Sprintf("answer (confidence=%.2f): ", m.result.AnswerConfidence)) + m.result.GeneratedAnswer
	}
	return strings.TrimRight(body, "\n")
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	dimStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	chunkBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	healthyBadgeStyle  = lipgloss.NewStyle().Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0")).Bold(true)
	warningBadgeStyle  = lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0")).Bold(true)
	criticalBadgeStyle = lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
