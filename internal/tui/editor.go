package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	// how long the keyboard must be quiet before an auto-save fires
	saveDebounce = 2 * time.Second

	// how often the debounce clock is checked
	saveTickInterval = 500 * time.Millisecond
)

// returns a notes editor for the agent, primed with the saved note
func NewEditor(bot BotData, note *NoteData) *EditorModel {
	ta := textarea.New()
	ta.Placeholder = "markdown notes for this agent..."
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(16)
	ta.Focus()

	if note != nil {
		ta.SetValue(note.Content)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorLightGray)

	return &EditorModel{
		bot:      bot,
		textarea: ta,
		spinner:  sp,
	}
}

func (m *EditorModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.tick())
}

func (m *EditorModel) tick() tea.Cmd {
	return tea.Tick(saveTickInterval, func(t time.Time) tea.Msg {
		return saveTickMsg(t)
	})
}

func (m *EditorModel) Update(msg tea.Msg, client *Client) (*EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+p":
			m.preview = !m.preview
			if m.preview {
				m.previewText = m.renderPreview()
			}
			return m, nil

		case "ctrl+o":
			if strings.TrimSpace(m.textarea.Value()) == "" {
				m.status = "nothing to share yet"
				return m, nil
			}

			// flush the current text first so the snapshot matches the screen
			m.dirty = false
			m.saving = true
			return m, tea.Batch(
				m.spinner.Tick,
				tea.Sequence(
					client.SaveNoteCmd(m.bot.ID, m.textarea.Value()),
					client.ShareNoteCmd(m.bot.ID),
				),
			)
		}

		if !m.preview {
			before := m.textarea.Value()
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)

			if m.textarea.Value() != before {
				m.dirty = true
				m.lastEdit = time.Now()
				m.shareID = ""
				m.status = ""
			}

			return m, cmd
		}

		return m, nil

	case saveTickMsg:
		if m.dirty && !m.saving && time.Since(m.lastEdit) >= saveDebounce {
			m.dirty = false
			m.saving = true
			return m, tea.Batch(
				m.spinner.Tick,
				m.tick(),
				client.SaveNoteCmd(m.bot.ID, m.textarea.Value()),
			)
		}

		return m, m.tick()

	case NoteSavedMsg:
		m.saving = false
		if msg.note != nil {
			m.lastSaved = msg.note.UpdatedAt
		} else {
			m.lastSaved = time.Now()
		}
		return m, nil

	case NoteSharedMsg:
		m.saving = false
		m.shareID = msg.noteID
		return m, nil

	case spinner.TickMsg:
		if !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(msg.Width - 6)
		m.textarea.SetHeight(max(8, msg.Height-10))

		// rebuild the renderer at the new width
		m.glamourRenderer = nil
		if m.preview {
			m.previewText = m.renderPreview()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *EditorModel) View() string {
	var b strings.Builder

	header := labelStyle.Render(m.bot.Name)
	help := helpStyle.Render("[Ctrl+P: Preview] [Ctrl+O: Share] [Esc: Back] [Ctrl+C: Quit]")

	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(help)
	b.WriteString("\n\n")

	if m.preview {
		b.WriteString(borderStyle.Width(max(20, m.width-4)).Render(m.previewText))
	} else {
		b.WriteString(m.textarea.View())
	}
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	return b.String()
}

func (m *EditorModel) statusLine() string {
	switch {
	case m.saving:
		return m.spinner.View() + infoStyle.Render(" saving...")

	case m.shareID != "":
		return savedStyle.Render("shared: ") + infoStyle.Render(m.shareID)

	case m.status != "":
		return infoStyle.Render(m.status)

	case m.dirty:
		return infoStyle.Render("editing...")

	case !m.lastSaved.IsZero():
		return savedStyle.Render(fmt.Sprintf("saved %s", m.lastSaved.Format("15:04:05")))

	default:
		return ""
	}
}

func (m *EditorModel) renderPreview() string {
	content := m.textarea.Value()
	if strings.TrimSpace(content) == "" {
		return infoStyle.Render("nothing to preview")
	}

	if m.glamourRenderer == nil {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(max(40, m.width-8)),
		)
		if err != nil {
			return content
		}
		m.glamourRenderer = renderer
	}

	rendered, err := m.glamourRenderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
