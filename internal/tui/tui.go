// Package tui is the terminal client for the agentic API: sign in, pick
// an agent, take notes. Notes auto-save after a short pause in typing.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func NewApp() *Model {
	return &Model{
		state:  StateLogin,
		client: NewClient(),
		login:  NewLogin(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// from the editor, esc returns to the picker
			if m.state == StateEditor {
				m.state = StatePicker
				m.editor = nil
				return m, nil
			}

		case "enter":
			if m.state == StatePicker {
				bot, ok := m.picker.Selected()
				if !ok {
					return m, nil
				}

				m.state = StateLoading
				return m, m.client.GetNoteCmd(bot.ID)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if m.editor != nil {
			m.editor, _ = m.editor.Update(msg, m.client)
		}

	case SignedInMsg:
		m.user = msg.user
		m.state = StateLoading
		return m, m.client.ListBotsCmd()

	case BotsLoadedMsg:
		m.picker = NewPicker(msg.bots)
		m.state = StatePicker
		return m, nil

	case NoteLoadedMsg:
		bot, ok := m.picker.Selected()
		if !ok || bot.ID != msg.botID {
			m.state = StatePicker
			return m, nil
		}

		m.editor = NewEditor(bot, msg.note)
		m.state = StateEditor

		if m.width > 0 {
			m.editor, _ = m.editor.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height}, m.client)
		}

		return m, m.editor.Init()

	case ErrorMsg:
		m.err = msg.err
		return m, nil
	}

	switch m.state {
	case StateLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg, m.client)
		return m, cmd

	case StatePicker:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case StateEditor:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg, m.client)
		return m, cmd

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateLogin:
		return m.login.View()

	case StateLoading:
		return infoStyle.Render("\n  loading...\n")

	case StatePicker:
		return m.picker.View(m.user)

	case StateEditor:
		return m.editor.View()

	default:
		return "Unknown state"
	}
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press Ctrl+C to exit\n", err)
}
