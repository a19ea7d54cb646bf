package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// returns a new login screen
func NewLogin() *LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "> "
	email.Focus()
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "> "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorLightGray)

	return &LoginModel{
		email:    email,
		password: password,
		spinner:  sp,
	}
}

func (m *LoginModel) Update(msg tea.Msg, client *Client) (*LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focused = (m.focused + 1) % 2
			if m.focused == 0 {
				m.email.Focus()
				m.password.Blur()
			} else {
				m.email.Blur()
				m.password.Focus()
			}
			return m, nil

		case "enter":
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()

			if email == "" || password == "" {
				m.message = "enter your email and password"
				return m, nil
			}

			m.busy = true
			m.message = ""
			return m, tea.Batch(m.spinner.Tick, client.SignInCmd(email, password))
		}

	case AuthFailedMsg:
		m.busy = false
		m.message = msg.message
		m.password.SetValue("")
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)

	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("your agents, your notes"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("sign in"))
	b.WriteString("\n\n")

	b.WriteString("  " + m.email.View())
	b.WriteString("\n")
	b.WriteString("  " + m.password.View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString("  " + m.spinner.View() + infoStyle.Render(" signing in..."))
		b.WriteString("\n")
	} else if m.message != "" {
		b.WriteString("  " + errorStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab to switch fields, enter to sign in, ctrl+c to quit."))

	return b.String()
}
