package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// returns a new agent picker over the loaded catalog
func NewPicker(bots []BotData) *PickerModel {
	return &PickerModel{bots: bots}
}

// reports the agent under the cursor
func (m *PickerModel) Selected() (BotData, bool) {
	if len(m.bots) == 0 {
		return BotData{}, false
	}
	return m.bots[m.cursor], true
}

func (m *PickerModel) Update(msg tea.Msg) (*PickerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.bots)-1 {
				m.cursor++
			}
		}
	}

	return m, nil
}

func (m *PickerModel) View(user *UserData) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")

	if user != nil {
		b.WriteString(infoStyle.Render(fmt.Sprintf("signed in as %s", user.Email)))
		b.WriteString("\n\n")
	}

	b.WriteString(labelStyle.Render("agents:"))
	b.WriteString("\n\n")

	if len(m.bots) == 0 {
		b.WriteString(infoStyle.Render("  the catalog is empty"))
		b.WriteString("\n")
	}

	for i, bot := range m.bots {
		line := fmt.Sprintf("%s  %s", bot.Name, infoStyle.Render(bot.Description))

		if i == m.cursor {
			b.WriteString(menuItemSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(menuItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ to choose, enter to open notes, ctrl+c to quit."))

	return b.String()
}
