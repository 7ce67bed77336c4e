package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/wecare/internal/session"
)

type SignOutModel struct {
	sess   *session.Session
	cursor int
}

func NewSignOutModel(sess *session.Session) *SignOutModel {
	return &SignOutModel{sess: sess}
}

func (m *SignOutModel) Init() tea.Cmd {
	return nil
}

func (m *SignOutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "right", "tab", "h", "l":
			m.cursor = 1 - m.cursor
		case "y":
			m.sess.Logout()
			return m, closeOverlay
		case "n", "esc":
			return m, closeOverlay
		case "enter":
			if m.cursor == 1 {
				m.sess.Logout()
			}
			return m, closeOverlay
		}
	}
	return m, nil
}

func (m *SignOutModel) View() string {
	var b strings.Builder

	b.WriteString(heading("🚪 Do you want to log out?", ""))
	b.WriteString("\n\n")

	cancel, confirm := ButtonStyle.Render("Cancel"), ButtonStyle.Render("Confirm")
	if m.cursor == 0 {
		cancel = ButtonFocusedStyle.Render("Cancel")
	} else {
		confirm = ButtonFocusedStyle.Background(Error).Render("Confirm")
	}
	b.WriteString(center(cancel + confirm))
	b.WriteString("\n\n")
	b.WriteString(center(InfoStyle.Render("←/→ choose  •  enter select  •  y confirm  •  n cancel")))

	return DialogStyle.Render(b.String())
}
