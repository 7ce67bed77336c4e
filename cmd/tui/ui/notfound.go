package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/wecare/internal/router"
)

type NotFoundModel struct{}

func NewNotFoundModel() *NotFoundModel {
	return &NotFoundModel{}
}

func (m *NotFoundModel) Init() tea.Cmd {
	return nil
}

func (m *NotFoundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "h", "enter":
			return m, navigateTo(router.PathHome)
		case "b", "esc":
			return m, goBack
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *NotFoundModel) View() string {
	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(Primary).Bold(true).Render("4 0 4")))
	b.WriteString("\n\n")
	b.WriteString(center(ValueStyle.Render("Oops! Page Not Found")))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(Muted).Width(56).Align(lipgloss.Center).
		Render("The page you're looking for seems to have wandered off into the digital void. Don't worry, it happens to the best of us!")))
	b.WriteString("\n\n")
	b.WriteString(center(ButtonFocusedStyle.Render("🏠 Go Home") + ButtonStyle.Render("← Go Back")))
	b.WriteString("\n\n")
	b.WriteString(center(InfoStyle.Render("h home  •  b back  •  q quit")))

	return lipgloss.NewStyle().
		Width(pageWidth).
		Height(20).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
