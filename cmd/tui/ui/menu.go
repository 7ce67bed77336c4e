package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/wecare/internal/router"
)

type menuItem struct {
	label  string
	action tea.Cmd
}

// MenuModel is the header navigation opened with ctrl+n.
type MenuModel struct {
	cursor int
	items  []menuItem
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{label: "🏠 Home", action: navigateTo(router.PathHome)},
			{label: "📅 Book Appointment", action: navigateTo(router.PathBookAppointment)},
			{label: "📋 Your Appointments", action: navigateTo(router.PathAppointments)},
			{label: "👤 Profile", action: openOverlay(overlayProfile)},
			{label: "🚪 Sign out", action: openOverlay(overlaySignOut)},
		},
	}
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			return m, m.items[m.cursor].action
		case "esc", "ctrl+n", "q":
			return m, closeOverlay
		}
	}
	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("WeCare") + " " + SubtitleStyle.Render("Menu")
	b.WriteString(lipgloss.NewStyle().
		Width(pageWidth).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n\n")

	var menuItems []string
	for i, item := range m.items {
		cursor := "  "
		style := ItemStyle

		if i == m.cursor {
			cursor = "> "
			style = SelectedItemStyle
		}

		menuItems = append(menuItems, style.Render(cursor+item.label))
	}

	menu := lipgloss.JoinVertical(lipgloss.Left, menuItems...)
	b.WriteString(center(BoxStyle.Width(50).Render(menu)))
	b.WriteString("\n\n")

	b.WriteString(center(InfoStyle.Render("↑/↓ navigate  •  enter select  •  esc close")))

	return lipgloss.NewStyle().
		Width(pageWidth).
		Height(18).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
