package ui

import (
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/router"
	"github.com/Varun5711/wecare/internal/session"
)

const specialityColumns = 3

// HomeModel is the landing page: hero, stats and the speciality catalogue.
type HomeModel struct {
	sess   *session.Session
	cursor int
}

func NewHomeModel(sess *session.Session) *HomeModel {
	return &HomeModel{sess: sess}
}

func (m *HomeModel) Init() tea.Cmd {
	return nil
}

func (m *HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(models.Specialities)
		switch msg.String() {
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "up", "k":
			if m.cursor-specialityColumns >= 0 {
				m.cursor -= specialityColumns
			}
		case "down", "j":
			if m.cursor+specialityColumns < n {
				m.cursor += specialityColumns
			}
		case "b":
			return m, navigateTo(router.PathBookAppointment)
		case "enter":
			s := models.Specialities[m.cursor]
			return m, navigate(router.Location{
				Path:  router.PathBookAppointment,
				Query: url.Values{"speciality": {s.Value}},
			})
		case "a":
			return m, navigateTo(router.PathAppointments)
		case "L":
			if !m.sess.Snapshot().Authenticated() {
				return m, navigateTo(router.PathLogin)
			}
		case "R":
			if !m.sess.Snapshot().Authenticated() {
				return m, navigateTo(router.PathRegister)
			}
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *HomeModel) View() string {
	var b strings.Builder

	b.WriteString(headerView(m.sess.Snapshot()))
	b.WriteString("\n\n")

	badge := lipgloss.NewStyle().Foreground(Primary).Background(BgLight).Padding(0, 1).Render("✚ Trusted Healthcare Provider")
	title := lipgloss.NewStyle().Foreground(Text).Bold(true).Render("Book Your ") +
		lipgloss.NewStyle().Foreground(Primary).Bold(true).Render("Medical Appointment")
	intro := lipgloss.NewStyle().Foreground(Muted).Width(60).Align(lipgloss.Center).
		Render("Experience world-class healthcare with our expert specialists. Schedule your appointment online in just a few clicks.")

	b.WriteString(center(badge) + "\n\n")
	b.WriteString(center(title) + "\n\n")
	b.WriteString(center(intro) + "\n\n")
	b.WriteString(center(ButtonFocusedStyle.Render("Book Appointment ➜") + InfoStyle.Render(" b")))
	b.WriteString("\n\n")

	stats := []struct{ value, label string }{
		{"50K+", "Happy Patients"},
		{"100+", "Expert Doctors"},
		{"24/7", "Emergency Care"},
	}
	cols := make([]string, 0, len(stats))
	for _, s := range stats {
		cols = append(cols, lipgloss.NewStyle().Width(20).Align(lipgloss.Center).
			Render(StatsStyle.UnsetPaddingRight().Render(s.value)+"\n"+InfoStyle.Render(s.label)))
	}
	b.WriteString(center(lipgloss.JoinHorizontal(lipgloss.Top, cols...)))
	b.WriteString("\n\n")

	b.WriteString(center(TitleStyle.Render("Our Medical Specialities")))
	b.WriteString("\n")
	b.WriteString(m.specialities())
	b.WriteString("\n")

	selected := models.Specialities[m.cursor]
	desc := lipgloss.NewStyle().Foreground(Text).Width(64).Align(lipgloss.Center).Render(selected.Description)
	b.WriteString(center(desc))
	b.WriteString("\n\n")

	b.WriteString(center(InfoStyle.Render("←/→/↑/↓ browse  •  enter book speciality  •  b book  •  a appointments  •  q quit")))
	b.WriteString("\n\n")
	b.WriteString(footerView())

	return b.String()
}

func (m *HomeModel) specialities() string {
	var rows []string
	var row []string
	for i, s := range models.Specialities {
		style := ItemStyle
		cursor := "  "
		if i == m.cursor {
			style = SelectedItemStyle
			cursor = "> "
		}
		row = append(row, lipgloss.NewStyle().Width(22).Render(style.Render(cursor+s.Label)))
		if len(row) == specialityColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return center(BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
