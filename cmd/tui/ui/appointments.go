package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/wecare/internal/api"
	"github.com/Varun5711/wecare/internal/fetch"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/qrcode"
	"github.com/Varun5711/wecare/internal/router"
)

const appointmentsWindow = 4

type appointmentsLoadedMsg struct {
	res fetch.Result[[]models.Appointment]
}

type AppointmentsModel struct {
	appointments *fetch.Resource[[]models.Appointment]
	cursor       int
	qr           string
}

func NewAppointmentsModel(c *api.Client) *AppointmentsModel {
	return &AppointmentsModel{
		appointments: fetch.FromClient[[]models.Appointment](c),
	}
}

func (m *AppointmentsModel) Init() tea.Cmd {
	if t, ok := m.appointments.SetURL(api.PathAppointments); ok {
		return loadAppointmentsCmd(m.appointments, t)
	}
	return nil
}

func loadAppointmentsCmd(r *fetch.Resource[[]models.Appointment], t fetch.Ticket) tea.Cmd {
	return func() tea.Msg {
		return appointmentsLoadedMsg{res: r.Run(t)}
	}
}

func (m *AppointmentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case appointmentsLoadedMsg:
		if m.appointments.Apply(msg.res) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.qr != "" {
			m.qr = ""
			return m, nil
		}

		items := m.appointments.Data()
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case "r":
			if !m.appointments.Loading() {
				if t, ok := m.appointments.Refetch(); ok {
					return m, loadAppointmentsCmd(m.appointments, t)
				}
			}
		case "enter":
			if m.cursor < len(items) {
				if qr, err := qrcode.Booking(items[m.cursor]); err == nil {
					m.qr = qr
				}
			}
		case "b":
			return m, navigateTo(router.PathBookAppointment)
		case "esc":
			return m, goBack
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func appointmentCard(a models.Appointment, selected bool) string {
	border := Primary
	if selected {
		border = Accent
	}

	doctor := lipgloss.JoinHorizontal(lipgloss.Center,
		AvatarStyle.Render(a.Doctor.Initial()), " ",
		ValueStyle.Render(a.Doctor.Name))
	badge := BadgeStyle(a.Status.Variant()).Render(string(a.Status))

	gap := 66 - lipgloss.Width(doctor) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	top := doctor + strings.Repeat(" ", gap) + badge

	speciality := InfoStyle.Render(models.FormatCamelCase(a.Doctor.Speciality))
	when := lipgloss.NewStyle().Foreground(Secondary).
		Render("📅 " + models.FormatDate(a.Date) + "   🕐 " + a.StartTime)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(70).
		Render(lipgloss.JoinVertical(lipgloss.Left, top, speciality, when))
}

func (m *AppointmentsModel) View() string {
	var b strings.Builder

	b.WriteString(heading("📋 Your Appointments", ""))
	b.WriteString("\n\n")

	st := m.appointments.Snapshot()
	switch {
	case m.qr != "":
		b.WriteString(center(InfoStyle.Render("Show this code at the reception")))
		b.WriteString("\n\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(Text).Background(BgDark).Render(m.qr)))
		b.WriteString("\n")
		b.WriteString(center(InfoStyle.Render("any key close")))
		return card(b.String())

	case st.Loading:
		b.WriteString(center(InfoStyle.Render("🔄 Loading appointments...")))
		b.WriteString("\n")

	case st.Err != "":
		b.WriteString(center(ErrorStyle.Render("❌ " + st.Err)))
		b.WriteString("\n")

	case len(st.Data) == 0:
		b.WriteString(center(InfoStyle.Render("No appointments found.")))
		b.WriteString("\n")

	default:
		start, end := window(len(st.Data), m.cursor, appointmentsWindow)
		for i := start; i < end; i++ {
			b.WriteString(appointmentCard(st.Data[i], i == m.cursor))
			b.WriteString("\n")
		}
		if len(st.Data) > appointmentsWindow {
			b.WriteString(center(InfoStyle.Render(fmt.Sprintf("%d of %d", m.cursor+1, len(st.Data)))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("↑/↓ navigate  •  enter QR  •  r refresh  •  b book  •  esc back")))

	return card(b.String())
}
