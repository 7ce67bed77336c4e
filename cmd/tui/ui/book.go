package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/wecare/internal/api"
	"github.com/Varun5711/wecare/internal/booking"
	"github.com/Varun5711/wecare/internal/fetch"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/qrcode"
	"github.com/Varun5711/wecare/internal/session"
)

const (
	slotColumns = 4
	listWindow  = 5
)

type bookSection int

const (
	sectionSpeciality bookSection = iota
	sectionDoctor
	sectionSlots
	sectionSubmit
)

type doctorsLoadedMsg struct {
	flow *booking.Flow
	res  fetch.Result[[]models.DoctorSummary]
}

type slotsLoadedMsg struct {
	flow *booking.Flow
	res  fetch.Result[[]models.DaySlots]
}

type bookedMsg struct {
	flow *booking.Flow
	resp *models.BookingResponse
	err  error
}

// BookModel walks speciality → doctor → slot and submits the booking.
type BookModel struct {
	ctx    context.Context
	sess   *session.Session
	client *api.Client
	flow   *booking.Flow

	section      bookSection
	specCursor   int
	doctorCursor int
	dayTab       int
	slotCursor   int
	resets       int

	preselect string
	confirmed *models.Appointment
	qr        string
}

func NewBookModel(ctx context.Context, sess *session.Session, client *api.Client, speciality string) *BookModel {
	return &BookModel{
		ctx:       ctx,
		sess:      sess,
		client:    client,
		flow:      booking.NewFromClient(client),
		preselect: speciality,
	}
}

func (m *BookModel) Init() tea.Cmd {
	if _, ok := models.LookupSpeciality(m.preselect); !ok {
		return nil
	}
	for i, s := range models.Specialities {
		if s.Value == m.preselect {
			m.specCursor = i
		}
	}
	m.section = sectionDoctor
	return m.selectSpeciality(m.preselect)
}

func fetchDoctorsCmd(f *booking.Flow, t fetch.Ticket) tea.Cmd {
	return func() tea.Msg {
		return doctorsLoadedMsg{flow: f, res: f.Doctors().Run(t)}
	}
}

func fetchSlotsCmd(f *booking.Flow, t fetch.Ticket) tea.Cmd {
	return func() tea.Msg {
		return slotsLoadedMsg{flow: f, res: f.Slots().Run(t)}
	}
}

func bookCmd(ctx context.Context, f *booking.Flow, c *api.Client, req models.BookingRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.BookAppointment(ctx, req)
		return bookedMsg{flow: f, resp: resp, err: err}
	}
}

func (m *BookModel) selectSpeciality(v string) tea.Cmd {
	if t, ok := m.flow.SelectSpeciality(v); ok {
		m.doctorCursor = 0
		return fetchDoctorsCmd(m.flow, t)
	}
	return nil
}

func (m *BookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doctorsLoadedMsg:
		if msg.flow == m.flow {
			m.flow.Doctors().Apply(msg.res)
		}
		return m, nil

	case slotsLoadedMsg:
		if msg.flow == m.flow && m.flow.Slots().Apply(msg.res) {
			m.dayTab, m.slotCursor = 0, 0
		}
		return m, nil

	case bookedMsg:
		if msg.flow != m.flow {
			return m, nil
		}
		if msg.err != nil {
			m.flow.SubmitFailed(msg.err)
			return m, toastError(api.Message(msg.err))
		}
		m.flow.SubmitSucceeded()
		m.afterReset()
		if msg.resp.Data != nil {
			m.confirmed = msg.resp.Data
			if qr, err := qrcode.Booking(*msg.resp.Data); err == nil {
				m.qr = qr
			}
		}
		return m, toastSuccess(msg.resp.Message)

	case tea.KeyMsg:
		if m.flow.ModalOpen() {
			switch msg.String() {
			case "enter", "esc", "q":
				m.flow.CloseModal()
				m.confirmed, m.qr = nil, ""
			}
			return m, nil
		}
		if m.flow.Submitting() {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.section = (m.section + 1) % (sectionSubmit + 1)
			return m, nil
		case "shift+tab":
			m.section = (m.section + sectionSubmit) % (sectionSubmit + 1)
			return m, nil
		case "ctrl+s":
			return m, m.submit()
		case "esc":
			return m, goBack
		}

		switch m.section {
		case sectionSpeciality:
			return m, m.updateSpeciality(msg)
		case sectionDoctor:
			return m, m.updateDoctor(msg)
		case sectionSlots:
			return m, m.updateSlots(msg)
		case sectionSubmit:
			if msg.String() == "enter" {
				return m, m.submit()
			}
		}
	}
	return m, nil
}

// afterReset puts the cursors back when the flow reports a new reset.
func (m *BookModel) afterReset() {
	if n := m.flow.ResetCount(); n != m.resets {
		m.resets = n
		m.section = sectionSpeciality
		m.specCursor, m.doctorCursor, m.dayTab, m.slotCursor = 0, 0, 0, 0
	}
}

func (m *BookModel) updateSpeciality(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.specCursor > 0 {
			m.specCursor--
		}
	case "down", "j":
		if m.specCursor < len(models.Specialities)-1 {
			m.specCursor++
		}
	case "enter":
		m.section = sectionDoctor
		return m.selectSpeciality(models.Specialities[m.specCursor].Value)
	}
	return nil
}

func (m *BookModel) updateDoctor(msg tea.KeyMsg) tea.Cmd {
	view := m.flow.DoctorsView()
	switch msg.String() {
	case "up", "k":
		if m.doctorCursor > 0 {
			m.doctorCursor--
		}
	case "down", "j":
		if m.doctorCursor < len(view.Doctors)-1 {
			m.doctorCursor++
		}
	case "r":
		if view.Status == booking.StatusError {
			if t, ok := m.flow.Doctors().Refetch(); ok {
				return fetchDoctorsCmd(m.flow, t)
			}
		}
	case "enter":
		if view.Status != booking.StatusReady || m.doctorCursor >= len(view.Doctors) {
			return nil
		}
		m.section = sectionSlots
		if t, ok := m.flow.SelectDoctor(view.Doctors[m.doctorCursor].ID); ok {
			m.dayTab, m.slotCursor = 0, 0
			return fetchSlotsCmd(m.flow, t)
		}
	}
	return nil
}

func (m *BookModel) updateSlots(msg tea.KeyMsg) tea.Cmd {
	view := m.flow.SlotsView()
	if view.Status == booking.StatusError && msg.String() == "r" {
		if t, ok := m.flow.Slots().Refetch(); ok {
			return fetchSlotsCmd(m.flow, t)
		}
		return nil
	}
	if view.Status != booking.StatusReady || m.dayTab >= len(view.Days) {
		return nil
	}

	slots := view.Days[m.dayTab].Slots
	switch msg.String() {
	case "[":
		if m.dayTab > 0 {
			m.dayTab--
			m.slotCursor = 0
		}
	case "]":
		if m.dayTab < len(view.Days)-1 {
			m.dayTab++
			m.slotCursor = 0
		}
	case "left", "h":
		if m.slotCursor > 0 {
			m.slotCursor--
		}
	case "right", "l":
		if m.slotCursor < len(slots)-1 {
			m.slotCursor++
		}
	case "up", "k":
		if m.slotCursor-slotColumns >= 0 {
			m.slotCursor -= slotColumns
		}
	case "down", "j":
		if m.slotCursor+slotColumns < len(slots) {
			m.slotCursor += slotColumns
		}
	case "enter":
		if m.slotCursor < len(slots) && m.flow.SelectSlot(view.Days[m.dayTab].Date, slots[m.slotCursor].Time) {
			m.section = sectionSubmit
		}
	}
	return nil
}

func (m *BookModel) submit() tea.Cmd {
	user := m.sess.User()
	if user == nil {
		return toastError(session.ErrNoUser.Error())
	}
	req, err := m.flow.BeginSubmit(user.ID)
	if err != nil {
		errs, text := splitError(err)
		if errs != nil {
			text = errs.First()
		}
		return toastError(text)
	}
	return bookCmd(m.ctx, m.flow, m.client, req)
}

func window(n, cursor, size int) (int, int) {
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > n {
		end = n
		start = end - size
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func (m *BookModel) sectionTitle(s bookSection, title string) string {
	if m.section == s {
		return SelectedItemStyle.UnsetPaddingLeft().Render("▸ " + title)
	}
	return LabelStyle.Width(0).Render("  " + title)
}

func (m *BookModel) View() string {
	if m.flow.ModalOpen() {
		return m.modalView()
	}

	var b strings.Builder
	b.WriteString(heading("📅 Book Appointment", "Choose a speciality, a doctor and a free time slot."))
	b.WriteString("\n\n")

	b.WriteString(m.sectionTitle(sectionSpeciality, "Speciality"))
	b.WriteString("\n")
	b.WriteString(m.specialityView())
	b.WriteString("\n\n")

	b.WriteString(m.sectionTitle(sectionDoctor, "Doctor"))
	b.WriteString("\n")
	b.WriteString(m.doctorsView())
	b.WriteString("\n\n")

	if m.flow.Doctor() != nil {
		b.WriteString(m.sectionTitle(sectionSlots, "Time Slot"))
		b.WriteString("\n")
		b.WriteString(m.slotsView())
		b.WriteString("\n\n")
	}

	button := ButtonDisabledStyle.Render("Book Appointment")
	switch {
	case m.flow.Submitting():
		button = ButtonDisabledStyle.Render("Booking...")
	case m.flow.CanSubmit() && m.section == sectionSubmit:
		button = ButtonFocusedStyle.Render("Book Appointment")
	case m.flow.CanSubmit():
		button = ButtonStyle.Render("Book Appointment")
	}
	b.WriteString(center(button))
	b.WriteString("\n")

	if msg := m.flow.SubmitError(); msg != "" {
		b.WriteString(center(ErrorStyle.Render("❌ " + msg)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab section  •  ↑/↓ choose  •  [ ] day  •  enter select  •  ctrl+s book  •  esc back")))

	return card(b.String())
}

func (m *BookModel) specialityView() string {
	if m.section != sectionSpeciality {
		label := "Select a speciality"
		if s, ok := models.LookupSpeciality(m.flow.Speciality()); ok {
			label = s.Label
		}
		return ItemStyle.Render(label)
	}

	start, end := window(len(models.Specialities), m.specCursor, listWindow)
	var rows []string
	for i := start; i < end; i++ {
		s := models.Specialities[i]
		mark := " "
		if s.Value == m.flow.Speciality() {
			mark = "✓"
		}
		if i == m.specCursor {
			rows = append(rows, SelectedItemStyle.Render("> "+mark+" "+s.Label))
		} else {
			rows = append(rows, ItemStyle.Render("  "+mark+" "+s.Label))
		}
	}
	return strings.Join(rows, "\n")
}

func (m *BookModel) doctorsView() string {
	view := m.flow.DoctorsView()
	switch view.Status {
	case booking.StatusIdle:
		return ItemStyle.Render(InfoStyle.Render("Select a speciality first"))
	case booking.StatusLoading:
		return ItemStyle.Render(InfoStyle.Render("🔄 " + view.Text))
	case booking.StatusError:
		return ItemStyle.Render(ErrorStyle.Render("❌ "+view.Text) + InfoStyle.Render("  r retry"))
	case booking.StatusEmpty:
		return ItemStyle.Render(InfoStyle.Render(view.Text))
	}

	selected := m.flow.Doctor()
	start, end := window(len(view.Doctors), m.doctorCursor, listWindow)
	var rows []string
	for i := start; i < end; i++ {
		d := view.Doctors[i]
		mark := " "
		if selected != nil && selected.ID == d.ID {
			mark = "✓"
		}
		line := fmt.Sprintf("%s %s %s", mark, AvatarStyle.Render(d.Initial()), d.Name)
		email := InfoStyle.Render("  " + d.Email)
		if m.section == sectionDoctor && i == m.doctorCursor {
			rows = append(rows, SelectedItemStyle.Render("> "+line)+email)
		} else {
			rows = append(rows, ItemStyle.Render("  "+line)+email)
		}
	}
	return strings.Join(rows, "\n")
}

func dayLabel(d booking.DayView) string {
	day := d.Day
	if len(day) > 3 {
		day = day[:3]
	}
	if len(d.Date) >= 10 {
		return day + " " + d.Date[8:10]
	}
	return day
}

func (m *BookModel) slotsView() string {
	view := m.flow.SlotsView()
	switch view.Status {
	case booking.StatusIdle:
		return ""
	case booking.StatusLoading:
		return ItemStyle.Render(InfoStyle.Render("🔄 " + view.Text))
	case booking.StatusError:
		return ItemStyle.Render(ErrorStyle.Render("❌ "+view.Text) + InfoStyle.Render("  r retry"))
	case booking.StatusEmpty:
		return ItemStyle.Render(InfoStyle.Render(view.Text))
	}

	tabs := make([]string, 0, len(view.Days))
	for i, d := range view.Days {
		style := ButtonDisabledStyle
		if i == m.dayTab {
			style = ButtonStyle
		}
		tabs = append(tabs, style.Render(dayLabel(d)))
	}
	out := ItemStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...)) + "\n\n"

	if m.dayTab >= len(view.Days) {
		return out
	}
	day := view.Days[m.dayTab]
	if day.Empty != "" {
		return out + ItemStyle.Render(InfoStyle.Render(day.Empty))
	}

	selected := m.flow.Slot()
	var rows []string
	var row []string
	for i, s := range day.Slots {
		style := ItemStyle.PaddingLeft(1).PaddingRight(1)
		switch {
		case selected != nil && selected.Date == day.Date && selected.Time == s.Time:
			style = style.Background(Success).Foreground(BgDark).Bold(true)
		case !s.Available:
			style = style.Foreground(Muted).Strikethrough(true)
		}
		if m.section == sectionSlots && i == m.slotCursor {
			style = style.Underline(true).Foreground(Accent)
		}
		row = append(row, lipgloss.NewStyle().Width(12).Render(style.Render(s.Time)))
		if len(row) == slotColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return out + ItemStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *BookModel) modalView() string {
	var b strings.Builder

	b.WriteString(center(SuccessStyle.Render("✅ Appointment booked successfully")))
	b.WriteString("\n\n")
	desc := lipgloss.NewStyle().Foreground(Muted).Width(56).Align(lipgloss.Center).
		Render("It will be confirmed once the doctor accepts your appointment. You'll receive an email notification when it's confirmed.")
	b.WriteString(center(desc))
	b.WriteString("\n\n")

	if m.confirmed != nil {
		details := fmt.Sprintf("%s  •  %s  •  %s",
			m.confirmed.Doctor.Name, models.FormatDate(m.confirmed.Date), m.confirmed.StartTime)
		b.WriteString(center(ValueStyle.Render(details)))
		b.WriteString("\n\n")
	}
	if m.qr != "" {
		b.WriteString(center(lipgloss.NewStyle().Foreground(Text).Background(BgDark).Render(m.qr)))
		b.WriteString("\n")
	}

	b.WriteString(center(ButtonFocusedStyle.Render("Close")))
	b.WriteString("\n\n")
	b.WriteString(center(InfoStyle.Render("enter close")))

	return DialogStyle.Render(b.String())
}
