package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/wecare/internal/api"
	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/router"
	"github.com/Varun5711/wecare/internal/session"
	"github.com/Varun5711/wecare/internal/validation"
)

const toastDuration = 4 * time.Second

type overlay int

const (
	overlayNone overlay = iota
	overlayMenu
	overlayProfile
	overlaySignOut
)

type sessionReadyMsg struct{}

type navigateMsg struct {
	to      router.Location
	replace bool
}

type backMsg struct{}

type toastMsg struct {
	text string
	err  bool
}

type toastExpiredMsg struct {
	id int
}

type openOverlayMsg struct {
	kind overlay
}

type closeOverlayMsg struct{}

func navigate(loc router.Location) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: loc} }
}

func navigateTo(path string) tea.Cmd {
	return navigate(router.Location{Path: path})
}

func goBack() tea.Msg { return backMsg{} }

func toastSuccess(text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text} }
}

func toastError(text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text, err: true} }
}

func openOverlay(kind overlay) tea.Cmd {
	return func() tea.Msg { return openOverlayMsg{kind: kind} }
}

func closeOverlay() tea.Msg { return closeOverlayMsg{} }

// splitError separates inline field errors from a message meant for a toast.
func splitError(err error) (validation.Errors, string) {
	if errs, ok := validation.AsErrors(err); ok {
		return errs, ""
	}
	return nil, api.Message(err)
}

type Model struct {
	ctx     context.Context
	sess    *session.Session
	client  *api.Client
	history *router.History
	log     *logger.Logger

	current  tea.Model
	page     router.Page
	navSeq   int
	shownSeq int

	overlay overlay
	menu    *MenuModel
	profile *ProfileModel
	signOut *SignOutModel

	toastID   int
	toastText string
	toastErr  bool

	width  int
	height int
}

func NewModel(ctx context.Context, sess *session.Session, client *api.Client, start router.Location) Model {
	return Model{
		ctx:      ctx,
		sess:     sess,
		client:   client,
		history:  router.NewHistory(start),
		log:      logger.New("tui"),
		shownSeq: -1,
	}
}

func (m Model) Init() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		sess.Start(ctx)
		return sessionReadyMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionReadyMsg:
		m.log.Debug("Session ready at %s", m.history.Current())

	case navigateMsg:
		if msg.replace {
			m.history.Replace(msg.to)
		} else {
			m.history.Push(msg.to)
		}
		m.navSeq++
		m.overlay = overlayNone

	case backMsg:
		if _, ok := m.history.Back(); ok {
			m.navSeq++
		}

	case toastMsg:
		m.toastID++
		m.toastText = msg.text
		m.toastErr = msg.err
		id := m.toastID
		cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toastText = ""
		}

	case openOverlayMsg:
		cmds = append(cmds, m.open(msg.kind))

	case closeOverlayMsg:
		m.overlay = overlayNone

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.overlay != overlayNone {
			cmds = append(cmds, m.updateOverlay(msg))
			cmds = append(cmds, m.sync())
			return m, tea.Batch(cmds...)
		}
		if msg.String() == "ctrl+n" && m.sess.Snapshot().Authenticated() {
			cmds = append(cmds, m.open(overlayMenu))
			return m, tea.Batch(cmds...)
		}
	}

	if m.overlay != overlayNone {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			cmds = append(cmds, m.updateOverlay(msg))
		}
	}

	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

// sync follows guard redirects and mounts a fresh page whenever the history
// moved since the last mount.
func (m *Model) sync() tea.Cmd {
	var d router.Decision
	for i := 0; i < 4; i++ {
		d = router.Decide(m.sess.Snapshot(), m.history.Current())
		if d.Kind != router.Redirect {
			break
		}
		m.log.Debug("Redirecting %s -> %s", m.history.Current(), d.To)
		m.history.Apply(d)
		m.navSeq++
		m.overlay = overlayNone
	}
	if d.Kind != router.Render {
		return nil
	}
	if m.current != nil && m.shownSeq == m.navSeq && m.page == d.Page {
		return nil
	}

	m.shownSeq = m.navSeq
	m.page = d.Page
	m.current = m.newPage(d.Page, m.history.Current())
	return m.current.Init()
}

func (m *Model) newPage(page router.Page, loc router.Location) tea.Model {
	switch page {
	case router.PageHome:
		return NewHomeModel(m.sess)
	case router.PageLogin:
		return NewLoginModel(m.ctx, m.sess)
	case router.PageRegister:
		return NewRegisterModel(m.ctx, m.sess)
	case router.PageForgotPassword:
		return NewForgotModel(m.ctx, m.sess)
	case router.PageResetPassword:
		return NewResetModel(m.ctx, m.sess, loc.Query.Get("email"))
	case router.PageBookAppointment:
		return NewBookModel(m.ctx, m.sess, m.client, loc.Query.Get("speciality"))
	case router.PageAppointments:
		return NewAppointmentsModel(m.client)
	default:
		return NewNotFoundModel()
	}
}

func (m *Model) open(kind overlay) tea.Cmd {
	switch kind {
	case overlayMenu:
		m.menu = NewMenuModel()
	case overlayProfile:
		user := m.sess.User()
		if user == nil {
			return nil
		}
		m.profile = NewProfileModel(m.ctx, m.sess, user)
	case overlaySignOut:
		m.signOut = NewSignOutModel(m.sess)
	}
	m.overlay = kind
	return nil
}

func (m *Model) updateOverlay(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.overlay {
	case overlayMenu:
		var updated tea.Model
		updated, cmd = m.menu.Update(msg)
		m.menu = updated.(*MenuModel)
	case overlayProfile:
		var updated tea.Model
		updated, cmd = m.profile.Update(msg)
		m.profile = updated.(*ProfileModel)
	case overlaySignOut:
		var updated tea.Model
		updated, cmd = m.signOut.Update(msg)
		m.signOut = updated.(*SignOutModel)
	}
	return cmd
}

func (m Model) overlayView() string {
	switch m.overlay {
	case overlayMenu:
		return m.menu.View()
	case overlayProfile:
		return m.profile.View()
	case overlaySignOut:
		return m.signOut.View()
	}
	return ""
}

func (m Model) View() string {
	snap := m.sess.Snapshot()
	d := router.Decide(snap, m.history.Current())

	var body string
	switch {
	case d.Kind != router.Render || m.current == nil:
		body = preloaderView()
	case m.overlay != overlayNone:
		body = m.overlayView()
	default:
		body = m.current.View()
	}

	if d.Kind == router.Render && d.Chrome {
		body = lipgloss.JoinVertical(lipgloss.Left, headerView(snap), body, footerView())
	}

	if m.toastText != "" {
		style := SuccessStyle
		icon := "✅ "
		if m.toastErr {
			style = ErrorStyle
			icon = "❌ "
		}
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", center(style.Render(icon+m.toastText)))
	}
	return body
}
