package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/wecare/internal/router"
	"github.com/Varun5711/wecare/internal/session"
	"github.com/Varun5711/wecare/internal/validation"
)

type loginSuccessMsg struct{}

type loginErrorMsg struct {
	err error
}

type LoginModel struct {
	ctx     context.Context
	sess    *session.Session
	inputs  fieldSet
	loading bool
	errs    validation.Errors
	err     string
}

func NewLoginModel(ctx context.Context, sess *session.Session) *LoginModel {
	return &LoginModel{
		ctx:  ctx,
		sess: sess,
		inputs: newFieldSet(
			&textField{name: "email", label: "Email:"},
			&textField{name: "password", label: "Password:", masked: true},
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return nil
}

func loginCmd(ctx context.Context, sess *session.Session, form validation.LoginForm) tea.Cmd {
	return func() tea.Msg {
		if err := sess.Login(ctx, form); err != nil {
			return loginErrorMsg{err: err}
		}
		return loginSuccessMsg{}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginSuccessMsg:
		m.loading = false
		m.errs, m.err = nil, ""
		return m, nil

	case loginErrorMsg:
		m.loading = false
		m.errs, m.err = splitError(msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			if !m.inputs.last() {
				m.inputs.next()
				return m, nil
			}
			form := validation.LoginForm{
				Email:    strings.TrimSpace(m.inputs.fields[0].value),
				Password: m.inputs.fields[1].value,
			}
			if err := validation.Validate(form); err != nil {
				m.errs, m.err = splitError(err)
				return m, nil
			}
			m.loading = true
			m.errs, m.err = nil, ""
			return m, loginCmd(m.ctx, m.sess, form)
		case "ctrl+s":
			return m, navigateTo(router.PathRegister)
		case "ctrl+f":
			return m, navigateTo(router.PathForgotPassword)
		case "esc":
			return m, goBack
		default:
			m.inputs.handleKey(msg)
		}
	}
	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("🔐 Welcome Back")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Sign in to book and manage your appointments.")

	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center).
		MarginTop(1).
		Render(title))
	b.WriteString("\n")
	b.WriteString(center(subtitle))
	b.WriteString("\n\n")

	b.WriteString(m.inputs.view(m.errs.For))
	b.WriteString("\n\n")

	button := ButtonStyle.Render("Sign In")
	if m.loading {
		button = ButtonDisabledStyle.Render("Signing in...")
	}
	b.WriteString(center(button))
	b.WriteString("\n")
	b.WriteString(errorBlock(m.err))

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("Don't have an account? ctrl+s register  •  ctrl+f forgot password")))
	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter login  •  ctrl+r show password  •  esc back")))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2).
		Width(pageWidth - 4).
		Render(b.String())
}
