package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/wecare/internal/router"
	"github.com/Varun5711/wecare/internal/session"
	"github.com/Varun5711/wecare/internal/validation"
)

type resetSuccessMsg struct {
	message string
}

type resetErrorMsg struct {
	err error
}

// ResetModel sets a new password for the email carried by the reset link.
type ResetModel struct {
	ctx     context.Context
	sess    *session.Session
	email   string
	inputs  fieldSet
	loading bool
	errs    validation.Errors
	err     string
}

func NewResetModel(ctx context.Context, sess *session.Session, email string) *ResetModel {
	return &ResetModel{
		ctx:   ctx,
		sess:  sess,
		email: email,
		inputs: newFieldSet(
			&textField{name: "newPassword", label: "New Password*", masked: true},
			&textField{name: "confirmPassword", label: "Confirm Password*", masked: true},
		),
	}
}

func (m *ResetModel) Init() tea.Cmd {
	return nil
}

func resetCmd(ctx context.Context, sess *session.Session, form validation.ResetPasswordForm) tea.Cmd {
	return func() tea.Msg {
		msg, err := sess.ResetPassword(ctx, form)
		if err != nil {
			return resetErrorMsg{err: err}
		}
		return resetSuccessMsg{message: msg}
	}
}

func (m *ResetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resetSuccessMsg:
		m.loading = false
		return m, tea.Batch(toastSuccess(msg.message), navigateTo(router.PathLogin))

	case resetErrorMsg:
		m.loading = false
		errs, text := splitError(msg.err)
		if errs != nil {
			m.errs = errs
			return m, nil
		}
		m.err = text
		return m, toastError(text)

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
			return m, m.submit()
		case "esc":
			return m, goBack
		default:
			m.inputs.handleKey(msg)
		}
	}
	return m, nil
}

// submit surfaces a missing email or mismatched passwords as toasts and the
// remaining field errors inline.
func (m *ResetModel) submit() tea.Cmd {
	form := validation.ResetPasswordForm{
		Email:           m.email,
		NewPassword:     m.inputs.fields[0].value,
		ConfirmPassword: m.inputs.fields[1].value,
	}
	if err := validation.Validate(form); err != nil {
		errs, _ := validation.AsErrors(err)
		m.errs = errs
		if msg := errs.For("email"); msg != "" {
			return toastError(msg)
		}
		if form.NewPassword != "" && form.ConfirmPassword != "" && form.NewPassword != form.ConfirmPassword {
			return toastError(errs.For("confirmPassword"))
		}
		return nil
	}
	m.errs, m.err = nil, ""
	m.loading = true
	return resetCmd(m.ctx, m.sess, form)
}

func (m *ResetModel) View() string {
	var b strings.Builder

	email := m.email
	if email == "" {
		email = "-"
	}
	b.WriteString(heading("🔁 Reset Password", "Set your new password for "+email))
	b.WriteString("\n\n")
	b.WriteString(m.inputs.view(m.errs.For))
	b.WriteString("\n\n")

	button := ButtonStyle.Render("Reset Password")
	if m.loading {
		button = ButtonDisabledStyle.Render("Resetting...")
	}
	b.WriteString(center(button))
	b.WriteString("\n")
	b.WriteString(errorBlock(m.err))
	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter reset  •  ctrl+r show password  •  esc back")))

	return card(b.String())
}
