package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/wecare/internal/router"
	"github.com/Varun5711/wecare/internal/session"
	"github.com/Varun5711/wecare/internal/validation"
)

type registerSuccessMsg struct {
	message string
}

type registerErrorMsg struct {
	err error
}

type RegisterModel struct {
	ctx     context.Context
	sess    *session.Session
	inputs  fieldSet
	loading bool
	errs    validation.Errors
	err     string
}

func NewRegisterModel(ctx context.Context, sess *session.Session) *RegisterModel {
	return &RegisterModel{
		ctx:  ctx,
		sess: sess,
		inputs: newFieldSet(
			&textField{name: "name", label: "Full Name*"},
			&textField{name: "email", label: "Email Address*"},
			&textField{name: "password", label: "Password*", masked: true},
			&textField{name: "confirmPassword", label: "Confirm Password*", masked: true},
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return nil
}

func registerCmd(ctx context.Context, sess *session.Session, form validation.RegisterForm) tea.Cmd {
	return func() tea.Msg {
		msg, err := sess.Register(ctx, form)
		if err != nil {
			return registerErrorMsg{err: err}
		}
		return registerSuccessMsg{message: msg}
	}
}

func (m *RegisterModel) form() validation.RegisterForm {
	return validation.RegisterForm{
		Name:            strings.TrimSpace(m.inputs.fields[0].value),
		Email:           strings.TrimSpace(m.inputs.fields[1].value),
		Password:        m.inputs.fields[2].value,
		ConfirmPassword: m.inputs.fields[3].value,
	}
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerSuccessMsg:
		m.loading = false
		return m, tea.Batch(toastSuccess(msg.message), navigateTo(router.PathLogin))

	case registerErrorMsg:
		m.loading = false
		errs, text := splitError(msg.err)
		m.errs, m.err = errs, text
		if text != "" {
			return m, toastError(text)
		}
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
			form := m.form()
			if err := validation.Validate(form); err != nil {
				m.errs, _ = validation.AsErrors(err)
				return m, nil
			}
			m.loading = true
			m.errs, m.err = nil, ""
			return m, registerCmd(m.ctx, m.sess, form)
		case "ctrl+s":
			return m, navigateTo(router.PathLogin)
		case "esc":
			return m, goBack
		default:
			m.inputs.handleKey(msg)
		}
	}
	return m, nil
}

func (m *RegisterModel) View() string {
	var b strings.Builder

	b.WriteString(heading("📝 Create an Account", "Register as a patient to book appointments."))
	b.WriteString("\n\n")
	b.WriteString(m.inputs.view(m.errs.For))
	b.WriteString("\n\n")

	button := ButtonStyle.Render("Register")
	if m.loading {
		button = ButtonDisabledStyle.Render("Registering...")
	}
	b.WriteString(center(button))
	b.WriteString("\n")
	b.WriteString(errorBlock(m.err))
	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("Already have an account? ctrl+s login")))
	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter register  •  ctrl+r show password  •  esc back")))

	return card(b.String())
}
