package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/wecare/internal/router"
	"github.com/Varun5711/wecare/internal/session"
	"github.com/Varun5711/wecare/internal/validation"
)

type otpSentMsg struct {
	message string
}

type otpVerifiedMsg struct {
	message string
}

type forgotErrorMsg struct {
	err error
}

// ForgotModel asks for the account email, then the 6-digit OTP in a dialog.
type ForgotModel struct {
	ctx       context.Context
	sess      *session.Session
	email     textField
	otp       textField
	sentTo    string
	otpOpen   bool
	sending   bool
	verifying bool
	errs      validation.Errors
	err       string
}

func NewForgotModel(ctx context.Context, sess *session.Session) *ForgotModel {
	return &ForgotModel{
		ctx:   ctx,
		sess:  sess,
		email: textField{name: "email", label: "Email Address*"},
		otp:   textField{name: "otp", label: "OTP", digits: true, maxLen: 6},
	}
}

func (m *ForgotModel) Init() tea.Cmd {
	return nil
}

func sendOTPCmd(ctx context.Context, sess *session.Session, form validation.ForgotPasswordForm) tea.Cmd {
	return func() tea.Msg {
		msg, err := sess.ForgotPassword(ctx, form)
		if err != nil {
			return forgotErrorMsg{err: err}
		}
		return otpSentMsg{message: msg}
	}
}

func verifyOTPCmd(ctx context.Context, sess *session.Session, form validation.OTPForm) tea.Cmd {
	return func() tea.Msg {
		msg, err := sess.VerifyOTP(ctx, form)
		if err != nil {
			return forgotErrorMsg{err: err}
		}
		return otpVerifiedMsg{message: msg}
	}
}

func (m *ForgotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case otpSentMsg:
		m.sending = false
		m.err = ""
		m.otpOpen = true
		m.otp.value = ""
		return m, toastSuccess(msg.message)

	case otpVerifiedMsg:
		m.verifying = false
		m.otpOpen = false
		return m, tea.Batch(toastSuccess(msg.message), navigate(router.ResetPasswordLocation(m.sentTo)))

	case forgotErrorMsg:
		m.sending, m.verifying = false, false
		errs, text := splitError(msg.err)
		if errs != nil {
			text = errs.First()
		}
		m.err = text
		return m, toastError(text)

	case tea.KeyMsg:
		if m.sending || m.verifying {
			return m, nil
		}
		if m.otpOpen {
			return m, m.updateOTP(msg)
		}

		switch msg.String() {
		case "enter":
			form := validation.ForgotPasswordForm{Email: strings.TrimSpace(m.email.value)}
			if err := validation.Validate(form); err != nil {
				m.errs, _ = validation.AsErrors(err)
				return m, nil
			}
			m.errs, m.err = nil, ""
			m.sending = true
			m.sentTo = form.Email
			return m, sendOTPCmd(m.ctx, m.sess, form)
		case "ctrl+s":
			return m, navigateTo(router.PathLogin)
		case "esc":
			return m, goBack
		case "ctrl+l":
			m.email.value = ""
		default:
			m.email.handleKey(msg)
		}
	}
	return m, nil
}

func (m *ForgotModel) updateOTP(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		form := validation.OTPForm{Email: m.sentTo, OTP: m.otp.value}
		if err := validation.Validate(form); err != nil {
			errs, _ := validation.AsErrors(err)
			return toastError(errs.First())
		}
		m.verifying = true
		m.err = ""
		return verifyOTPCmd(m.ctx, m.sess, form)
	case "esc":
		m.otpOpen = false
	default:
		m.otp.handleKey(msg)
	}
	return nil
}

func otpBoxes(value string) string {
	cells := make([]string, 6)
	for i := range cells {
		ch := " "
		if i < len(value) {
			ch = string(value[i])
		}
		cells[i] = FocusedInputStyle.Render(ch)
	}
	return strings.Join(cells, " ")
}

func (m *ForgotModel) View() string {
	var b strings.Builder

	if m.otpOpen {
		b.WriteString(heading("🔑 Enter OTP", "We sent a 6-digit code to "+m.sentTo))
		b.WriteString("\n\n")
		b.WriteString(center(otpBoxes(m.otp.value)))
		b.WriteString("\n\n")
		button := ButtonStyle.Render("Verify OTP")
		if m.verifying {
			button = ButtonDisabledStyle.Render("Verifying...")
		}
		b.WriteString(center(button))
		b.WriteString("\n")
		b.WriteString(errorBlock(m.err))
		b.WriteString("\n")
		b.WriteString(center(InfoStyle.Render("digits type  •  enter verify  •  esc close")))
		return DialogStyle.Render(b.String())
	}

	b.WriteString(heading("🔒 Forgot Password", "Enter your email and we'll send you an OTP."))
	b.WriteString("\n\n")
	b.WriteString(m.email.view(true, m.errs.For("email")))
	b.WriteString("\n\n")

	button := ButtonStyle.Render("Send OTP")
	if m.sending {
		button = ButtonDisabledStyle.Render("Sending...")
	}
	b.WriteString(center(button))
	b.WriteString("\n")
	b.WriteString(errorBlock(m.err))
	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("Already have an account? ctrl+s login")))
	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("enter send  •  ctrl+l clear  •  esc back")))

	return card(b.String())
}
