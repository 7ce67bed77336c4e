package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/profile"
	"github.com/Varun5711/wecare/internal/session"
)

type profileSavedMsg struct {
	message string
	err     error
}

type imageUploadedMsg struct {
	message string
	err     error
}

// ProfileModel is the profile sheet with its image upload dialog.
type ProfileModel struct {
	ctx      context.Context
	sess     *session.Session
	editor   *profile.Editor
	uploader *profile.Uploader
	user     *models.User
	inputs   fieldSet

	imageOpen bool
	imagePath textField
}

func NewProfileModel(ctx context.Context, sess *session.Session, user *models.User) *ProfileModel {
	editor := profile.NewEditor()
	editor.Open(user)

	return &ProfileModel{
		ctx:      ctx,
		sess:     sess,
		editor:   editor,
		uploader: &profile.Uploader{},
		user:     user,
		inputs: newFieldSet(
			&textField{name: "name", label: "Name", value: editor.Name},
			&textField{name: "email", label: "Email", value: editor.Email, readOnly: true},
			&textField{name: "phoneNumber", label: "Phone Number", value: editor.Phone, digits: true, maxLen: 10},
		),
		imagePath: textField{name: "picture", label: "Image path"},
	}
}

func (m *ProfileModel) Init() tea.Cmd {
	return nil
}

func saveProfileCmd(ctx context.Context, editor *profile.Editor, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		msg, err := editor.Save(ctx, sess.UpdateProfile)
		return profileSavedMsg{message: msg, err: err}
	}
}

func uploadImageCmd(ctx context.Context, uploader *profile.Uploader, sess *session.Session, path string) tea.Cmd {
	return func() tea.Msg {
		msg, err := uploader.Upload(ctx, path, sess.UpdateProfileImage)
		return imageUploadedMsg{message: msg, err: err}
	}
}

func (m *ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		if msg.err != nil {
			errs, text := splitError(msg.err)
			if errs != nil {
				return m, nil
			}
			if saveErr := m.editor.SaveError(); saveErr != "" {
				text = saveErr
			}
			return m, toastError(text)
		}
		return m, tea.Batch(toastSuccess(msg.message), closeOverlay)

	case imageUploadedMsg:
		if msg.err != nil {
			return m, toastError(m.uploader.Err())
		}
		m.imageOpen = false
		m.imagePath.value = ""
		if u := m.sess.User(); u != nil {
			m.user = u
		}
		return m, toastSuccess(msg.message)

	case tea.KeyMsg:
		if m.editor.Saving() || m.uploader.Uploading() {
			return m, nil
		}
		if m.imageOpen {
			return m, m.updateImage(msg)
		}

		switch msg.String() {
		case "esc":
			m.editor.Close()
			return m, closeOverlay
		case "ctrl+u":
			m.imageOpen = true
			return m, nil
		case "enter", "ctrl+s":
			if !m.editor.CanSubmit() {
				return m, nil
			}
			return m, saveProfileCmd(m.ctx, m.editor, m.sess)
		default:
			m.inputs.handleKey(msg)
			m.editor.SetName(m.inputs.fields[0].value)
			m.editor.SetPhone(m.inputs.fields[2].value)
		}
	}
	return m, nil
}

func (m *ProfileModel) updateImage(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.imageOpen = false
		m.imagePath.value = ""
	case "enter":
		return uploadImageCmd(m.ctx, m.uploader, m.sess, strings.TrimSpace(m.imagePath.value))
	default:
		m.imagePath.handleKey(msg)
	}
	return nil
}

func (m *ProfileModel) View() string {
	if m.imageOpen {
		return m.imageView()
	}

	var b strings.Builder
	b.WriteString(heading("👤 Edit Profile", "Make changes to your profile here. Click save when you're done."))
	b.WriteString("\n\n")

	avatar := AvatarStyle.Render(m.user.Initial())
	image := InfoStyle.Render("No profile picture")
	if m.user.Image != "" {
		image = lipgloss.NewStyle().Foreground(Secondary).Render(m.user.Image)
	}
	b.WriteString(center(avatar + "  " + image))
	b.WriteString("\n\n")

	b.WriteString(m.inputs.view(m.editor.Errors().For))
	b.WriteString("\n\n")

	button := ButtonDisabledStyle.Render("Save changes")
	switch {
	case m.editor.Saving():
		button = ButtonDisabledStyle.Render("Saving...")
	case m.editor.CanSubmit():
		button = ButtonFocusedStyle.Render("Save changes")
	}
	b.WriteString(center(button))
	b.WriteString("\n")

	if msg := m.editor.SaveError(); msg != "" {
		b.WriteString(center(ErrorStyle.Render("❌ " + msg)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter save  •  ctrl+u upload picture  •  esc close")))

	return card(b.String())
}

func (m *ProfileModel) imageView() string {
	var b strings.Builder

	b.WriteString(heading("🖼  Upload Image", "PNG, JPEG or GIF. Larger than 1 MB is scaled down."))
	b.WriteString("\n\n")
	b.WriteString(m.imagePath.view(true, ""))
	b.WriteString("\n\n")

	button := ButtonFocusedStyle.Render("Confirm")
	if m.uploader.Uploading() {
		button = ButtonDisabledStyle.Render("Uploading...")
	}
	b.WriteString(center(ButtonStyle.Render("Cancel") + button))
	b.WriteString("\n")

	if msg := m.uploader.Err(); msg != "" {
		b.WriteString(center(ErrorStyle.Render("❌ " + msg)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("type a file path  •  enter confirm  •  esc cancel")))

	return DialogStyle.Render(b.String())
}
