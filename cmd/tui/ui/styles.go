package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	pageWidth    = 80
	contentWidth = pageWidth - 8
)

var (
	// Hospital violet theme
	Primary   = lipgloss.Color("#7C3AED") // Violet
	Secondary = lipgloss.Color("#A78BFA") // Soft violet
	Accent    = lipgloss.Color("#EC4899") // Pink
	Success   = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	LightCyan = lipgloss.Color("#67E8F9") // Completed
	Muted     = lipgloss.Color("#8B8FA3") // Gray
	Text      = lipgloss.Color("#F5F3FF") // Violet white
	BgDark    = lipgloss.Color("#1E1B4B") // Indigo night
	BgLight   = lipgloss.Color("#2E1065") // Deep violet

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Accent).
			Padding(1, 3)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Padding(0, 2).
			MarginRight(1).
			Bold(true)

	ButtonFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(Accent).
				Padding(0, 2).
				MarginRight(1).
				Bold(true)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Background(BgDark).
				Padding(0, 2).
				MarginRight(1)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(BgLight).
			Padding(0, 2).
			Bold(true).
			Width(pageWidth)

	FooterStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Background(BgDark).
			Padding(0, 2).
			Width(pageWidth)

	StatsStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			PaddingRight(2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	AvatarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Primary).
			Bold(true).
			Padding(0, 1)
)

// BadgeStyle colours an appointment status by its variant name.
func BadgeStyle(variant string) lipgloss.Style {
	color := Muted
	switch variant {
	case "lightCyan":
		color = LightCyan
	case "success":
		color = Success
	case "warning":
		color = Warning
	case "error":
		color = Error
	}
	return lipgloss.NewStyle().
		Foreground(BgDark).
		Background(color).
		Bold(true).
		Padding(0, 1)
}

func center(s string) string {
	return lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center).Render(s)
}

func card(s string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2).
		Width(pageWidth - 4).
		Render(s)
}

func heading(title, subtitle string) string {
	t := lipgloss.NewStyle().Foreground(Primary).Bold(true).Render(title)
	if subtitle == "" {
		return center(t)
	}
	return center(t) + "\n" + center(lipgloss.NewStyle().Foreground(Muted).Render(subtitle))
}

// errorBlock renders a request failure under a form; empty text renders nothing.
func errorBlock(text string) string {
	if text == "" {
		return ""
	}
	return "\n" + center(ErrorStyle.Render("❌ "+text)) + "\n"
}
