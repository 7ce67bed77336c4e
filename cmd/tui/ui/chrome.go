package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/wecare/internal/session"
)

const brand = "🙏 We care hospitals"

func headerView(snap session.Snapshot) string {
	left := lipgloss.NewStyle().Foreground(Text).Bold(true).Render(brand)

	var right string
	if snap.User != nil {
		right = AvatarStyle.Render(snap.User.Initial()) + " " +
			lipgloss.NewStyle().Foreground(Success).Render(snap.User.Name) +
			InfoStyle.Render("  ctrl+n menu")
	} else {
		right = ButtonStyle.Render("Login ➜") + InfoStyle.Render(" L  ") +
			ButtonStyle.Render("Register") + InfoStyle.Render(" R")
	}

	gap := pageWidth - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return HeaderStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func footerView() string {
	left := "Made with ❤️ by Venkatesh"
	right := "Register as doctor ?"
	gap := pageWidth - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return FooterStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func preloaderView() string {
	return lipgloss.NewStyle().
		Width(pageWidth).
		Height(20).
		Align(lipgloss.Center, lipgloss.Center).
		Render(TitleStyle.Render(brand) + "\n\n" + InfoStyle.Render("Loading..."))
}
