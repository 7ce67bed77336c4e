package ui

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type textField struct {
	name     string
	label    string
	value    string
	masked   bool
	revealed bool
	digits   bool
	maxLen   int
	readOnly bool
}

// handleKey edits the value and reports whether the key was consumed.
func (f *textField) handleKey(msg tea.KeyMsg) bool {
	if f.readOnly {
		return false
	}
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(f.value); len(r) > 0 {
			f.value = string(r[:len(r)-1])
		}
		return true
	case tea.KeySpace:
		f.insert(" ")
		return true
	case tea.KeyRunes:
		f.insert(string(msg.Runes))
		return true
	}
	return false
}

func (f *textField) insert(s string) {
	for _, r := range s {
		if f.digits && !unicode.IsDigit(r) {
			continue
		}
		if f.maxLen > 0 && len([]rune(f.value)) >= f.maxLen {
			return
		}
		f.value += string(r)
	}
}

func (f *textField) display() string {
	if f.masked && !f.revealed {
		return strings.Repeat("•", len([]rune(f.value)))
	}
	return f.value
}

func (f *textField) view(focused bool, errText string) string {
	label := LabelStyle.Width(20).Render(f.label)
	style := InputStyle
	if focused {
		style = FocusedInputStyle
	}
	if f.readOnly {
		style = style.Foreground(Muted)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, label, style.Width(44).Render(f.display()))
	if errText == "" {
		return center(row)
	}
	return center(row) + "\n" + center(ErrorStyle.Render(errText))
}

// fieldSet is an ordered group of inputs with one focused at a time.
type fieldSet struct {
	fields []*textField
	focus  int
}

func newFieldSet(fields ...*textField) fieldSet {
	return fieldSet{fields: fields}
}

func (s *fieldSet) next() {
	s.focus = (s.focus + 1) % len(s.fields)
}

func (s *fieldSet) prev() {
	s.focus = (s.focus + len(s.fields) - 1) % len(s.fields)
}

func (s *fieldSet) focused() *textField {
	return s.fields[s.focus]
}

func (s *fieldSet) last() bool {
	return s.focus == len(s.fields)-1
}

// handleKey moves focus, toggles password reveal or edits the focused field.
func (s *fieldSet) handleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "tab", "down":
		s.next()
		return true
	case "shift+tab", "up":
		s.prev()
		return true
	case "ctrl+r":
		for _, f := range s.fields {
			if f.masked {
				f.revealed = !f.revealed
			}
		}
		return true
	case "ctrl+l":
		for _, f := range s.fields {
			if !f.readOnly {
				f.value = ""
			}
		}
		return true
	}
	return s.focused().handleKey(msg)
}

// view renders every field, looking up inline errors by field name.
func (s *fieldSet) view(errFor func(string) string) string {
	rows := make([]string, 0, len(s.fields))
	for i, f := range s.fields {
		msg := ""
		if errFor != nil {
			msg = errFor(f.name)
		}
		rows = append(rows, f.view(i == s.focus, msg))
	}
	return strings.Join(rows, "\n")
}
