package models

import (
	"strings"
	"unicode/utf8"
)

type DoctorSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Image      string `json:"image,omitempty"`
	Speciality string `json:"speciality,omitempty"`
}

func (d DoctorSummary) Initial() string {
	return initial(d.Name)
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// DaySlots is one tab of the slot picker, computed server side.
type DaySlots struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Slots []Slot `json:"slots"`
}

type SelectedSlot struct {
	Date string
	Time string
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}
