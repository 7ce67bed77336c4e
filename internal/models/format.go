package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// FormatCamelCase turns "generalPhysician" into "General physician".
func FormatCamelCase(text string) string {
	if text == "" {
		return ""
	}
	spaced := camelBoundary.ReplaceAllString(text, "$1 $2")
	return strings.ToUpper(spaced[:1]) + strings.ToLower(spaced[1:])
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders a date as "March 3rd, 2025"; empty or unparseable input gives "-".
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January ") + ordinal(t.Day()) + t.Format(", 2006")
		}
	}
	return "-"
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}
