package models

import "testing"

func TestFormatCamelCase(t *testing.T) {
	cases := map[string]string{
		"generalPhysician": "General physician",
		"cardiology":       "Cardiology",
		"":                 "",
		"aB":               "A b",
	}

	for in, want := range cases {
		if got := FormatCamelCase(in); got != want {
			t.Errorf("FormatCamelCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2025-03-03T00:00:00.000Z": "March 3rd, 2025",
		"2025-01-01":               "January 1st, 2025",
		"2025-02-22T10:00:00Z":     "February 22nd, 2025",
		"2025-06-11":               "June 11th, 2025",
		"2025-06-13":               "June 13th, 2025",
		"2025-06-21":               "June 21st, 2025",
		"":                         "-",
		"not a date":               "-",
	}

	for in, want := range cases {
		if got := FormatDate(in); got != want {
			t.Errorf("FormatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusVariant(t *testing.T) {
	cases := map[Status]string{
		StatusCompleted: "lightCyan",
		StatusAccepted:  "success",
		StatusPending:   "warning",
		StatusRejected:  "error",
		Status("LOST"):  "default",
	}

	for status, want := range cases {
		if got := status.Variant(); got != want {
			t.Errorf("%s.Variant() = %q, want %q", status, got, want)
		}
	}
}

func TestInitial(t *testing.T) {
	u := &User{Name: "  ada lovelace"}
	if got := u.Initial(); got != "A" {
		t.Errorf("expected 'A', got '%s'", got)
	}

	d := DoctorSummary{}
	if got := d.Initial(); got != "" {
		t.Errorf("expected empty initial, got '%s'", got)
	}
}

func TestLookupSpeciality(t *testing.T) {
	s, ok := LookupSpeciality("cardiology")
	if !ok || s.Label != "Cardiology" {
		t.Errorf("expected Cardiology, got %+v (found=%v)", s, ok)
	}

	if _, ok := LookupSpeciality("astrology"); ok {
		t.Error("expected unknown speciality to be missing")
	}

	if len(Specialities) != 11 {
		t.Errorf("expected 11 specialities, got %d", len(Specialities))
	}
}
