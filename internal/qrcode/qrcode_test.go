package qrcode

import (
	"strings"
	"testing"

	"github.com/Varun5711/wecare/internal/models"
)

func TestBookingPayload(t *testing.T) {
	appt := models.Appointment{
		ID:        "a1",
		Doctor:    models.DoctorSummary{Name: "Dr. Sarah Thomas"},
		Date:      "2026-10-19T00:00:00Z",
		StartTime: "09:00",
	}

	want := "WECARE|a1|Dr. Sarah Thomas|October 19th, 2026|09:00"
	if got := BookingPayload(appt); got != want {
		t.Errorf("expected '%s', got '%s'", want, got)
	}
}

func TestASCII_HalvesRows(t *testing.T) {
	out, err := ASCII("WECARE|a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	width := len([]rune(lines[0]))
	if width == 0 {
		t.Fatal("expected non-empty QR")
	}
	if len(lines) != (width+1)/2 {
		t.Errorf("expected %d lines for width %d, got %d", (width+1)/2, width, len(lines))
	}
	if !strings.ContainsAny(out, "█▀▄") {
		t.Error("expected block characters")
	}
}
