// Package qrcode renders booking confirmations as terminal QR codes.
package qrcode

import (
	"fmt"
	"strings"

	"github.com/Varun5711/wecare/internal/models"
	"github.com/skip2/go-qrcode"
)

// BookingPayload is the text encoded for a confirmed appointment.
func BookingPayload(appt models.Appointment) string {
	parts := []string{"WECARE", appt.ID, appt.Doctor.Name, models.FormatDate(appt.Date), appt.StartTime}
	return strings.Join(parts, "|")
}

// ASCII renders payload with half-block characters so that two QR rows share
// one terminal line.
func ASCII(payload string) (string, error) {
	qr, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	bitmap := qr.Bitmap()

	var sb strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		for x := 0; x < len(bitmap[y]); x++ {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

// Booking renders the confirmation QR for appt.
func Booking(appt models.Appointment) (string, error) {
	return ASCII(BookingPayload(appt))
}
