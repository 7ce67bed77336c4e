package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/storage"
)

// 2026-10-17 is a Saturday.
var fixedNow = time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

func newTestBookingService(t *testing.T) *BookingService {
	t.Helper()
	store := storage.NewMemoryStorage()
	if err := storage.Seed(store); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	svc := NewBookingService(store)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestBookingService_TimeSlots(t *testing.T) {
	svc := newTestBookingService(t)

	days, err := svc.TimeSlots(context.Background(), "doc-card-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0].Date != "2026-10-17" || days[0].Day != "Saturday" {
		t.Errorf("unexpected first day %+v", days[0])
	}
	if len(days[0].Slots) != 16 {
		t.Errorf("expected 16 slots, got %d", len(days[0].Slots))
	}
	if days[0].Slots[0].Time != "09:00" || days[0].Slots[15].Time != "16:30" {
		t.Errorf("unexpected slot range %s-%s", days[0].Slots[0].Time, days[0].Slots[15].Time)
	}
	if days[1].Day != "Sunday" || len(days[1].Slots) != 0 {
		t.Errorf("expected empty Sunday, got %+v", days[1])
	}
}

func TestBookingService_PastSlotsUnavailable(t *testing.T) {
	svc := newTestBookingService(t)
	svc.now = func() time.Time { return time.Date(2026, 10, 17, 12, 15, 0, 0, time.UTC) }

	days, _ := svc.TimeSlots(context.Background(), "doc-card-1")
	for _, slot := range days[0].Slots {
		if slot.Time <= "12:00" && slot.Available {
			t.Errorf("expected %s to be unavailable", slot.Time)
		}
		if slot.Time >= "12:30" && !slot.Available {
			t.Errorf("expected %s to be available", slot.Time)
		}
	}
}

func TestBookingService_BookConflict(t *testing.T) {
	svc := newTestBookingService(t)
	ctx := context.Background()
	req := models.BookingRequest{DoctorID: "doc-card-1", Date: "2026-10-19T00:00:00Z", StartTime: "10:00"}

	appt, err := svc.Book(ctx, "p1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != models.StatusPending {
		t.Errorf("expected PENDING, got %s", appt.Status)
	}
	if appt.Doctor.Name != "Dr. Sarah Thomas" {
		t.Errorf("expected doctor summary, got %+v", appt.Doctor)
	}

	_, err = svc.Book(ctx, "p2", req)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err.Error() != "Slot already booked" {
		t.Errorf("unexpected message '%s'", err.Error())
	}

	days, _ := svc.TimeSlots(ctx, "doc-card-1")
	for _, slot := range days[2].Slots {
		if slot.Time == "10:00" && slot.Available {
			t.Error("expected booked slot to be unavailable")
		}
	}
}

func TestBookingService_BookForSomeoneElse(t *testing.T) {
	svc := newTestBookingService(t)

	_, err := svc.Book(context.Background(), "p1", models.BookingRequest{PatientID: "p2", DoctorID: "doc-card-1", Date: "2026-10-19", StartTime: "10:00"})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestBookingService_AppointmentsNewestFirst(t *testing.T) {
	svc := newTestBookingService(t)
	ctx := context.Background()

	_, _ = svc.Book(ctx, "p1", models.BookingRequest{DoctorID: "doc-card-1", Date: "2026-10-19", StartTime: "10:00"})
	_, _ = svc.Book(ctx, "p1", models.BookingRequest{DoctorID: "doc-neuro-1", Date: "2026-10-21", StartTime: "09:00"})
	_, _ = svc.Book(ctx, "p2", models.BookingRequest{DoctorID: "doc-neuro-1", Date: "2026-10-21", StartTime: "09:30"})

	appts, err := svc.Appointments(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appts))
	}
	if appts[0].Date != "2026-10-21T00:00:00Z" {
		t.Errorf("expected newest first, got %s", appts[0].Date)
	}
}

func TestBookingService_DoctorsRequireSpeciality(t *testing.T) {
	svc := newTestBookingService(t)

	if _, err := svc.Doctors(context.Background(), ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	doctors, err := svc.Doctors(context.Background(), "nephrology")
	if err != nil || len(doctors) != 0 {
		t.Errorf("expected empty nephrology list, got %v, %v", doctors, err)
	}
}
