package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/storage"
	"github.com/google/uuid"
)

const (
	dateLayout   = "2006-01-02"
	bookingDays  = 7
	firstSlot    = 9 * time.Hour
	lastSlot     = 16*time.Hour + 30*time.Minute
	slotInterval = 30 * time.Minute
)

type BookingService struct {
	store storage.Storage
	log   *logger.Logger
	now   func() time.Time
}

func NewBookingService(store storage.Storage) *BookingService {
	return &BookingService{
		store: store,
		log:   logger.New("booking-service"),
		now:   time.Now,
	}
}

func (s *BookingService) Doctors(ctx context.Context, speciality string) ([]models.DoctorSummary, error) {
	if speciality == "" {
		return nil, newError(ErrInvalidArgument, "Speciality is required")
	}
	doctors, err := s.store.DoctorsBySpeciality(speciality)
	if err != nil {
		return nil, errorf(ErrInternal, "failed to list doctors: %v", err)
	}
	return doctors, nil
}

// TimeSlots lists the next seven days starting today. Sundays have no slots.
func (s *BookingService) TimeSlots(ctx context.Context, doctorID string) ([]models.DaySlots, error) {
	if _, err := s.store.GetDoctor(doctorID); err != nil {
		return nil, newError(ErrNotFound, "Doctor not found")
	}

	booked, err := s.store.BookedSlots(doctorID)
	if err != nil {
		return nil, errorf(ErrInternal, "failed to load bookings: %v", err)
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	days := make([]models.DaySlots, 0, bookingDays)
	for i := 0; i < bookingDays; i++ {
		day := today.AddDate(0, 0, i)
		entry := models.DaySlots{
			Date:  day.Format(dateLayout),
			Day:   day.Weekday().String(),
			Slots: []models.Slot{},
		}

		if day.Weekday() != time.Sunday {
			for offset := firstSlot; offset <= lastSlot; offset += slotInterval {
				start := day.Add(offset)
				label := start.Format("15:04")
				entry.Slots = append(entry.Slots, models.Slot{
					Time:      label,
					Available: start.After(now) && !booked[storage.SlotKey(day, label)],
				})
			}
		}
		days = append(days, entry)
	}
	return days, nil
}

func (s *BookingService) Book(ctx context.Context, callerID string, req models.BookingRequest) (*models.Appointment, error) {
	if req.PatientID != "" && req.PatientID != callerID {
		return nil, newError(ErrUnauthenticated, "You can only book for yourself")
	}
	if req.DoctorID == "" || req.Date == "" || req.StartTime == "" {
		return nil, newError(ErrInvalidArgument, "doctorId, date and startTime are required")
	}

	date, err := parseDay(req.Date)
	if err != nil {
		return nil, newError(ErrInvalidArgument, "Invalid date")
	}
	if _, err := time.Parse("15:04", req.StartTime); err != nil {
		return nil, newError(ErrInvalidArgument, "Invalid start time")
	}

	doctor, err := s.store.GetDoctor(req.DoctorID)
	if err != nil {
		return nil, newError(ErrNotFound, "Doctor not found")
	}

	rec := &storage.AppointmentRecord{
		ID:        uuid.NewString(),
		PatientID: callerID,
		DoctorID:  doctor.ID,
		Date:      date,
		StartTime: req.StartTime,
		Status:    models.StatusPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.SaveAppointment(rec); err != nil {
		if errors.Is(err, storage.ErrSlotTaken) {
			return nil, newError(ErrConflict, "Slot already booked")
		}
		return nil, errorf(ErrInternal, "failed to save appointment: %v", err)
	}

	s.log.Info("Booked %s with %s on %s at %s", callerID, doctor.Name, date.Format(dateLayout), req.StartTime)
	return toAppointment(rec, *doctor), nil
}

// Appointments lists a patient's bookings, most recent day first.
func (s *BookingService) Appointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	records, err := s.store.AppointmentsByPatient(patientID)
	if err != nil {
		return nil, errorf(ErrInternal, "failed to list appointments: %v", err)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].StartTime < records[j].StartTime
	})

	out := make([]models.Appointment, 0, len(records))
	for _, rec := range records {
		doctor, err := s.store.GetDoctor(rec.DoctorID)
		if err != nil {
			s.log.Warn("Appointment %s references unknown doctor %s", rec.ID, rec.DoctorID)
			doctor = &models.DoctorSummary{ID: rec.DoctorID}
		}
		out = append(out, *toAppointment(rec, *doctor))
	}
	return out, nil
}

func toAppointment(rec *storage.AppointmentRecord, doctor models.DoctorSummary) *models.Appointment {
	return &models.Appointment{
		ID:        rec.ID,
		Doctor:    doctor,
		Date:      rec.Date.Format(time.RFC3339),
		StartTime: rec.StartTime,
		Status:    rec.Status,
	}
}

// parseDay accepts an RFC 3339 timestamp or a bare date and truncates it to the
// UTC calendar day.
func parseDay(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
