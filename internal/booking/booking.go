// Package booking drives the speciality → doctor → slot → submit flow of the
// appointment page. Each backward step clears everything after it.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Varun5711/wecare/internal/api"
	"github.com/Varun5711/wecare/internal/fetch"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/validation"
)

var ErrNoSlot = errors.New("Please select a time slot")

const (
	DoctorsErrorText = "Failed to load doctors. Please try again."
	SlotsErrorText   = "Failed to load time slots. Please try again."
	NoSlotsDayText   = "No time slots available on this day"
	NoSlotsText      = "No time slots available for this doctor."
)

type (
	DoctorsResource = fetch.Resource[[]models.DoctorSummary]
	SlotsResource   = fetch.Resource[[]models.DaySlots]
)

type Flow struct {
	mu      sync.Mutex
	doctors *DoctorsResource
	slots   *SlotsResource

	speciality string
	doctor     *models.DoctorSummary
	slot       *models.SelectedSlot

	submitting bool
	submitErr  string
	modal      bool
	resets     int
}

func New(doctors *DoctorsResource, slots *SlotsResource) *Flow {
	return &Flow{doctors: doctors, slots: slots}
}

func NewFromClient(c *api.Client) *Flow {
	return New(fetch.FromClient[[]models.DoctorSummary](c), fetch.FromClient[[]models.DaySlots](c))
}

func (f *Flow) Doctors() *DoctorsResource {
	return f.doctors
}

func (f *Flow) Slots() *SlotsResource {
	return f.slots
}

// SelectSpeciality clears the doctor and slot and points the doctor list at v.
// The returned ticket, if any, is the one request to run.
func (f *Flow) SelectSpeciality(v string) (fetch.Ticket, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if v == f.speciality {
		return fetch.Ticket{}, false
	}
	f.speciality = v
	f.doctor = nil
	f.slot = nil
	f.slots.SetURL("")

	if v == "" {
		f.doctors.SetURL("")
		return fetch.Ticket{}, false
	}
	return f.doctors.SetURL(api.SpecialityPath(v))
}

// SelectDoctor clears the slot and points the slot list at the doctor. Ids not
// in the loaded doctor list are ignored, as is any pick while that list is
// refetching or failed.
func (f *Flow) SelectDoctor(id string) (fetch.Ticket, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.doctor != nil && f.doctor.ID == id {
		return fetch.Ticket{}, false
	}

	snap := f.doctors.Snapshot()
	if snap.Loading || snap.Err != "" {
		return fetch.Ticket{}, false
	}

	var found *models.DoctorSummary
	for _, d := range snap.Data {
		if d.ID == id {
			d := d
			found = &d
			break
		}
	}
	if found == nil {
		return fetch.Ticket{}, false
	}

	f.doctor = found
	f.slot = nil
	return f.slots.SetURL(api.TimeslotPath(id))
}

// SelectSlot accepts only a slot that is present and available in the loaded
// slot list. Nothing is accepted while the list is refetching or failed.
func (f *Flow) SelectSlot(date, slotTime string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.doctor == nil {
		return false
	}
	snap := f.slots.Snapshot()
	if snap.Loading || snap.Err != "" {
		return false
	}
	for _, day := range snap.Data {
		if day.Date != date {
			continue
		}
		for _, s := range day.Slots {
			if s.Time == slotTime && s.Available {
				f.slot = &models.SelectedSlot{Date: date, Time: slotTime}
				return true
			}
		}
	}
	return false
}

func (f *Flow) Speciality() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.speciality
}

func (f *Flow) Doctor() *models.DoctorSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doctor == nil {
		return nil
	}
	cp := *f.doctor
	return &cp
}

func (f *Flow) Slot() *models.SelectedSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slot == nil {
		return nil
	}
	cp := *f.slot
	return &cp
}

func (f *Flow) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doctor != nil && f.slot != nil && !f.submitting
}

// BeginSubmit builds the booking request and marks the flow as submitting.
// Without a slot it fails with ErrNoSlot and nothing is sent.
func (f *Flow) BeginSubmit(patientID string) (models.BookingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return models.BookingRequest{}, errors.New("booking already in progress")
	}

	form := validation.BookingForm{Speciality: f.speciality}
	if f.doctor != nil {
		form.DoctorID = f.doctor.ID
	}
	if f.slot != nil {
		form.Date, form.Time = f.slot.Date, f.slot.Time
	}
	if err := validation.Validate(form); err != nil {
		if f.slot == nil && f.doctor != nil {
			return models.BookingRequest{}, ErrNoSlot
		}
		return models.BookingRequest{}, err
	}

	date, err := isoDate(f.slot.Date)
	if err != nil {
		return models.BookingRequest{}, err
	}

	f.submitting = true
	f.submitErr = ""
	return models.BookingRequest{
		PatientID: patientID,
		DoctorID:  f.doctor.ID,
		Date:      date,
		StartTime: f.slot.Time,
	}, nil
}

// SubmitSucceeded opens the confirmation modal and resets the form.
func (f *Flow) SubmitSucceeded() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false
	f.submitErr = ""
	f.modal = true
	f.resets++
	f.speciality = ""
	f.doctor = nil
	f.slot = nil
	f.doctors.SetURL("")
	f.slots.SetURL("")
}

// SubmitFailed keeps every selection so the user can retry.
func (f *Flow) SubmitFailed(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false
	f.submitErr = api.Message(err)
	f.modal = false
}

// Submit runs BeginSubmit, book and the matching completion in one call.
func (f *Flow) Submit(ctx context.Context, patientID string, book func(context.Context, models.BookingRequest) (*models.BookingResponse, error)) (*models.BookingResponse, error) {
	req, err := f.BeginSubmit(patientID)
	if err != nil {
		return nil, err
	}

	resp, err := book(ctx, req)
	if err != nil {
		f.SubmitFailed(err)
		return nil, err
	}
	f.SubmitSucceeded()
	return resp, nil
}

func (f *Flow) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *Flow) SubmitError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitErr
}

func (f *Flow) ModalOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modal
}

func (f *Flow) CloseModal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modal = false
}

// ResetCount increases by one for every successful booking.
func (f *Flow) ResetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

func (f *Flow) DoctorsEmptyText() string {
	return fmt.Sprintf("No doctors in %s", f.Speciality())
}

// isoDate renders a slot date as the UTC midnight timestamp the API expects.
func isoDate(s string) (string, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("invalid slot date %q", s)
}
