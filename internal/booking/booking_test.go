package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Varun5711/wecare/internal/api"
	"github.com/Varun5711/wecare/internal/fetch"
	"github.com/Varun5711/wecare/internal/models"
)

type recorder struct {
	mu   sync.Mutex
	urls []string
}

func (r *recorder) add(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.urls)
}

var cardiologists = []models.DoctorSummary{
	{ID: "d1", Name: "Dr. Sarah Thomas", Speciality: "cardiology"},
	{ID: "d2", Name: "Dr. Vikram Shah", Speciality: "cardiology"},
}

var week = []models.DaySlots{
	{Date: "2026-10-19", Day: "Monday", Slots: []models.Slot{{Time: "09:00", Available: true}, {Time: "09:30", Available: false}}},
	{Date: "2026-10-25", Day: "Sunday", Slots: []models.Slot{}},
}

type fixture struct {
	flow    *Flow
	doctors *recorder
	slots   *recorder
}

func newFixture(doctorsErr, slotsErr error) *fixture {
	fx := &fixture{doctors: &recorder{}, slots: &recorder{}}
	doctors := fetch.New(func(ctx context.Context, url string) ([]models.DoctorSummary, error) {
		fx.doctors.add(url)
		if doctorsErr != nil {
			return nil, doctorsErr
		}
		if url == api.SpecialityPath("cardiology") {
			return cardiologists, nil
		}
		return []models.DoctorSummary{}, nil
	})
	slots := fetch.New(func(ctx context.Context, url string) ([]models.DaySlots, error) {
		fx.slots.add(url)
		if slotsErr != nil {
			return nil, slotsErr
		}
		return week, nil
	})
	fx.flow = New(doctors, slots)
	return fx
}

func (fx *fixture) pickSpeciality(v string) {
	if t, ok := fx.flow.SelectSpeciality(v); ok {
		fx.flow.Doctors().Load(t)
	}
}

func (fx *fixture) pickDoctor(id string) {
	if t, ok := fx.flow.SelectDoctor(id); ok {
		fx.flow.Slots().Load(t)
	}
}

func (fx *fixture) ready() {
	fx.pickSpeciality("cardiology")
	fx.pickDoctor("d1")
	fx.flow.SelectSlot("2026-10-19", "09:00")
}

func TestSelectSpeciality_OneRequestPerChange(t *testing.T) {
	fx := newFixture(nil, nil)

	fx.pickSpeciality("cardiology")
	fx.pickSpeciality("cardiology")

	if fx.doctors.count() != 1 {
		t.Errorf("expected 1 doctors request, got %d", fx.doctors.count())
	}
	if fx.doctors.urls[0] != "/data/speciality?speciality=cardiology" {
		t.Errorf("unexpected url '%s'", fx.doctors.urls[0])
	}

	fx.pickSpeciality("neurology")
	if fx.doctors.count() != 2 {
		t.Errorf("expected 2 doctors requests, got %d", fx.doctors.count())
	}
}

func TestSelectSpeciality_ClearsDoctorAndSlot(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.ready()

	fx.pickSpeciality("neurology")

	if fx.flow.Doctor() != nil || fx.flow.Slot() != nil {
		t.Error("expected doctor and slot to be cleared")
	}
	if fx.flow.Slots().URL() != "" {
		t.Errorf("expected slots to go idle, got '%s'", fx.flow.Slots().URL())
	}
	if fx.flow.CanSubmit() {
		t.Error("expected submit to be disabled")
	}
}

func TestSelectDoctor_LoadsSlotsAndClearsSlot(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.ready()

	fx.pickDoctor("d2")

	if fx.flow.Slot() != nil {
		t.Error("expected slot to be cleared")
	}
	if fx.slots.count() != 2 {
		t.Errorf("expected 2 slot requests, got %d", fx.slots.count())
	}
	if fx.slots.urls[1] != "/data/timeslot/d2" {
		t.Errorf("unexpected url '%s'", fx.slots.urls[1])
	}
}

func TestSelectDoctor_UnknownIgnored(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.pickSpeciality("cardiology")

	if _, ok := fx.flow.SelectDoctor("ghost"); ok {
		t.Error("expected unknown doctor to be ignored")
	}
	if fx.flow.Doctor() != nil {
		t.Error("expected no doctor")
	}
}

func TestSelectSlot_OnlyAvailable(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.pickSpeciality("cardiology")
	fx.pickDoctor("d1")

	if fx.flow.SelectSlot("2026-10-19", "09:30") {
		t.Error("expected unavailable slot to be rejected")
	}
	if fx.flow.SelectSlot("2026-10-20", "09:00") {
		t.Error("expected unknown day to be rejected")
	}
	if !fx.flow.SelectSlot("2026-10-19", "09:00") {
		t.Error("expected available slot to be accepted")
	}
	if !fx.flow.CanSubmit() {
		t.Error("expected submit to be enabled")
	}
}

func TestSelectDoctor_RejectedWhileDoctorsRefetch(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.pickSpeciality("cardiology")

	tk, ok := fx.flow.SelectSpeciality("neurology")
	if !ok {
		t.Fatal("expected a doctors request")
	}
	if _, ok := fx.flow.SelectDoctor("d1"); ok {
		t.Error("expected stale doctor to be rejected while loading")
	}
	if fx.flow.Doctor() != nil {
		t.Error("expected no doctor")
	}

	fx.flow.Doctors().Load(tk)
	if _, ok := fx.flow.SelectDoctor("d1"); ok {
		t.Error("expected doctor outside the new list to be rejected")
	}
}

func TestSelectDoctor_RejectedAfterFailedRefetch(t *testing.T) {
	var fail bool
	doctors := fetch.New(func(ctx context.Context, url string) ([]models.DoctorSummary, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return cardiologists, nil
	})
	slots := fetch.New(func(ctx context.Context, url string) ([]models.DaySlots, error) {
		return week, nil
	})
	flow := New(doctors, slots)
	if tk, ok := flow.SelectSpeciality("cardiology"); ok {
		doctors.Load(tk)
	}

	fail = true
	if tk, ok := doctors.Refetch(); ok {
		doctors.Load(tk)
	}
	if len(doctors.Data()) != 2 {
		t.Fatalf("expected stale doctors to be kept, got %d", len(doctors.Data()))
	}
	if _, ok := flow.SelectDoctor("d1"); ok {
		t.Error("expected doctor to be rejected while the list is failed")
	}

	fail = false
	if tk, ok := doctors.Refetch(); ok {
		doctors.Load(tk)
	}
	if _, ok := flow.SelectDoctor("d1"); !ok {
		t.Error("expected doctor to be accepted after recovery")
	}
}

func TestSelectSlot_RejectedWhileSlotsRefetch(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.pickSpeciality("cardiology")
	fx.pickDoctor("d1")

	tk, ok := fx.flow.SelectDoctor("d2")
	if !ok {
		t.Fatal("expected a slots request")
	}
	if fx.flow.SelectSlot("2026-10-19", "09:00") {
		t.Error("expected stale slot to be rejected while loading")
	}
	if fx.flow.CanSubmit() {
		t.Error("expected submit to be disabled")
	}

	fx.flow.Slots().Load(tk)
	if !fx.flow.SelectSlot("2026-10-19", "09:00") {
		t.Error("expected slot to be accepted once loaded")
	}
}

func TestSelectSlot_RejectedAfterFailedRefetch(t *testing.T) {
	var fail bool
	doctors := fetch.New(func(ctx context.Context, url string) ([]models.DoctorSummary, error) {
		return cardiologists, nil
	})
	slots := fetch.New(func(ctx context.Context, url string) ([]models.DaySlots, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return week, nil
	})
	flow := New(doctors, slots)
	if tk, ok := flow.SelectSpeciality("cardiology"); ok {
		doctors.Load(tk)
	}
	if tk, ok := flow.SelectDoctor("d1"); ok {
		slots.Load(tk)
	}

	fail = true
	if tk, ok := slots.Refetch(); ok {
		slots.Load(tk)
	}
	if flow.SelectSlot("2026-10-19", "09:00") {
		t.Error("expected slot to be rejected while the list is failed")
	}
	if flow.CanSubmit() {
		t.Error("expected submit to be disabled")
	}
}

func TestBeginSubmit_WithoutSlot(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.pickSpeciality("cardiology")
	fx.pickDoctor("d1")

	_, err := fx.flow.BeginSubmit("p1")
	if !errors.Is(err, ErrNoSlot) {
		t.Fatalf("expected ErrNoSlot, got %v", err)
	}
	if api.Message(err) != "Please select a time slot" {
		t.Errorf("unexpected message '%s'", api.Message(err))
	}
	if fx.flow.Submitting() {
		t.Error("expected not submitting")
	}
}

func TestBeginSubmit_BuildsRequest(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.ready()

	req, err := fx.flow.BeginSubmit("p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.BookingRequest{PatientID: "p1", DoctorID: "d1", Date: "2026-10-19T00:00:00Z", StartTime: "09:00"}
	if req != want {
		t.Errorf("expected %+v, got %+v", want, req)
	}
	if fx.flow.CanSubmit() {
		t.Error("expected submit disabled while submitting")
	}
}

func TestSubmit_SuccessOpensModalAndResets(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.ready()

	_, err := fx.flow.Submit(context.Background(), "p1", func(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
		return &models.BookingResponse{Message: "Appointment booked successfully"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !fx.flow.ModalOpen() {
		t.Error("expected modal to open")
	}
	if fx.flow.ResetCount() != 1 {
		t.Errorf("expected reset count 1, got %d", fx.flow.ResetCount())
	}
	if fx.flow.Speciality() != "" || fx.flow.Doctor() != nil || fx.flow.Slot() != nil {
		t.Error("expected form to be reset")
	}

	fx.flow.CloseModal()
	if fx.flow.ModalOpen() {
		t.Error("expected modal to close")
	}
}

func TestSubmit_FailureKeepsSelection(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.ready()

	_, err := fx.flow.Submit(context.Background(), "p1", func(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
		return nil, &api.Error{Status: 409, Message: "Slot already booked"}
	})
	if err == nil {
		t.Fatal("expected error")
	}

	if fx.flow.SubmitError() != "Slot already booked" {
		t.Errorf("unexpected error text '%s'", fx.flow.SubmitError())
	}
	if fx.flow.ModalOpen() {
		t.Error("expected modal to stay closed")
	}
	if fx.flow.Slot() == nil || fx.flow.Doctor() == nil {
		t.Error("expected selections to be kept")
	}
	if !fx.flow.CanSubmit() {
		t.Error("expected retry to be possible")
	}
}

func TestDoctorsView_Empty(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.pickSpeciality("nephrology")

	view := fx.flow.DoctorsView()
	if view.Status != StatusEmpty || view.Text != "No doctors in nephrology" {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestDoctorsView_Error(t *testing.T) {
	fx := newFixture(errors.New("boom"), nil)
	fx.pickSpeciality("cardiology")

	view := fx.flow.DoctorsView()
	if view.Status != StatusError || view.Text != DoctorsErrorText {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestSlotsView_EmptyDayAndError(t *testing.T) {
	fx := newFixture(nil, nil)
	fx.pickSpeciality("cardiology")
	fx.pickDoctor("d1")

	view := fx.flow.SlotsView()
	if view.Status != StatusReady || len(view.Days) != 2 {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.Days[0].Empty != "" {
		t.Errorf("expected Monday to have slots, got '%s'", view.Days[0].Empty)
	}
	if view.Days[1].Empty != "No time slots available on this day" {
		t.Errorf("unexpected empty text '%s'", view.Days[1].Empty)
	}

	failing := newFixture(nil, errors.New("boom"))
	failing.pickSpeciality("cardiology")
	failing.pickDoctor("d1")
	if v := failing.flow.SlotsView(); v.Status != StatusError || v.Text != SlotsErrorText {
		t.Errorf("unexpected error view %+v", v)
	}
}

func TestSlotsView_NoDays(t *testing.T) {
	doctors := fetch.New(func(ctx context.Context, url string) ([]models.DoctorSummary, error) {
		return cardiologists, nil
	})
	slots := fetch.New(func(ctx context.Context, url string) ([]models.DaySlots, error) {
		return []models.DaySlots{}, nil
	})
	flow := New(doctors, slots)
	if tk, ok := flow.SelectSpeciality("cardiology"); ok {
		doctors.Load(tk)
	}
	if tk, ok := flow.SelectDoctor("d1"); ok {
		slots.Load(tk)
	}

	if v := flow.SlotsView(); v.Status != StatusEmpty || v.Text != "No time slots available for this doctor." {
		t.Errorf("unexpected view %+v", v)
	}
}
