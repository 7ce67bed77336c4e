package booking

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/Varun5711/wecare/internal/api"
	"github.com/Varun5711/wecare/internal/config"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/sandbox"
	"github.com/Varun5711/wecare/internal/tokenstore"
)

func firstAvailable(days []models.DaySlots) (string, string, bool) {
	for _, d := range days {
		for _, s := range d.Slots {
			if s.Available {
				return d.Date, s.Time, true
			}
		}
	}
	return "", "", false
}

func TestFlow_AgainstSandbox(t *testing.T) {
	sb, err := sandbox.New(config.SandboxConfig{JWTSecret: "booking-test"}, nil)
	if err != nil {
		t.Fatalf("sandbox failed: %v", err)
	}
	srv := httptest.NewServer(sb.Handler)
	defer srv.Close()

	ctx := context.Background()
	_ = sb.Users.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	token, err := sb.Users.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	patientID, _ := sb.Users.ValidateToken(token)

	tokens := tokenstore.NewMemoryStore()
	tokens.Set(token)
	client := api.NewClient(srv.URL+"/api", tokens)
	flow := NewFromClient(client)

	if tk, ok := flow.SelectSpeciality("cardiology"); ok {
		flow.Doctors().Load(tk)
	}
	if v := flow.DoctorsView(); v.Status != StatusReady {
		t.Fatalf("expected doctors, got %+v", v)
	}
	if tk, ok := flow.SelectDoctor("doc-card-1"); ok {
		flow.Slots().Load(tk)
	}

	date, slotTime, ok := firstAvailable(flow.Slots().Data())
	if !ok {
		t.Skip("no bookable slot left this week")
	}
	if !flow.SelectSlot(date, slotTime) {
		t.Fatalf("expected %s %s to be selectable", date, slotTime)
	}

	resp, err := flow.Submit(ctx, patientID, client.BookAppointment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "Appointment booked successfully" || !flow.ModalOpen() {
		t.Errorf("unexpected result %+v, modal=%v", resp, flow.ModalOpen())
	}

	_, err = client.BookAppointment(ctx, models.BookingRequest{PatientID: patientID, DoctorID: "doc-card-1", Date: date, StartTime: slotTime})
	if api.StatusCode(err) != 409 || api.Message(err) != "Slot already booked" {
		t.Errorf("expected 409 Slot already booked, got %d %q", api.StatusCode(err), api.Message(err))
	}

	appts, err := client.Appointments(ctx)
	if err != nil || len(appts) != 1 {
		t.Errorf("expected one appointment, got %v, %v", appts, err)
	}
}

func TestFlow_NephrologyEmptyAgainstSandbox(t *testing.T) {
	sb, _ := sandbox.New(config.SandboxConfig{JWTSecret: "booking-test"}, nil)
	srv := httptest.NewServer(sb.Handler)
	defer srv.Close()

	ctx := context.Background()
	_ = sb.Users.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	token, _ := sb.Users.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	tokens := tokenstore.NewMemoryStore()
	tokens.Set(token)

	flow := NewFromClient(api.NewClient(srv.URL+"/api", tokens))
	if tk, ok := flow.SelectSpeciality("nephrology"); ok {
		flow.Doctors().Load(tk)
	}

	if v := flow.DoctorsView(); v.Text != "No doctors in nephrology" {
		t.Errorf("unexpected view %+v", v)
	}
}
