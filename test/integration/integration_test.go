package integration

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/Varun5711/wecare/internal/api"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/tokenstore"
)

var (
	sandboxURL       = getEnv("SANDBOX_URL", "http://localhost:8090")
	testUserEmail    = fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
	testUserPassword = "testPassword123"
	tokens           = tokenstore.NewMemoryStore()
	client           = api.NewClient(sandboxURL+"/api", tokens, api.WithTimeout(10*time.Second))
	userID           string
	doctorID         string
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		fmt.Println("Skipping integration tests. Set INTEGRATION_TEST=true to run.")
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func TestHealthCheck(t *testing.T) {
	resp, err := http.Get(sandboxURL + "/health")
	if err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestUserRegistration(t *testing.T) {
	_, err := client.Register(context.Background(), models.RegisterRequest{
		Name:     "Test User",
		Email:    testUserEmail,
		Password: testUserPassword,
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
}

func TestUserLogin(t *testing.T) {
	resp, err := client.Login(context.Background(), models.LoginRequest{
		Email:    testUserEmail,
		Password: testUserPassword,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected auth token in response")
	}
	if err := tokens.Set(resp.Token); err != nil {
		t.Fatalf("failed to store token: %v", err)
	}

	user, err := client.GetUserData(context.Background())
	if err != nil {
		t.Fatalf("get user data failed: %v", err)
	}
	if user.Email != testUserEmail {
		t.Errorf("expected email '%s', got '%s'", testUserEmail, user.Email)
	}
	userID = user.ID
}

func TestLoginWrongPassword(t *testing.T) {
	anon := api.NewClient(sandboxURL+"/api", tokenstore.NewMemoryStore())

	_, err := anon.Login(context.Background(), models.LoginRequest{Email: testUserEmail, Password: "nope-nope"})
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if api.StatusCode(err) != http.StatusUnauthorized && api.StatusCode(err) != http.StatusBadRequest {
		t.Errorf("expected status 401 or 400, got %d", api.StatusCode(err))
	}
}

func TestUpdateProfile(t *testing.T) {
	if userID == "" {
		t.Skip("no signed in user available")
	}

	_, err := client.UpdateProfile(context.Background(), userID, models.ProfileUpdateRequest{
		Name:        "Test Patient",
		PhoneNumber: "9876543210",
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}

	user, err := client.GetUserData(context.Background())
	if err != nil {
		t.Fatalf("get user data failed: %v", err)
	}
	if user.Name != "Test Patient" {
		t.Errorf("expected name 'Test Patient', got '%s'", user.Name)
	}
}

func TestListDoctors(t *testing.T) {
	if userID == "" {
		t.Skip("no signed in user available")
	}

	doctors, err := client.Doctors(context.Background(), "cardiology")
	if err != nil {
		t.Fatalf("list doctors failed: %v", err)
	}
	if len(doctors) == 0 {
		t.Fatal("expected cardiology doctors")
	}
	doctorID = doctors[0].ID
}

func TestBookAppointment(t *testing.T) {
	if doctorID == "" {
		t.Skip("no doctor available")
	}

	days, err := client.TimeSlots(context.Background(), doctorID)
	if err != nil {
		t.Fatalf("list time slots failed: %v", err)
	}

	var date, start string
	for _, d := range days {
		for _, s := range d.Slots {
			if s.Available && date == "" {
				date, start = d.Date, s.Time
			}
		}
	}
	if date == "" {
		t.Skip("no free slot in the booking window")
	}

	_, err = client.BookAppointment(context.Background(), models.BookingRequest{
		PatientID: userID,
		DoctorID:  doctorID,
		Date:      date,
		StartTime: start,
	})
	if err != nil {
		t.Fatalf("book appointment failed: %v", err)
	}

	appointments, err := client.Appointments(context.Background())
	if err != nil {
		t.Fatalf("list appointments failed: %v", err)
	}

	found := false
	for _, a := range appointments {
		if a.Date == date && a.StartTime == start && a.Doctor.ID == doctorID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected appointment on %s at %s in list", date, start)
	}
}

func TestUnauthorizedAccess(t *testing.T) {
	anon := api.NewClient(sandboxURL+"/api", tokenstore.NewMemoryStore())

	_, err := anon.Appointments(context.Background())
	if api.StatusCode(err) != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", api.StatusCode(err))
	}
}
