package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Varun5711/wecare/internal/auth"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/service"
	"github.com/Varun5711/wecare/internal/storage"
)

func newTestRouter(t *testing.T) (http.Handler, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	if err := storage.Seed(store); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	users := service.NewUserService(store, auth.NewJWTManager("test-secret", time.Hour), 10*time.Minute)
	return NewRouter(RouterConfig{
		Users:          users,
		Bookings:       service.NewBookingService(store),
		AllowedOrigins: []string{"*"},
	}), store
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.LoginResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	return resp.Token
}

func TestRouter_GetUserDataRequiresAuth(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/auth/getUserData", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_GetUserDataReturnsPatient(t *testing.T) {
	h, _ := newTestRouter(t)
	token := registerAndLogin(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/auth/getUserData", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.ProfileResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Patient == nil || resp.Patient.Email != "ada@example.com" {
		t.Errorf("unexpected patient %+v", resp.Patient)
	}
	if strings.Contains(rec.Body.String(), "PasswordHash") {
		t.Error("password hash leaked into response")
	}
}

func TestRouter_LoginFailureMessage(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}

	var resp models.ErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Message != "Invalid email or password" {
		t.Errorf("unexpected message '%s'", resp.Message)
	}
}

func TestRouter_DoctorsEnvelope(t *testing.T) {
	h, _ := newTestRouter(t)
	token := registerAndLogin(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/data/speciality?speciality=cardiology", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []models.DoctorSummary `json:"data"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 cardiologists, got %d", len(resp.Data))
	}
}

func TestRouter_BookThenConflict(t *testing.T) {
	h, _ := newTestRouter(t)
	token := registerAndLogin(t, h)

	day := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	req := models.BookingRequest{DoctorID: "doc-card-1", Date: day + "T00:00:00Z", StartTime: "11:00"}

	rec := doJSON(t, h, http.MethodPost, "/api/data/book-appointment", token, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/data/book-appointment", token, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Message != "Slot already booked" {
		t.Errorf("unexpected message '%s'", resp.Message)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/data/your-appointment", token, nil)
	var list struct {
		Data []models.Appointment `json:"data"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&list)
	if len(list.Data) != 1 || list.Data[0].Status != models.StatusPending {
		t.Errorf("unexpected appointments %+v", list.Data)
	}
}

func TestRouter_UploadImage(t *testing.T) {
	h, store := newTestRouter(t)
	token := registerAndLogin(t, h)
	rec, _ := store.GetUserByEmail("ada@example.com")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("image", "me.png")
	_, _ = part.Write([]byte("fake-png"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/doctors/"+rec.ID+"/upload-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out models.ImageUploadResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if !strings.HasPrefix(out.Data.Image, "/uploads/") {
		t.Fatalf("unexpected image path '%s'", out.Data.Image)
	}

	img := doJSON(t, h, http.MethodGet, "/api"+out.Data.Image, "", nil)
	if img.Code != http.StatusOK || img.Body.String() != "fake-png" {
		t.Errorf("expected uploaded bytes back, got %d '%s'", img.Code, img.Body.String())
	}
	if img.Header().Get("Content-Type") != "image/png" {
		t.Errorf("unexpected content type '%s'", img.Header().Get("Content-Type"))
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
