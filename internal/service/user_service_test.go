package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Varun5711/wecare/internal/auth"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/storage"
)

func newTestUserService() (*UserService, *storage.MemoryStorage) {
	store := storage.NewMemoryStorage()
	svc := NewUserService(store, auth.NewJWTManager("test-secret", time.Hour), 10*time.Minute)
	return svc, store
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	err := svc.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}

	user, err := svc.Profile(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Ada" || user.Role != RolePatient {
		t.Errorf("unexpected profile %+v", user)
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()
	req := models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}

	_ = svc.Register(ctx, req)
	err := svc.Register(ctx, req)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserService_RegisterShortPassword(t *testing.T) {
	svc, _ := newTestUserService()

	err := svc.Register(context.Background(), models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "123"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()
	_ = svc.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})

	_, err := svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "wrong!!"})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
	if err.Error() != "Invalid email or password" {
		t.Errorf("unexpected message '%s'", err.Error())
	}
}

func TestUserService_UpdateProfileOnlySelf(t *testing.T) {
	svc, store := newTestUserService()
	ctx := context.Background()
	_ = svc.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	rec, _ := store.GetUserByEmail("ada@example.com")

	if _, err := svc.UpdateProfile(ctx, "someone-else", rec.ID, models.ProfileUpdateRequest{Name: "Eve"}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}

	user, err := svc.UpdateProfile(ctx, rec.ID, rec.ID, models.ProfileUpdateRequest{Name: "Ada L", PhoneNumber: "0123456789"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Ada L" || user.PhoneNumber != "0123456789" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestUserService_PasswordRecovery(t *testing.T) {
	svc, store := newTestUserService()
	ctx := context.Background()
	_ = svc.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})

	reset := models.ResetPasswordRequest{Email: "ada@example.com", NewPassword: "newpass", ConfirmPassword: "newpass"}
	if err := svc.ResetPassword(ctx, reset); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected reset without OTP to fail, got %v", err)
	}

	if err := svc.ForgotPassword(ctx, "ada@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	otp, err := store.GetOTP("ada@example.com")
	if err != nil {
		t.Fatalf("expected OTP to be stored: %v", err)
	}
	if len(otp.Code) != 6 {
		t.Errorf("expected 6 digit OTP, got '%s'", otp.Code)
	}

	if err := svc.VerifyOTP(ctx, "ada@example.com", "not-it"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected wrong OTP to fail, got %v", err)
	}
	if err := svc.VerifyOTP(ctx, "ada@example.com", otp.Code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.ResetPassword(ctx, reset); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "newpass"}); err != nil {
		t.Errorf("expected login with new password, got %v", err)
	}
	if _, err := store.GetOTP("ada@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Error("expected OTP to be consumed")
	}
}

func TestUserService_ExpiredOTP(t *testing.T) {
	svc, store := newTestUserService()
	ctx := context.Background()
	_ = svc.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	_ = svc.ForgotPassword(ctx, "ada@example.com")
	otp, _ := store.GetOTP("ada@example.com")

	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	err := svc.VerifyOTP(ctx, "ada@example.com", otp.Code)
	if err == nil || err.Error() != "OTP has expired" {
		t.Errorf("expected expiry error, got %v", err)
	}
}
