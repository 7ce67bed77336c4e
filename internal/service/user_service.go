package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"path"
	"strings"
	"time"

	"github.com/Varun5711/wecare/internal/auth"
	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/storage"
	"github.com/google/uuid"
)

const RolePatient = "patient"

type UserService struct {
	store      storage.Storage
	jwtManager *auth.JWTManager
	otpTTL     time.Duration
	log        *logger.Logger
	now        func() time.Time
}

func NewUserService(store storage.Storage, jwtManager *auth.JWTManager, otpTTL time.Duration) *UserService {
	return &UserService{
		store:      store,
		jwtManager: jwtManager,
		otpTTL:     otpTTL,
		log:        logger.New("user-service"),
		now:        time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return newError(ErrInvalidArgument, "Name is required")
	}
	if req.Email == "" {
		return newError(ErrInvalidArgument, "Email is required")
	}
	if req.Password == "" {
		return newError(ErrInvalidArgument, "Password is required")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return newError(ErrInvalidArgument, "Password must be at least 6 characters")
	}
	if err != nil {
		return errorf(ErrInternal, "failed to hash password: %v", err)
	}

	rec := &storage.UserRecord{
		User: models.User{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.TrimSpace(req.Email),
			Role:      RolePatient,
			CreatedAt: s.now().UTC(),
		},
		PasswordHash: passwordHash,
	}

	if err := s.store.CreateUser(rec); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return newError(ErrAlreadyExists, "User already exists")
		}
		return errorf(ErrInternal, "failed to create user: %v", err)
	}

	s.log.Info("Registered patient %s", rec.Email)
	return nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", newError(ErrInvalidArgument, "Email and password are required")
	}

	rec, err := s.store.GetUserByEmail(req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return "", newError(ErrUnauthenticated, "Invalid email or password")
	}
	if err != nil {
		return "", errorf(ErrInternal, "failed to get user: %v", err)
	}

	if !auth.CheckPassword(rec.PasswordHash, req.Password) {
		return "", newError(ErrUnauthenticated, "Invalid email or password")
	}

	token, _, err := s.jwtManager.GenerateToken(rec.ID, rec.Email, rec.Role)
	if err != nil {
		return "", errorf(ErrInternal, "failed to generate token: %v", err)
	}
	return token, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	rec, err := s.store.GetUserByID(userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, errorf(ErrInternal, "failed to get user: %v", err)
	}
	user := rec.User
	return &user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, callerID, userID string, req models.ProfileUpdateRequest) (*models.User, error) {
	if callerID != userID {
		return nil, newError(ErrUnauthenticated, "You can only update your own profile")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, newError(ErrInvalidArgument, "Name is required")
	}

	rec, err := s.store.UpdateUser(userID, func(u *models.User) {
		u.Name = strings.TrimSpace(req.Name)
		if req.Email != "" {
			u.Email = req.Email
		}
		if req.PhoneNumber != "" {
			u.PhoneNumber = req.PhoneNumber
		}
	})
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, newError(ErrNotFound, "User not found")
	case errors.Is(err, storage.ErrEmailTaken):
		return nil, newError(ErrAlreadyExists, "Email already in use")
	case err != nil:
		return nil, errorf(ErrInternal, "failed to update user: %v", err)
	}

	user := rec.User
	return &user, nil
}

// UpdateImage stores data and returns the path it is served under.
func (s *UserService) UpdateImage(ctx context.Context, callerID, userID, filename string, data []byte) (string, error) {
	if callerID != userID {
		return "", newError(ErrUnauthenticated, "You can only update your own profile")
	}
	if len(data) == 0 {
		return "", newError(ErrInvalidArgument, "At least one file is required.")
	}

	name := userID + "-" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	if err := s.store.SaveImage(name, data); err != nil {
		return "", errorf(ErrInternal, "failed to save image: %v", err)
	}

	imagePath := "/uploads/" + name
	_, err := s.store.UpdateUser(userID, func(u *models.User) { u.Image = imagePath })
	if errors.Is(err, storage.ErrNotFound) {
		return "", newError(ErrNotFound, "User not found")
	}
	if err != nil {
		return "", errorf(ErrInternal, "failed to update user: %v", err)
	}
	return imagePath, nil
}

func (s *UserService) Image(name string) ([]byte, error) {
	data, err := s.store.GetImage(name)
	if err != nil {
		return nil, newError(ErrNotFound, "Image not found")
	}
	return data, nil
}

// ForgotPassword issues a fresh OTP. There is no mail transport; the code is logged.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return newError(ErrInvalidArgument, "Email is required")
	}
	if _, err := s.store.GetUserByEmail(email); err != nil {
		return newError(ErrNotFound, "User not found")
	}

	code, err := generateOTP()
	if err != nil {
		return errorf(ErrInternal, "failed to generate OTP: %v", err)
	}
	if err := s.store.SaveOTP(email, storage.OTP{Code: code, ExpiresAt: s.now().Add(s.otpTTL)}); err != nil {
		return errorf(ErrInternal, "failed to save OTP: %v", err)
	}

	s.log.Info("OTP for %s is %s (valid %s)", email, code, s.otpTTL)
	return nil
}

func (s *UserService) VerifyOTP(ctx context.Context, email, code string) error {
	otp, err := s.store.GetOTP(email)
	if err != nil {
		return newError(ErrInvalidArgument, "Invalid OTP")
	}
	if s.now().After(otp.ExpiresAt) {
		_ = s.store.DeleteOTP(email)
		return newError(ErrInvalidArgument, "OTP has expired")
	}
	if otp.Code != code {
		return newError(ErrInvalidArgument, "Invalid OTP")
	}
	if err := s.store.MarkOTPVerified(email); err != nil {
		return errorf(ErrInternal, "failed to verify OTP: %v", err)
	}
	return nil
}

// ResetPassword requires a verified, unexpired OTP for email and consumes it.
func (s *UserService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if req.Email == "" {
		return newError(ErrInvalidArgument, "Email is required")
	}
	if req.NewPassword != req.ConfirmPassword {
		return newError(ErrInvalidArgument, "Passwords do not match.")
	}

	otp, err := s.store.GetOTP(req.Email)
	if err != nil || !otp.Verified {
		return newError(ErrUnauthenticated, "OTP verification required")
	}
	if s.now().After(otp.ExpiresAt) {
		_ = s.store.DeleteOTP(req.Email)
		return newError(ErrUnauthenticated, "OTP has expired")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return newError(ErrInvalidArgument, "Password must be at least 6 characters")
	}
	if err != nil {
		return errorf(ErrInternal, "failed to hash password: %v", err)
	}

	if err := s.store.SetPasswordHash(req.Email, hash); err != nil {
		return newError(ErrNotFound, "User not found")
	}
	_ = s.store.DeleteOTP(req.Email)
	return nil
}

// ValidateToken returns the user id carried by a valid bearer token.
func (s *UserService) ValidateToken(token string) (string, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return "", newError(ErrUnauthenticated, "Invalid or expired token")
	}
	return claims.UserID, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
