package models

import "time"

type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"password,omitempty"`
	Image       string    `json:"image,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Initial is the avatar fallback: the first letter of the name, upper-cased.
func (u *User) Initial() string {
	return initial(u.Name)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdateRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ProfileResponse is the body of GET /auth/getUserData.
type ProfileResponse struct {
	Patient *User `json:"patient"`
}

type ImageUploadResponse struct {
	Message string `json:"message,omitempty"`
	Data    struct {
		Image string `json:"image"`
	} `json:"data"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse mirrors the two shapes the backend uses for failures.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
