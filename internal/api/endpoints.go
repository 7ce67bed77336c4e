package api

import (
	"context"
	"errors"
	"net/url"

	"github.com/Varun5711/wecare/internal/models"
)

const (
	PathLogin          = "/auth/login"
	PathRegister       = "/auth/register"
	PathForgotPassword = "/auth/forgot-password"
	PathVerifyOTP      = "/auth/verify-otp"
	PathResetPassword  = "/auth/reset-password"
	PathUserData       = "/auth/getUserData"
	PathBook           = "/data/book-appointment"
	PathAppointments   = "/data/your-appointment"
)

func ProfilePath(userID string) string {
	return "/profile/" + url.PathEscape(userID)
}

func UploadImagePath(userID string) string {
	return "/doctors/" + url.PathEscape(userID) + "/upload-image"
}

func SpecialityPath(speciality string) string {
	return "/data/speciality?speciality=" + url.QueryEscape(speciality)
}

func TimeslotPath(doctorID string) string {
	return "/data/timeslot/" + url.PathEscape(doctorID)
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// GetData performs a GET and unwraps the {"data": ...} envelope.
func GetData[T any](ctx context.Context, c *Client, path string) (T, error) {
	var env dataEnvelope[T]
	_, err := c.Get(ctx, path, &env)
	return env.Data, err
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if _, err := c.Post(ctx, PathLogin, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &Error{Status: 200, Message: "Login response did not include a token"}
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if _, err := c.Post(ctx, PathRegister, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if _, err := c.Post(ctx, PathForgotPassword, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if _, err := c.Post(ctx, PathVerifyOTP, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if _, err := c.Post(ctx, PathResetPassword, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var errNoPatient = errors.New("profile response did not include a patient")

func (c *Client) GetUserData(ctx context.Context) (*models.User, error) {
	var resp models.ProfileResponse
	status, err := c.Get(ctx, PathUserData, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Patient == nil {
		return nil, &Error{Status: status, Message: errNoPatient.Error(), Err: errNoPatient}
	}
	return resp.Patient, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if _, err := c.Put(ctx, ProfilePath(userID), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UploadProfileImage(ctx context.Context, userID, filename string, data []byte) (*models.ImageUploadResponse, error) {
	var resp models.ImageUploadResponse
	if _, err := c.PostMultipart(ctx, UploadImagePath(userID), "image", filename, data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) BookAppointment(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	var resp models.BookingResponse
	if _, err := c.Post(ctx, PathBook, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Doctors(ctx context.Context, speciality string) ([]models.DoctorSummary, error) {
	return GetData[[]models.DoctorSummary](ctx, c, SpecialityPath(speciality))
}

func (c *Client) TimeSlots(ctx context.Context, doctorID string) ([]models.DaySlots, error) {
	return GetData[[]models.DaySlots](ctx, c, TimeslotPath(doctorID))
}

func (c *Client) Appointments(ctx context.Context) ([]models.Appointment, error) {
	return GetData[[]models.Appointment](ctx, c, PathAppointments)
}
