package storage

import (
	"errors"
	"time"

	"github.com/Varun5711/wecare/internal/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrSlotTaken  = errors.New("slot already booked")
)

// UserRecord is a patient as stored by the sandbox; the hash never leaves it.
type UserRecord struct {
	models.User
	PasswordHash string
}

type AppointmentRecord struct {
	ID        string
	PatientID string
	DoctorID  string
	Date      time.Time
	StartTime string
	Status    models.Status
	CreatedAt time.Time
}

type OTP struct {
	Code      string
	ExpiresAt time.Time
	Verified  bool
}

type Storage interface {
	CreateUser(rec *UserRecord) error
	GetUserByID(id string) (*UserRecord, error)
	GetUserByEmail(email string) (*UserRecord, error)
	UpdateUser(id string, update func(u *models.User)) (*UserRecord, error)
	SetPasswordHash(email, hash string) error

	SaveDoctor(d *models.DoctorSummary) error
	GetDoctor(id string) (*models.DoctorSummary, error)
	DoctorsBySpeciality(speciality string) ([]models.DoctorSummary, error)

	SaveAppointment(rec *AppointmentRecord) error
	AppointmentsByPatient(patientID string) ([]*AppointmentRecord, error)
	BookedSlots(doctorID string) (map[string]bool, error)

	SaveOTP(email string, otp OTP) error
	GetOTP(email string) (*OTP, error)
	MarkOTPVerified(email string) error
	DeleteOTP(email string) error
	DeleteExpiredOTPs(now time.Time) (int64, error)

	SaveImage(name string, data []byte) error
	GetImage(name string) ([]byte, error)
}

// SlotKey identifies a doctor's slot on a calendar day.
func SlotKey(date time.Time, startTime string) string {
	return date.UTC().Format("2006-01-02") + " " + startTime
}
