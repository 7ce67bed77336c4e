package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Varun5711/wecare/internal/cache"
	"github.com/Varun5711/wecare/internal/models"
)

// maxImages bounds the uploaded images kept in memory.
const maxImages = 256

type MemoryStorage struct {
	mu           sync.RWMutex
	users        map[string]*UserRecord
	emails       map[string]string
	doctors      map[string]*models.DoctorSummary
	appointments []*AppointmentRecord
	otps         map[string]*OTP
	images       *cache.LRU[[]byte]
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:   make(map[string]*UserRecord),
		emails:  make(map[string]string),
		doctors: make(map[string]*models.DoctorSummary),
		otps:    make(map[string]*OTP),
		images:  cache.NewLRU[[]byte](maxImages),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MemoryStorage) CreateUser(rec *UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(rec.Email)
	if _, exists := s.emails[email]; exists {
		return ErrEmailTaken
	}

	stored := *rec
	s.users[rec.ID] = &stored
	s.emails[email] = rec.ID
	return nil
}

func (s *MemoryStorage) GetUserByID(id string) (*UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStorage) GetUserByEmail(email string) (*UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.emails[normalizeEmail(email)]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

// UpdateUser applies update under the write lock. A changed email must stay unique.
func (s *MemoryStorage) UpdateUser(id string, update func(u *models.User)) (*UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.users[id]
	if !exists {
		return nil, ErrNotFound
	}

	next := rec.User
	update(&next)

	oldEmail, newEmail := normalizeEmail(rec.Email), normalizeEmail(next.Email)
	if oldEmail != newEmail {
		if _, taken := s.emails[newEmail]; taken {
			return nil, ErrEmailTaken
		}
		delete(s.emails, oldEmail)
		s.emails[newEmail] = id
	}

	rec.User = next
	cp := *rec
	return &cp, nil
}

func (s *MemoryStorage) SetPasswordHash(email, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.emails[normalizeEmail(email)]
	if !exists {
		return ErrNotFound
	}
	s.users[id].PasswordHash = hash
	return nil
}

func (s *MemoryStorage) SaveDoctor(d *models.DoctorSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *d
	s.doctors[d.ID] = &cp
	return nil
}

func (s *MemoryStorage) GetDoctor(id string) (*models.DoctorSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, exists := s.doctors[id]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *MemoryStorage) DoctorsBySpeciality(speciality string) ([]models.DoctorSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doctors := make([]models.DoctorSummary, 0)
	for _, d := range s.doctors {
		if d.Speciality == speciality {
			doctors = append(doctors, *d)
		}
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })

	return doctors, nil
}

// SaveAppointment fails with ErrSlotTaken when the doctor already has a live
// booking at the same day and time. Rejected bookings free the slot.
func (s *MemoryStorage) SaveAppointment(rec *AppointmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := SlotKey(rec.Date, rec.StartTime)
	for _, a := range s.appointments {
		if a.DoctorID == rec.DoctorID && a.Status != models.StatusRejected && SlotKey(a.Date, a.StartTime) == key {
			return ErrSlotTaken
		}
	}

	cp := *rec
	s.appointments = append(s.appointments, &cp)
	return nil
}

func (s *MemoryStorage) AppointmentsByPatient(patientID string) ([]*AppointmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*AppointmentRecord, 0)
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryStorage) BookedSlots(doctorID string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booked := make(map[string]bool)
	for _, a := range s.appointments {
		if a.DoctorID == doctorID && a.Status != models.StatusRejected {
			booked[SlotKey(a.Date, a.StartTime)] = true
		}
	}
	return booked, nil
}

func (s *MemoryStorage) SaveOTP(email string, otp OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.otps[normalizeEmail(email)] = &otp
	return nil
}

func (s *MemoryStorage) GetOTP(email string) (*OTP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	otp, exists := s.otps[normalizeEmail(email)]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *otp
	return &cp, nil
}

func (s *MemoryStorage) MarkOTPVerified(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	otp, exists := s.otps[normalizeEmail(email)]
	if !exists {
		return ErrNotFound
	}
	otp.Verified = true
	return nil
}

func (s *MemoryStorage) DeleteOTP(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.otps, normalizeEmail(email))
	return nil
}

func (s *MemoryStorage) DeleteExpiredOTPs(now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for email, otp := range s.otps {
		if !now.Before(otp.ExpiresAt) {
			delete(s.otps, email)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStorage) SaveImage(name string, data []byte) error {
	s.images.Set(name, append([]byte(nil), data...))
	return nil
}

func (s *MemoryStorage) GetImage(name string) ([]byte, error) {
	data, exists := s.images.Get(name)
	if !exists {
		return nil, ErrNotFound
	}
	return data, nil
}
