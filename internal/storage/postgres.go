package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Varun5711/wecare/internal/database"
	"github.com/Varun5711/wecare/internal/models"
)

const (
	queryTimeout       = 5 * time.Second
	uniqueViolation    = "23505"
	slotIndexName      = "appointments_slot_idx"
	patientEmailIdx    = "patients_email_idx"
	patientColumns     = "id, name, email, password_hash, image, phone_number, role, created_at"
	appointmentColumns = "id, patient_id, doctor_id, day, start_time, status, created_at"
)

// PostgresStorage keeps sandbox state in Postgres so it survives restarts.
type PostgresStorage struct {
	db *database.Manager
}

func NewPostgresStorage(db *database.Manager) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), queryTimeout)
}

func isUniqueViolation(err error, index string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == index
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func scanUser(row pgx.Row) (*UserRecord, error) {
	var rec UserRecord
	err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.PasswordHash,
		&rec.Image, &rec.PhoneNumber, &rec.Role, &rec.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

func (s *PostgresStorage) CreateUser(rec *UserRecord) error {
	ctx, cancel := queryContext()
	defer cancel()

	_, err := s.db.Write().Exec(ctx,
		`INSERT INTO patients (`+patientColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.Name, rec.Email, rec.PasswordHash, rec.Image, rec.PhoneNumber, rec.Role, rec.CreatedAt)
	if isUniqueViolation(err, patientEmailIdx) {
		return ErrEmailTaken
	}
	return err
}

func (s *PostgresStorage) GetUserByID(id string) (*UserRecord, error) {
	ctx, cancel := queryContext()
	defer cancel()

	return scanUser(s.db.Read().QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1`, id))
}

func (s *PostgresStorage) GetUserByEmail(email string) (*UserRecord, error) {
	ctx, cancel := queryContext()
	defer cancel()

	return scanUser(s.db.Read().QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE lower(email) = $1`, normalizeEmail(email)))
}

// UpdateUser locks the row for the duration of update. A changed email must stay unique.
func (s *PostgresStorage) UpdateUser(id string, update func(u *models.User)) (*UserRecord, error) {
	ctx, cancel := queryContext()
	defer cancel()

	tx, err := s.db.Write().Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rec, err := scanUser(tx.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}

	update(&rec.User)

	_, err = tx.Exec(ctx,
		`UPDATE patients SET name = $2, email = $3, image = $4, phone_number = $5 WHERE id = $1`,
		id, rec.Name, rec.Email, rec.Image, rec.PhoneNumber)
	if isUniqueViolation(err, patientEmailIdx) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PostgresStorage) SetPasswordHash(email, hash string) error {
	ctx, cancel := queryContext()
	defer cancel()

	tag, err := s.db.Write().Exec(ctx,
		`UPDATE patients SET password_hash = $2 WHERE lower(email) = $1`, normalizeEmail(email), hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) SaveDoctor(d *models.DoctorSummary) error {
	ctx, cancel := queryContext()
	defer cancel()

	_, err := s.db.Write().Exec(ctx, `
		INSERT INTO doctors (id, name, email, image, speciality) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, image = EXCLUDED.image, speciality = EXCLUDED.speciality`,
		d.ID, d.Name, d.Email, d.Image, d.Speciality)
	return err
}

func (s *PostgresStorage) GetDoctor(id string) (*models.DoctorSummary, error) {
	ctx, cancel := queryContext()
	defer cancel()

	var d models.DoctorSummary
	err := s.db.Read().QueryRow(ctx,
		`SELECT id, name, email, image, speciality FROM doctors WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Email, &d.Image, &d.Speciality)
	if err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (s *PostgresStorage) DoctorsBySpeciality(speciality string) ([]models.DoctorSummary, error) {
	ctx, cancel := queryContext()
	defer cancel()

	rows, err := s.db.Read().Query(ctx,
		`SELECT id, name, email, image, speciality FROM doctors WHERE speciality = $1 ORDER BY name`, speciality)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doctors := make([]models.DoctorSummary, 0)
	for rows.Next() {
		var d models.DoctorSummary
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Image, &d.Speciality); err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

// SaveAppointment relies on the partial unique slot index, so rejected
// bookings do not hold the slot.
func (s *PostgresStorage) SaveAppointment(rec *AppointmentRecord) error {
	ctx, cancel := queryContext()
	defer cancel()

	_, err := s.db.Write().Exec(ctx,
		`INSERT INTO appointments (`+appointmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.PatientID, rec.DoctorID, rec.Date.UTC(), rec.StartTime, string(rec.Status), rec.CreatedAt)
	if isUniqueViolation(err, slotIndexName) {
		return ErrSlotTaken
	}
	return err
}

func (s *PostgresStorage) AppointmentsByPatient(patientID string) ([]*AppointmentRecord, error) {
	ctx, cancel := queryContext()
	defer cancel()

	rows, err := s.db.Read().Query(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*AppointmentRecord, 0)
	for rows.Next() {
		var (
			rec    AppointmentRecord
			status string
		)
		if err := rows.Scan(&rec.ID, &rec.PatientID, &rec.DoctorID, &rec.Date, &rec.StartTime, &status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Status = models.Status(status)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) BookedSlots(doctorID string) (map[string]bool, error) {
	ctx, cancel := queryContext()
	defer cancel()

	rows, err := s.db.Read().Query(ctx,
		`SELECT day, start_time FROM appointments WHERE doctor_id = $1 AND status <> 'REJECTED'`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make(map[string]bool)
	for rows.Next() {
		var (
			day   time.Time
			start string
		)
		if err := rows.Scan(&day, &start); err != nil {
			return nil, err
		}
		booked[SlotKey(day, start)] = true
	}
	return booked, rows.Err()
}

func (s *PostgresStorage) SaveOTP(email string, otp OTP) error {
	ctx, cancel := queryContext()
	defer cancel()

	_, err := s.db.Write().Exec(ctx, `
		INSERT INTO otps (email, code, expires_at, verified) VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, verified = EXCLUDED.verified`,
		normalizeEmail(email), otp.Code, otp.ExpiresAt, otp.Verified)
	return err
}

func (s *PostgresStorage) GetOTP(email string) (*OTP, error) {
	ctx, cancel := queryContext()
	defer cancel()

	var otp OTP
	err := s.db.Write().QueryRow(ctx,
		`SELECT code, expires_at, verified FROM otps WHERE email = $1`, normalizeEmail(email)).
		Scan(&otp.Code, &otp.ExpiresAt, &otp.Verified)
	if err != nil {
		return nil, notFound(err)
	}
	return &otp, nil
}

func (s *PostgresStorage) MarkOTPVerified(email string) error {
	ctx, cancel := queryContext()
	defer cancel()

	tag, err := s.db.Write().Exec(ctx, `UPDATE otps SET verified = true WHERE email = $1`, normalizeEmail(email))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) DeleteOTP(email string) error {
	ctx, cancel := queryContext()
	defer cancel()

	_, err := s.db.Write().Exec(ctx, `DELETE FROM otps WHERE email = $1`, normalizeEmail(email))
	return err
}

func (s *PostgresStorage) DeleteExpiredOTPs(now time.Time) (int64, error) {
	ctx, cancel := queryContext()
	defer cancel()

	tag, err := s.db.Write().Exec(ctx, `DELETE FROM otps WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStorage) SaveImage(name string, data []byte) error {
	ctx, cancel := queryContext()
	defer cancel()

	_, err := s.db.Write().Exec(ctx,
		`INSERT INTO images (name, data) VALUES ($1, $2) ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data`,
		name, data)
	return err
}

func (s *PostgresStorage) GetImage(name string) ([]byte, error) {
	ctx, cancel := queryContext()
	defer cancel()

	var data []byte
	if err := s.db.Read().QueryRow(ctx, `SELECT data FROM images WHERE name = $1`, name).Scan(&data); err != nil {
		return nil, notFound(err)
	}
	return data, nil
}

var _ Storage = (*PostgresStorage)(nil)
