package models

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
)

// Variant names the badge style used to display a status.
func (s Status) Variant() string {
	switch s {
	case StatusCompleted:
		return "lightCyan"
	case StatusAccepted:
		return "success"
	case StatusPending:
		return "warning"
	case StatusRejected:
		return "error"
	default:
		return "default"
	}
}

type Appointment struct {
	ID        string        `json:"id,omitempty"`
	Doctor    DoctorSummary `json:"doctor"`
	Date      string        `json:"date"`
	StartTime string        `json:"startTime"`
	Status    Status        `json:"status"`
}

type BookingRequest struct {
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

type BookingResponse struct {
	Message string       `json:"message"`
	Data    *Appointment `json:"data,omitempty"`
}
