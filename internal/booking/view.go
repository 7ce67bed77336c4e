package booking

import "github.com/Varun5711/wecare/internal/models"

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
	StatusEmpty
	StatusReady
)

// DoctorsView is what the doctor picker shows.
type DoctorsView struct {
	Status  Status
	Text    string
	Doctors []models.DoctorSummary
}

func (f *Flow) DoctorsView() DoctorsView {
	st := f.doctors.Snapshot()
	switch {
	case st.URL == "":
		return DoctorsView{Status: StatusIdle}
	case st.Loading:
		return DoctorsView{Status: StatusLoading, Text: "Loading doctors..."}
	case st.Err != "":
		return DoctorsView{Status: StatusError, Text: DoctorsErrorText}
	case len(st.Data) == 0:
		return DoctorsView{Status: StatusEmpty, Text: f.DoctorsEmptyText()}
	default:
		return DoctorsView{Status: StatusReady, Doctors: st.Data}
	}
}

type DayView struct {
	Date  string
	Day   string
	Slots []models.Slot
	Empty string
}

// SlotsView is what the day tabs and slot grid show.
type SlotsView struct {
	Status Status
	Text   string
	Days   []DayView
}

func (f *Flow) SlotsView() SlotsView {
	st := f.slots.Snapshot()
	switch {
	case st.URL == "":
		return SlotsView{Status: StatusIdle}
	case st.Loading:
		return SlotsView{Status: StatusLoading, Text: "Loading time slots..."}
	case st.Err != "":
		return SlotsView{Status: StatusError, Text: SlotsErrorText}
	case len(st.Data) == 0:
		return SlotsView{Status: StatusEmpty, Text: NoSlotsText}
	}

	days := make([]DayView, 0, len(st.Data))
	for _, d := range st.Data {
		dv := DayView{Date: d.Date, Day: d.Day, Slots: d.Slots}
		if len(d.Slots) == 0 {
			dv.Empty = NoSlotsDayText
		}
		days = append(days, dv)
	}
	return SlotsView{Status: StatusReady, Days: days}
}
