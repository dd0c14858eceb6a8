package attendance

import (
	"errors"
	"time"

	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
)

// Attendance is one check-in: immutable once written, at most one per user
// per UTC calendar day.
type Attendance struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      time.Time `json:"date"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	SelfieURL string    `json:"selfie"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordWithUser is the reporting row: an attendance record joined with a
// minimal user projection.
type RecordWithUser struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      time.Time `json:"date"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	SelfieURL string    `json:"selfie"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	UserRole  string    `json:"userRole"`
}

var ErrNotFound = errors.New("attendance record not found")

// AlreadyMarkedError reports a repeated same-day check-in and carries the
// existing record so the caller is not starved of data.
type AlreadyMarkedError struct {
	Existing *Attendance
}

func (e *AlreadyMarkedError) Error() string {
	return "attendance already marked for today"
}

// StartOfDayUTC truncates a timestamp to the UTC calendar day boundary used
// for the one-record-per-day invariant.
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the half-open UTC interval [start, end) covering the
// given calendar month.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func FromDataModel(a *attendanceDatamodel.Attendance) *Attendance {
	return &Attendance{
		ID:        a.ID,
		UserID:    a.UserID,
		Date:      a.Date,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		SelfieURL: a.SelfieURL,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToDataModel(a *Attendance) *attendanceDatamodel.Attendance {
	return &attendanceDatamodel.Attendance{
		ID:        a.ID,
		UserID:    a.UserID,
		Date:      a.Date,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		SelfieURL: a.SelfieURL,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
