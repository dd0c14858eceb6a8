package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeAttendanceMarked = "attendance.marked"

type AttendanceMarkedEvent struct {
	BaseEvent
	AttendanceID int64     `json:"attendance_id"`
	UserID       int64     `json:"user_id"`
	Day          time.Time `json:"day"`
	SelfieURL    string    `json:"selfie_url"`
}

func NewAttendanceMarkedEvent(attendanceID, userID int64, day time.Time, selfieURL string) *AttendanceMarkedEvent {
	return &AttendanceMarkedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAttendanceMarked,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"attendance_id": attendanceID,
				"user_id":       userID,
				"day":           day,
				"selfie_url":    selfieURL,
			},
		},
		AttendanceID: attendanceID,
		UserID:       userID,
		Day:          day,
		SelfieURL:    selfieURL,
	}
}
