package attendance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/internal/storage"
)

// Repository defines the data access methods for attendance records.
type Repository interface {
	GetForUserOnDay(userID int64, day time.Time) (*Attendance, error)
	Create(record *Attendance) (*Attendance, error)
	ListWithUsers() ([]*RecordWithUser, error)
	ListRangeWithUsers(start, end time.Time) ([]*RecordWithUser, error)
}

type Service struct {
	repo   Repository
	blobs  storage.Provider
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, blobs storage.Provider, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		blobs:  blobs,
		bus:    bus,
		logger: logger,
	}
}

// Mark records a check-in for the UTC day of now. A second check-in the same
// day returns AlreadyMarkedError with the existing record; the pre-check
// keeps the common repeat case from uploading a blob, and the unique index
// behind Create closes the race two concurrent first check-ins would hit.
func (s *Service) Mark(ctx context.Context, userID int64, dto MarkAttendanceDTO, selfie io.ReadSeeker, filename, contentType string, now time.Time) (*Attendance, error) {
	day := StartOfDayUTC(now)

	if existing, err := s.repo.GetForUserOnDay(userID, day); err == nil && existing != nil {
		s.logger.Info("attendance already marked", "user_id", userID, "day", day)
		return nil, &AlreadyMarkedError{Existing: existing}
	} else if err != nil && err != ErrNotFound {
		return nil, fmt.Errorf("check existing attendance: %w", err)
	}

	key := storage.SelfieKey(now, filename)
	selfieURL, err := s.blobs.Put(ctx, key, selfie, contentType)
	if err != nil {
		s.logger.Error("selfie upload failed", "error", err, "user_id", userID, "key", key)
		return nil, internal.NewInternalError("failed to store selfie", err)
	}

	record := &Attendance{
		UserID:    userID,
		Date:      day,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
		SelfieURL: selfieURL,
	}

	created, err := s.repo.Create(record)
	if err != nil {
		if marked, ok := err.(*AlreadyMarkedError); ok {
			return nil, marked
		}
		s.logger.Error("failed to create attendance record", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("attendance marked",
		"attendance_id", created.ID,
		"user_id", userID,
		"day", day,
		"selfie_url", selfieURL)

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewAttendanceMarkedEvent(created.ID, userID, day, selfieURL))
	}

	return created, nil
}

// ListAll returns every record joined with the owning user projection.
func (s *Service) ListAll() ([]*RecordWithUser, error) {
	records, err := s.repo.ListWithUsers()
	if err != nil {
		s.logger.Error("failed to list attendance records", "error", err)
		return nil, err
	}
	return records, nil
}

// MonthlyReport returns the records of one calendar month, user-joined and
// ordered by date.
func (s *Service) MonthlyReport(q ReportQuery) ([]*RecordWithUser, error) {
	start, end := MonthRange(q.Year, q.Month)

	records, err := s.repo.ListRangeWithUsers(start, end)
	if err != nil {
		s.logger.Error("failed to build monthly report", "error", err, "year", q.Year, "month", q.Month)
		return nil, err
	}
	return records, nil
}
