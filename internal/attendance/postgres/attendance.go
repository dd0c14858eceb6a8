package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetForUserOnDay(userID int64, day time.Time) (*attendance.Attendance, error) {
	var record attendanceDatamodel.Attendance
	err := r.db.
		Where("user_id = ? AND date >= ? AND date < ?", userID, day, day.AddDate(0, 0, 1)).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendance.ErrNotFound
		}
		return nil, err
	}
	return attendance.FromDataModel(&record), nil
}

// Create inserts a record inside a transaction that re-checks the day. The
// composite unique index on (user_id, date) is the durable guard; a
// duplicate either way comes back as AlreadyMarkedError carrying the record
// that won.
func (r *Repository) Create(record *attendance.Attendance) (*attendance.Attendance, error) {
	row := attendance.ToDataModel(record)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing attendanceDatamodel.Attendance
		err := tx.
			Where("user_id = ? AND date = ?", row.UserID, row.Date).
			First(&existing).Error
		if err == nil {
			return &attendance.AlreadyMarkedError{Existing: attendance.FromDataModel(&existing)}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(row).Error
	})

	if err != nil {
		var marked *attendance.AlreadyMarkedError
		if errors.As(err, &marked) {
			return nil, marked
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, lookupErr := r.GetForUserOnDay(record.UserID, record.Date); lookupErr == nil {
				return nil, &attendance.AlreadyMarkedError{Existing: existing}
			}
		}
		return nil, err
	}

	return attendance.FromDataModel(row), nil
}

const joinedSelect = `attendances.id, attendances.user_id, attendances.date,
	attendances.latitude, attendances.longitude, attendances.selfie_url,
	users.name AS user_name, users.email AS user_email, users.role AS user_role`

func (r *Repository) ListWithUsers() ([]*attendance.RecordWithUser, error) {
	var rows []*attendance.RecordWithUser
	err := r.db.
		Table("attendances").
		Select(joinedSelect).
		Joins("JOIN users ON users.id = attendances.user_id").
		Order("attendances.date").
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) ListRangeWithUsers(start, end time.Time) ([]*attendance.RecordWithUser, error) {
	var rows []*attendance.RecordWithUser
	err := r.db.
		Table("attendances").
		Select(joinedSelect).
		Joins("JOIN users ON users.id = attendances.user_id").
		Where("attendances.date >= ? AND attendances.date < ?", start, end).
		Order("attendances.date").
		Scan(&rows).Error
	return rows, err
}
