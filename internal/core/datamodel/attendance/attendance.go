package attendance

import "time"

// Attendance is one check-in event. Date is the start of the UTC calendar
// day; the composite unique index on (user_id, date) enforces at most one
// record per user per day at the storage level.
type Attendance struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_attendances_user_day"`
	Date      time.Time `gorm:"column:date;not null;uniqueIndex:idx_attendances_user_day"`
	Latitude  float64   `gorm:"column:latitude;not null"`
	Longitude float64   `gorm:"column:longitude;not null"`
	SelfieURL string    `gorm:"column:selfie_url;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Attendance) TableName() string {
	return "attendances"
}
