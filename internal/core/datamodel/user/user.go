package user

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"

	StatusActive   = "Active"
	StatusInactive = "Inactive"

	DefaultLeaveBalance = 10
	DefaultWorkingDays  = 22
)

type User struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       string    `gorm:"column:user_id;uniqueIndex;not null"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;default:employee"`
	Department   string    `gorm:"column:department;not null"`
	Status       string    `gorm:"column:status;default:Active"`
	LeaveBalance int       `gorm:"column:leave_balance;default:10"`
	WorkingDays  int       `gorm:"column:working_days;default:22"`
	Salary       string    `gorm:"column:salary;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}
