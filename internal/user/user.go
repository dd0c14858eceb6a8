package user

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
)

// User is the read model served by the users endpoints. PasswordHash is
// carried for internal use only and never serialized.
type User struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	Status       string    `json:"status"`
	LeaveBalance int       `json:"leaveBalance"`
	WorkingDays  int       `json:"workingDays"`
	Salary       string    `json:"salary"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("user not found")

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Department:   u.Department,
		Status:       u.Status,
		LeaveBalance: u.LeaveBalance,
		WorkingDays:  u.WorkingDays,
		Salary:       u.Salary,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
