package auth

import (
	"regexp"

	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
)

var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,})+$`)

// RegisterDTO is the transport shape for POST /api/auth/register. Optional
// fields fall back to the model defaults when zero.
type RegisterDTO struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	Salary       string `json:"salary"`
	Status       string `json:"status,omitempty"`
	LeaveBalance int    `json:"leaveBalance,omitempty"`
	WorkingDays  int    `json:"workingDays,omitempty"`
}

// LoginDTO is the transport shape for POST /api/auth/login.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d RegisterDTO) Validate() error {
	if d.UserID == "" || d.Name == "" || d.Email == "" || d.Password == "" ||
		d.Role == "" || d.Department == "" || d.Salary == "" {
		return ValidationError{Msg: "All fields are required"}
	}
	if !emailPattern.MatchString(d.Email) {
		return ValidationError{Msg: "Please enter a valid email"}
	}
	if len(d.Password) < 6 {
		return ValidationError{Msg: "password must be at least 6 characters"}
	}
	if !userDatamodel.ValidRole(d.Role) {
		return ValidationError{Msg: "role must be admin or employee"}
	}
	if d.Status != "" && d.Status != userDatamodel.StatusActive && d.Status != userDatamodel.StatusInactive {
		return ValidationError{Msg: "status must be Active or Inactive"}
	}
	return nil
}

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

// ToDataModel applies registration defaults the same way the persistence
// layer would: employee role column default, Active status, 10 days leave,
// 22 working days.
func (d RegisterDTO) ToDataModel(passwordHash string) *userDatamodel.User {
	u := &userDatamodel.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: passwordHash,
		Role:         d.Role,
		Department:   d.Department,
		Status:       d.Status,
		LeaveBalance: d.LeaveBalance,
		WorkingDays:  d.WorkingDays,
		Salary:       d.Salary,
	}
	if u.Status == "" {
		u.Status = userDatamodel.StatusActive
	}
	if u.LeaveBalance == 0 {
		u.LeaveBalance = userDatamodel.DefaultLeaveBalance
	}
	if u.WorkingDays == 0 {
		u.WorkingDays = userDatamodel.DefaultWorkingDays
	}
	return u
}
