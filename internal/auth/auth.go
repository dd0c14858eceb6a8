package auth

import (
	"context"
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*User, string, error)
	Authenticate(dto LoginDTO) (*User, string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByID(userID int64) (*User, error)
}

type RepositoryAPI interface {
	Create(u *userDatamodel.User) error
	GetPasswordForEmail(email string) (passwordHash string, userID int64, err error)
	GetByID(userID int64) (*User, error)
	EmailExists(email string) (bool, error)
	UserIDExists(externalID string) (bool, error)
}

type TokenGeneratorAPI interface {
	GenerateToken(userID int64) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// User is the authenticated identity attached to the request context. The
// password hash is never part of this projection.
type User struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	Status       string    `json:"status"`
	LeaveBalance int       `json:"leaveBalance"`
	WorkingDays  int       `json:"workingDays"`
	Salary       string    `json:"salary"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == userDatamodel.RoleAdmin
}

func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Claims represents JWT token claims
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrEmailTaken         = errors.New("user already exists")
	ErrUserIDTaken        = errors.New("user id already taken")
	ErrUserNotFound       = errors.New("user not found")
)

type ctxKey string

const ContextUserKey ctxKey = "authUser"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

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

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
