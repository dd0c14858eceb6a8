package postgres

import (
	"database/sql"
	"fmt"

	"github.com/frahmantamala/attendance-management/internal/auth"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, fmt.Errorf("user not found")
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

// GetByID loads a user without the password hash column.
func (r *Repository) GetByID(userID int64) (*auth.User, error) {
	var record userDatamodel.User
	err := r.db.
		Select("id", "user_id", "name", "email", "role", "department", "status",
			"leave_balance", "working_days", "salary", "created_at", "updated_at").
		Where("id = ?", userID).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return auth.FromDataModel(&record), nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) UserIDExists(externalID string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("user_id = ?", externalID).Count(&count).Error
	return count > 0, err
}
