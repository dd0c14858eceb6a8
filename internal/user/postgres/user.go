package postgres

import (
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-management/internal/user"
	"gorm.io/gorm"
)

// userColumns is every users column except password_hash.
var userColumns = []string{
	"id", "user_id", "name", "email", "role", "department", "status",
	"leave_balance", "working_days", "salary", "created_at", "updated_at",
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAll() ([]*user.User, error) {
	var records []*userDatamodel.User
	err := r.db.Select(userColumns).Order("id").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(records), nil
}

func (r *Repository) GetByID(userID int64) (*user.User, error) {
	var record userDatamodel.User
	err := r.db.Select(userColumns).Where("id = ?", userID).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&record), nil
}
