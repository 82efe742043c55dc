package database

import (
	"errors"

	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user by its ID
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByAuthID returns the user linked to an external auth subject, or nil
// if no account exists yet.
func (r *UserRepo) FindByAuthID(authID string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "auth_id = ?", authID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveByUsername returns an active user by username, or nil if the
// username is unknown or the account is deactivated.
func (r *UserRepo) FindActiveByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ? AND is_active = ?", username, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether any account already holds username.
// Global scope: usernames are unique across the whole directory.
func (r *UserRepo) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// FindByIDs returns the users matching ids, for batch owner resolution
func (r *UserRepo) FindByIDs(ids []uuid.UUID) ([]*models.User, error) {
	var users []*models.User
	err := r.db.Find(&users, "id IN ?", ids).Error
	return users, err
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// Update updates an existing user in the database
func (r *UserRepo) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Count returns the number of active users
func (r *UserRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
