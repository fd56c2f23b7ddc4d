// Package users provides database operations for back-office operators.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername("admin")
package users

import (
	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. The password hash and token hash are produced by
// the auth package; this repository only stores them.
func (r *Repository) Create(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetAll lists every operator.
func (r *Repository) GetAll() ([]entities.User, error) {
	var users []entities.User
	err := r.db.Order("username ASC").Find(&users).Error
	return users, err
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTokenHash retrieves a user by the SHA-256 hash of their API token.
func (r *Repository) GetByTokenHash(hash string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("token_hash = ?", hash).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetTokenHash stores a new API token hash for the user. An empty hash
// revokes the token.
func (r *Repository) SetTokenHash(id uint, hash string) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).Update("token_hash", hash).Error
}

// HasUsers reports whether any operator exists yet (setup check).
func (r *Repository) HasUsers() (bool, error) {
	var count int64
	if err := r.db.Model(&entities.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete soft-deletes a user.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.User{}, id).Error
}
