package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"panda-gate/apperrors"
	"panda-gate/pod/app/models"
	"panda-gate/roles"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

// Transaction runs fn against a repository bound to a single store
// transaction. The owner-bootstrap and role-change check-then-write
// sequences must run through here.
func (r *UserRepository) Transaction(fn func(tx *UserRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&UserRepository{db: tx})
	})
}

// Create inserts u, surfacing unique-index violations on email or
// username as a distinguishable conflict.
func (r *UserRepository) Create(u *models.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("email or username already in use")
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id string) (*models.User, error) {
	var u models.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List() ([]models.User, error) {
	var out []models.User
	err := r.db.Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *UserRepository) CountOwners() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", string(roles.Owner)).Count(&count).Error
	return count, err
}

func (r *UserRepository) UpdateRole(id string, role roles.Role) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("role", string(role)).Error
}

// UpdateProfile writes the mutable profile fields. Last writer wins.
// A nil username means the field was omitted and the stored value is
// kept; it never erases an existing username.
func (r *UserRepository) UpdateProfile(id string, username *string, firstName, lastName string) error {
	updates := map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
	}
	if username != nil {
		updates["username"] = username
	}
	err := r.db.Model(&models.User{}).Where("id = ?", id).
		Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("username already in use")
	}
	return err
}

func (r *UserRepository) UpdateLastLogin(id string, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}
