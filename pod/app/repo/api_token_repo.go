package repo

import (
	"errors"

	"gorm.io/gorm"

	"panda-gate/apperrors"
	"panda-gate/pod/app/models"
)

type ApiTokenRepository struct{ db *gorm.DB }

func NewApiTokenRepository(db *gorm.DB) *ApiTokenRepository { return &ApiTokenRepository{db: db} }

func (r *ApiTokenRepository) Create(t *models.ApiToken) error {
	if err := r.db.Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("token already exists")
		}
		return err
	}
	return nil
}

func (r *ApiTokenRepository) ListByUser(userID string) ([]models.ApiToken, error) {
	var out []models.ApiToken
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *ApiTokenRepository) FindByID(id string) (*models.ApiToken, error) {
	var t models.ApiToken
	err := r.db.Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("token not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ApiTokenRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.ApiToken{}).Error
}
