package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"panda-gate/apperrors"
	"panda-gate/pod/app/models"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) ListByUser(userID string) ([]models.Notification, error) {
	var out []models.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *NotificationRepository) FindByID(id string) (*models.Notification, error) {
	var n models.Notification
	err := r.db.Where("id = ?", id).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("notification not found")
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) MarkRead(id string, at time.Time) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Update("read_at", at).Error
}

func (r *NotificationRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Notification{}).Error
}
