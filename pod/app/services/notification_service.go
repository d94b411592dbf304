package services

import (
	"time"

	"github.com/google/uuid"

	"panda-gate/apperrors"
	"panda-gate/pod/app/models"
	"panda-gate/pod/app/repo"
	"panda-gate/roles"
)

type NotificationService struct {
	notifications *repo.NotificationRepository
}

func NewNotificationService(notifications *repo.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) Create(userID, title, body string) (*models.Notification, error) {
	n := &models.Notification{ID: uuid.NewString(), UserID: userID, Title: title, Body: body}
	if err := s.notifications.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) ListForUser(userID string) ([]models.Notification, error) {
	return s.notifications.ListByUser(userID)
}

// owned enforces the ownership invariant: only the owner or an admin
// may mutate a notification.
func (s *NotificationService) owned(id, actorID string, actorRole roles.Role) (*models.Notification, error) {
	n, err := s.notifications.FindByID(id)
	if err != nil {
		return nil, err
	}
	if n.UserID != actorID && !roles.IsAdmin(actorRole) {
		return nil, apperrors.Forbidden("not your notification")
	}
	return n, nil
}

func (s *NotificationService) MarkRead(id, actorID string, actorRole roles.Role) error {
	if _, err := s.owned(id, actorID, actorRole); err != nil {
		return err
	}
	return s.notifications.MarkRead(id, time.Now())
}

func (s *NotificationService) Delete(id, actorID string, actorRole roles.Role) error {
	if _, err := s.owned(id, actorID, actorRole); err != nil {
		return err
	}
	return s.notifications.Delete(id)
}
