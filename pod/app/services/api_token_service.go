package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"

	"panda-gate/apperrors"
	"panda-gate/pod/app/models"
	"panda-gate/pod/app/repo"
	"panda-gate/roles"
)

type ApiTokenService struct {
	tokens *repo.ApiTokenRepository
}

func NewApiTokenService(tokens *repo.ApiTokenRepository) *ApiTokenService {
	return &ApiTokenService{tokens: tokens}
}

// Create issues a new API token for userID. The plaintext is returned
// once and only its hash is stored.
func (s *ApiTokenService) Create(userID, name string) (*models.ApiToken, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", err
	}
	plaintext := "pgt_" + hex.EncodeToString(raw)
	sum := sha256.Sum256([]byte(plaintext))

	t := &models.ApiToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		TokenHash: hex.EncodeToString(sum[:]),
	}
	if err := s.tokens.Create(t); err != nil {
		return nil, "", err
	}
	return t, plaintext, nil
}

func (s *ApiTokenService) ListForUser(userID string) ([]models.ApiToken, error) {
	return s.tokens.ListByUser(userID)
}

func (s *ApiTokenService) Delete(id, actorID string, actorRole roles.Role) error {
	t, err := s.tokens.FindByID(id)
	if err != nil {
		return err
	}
	if t.UserID != actorID && !roles.IsAdmin(actorRole) {
		return apperrors.Forbidden("not your token")
	}
	return s.tokens.Delete(id)
}
