package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"panda-gate/apperrors"
	"panda-gate/pod/app/models"
	"panda-gate/pod/app/repo"
	"panda-gate/pod/app/rolecache"
	"panda-gate/pod/global"
	"panda-gate/roles"
)

type UserService struct {
	users     *repo.UserRepository
	roleCache *rolecache.Cache

	// envAdmin records that owner credentials came from the
	// environment, which closes the bootstrap gate for good.
	envAdmin bool

	// bootstrapMu serializes the owner check-then-create sequence
	// within this process; the transaction recount plus the unique
	// email index back it up at the store.
	bootstrapMu sync.Mutex
}

func NewUserService(users *repo.UserRepository, roleCache *rolecache.Cache, envAdmin bool) *UserService {
	return &UserService{users: users, roleCache: roleCache, envAdmin: envAdmin}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EnsureOwner seeds the environment-configured owner account at
// startup. Idempotent: an existing account with that email is left as
// is.
func (s *UserService) EnsureOwner(email, password string) error {
	email = normalizeEmail(email)
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Create(&models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         string(roles.Owner),
	})
}

// BootstrapAllowed reports whether the one-time first-owner creation is
// still open: no environment-configured owner and zero owners stored.
func (s *UserService) BootstrapAllowed() (bool, error) {
	if s.envAdmin {
		return false, nil
	}
	count, err := s.users.CountOwners()
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Bootstrap creates the first owner. The gate is re-checked inside the
// store transaction, so two racing bootstrap requests yield exactly one
// owner.
func (s *UserService) Bootstrap(email, password string) (*models.User, error) {
	if s.envAdmin {
		return nil, apperrors.Forbidden("bootstrap is closed")
	}
	s.bootstrapMu.Lock()
	defer s.bootstrapMu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Role:         string(roles.Owner),
	}
	err = s.users.Transaction(func(tx *repo.UserRepository) error {
		count, err := tx.CountOwners()
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.Forbidden("bootstrap is closed")
		}
		return tx.Create(u)
	})
	if err != nil {
		return nil, err
	}
	global.Logger.Info().Str("email", u.Email).Msg("bootstrap owner created")
	return u, nil
}

// Register creates an ordinary account on the free tier.
func (s *UserService) Register(email, password, firstName, lastName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
		Role:         string(roles.Free),
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ValidateCredentials checks email+password and stamps the login time.
// The caller-facing error never distinguishes unknown email from wrong
// password; the log may.
func (s *UserService) ValidateCredentials(email, password string) (*models.User, error) {
	u, err := s.users.FindByEmail(normalizeEmail(email))
	if err != nil {
		global.Logger.Debug().Str("email", normalizeEmail(email)).Msg("login: unknown email")
		return nil, apperrors.Unauthenticated("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		global.Logger.Debug().Str("user_id", u.ID).Msg("login: wrong password")
		return nil, apperrors.Unauthenticated("invalid credentials")
	}
	now := time.Now()
	if err := s.users.UpdateLastLogin(u.ID, now); err != nil {
		return nil, err
	}
	u.LastLoginAt = &now
	return u, nil
}

func (s *UserService) Get(id string) (*models.User, error) { return s.users.FindByID(id) }

func (s *UserService) List() ([]models.User, error) { return s.users.List() }

// ChangeRole moves target to newRole. The last-owner and self-lockout
// guards run inside the transaction so a racing demotion cannot drop
// the owner count to zero.
func (s *UserService) ChangeRole(ctx context.Context, actorID, targetID string, newRole roles.Role) (*models.User, error) {
	var updated *models.User
	err := s.users.Transaction(func(tx *repo.UserRepository) error {
		target, err := tx.FindByID(targetID)
		if err != nil {
			return err
		}
		ownerCount, err := tx.CountOwners()
		if err != nil {
			return err
		}
		if err := roles.CanChangeRole(roles.Role(target.Role), newRole, ownerCount, actorID == targetID); err != nil {
			return err
		}
		if err := tx.UpdateRole(targetID, newRole); err != nil {
			return err
		}
		target.Role = string(newRole)
		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.roleCache.Forget(ctx, targetID)
	global.Logger.Info().Str("user_id", targetID).Str("role", string(newRole)).Msg("role changed")
	return updated, nil
}

// UpdateProfile writes profile fields for the user themself or for an
// admin acting on any account. Lost updates on these fields are
// acceptable (last writer wins).
func (s *UserService) UpdateProfile(actorID string, actorRole roles.Role, targetID string, username *string, firstName, lastName string) (*models.User, error) {
	if actorID != targetID && !roles.IsAdmin(actorRole) {
		return nil, apperrors.Forbidden("cannot edit another user's profile")
	}
	if err := s.users.UpdateProfile(targetID, username, firstName, lastName); err != nil {
		return nil, err
	}
	return s.users.FindByID(targetID)
}

// CurrentRole returns the stored role, preferring the short-TTL cache.
// Used by admin-gated middleware instead of trusting the token's role
// snapshot.
func (s *UserService) CurrentRole(ctx context.Context, userID string) (roles.Role, error) {
	if role, ok := s.roleCache.Role(ctx, userID); ok {
		return role, nil
	}
	u, err := s.users.FindByID(userID)
	if err != nil {
		return "", err
	}
	role := roles.Role(u.Role)
	s.roleCache.Remember(ctx, userID, role)
	return role, nil
}
