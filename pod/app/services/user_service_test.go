package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"panda-gate/apperrors"
	"panda-gate/pod/app/models"
	"panda-gate/pod/app/repo"
	"panda-gate/roles"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.ApiToken{}, &models.Notification{}))
	return gdb
}

func newTestUserService(t *testing.T, envAdmin bool) *UserService {
	t.Helper()
	return NewUserService(repo.NewUserRepository(newTestDB(t)), nil, envAdmin)
}

func TestCountOwners_Progression(t *testing.T) {
	gdb := newTestDB(t)
	users := repo.NewUserRepository(gdb)
	svc := NewUserService(users, nil, false)

	count, err := users.CountOwners()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, svc.EnsureOwner("one@panda.dev", "password-one"))
	count, _ = users.CountOwners()
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.EnsureOwner("two@panda.dev", "password-two"))
	count, _ = users.CountOwners()
	assert.Equal(t, int64(2), count)
}

func TestRegister_NormalizesEmailAndConflicts(t *testing.T) {
	svc := newTestUserService(t, false)

	u, err := svc.Register("User@Panda.Dev", "password123", "Pan", "Da")
	require.NoError(t, err)
	assert.Equal(t, "user@panda.dev", u.Email)
	assert.Equal(t, string(roles.Free), u.Role)
	assert.NotEmpty(t, u.ID)

	_, err = svc.Register("user@panda.dev", "otherpassword", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestValidateCredentials(t *testing.T) {
	svc := newTestUserService(t, false)
	_, err := svc.Register("login@panda.dev", "password123", "", "")
	require.NoError(t, err)

	u, err := svc.ValidateCredentials("Login@Panda.Dev", "password123")
	require.NoError(t, err)
	require.NotNil(t, u.LastLoginAt, "login must stamp last_login_at")

	// wrong password and unknown email are indistinguishable to callers
	_, errWrong := svc.ValidateCredentials("login@panda.dev", "nope-nope")
	_, errUnknown := svc.ValidateCredentials("ghost@panda.dev", "whatever")
	require.Error(t, errWrong)
	require.Error(t, errUnknown)
	assert.True(t, errors.Is(errWrong, apperrors.ErrAuthentication))
	assert.True(t, errors.Is(errUnknown, apperrors.ErrAuthentication))
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestBootstrapAllowed(t *testing.T) {
	svc := newTestUserService(t, false)

	allowed, err := svc.BootstrapAllowed()
	require.NoError(t, err)
	assert.True(t, allowed, "empty store with no env admin must allow bootstrap")

	_, err = svc.Bootstrap("first@panda.dev", "bootstrap-password")
	require.NoError(t, err)

	allowed, err = svc.BootstrapAllowed()
	require.NoError(t, err)
	assert.False(t, allowed, "gate closes after the first owner")
}

func TestBootstrapAllowed_EnvAdminClosesGate(t *testing.T) {
	svc := newTestUserService(t, true)

	allowed, err := svc.BootstrapAllowed()
	require.NoError(t, err)
	assert.False(t, allowed)

	_, err = svc.Bootstrap("late@panda.dev", "bootstrap-password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuthorization))
}

func TestBootstrap_SecondAttemptRejected(t *testing.T) {
	svc := newTestUserService(t, false)

	u, err := svc.Bootstrap("first@panda.dev", "bootstrap-password")
	require.NoError(t, err)
	assert.Equal(t, string(roles.Owner), u.Role)

	_, err = svc.Bootstrap("second@panda.dev", "bootstrap-password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuthorization))
}

func TestBootstrap_ConcurrentAttemptsYieldOneOwner(t *testing.T) {
	gdb := newTestDB(t)
	users := repo.NewUserRepository(gdb)
	svc := NewUserService(users, nil, false)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.Bootstrap(fmt.Sprintf("racer%d@panda.dev", n), "bootstrap-password")
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var successes int
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.True(t, errors.Is(err, apperrors.ErrAuthorization))
		}
	}
	assert.Equal(t, 1, successes)

	count, err := users.CountOwners()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "two racing bootstraps must produce exactly one owner")
}

func TestChangeRole_LastOwnerProtected(t *testing.T) {
	svc := newTestUserService(t, false)
	owner, err := svc.Bootstrap("owner@panda.dev", "bootstrap-password")
	require.NoError(t, err)
	admin, err := svc.Register("admin@panda.dev", "password123", "", "")
	require.NoError(t, err)

	// demoting the only owner is denied even for another actor
	_, err = svc.ChangeRole(context.Background(), admin.ID, owner.ID, roles.Admin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuthorization))

	// with a second owner the demotion goes through
	_, err = svc.ChangeRole(context.Background(), owner.ID, admin.ID, roles.Owner)
	require.NoError(t, err)
	updated, err := svc.ChangeRole(context.Background(), admin.ID, owner.ID, roles.Admin)
	require.NoError(t, err)
	assert.Equal(t, string(roles.Admin), updated.Role)
}

func TestChangeRole_SelfLockout(t *testing.T) {
	svc := newTestUserService(t, false)
	owner, err := svc.Bootstrap("owner@panda.dev", "bootstrap-password")
	require.NoError(t, err)
	second, err := svc.Register("second@panda.dev", "password123", "", "")
	require.NoError(t, err)
	_, err = svc.ChangeRole(context.Background(), owner.ID, second.ID, roles.Owner)
	require.NoError(t, err)

	// two owners exist, but an admin still cannot strip their own tier
	_, err = svc.ChangeRole(context.Background(), owner.ID, owner.ID, roles.Free)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuthorization))
}

func TestChangeRole_UnknownRole(t *testing.T) {
	svc := newTestUserService(t, false)
	owner, err := svc.Bootstrap("owner@panda.dev", "bootstrap-password")
	require.NoError(t, err)
	u, err := svc.Register("user@panda.dev", "password123", "", "")
	require.NoError(t, err)

	_, err = svc.ChangeRole(context.Background(), owner.ID, u.ID, roles.Role("GODMODE"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestUpdateProfile_Ownership(t *testing.T) {
	svc := newTestUserService(t, false)
	a, err := svc.Register("a@panda.dev", "password123", "", "")
	require.NoError(t, err)
	b, err := svc.Register("b@panda.dev", "password123", "", "")
	require.NoError(t, err)

	name := "pandauser"
	u, err := svc.UpdateProfile(a.ID, roles.Free, a.ID, &name, "First", "Last")
	require.NoError(t, err)
	require.NotNil(t, u.Username)
	assert.Equal(t, "pandauser", *u.Username)

	// an ordinary user cannot edit someone else's profile
	_, err = svc.UpdateProfile(b.ID, roles.Free, a.ID, nil, "X", "Y")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuthorization))

	// username uniqueness is enforced as a conflict
	_, err = svc.UpdateProfile(b.ID, roles.Free, b.ID, &name, "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestUpdateProfile_OmittedUsernameSurvives(t *testing.T) {
	svc := newTestUserService(t, false)
	u, err := svc.Register("user@panda.dev", "password123", "", "")
	require.NoError(t, err)

	name := "pandauser"
	_, err = svc.UpdateProfile(u.ID, roles.Free, u.ID, &name, "First", "Last")
	require.NoError(t, err)

	// a name-only update leaves the username alone
	updated, err := svc.UpdateProfile(u.ID, roles.Free, u.ID, nil, "Second", "Last")
	require.NoError(t, err)
	require.NotNil(t, updated.Username)
	assert.Equal(t, "pandauser", *updated.Username)
	assert.Equal(t, "Second", updated.FirstName)
}

func TestCurrentRole_ReadsStore(t *testing.T) {
	svc := newTestUserService(t, false)
	u, err := svc.Register("user@panda.dev", "password123", "", "")
	require.NoError(t, err)

	role, err := svc.CurrentRole(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.Free, role)

	owner, err := svc.Bootstrap("owner@panda.dev", "bootstrap-password")
	require.NoError(t, err)
	_, err = svc.ChangeRole(context.Background(), owner.ID, u.ID, roles.Premium)
	require.NoError(t, err)

	role, err = svc.CurrentRole(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.Premium, role, "role re-read must see the store, not a stale snapshot")
}
