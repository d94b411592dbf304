package roles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panda-gate/apperrors"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(Owner))
	assert.True(t, IsAdmin(Admin))
	assert.False(t, IsAdmin(Endium))
	assert.False(t, IsAdmin(PremiumPlus))
	assert.False(t, IsAdmin(Premium))
	assert.False(t, IsAdmin(Free))
}

func TestQuotaFor_TotalOverEnum(t *testing.T) {
	for _, r := range All {
		q, err := QuotaFor(r)
		require.NoErrorf(t, err, "role %s must have a quota entry", r)
		assert.Positivef(t, q.MaxCustomProxies, "role %s", r)
		assert.Positivef(t, q.MaxMiniServers, "role %s", r)
		assert.Positivef(t, q.MaxAPITokens, "role %s", r)
	}
}

func TestQuotaFor_UnknownRole(t *testing.T) {
	_, err := QuotaFor(Role("SUPERDUPER"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestQuota_SubscriptionOrdering(t *testing.T) {
	free, _ := QuotaFor(Free)
	premium, _ := QuotaFor(Premium)
	plus, _ := QuotaFor(PremiumPlus)
	endium, _ := QuotaFor(Endium)

	assert.Less(t, free.MaxMiniServers, premium.MaxMiniServers)
	assert.Less(t, premium.MaxMiniServers, plus.MaxMiniServers)
	assert.Less(t, plus.MaxMiniServers, endium.MaxMiniServers)
}

func TestCanChangeRole_LastOwner(t *testing.T) {
	err := CanChangeRole(Owner, Admin, 1, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuthorization))

	assert.NoError(t, CanChangeRole(Owner, Admin, 2, false))
}

func TestCanChangeRole_SelfLockout(t *testing.T) {
	err := CanChangeRole(Admin, Free, 1, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuthorization))

	// promoting yourself between admin tiers is fine
	assert.NoError(t, CanChangeRole(Admin, Owner, 1, true))
	// someone else demoting an admin is fine
	assert.NoError(t, CanChangeRole(Admin, Free, 1, false))
}

func TestCanChangeRole_UnknownTarget(t *testing.T) {
	err := CanChangeRole(Free, Role("GODMODE"), 1, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestCanChangeRole_OrdinaryUpgrade(t *testing.T) {
	assert.NoError(t, CanChangeRole(Free, Premium, 1, false))
	assert.NoError(t, CanChangeRole(Premium, Free, 1, false))
}
