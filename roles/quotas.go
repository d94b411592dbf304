package roles

import (
	"fmt"

	"panda-gate/apperrors"
)

// Quota is the per-role resource limit row. Limits are displayed to the
// user and not enforced at resource creation.
type Quota struct {
	MaxCustomProxies int `json:"max_custom_proxies"`
	MaxMiniServers   int `json:"max_mini_servers"`
	MaxAPITokens     int `json:"max_api_tokens"`
}

// quotas must cover every role in All; QuotaFor treats a missing entry
// as a configuration error, never a silent fallback.
var quotas = map[Role]Quota{
	Free:        {MaxCustomProxies: 1, MaxMiniServers: 1, MaxAPITokens: 2},
	Premium:     {MaxCustomProxies: 3, MaxMiniServers: 2, MaxAPITokens: 5},
	PremiumPlus: {MaxCustomProxies: 5, MaxMiniServers: 4, MaxAPITokens: 10},
	Endium:      {MaxCustomProxies: 10, MaxMiniServers: 8, MaxAPITokens: 20},
	Admin:       {MaxCustomProxies: 25, MaxMiniServers: 15, MaxAPITokens: 50},
	Owner:       {MaxCustomProxies: 100, MaxMiniServers: 50, MaxAPITokens: 100},
}

func QuotaFor(r Role) (Quota, error) {
	q, ok := quotas[r]
	if !ok {
		return Quota{}, apperrors.Validation(fmt.Sprintf("no quota configured for role %q", r))
	}
	return q, nil
}
