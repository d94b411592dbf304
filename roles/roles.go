// Package roles holds the platform role hierarchy. A single Role field
// carries two dimensions: the administrative tier (OWNER > ADMIN >
// everyone else) and the subscription tier (FREE < PREMIUM <
// PREMIUM_PLUS < ENDIUM).
package roles

import (
	"fmt"

	"panda-gate/apperrors"
)

type Role string

const (
	Owner       Role = "OWNER"
	Admin       Role = "ADMIN"
	Endium      Role = "ENDIUM"
	PremiumPlus Role = "PREMIUM_PLUS"
	Premium     Role = "PREMIUM"
	Free        Role = "FREE"
)

// All lists every valid role. Order is display order, highest tier first.
var All = []Role{Owner, Admin, Endium, PremiumPlus, Premium, Free}

func Valid(r Role) bool {
	for _, known := range All {
		if r == known {
			return true
		}
	}
	return false
}

// IsAdmin reports whether r sits in the administrative tier.
func IsAdmin(r Role) bool { return r == Owner || r == Admin }

// CanChangeRole decides whether an account with role current may be moved
// to target, given the number of OWNER accounts in the store and whether
// the acting admin is changing their own account.
//
// The last OWNER can never be demoted, and an admin cannot strip their
// own admin tier (self-lockout guard). Callers must re-run this check
// inside the commit transaction, not only at request entry.
func CanChangeRole(current, target Role, ownerCount int64, sameAccount bool) error {
	if !Valid(target) {
		return apperrors.Validation(fmt.Sprintf("unknown role %q", target))
	}
	if current == Owner && target != Owner && ownerCount <= 1 {
		return apperrors.Forbidden("cannot demote the last owner")
	}
	if sameAccount && IsAdmin(current) && !IsAdmin(target) {
		return apperrors.Forbidden("admins cannot demote their own account")
	}
	return nil
}
