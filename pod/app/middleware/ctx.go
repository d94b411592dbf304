package middleware

import (
	"context"

	"panda-gate/session"
)

func GetClaims(ctx context.Context) *session.Claims {
	if v := ctx.Value(claimsKey); v != nil {
		if c, ok := v.(*session.Claims); ok {
			return c
		}
	}
	return nil
}
