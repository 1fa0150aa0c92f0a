package auth

import "context"

type contextKey string

const principalKey contextKey = "principal_id"

// SetPrincipal stores the authenticated owner identity in the context.
func SetPrincipal(ctx context.Context, principalID string) context.Context {
	return context.WithValue(ctx, principalKey, principalID)
}

// PrincipalFromContext extracts the authenticated owner identity. The second
// return is false when the request never passed authentication.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(principalKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
