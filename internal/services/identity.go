package services

import "context"

type contextKey int

const userIDKey contextKey = iota

// WithUserID returns a context carrying the authenticated user's ID. The
// HTTP layer attaches it after validating the session token; tests attach it
// directly.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext reports the authenticated user, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// requireUser is the authorization gate every operation passes through before
// touching the store.
func requireUser(ctx context.Context) (string, *Error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return "", errUnauthenticated()
	}
	return userID, nil
}
