package service

import "context"

// callerKey is the context key for the caller's identity.
type callerKey struct{}

// WithCaller returns a context carrying the caller's email as supplied by
// the authentication collaborator. Identity always travels explicitly on
// the context; nothing reads it from ambient state.
func WithCaller(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, callerKey{}, email)
}

// CallerFromContext returns the caller's email, if one was attached.
func CallerFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(callerKey{}).(string)
	return email, ok && email != ""
}
