package apiclient

import (
	"context"

	"github.com/stemsi/sekolah-console/internal/model"
)

// Credentials is the persisted login state of the browser session a request
// is made on behalf of.
type Credentials interface {
	Token() string
	User() *model.User
	// Clear drops the persisted token and user together.
	Clear(ctx context.Context) error
}

type credentialsKey struct{}

// WithCredentials returns a context whose API calls are made as creds.
// A nil creds makes calls anonymous.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom returns the credentials attached to ctx, if any.
func CredentialsFrom(ctx context.Context) Credentials {
	creds, _ := ctx.Value(credentialsKey{}).(Credentials)
	return creds
}
