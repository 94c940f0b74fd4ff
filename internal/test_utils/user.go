package test_utils

import (
	"context"

	"github.com/techbudget/techbudget/pkg/user"
)

// WithTestUser returns a context carrying a fixed test user, the same way the
// HTTP middleware attaches the request user.
func WithTestUser(ctx context.Context) context.Context {
	return user.WithUser(ctx, user.User{
		Id:       123,
		Uid:      "test-uid",
		Username: "test_user",
		FullName: "Test User",
	})
}
