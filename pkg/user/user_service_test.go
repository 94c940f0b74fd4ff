package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	t.Run("should generate a uid when none is given", func(t *testing.T) {
		// given
		ctx := context.Background()
		service := NewUserService(NewStubUserRepo())

		// when
		created, err := service.CreateUser(ctx, User{Username: "jdoe", FullName: "John Doe"})

		// then
		assert.NoError(t, err)
		assert.NotEmpty(t, created.Uid)
		assert.NotZero(t, created.Id)
	})

	t.Run("should keep an explicit uid", func(t *testing.T) {
		// given
		ctx := context.Background()
		service := NewUserService(NewStubUserRepo())

		// when
		created, err := service.CreateUser(ctx, User{Uid: "external-sso-id", Username: "jdoe"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, "external-sso-id", created.Uid)

		found, err := service.GetUserByUid(ctx, "external-sso-id")
		assert.NoError(t, err)
		assert.Equal(t, created.Id, found.Id)
	})
}

func TestGetCurrentUser(t *testing.T) {
	t.Run("should return the user attached to the context", func(t *testing.T) {
		// given
		ctx := context.Background()
		service := NewUserService(NewStubUserRepo())
		created, err := service.CreateUser(ctx, User{Username: "jdoe"})
		assert.NoError(t, err)

		// when
		current, err := service.GetCurrentUser(WithUser(ctx, created))

		// then
		assert.NoError(t, err)
		assert.Equal(t, created.Id, current.Id)
	})

	t.Run("should fail when no user is in the context", func(t *testing.T) {
		// given
		service := NewUserService(NewStubUserRepo())

		// when
		_, err := service.GetCurrentUser(context.Background())

		// then
		assert.ErrorIs(t, err, ErrNoUser)
	})
}
