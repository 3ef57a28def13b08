package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catebros/lostfound/internal/domain"
)

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a standard-role user with hashed password", func(t *testing.T) {
		f := newFixture()

		resp, err := f.auth.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, resp.User.Role)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEqual(t, "supersecret", resp.User.PasswordHash)
		assert.True(t, verifyPassword("supersecret", resp.User.PasswordHash))
		assert.Contains(t, f.actions(), domain.ActionRegister)
	})

	t.Run("rejects a taken username before a taken email", func(t *testing.T) {
		f := newFixture()
		f.addUser("alice", domain.RoleUser)

		_, err := f.auth.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@example.com", // also taken
			Password: "supersecret",
		})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		f := newFixture()
		f.addUser("alice", domain.RoleUser)

		_, err := f.auth.Register(ctx, RegisterInput{
			Username: "alice2",
			Email:    "alice@example.com",
			Password: "supersecret",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	register := func(f *fixture) {
		_, err := f.auth.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)
	}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		f := newFixture()
		register(f)

		resp, err := f.auth.Login(ctx, LoginInput{Username: "alice", Password: "supersecret"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Contains(t, f.actions(), domain.ActionLogin)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		f := newFixture()
		register(f)

		_, errUnknown := f.auth.Login(ctx, LoginInput{Username: "nobody", Password: "supersecret"})
		_, errWrongPw := f.auth.Login(ctx, LoginInput{Username: "alice", Password: "wrongpass"})
		assert.ErrorIs(t, errUnknown, ErrInvalidCreds)
		assert.ErrorIs(t, errWrongPw, ErrInvalidCreds)
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	})
}

func TestAuthServiceLogout(t *testing.T) {
	f := newFixture()
	alice := f.addUser("alice", domain.RoleUser)

	f.auth.Logout(context.Background(), alice.ID)
	assert.Contains(t, f.actions(), domain.ActionLogout)
}
