package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		errs := ValidateRegister("alice", "alice@example.com", "longenough")
		assert.False(t, errs.HasErrors())
	})

	t.Run("username checked first", func(t *testing.T) {
		errs := ValidateRegister("  ", "not-an-email", "short")
		assert.Len(t, errs, 1)
		assert.Contains(t, errs, "username")
	})

	t.Run("email shape checked before password", func(t *testing.T) {
		errs := ValidateRegister("alice", "no-at-sign", "short")
		assert.Len(t, errs, 1)
		assert.Contains(t, errs, "email")
	})

	t.Run("password must be at least 8 characters", func(t *testing.T) {
		errs := ValidateRegister("alice", "alice@example.com", "seven77")
		assert.Len(t, errs, 1)
		assert.Contains(t, errs, "password")
	})
}

func TestValidateLogin(t *testing.T) {
	assert.False(t, ValidateLogin("alice", "secret").HasErrors())
	assert.True(t, ValidateLogin("", "secret").HasErrors())
	assert.True(t, ValidateLogin("alice", "").HasErrors())
}

func TestValidateItem(t *testing.T) {
	t.Run("all fields present passes", func(t *testing.T) {
		errs := ValidateItem("Wallet", "Black leather", "Accessories", "Library")
		assert.False(t, errs.HasErrors())
	})

	t.Run("whitespace-only fields are missing", func(t *testing.T) {
		errs := ValidateItem("Wallet", "  ", "Accessories", "")
		assert.Contains(t, errs, "description")
		assert.Contains(t, errs, "location")
		assert.NotContains(t, errs, "title")
	})
}
