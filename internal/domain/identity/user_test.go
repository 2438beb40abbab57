package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		user, err := NewUser("Chef01", "Head Chef", "kitchen-secret", RoleStaff)
		require.NoError(t, err)
		assert.Equal(t, "chef01", user.Username)
		assert.NotEqual(t, "kitchen-secret", user.PasswordHash)
		assert.True(t, user.CheckPassword("kitchen-secret"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewUser("ab", "", "kitchen-secret", RoleStaff)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("chef01", "", "short", RoleStaff)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("chef01", "", "kitchen-secret", UserRole("owner"))
		assert.Error(t, err)
	})
}

func TestRecordLogin(t *testing.T) {
	user, err := NewUser("chef01", "", "kitchen-secret", RoleAdmin)
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	at := time.Now()
	user.RecordLogin(at)
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, at, *user.LastLoginAt)
}
