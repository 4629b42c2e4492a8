package auth_test

import (
	"testing"
	"time"

	"summit-registration/internal/auth"
	"summit-registration/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		token, err := auth.GenerateToken("secret", time.Hour, "admin", model.RoleAdmin)
		require.NoError(t, err)

		claims, err := auth.ParseToken("secret", token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, model.RoleAdmin, claims.Role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := auth.GenerateToken("secret", time.Hour, "admin", model.RoleAdmin)
		require.NoError(t, err)

		_, err = auth.ParseToken("other-secret", token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.GenerateToken("secret", -time.Minute, "admin", model.RoleAdmin)
		require.NoError(t, err)

		_, err = auth.ParseToken("secret", token)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := auth.ParseToken("secret", "not-a-token")
		assert.Error(t, err)
	})
}
