package jwt

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	userID := uuid.New()
	privileges := []string{"stock:view", "stock:sell"}

	token, err := GenerateToken(userID, "maria.papadaki.001", "Maria Papadaki",
		"EMPLOYEE", "001", privileges, "v1")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "maria.papadaki.001", claims.Username)
	assert.Equal(t, "EMPLOYEE", claims.RoleCode)
	assert.Equal(t, "001", claims.UnitCode)
	assert.Equal(t, privileges, claims.Privileges)
	assert.Equal(t, "v1", claims.TokenVersion)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "admin", "Admin", "ADMIN", "", nil, "v1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
