package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, 7, "TENANT_ADMIN")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID())
	assert.Equal(t, uint(7), claims.TenantID)
	assert.Equal(t, "TENANT_ADMIN", claims.Role)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, err := ParseJWT("not-a-token")
	assert.Error(t, err)

	_, err = ParseJWT("")
	assert.Error(t, err)
}
