package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanMutateSite(t *testing.T) {
	assert.True(t, CanMutateSite(RoleSuperAdmin))
	assert.True(t, CanMutateSite(RoleTenantAdmin))

	assert.False(t, CanMutateSite(RoleTeacher))
	assert.False(t, CanMutateSite(RoleStaff))
	assert.False(t, CanMutateSite(RoleStudent))
	assert.False(t, CanMutateSite(RoleParent))
	assert.False(t, CanMutateSite(Role("MADE_UP")))
	assert.False(t, CanMutateSite(Role("")))
}
