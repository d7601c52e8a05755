package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	user := User{}
	require.NoError(t, user.SetPassword("s3cret-pass"))

	assert.NotEqual(t, "s3cret-pass", user.Password) // stored hashed
	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUserPrivileges(t *testing.T) {
	user := User{Privileges: []Privilege{
		{Code: "stock:view"},
		{Code: "stock:sell"},
	}}

	assert.True(t, user.HasPrivilege("stock:sell"))
	assert.False(t, user.HasPrivilege("stock:purchase"))
	assert.Equal(t, []string{"stock:view", "stock:sell"}, user.GetPrivilegeCodes())
}

func TestUserRoleCode(t *testing.T) {
	user := User{}
	assert.Equal(t, "", user.RoleCode())

	user.Role = &Role{Code: RoleSupervisor}
	assert.Equal(t, RoleSupervisor, user.RoleCode())
}
