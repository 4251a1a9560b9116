package auth

// Role is the closed set of principal roles the identity service can issue.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleTenantAdmin Role = "TENANT_ADMIN"
	RoleTeacher     Role = "TEACHER"
	RoleStaff       Role = "STAFF"
	RoleStudent     Role = "STUDENT"
	RoleParent      Role = "PARENT"
)

// CanMutateSite is the single authorization policy for every mutating
// builder operation.
func CanMutateSite(role Role) bool {
	return role == RoleSuperAdmin || role == RoleTenantAdmin
}
