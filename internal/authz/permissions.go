// internal/authz/permissions.go
package authz

// Role - роль пользователя, хранится строкой в users.role.
type Role string

const (
	RoleEmployee      Role = "employee"
	RoleTeacher       Role = "teacher"
	RoleAdministrator Role = "administrator"
)

// Capability - что роль может делать с ресурсами.
type Capability string

const (
	Read  Capability = "read"
	Write Capability = "write"
)

// capabilities - вся политика доступа в одной таблице.
var capabilities = map[Role]map[Capability]bool{
	RoleEmployee:      {Read: true},
	RoleTeacher:       {Read: true, Write: true},
	RoleAdministrator: {Read: true, Write: true},
}

// Roles возвращает известные роли в порядке возрастания прав.
func Roles() []Role {
	return []Role{RoleEmployee, RoleTeacher, RoleAdministrator}
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := capabilities[r]
	return r, ok
}
