package domain

// Role is the closed set of roles the platform knows about. Route access is
// declared as allow-lists of these values; there is no dynamic role storage.
type Role string

const (
	RoleVictorAdmin   Role = "VictorAdmin"
	RoleOperatorAdmin Role = "OperatorAdmin"
	RoleHandler       Role = "Handler"
	RoleAuthorityUser Role = "AuthorityUser"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleVictorAdmin, RoleOperatorAdmin, RoleHandler, RoleAuthorityUser:
		return true
	}
	return false
}
