package domain

// Role is the authorization label checked by role guards.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleCorporate  Role = "corporate"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// AdminMarker is the stored IsAdmin value that grants admin-only access.
const AdminMarker = "admin"

// RoleSet is an explicit set of allowed roles.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from roles.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Contains reports whether r is in the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// RoleAllowed reports whether the principal's role is a member of allowed.
// An empty set allows nobody.
func RoleAllowed(p Principal, allowed RoleSet) bool {
	return allowed.Contains(p.Role)
}

// HasAdminMarker reports whether the principal's IsAdmin attribute equals
// the string "admin". This is deliberately not the role check: records
// with role "admin" but no marker fail it.
//
// TODO(product): confirm whether admin-only routes should switch to the
// role field; some stored records only carry the string marker.
func HasAdminMarker(p Principal) bool {
	return p.IsAdmin == AdminMarker
}
