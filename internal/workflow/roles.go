package workflow

import "fmt"

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleSuperAdmin   Role = "superadmin"
	RolePhotographer Role = "photographer"
	RoleEditor       Role = "editor"
	RoleClient       Role = "client"
)

var roles = map[Role]bool{
	RoleAdmin:        true,
	RoleSuperAdmin:   true,
	RolePhotographer: true,
	RoleEditor:       true,
	RoleClient:       true,
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !roles[r] {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}

// IsAdmin is the admin/superadmin union used for permission checks.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CanUpload reports whether the role may upload the given media type.
// Photographers own RAW uploads, editors own edited uploads; admins may do
// either on the talent's behalf.
func (r Role) CanUpload(uploadType string) bool {
	switch uploadType {
	case "raw":
		return r == RolePhotographer || r.IsAdmin()
	case "edited":
		return r == RoleEditor || r.IsAdmin()
	}
	return false
}
