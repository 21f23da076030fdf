package user

import "github.com/emp-proj/employee-register-go/internal/pkg/validator"

type Role string

const (
	RoleOwner   Role = "owner"   // full access
	RoleManager Role = "manager" // records attendance and manages staff
	RoleViewer  Role = "viewer"  // read-only
)

var Roles = []Role{RoleOwner, RoleManager, RoleViewer}

func (r Role) IsValid() bool {
	return validator.IsInSlice(string(r), []string{string(RoleOwner), string(RoleManager), string(RoleViewer)})
}

// IsManager checks if the role is manager or owner
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}
