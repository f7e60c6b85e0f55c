// Package access answers "can this user see or act on application X" from the
// user's role and application assignments.
package access

import "tracker.app/api-server/internal/model"

// Permissions is the fixed-shape capability record for one role.
type Permissions struct {
	CanCreateRelease bool
	CanEditRelease   bool
	CanDeleteRelease bool
	CanPublish       bool
	CanManageUsers   bool
	CanViewActivity  bool
}

var rolePermissions = map[model.Role]Permissions{
	model.RoleSuperAdmin: {
		CanCreateRelease: true,
		CanEditRelease:   true,
		CanDeleteRelease: true,
		CanPublish:       true,
		CanManageUsers:   true,
		CanViewActivity:  true,
	},
	model.RoleAdmin: {
		CanCreateRelease: true,
		CanEditRelease:   true,
		CanDeleteRelease: true,
		CanPublish:       true,
	},
	model.RoleBasic: {},
}

// PermissionsFor returns the capability record for a role. Unknown roles get
// the zero record (no capabilities).
func PermissionsFor(role model.Role) Permissions {
	return rolePermissions[role]
}

// UserAccessibleApplications returns the applications the user may access.
// Super admins always get the full enumerated list regardless of their
// assignments; everyone else gets their assignments verbatim, degrading to an
// empty list when absent.
func UserAccessibleApplications(user *model.User) []model.Application {
	if user == nil {
		return []model.Application{}
	}
	if user.Role == model.RoleSuperAdmin {
		return model.Applications()
	}
	if user.AssignedApplications == nil {
		return []model.Application{}
	}
	return user.AssignedApplications
}

// UserHasApplicationAccess reports whether app is a case-sensitive exact
// match within the user's accessible set. A super admin matches any correctly
// spelled enumerated application, never arbitrary strings.
func UserHasApplicationAccess(user *model.User, app model.Application) bool {
	for _, a := range UserAccessibleApplications(user) {
		if a == app {
			return true
		}
	}
	return false
}

// UserHasAnyApplicationAccess reports whether at least one element of apps
// passes the single-application check. An empty apps list is always false,
// including for super admins.
func UserHasAnyApplicationAccess(user *model.User, apps []model.Application) bool {
	for _, app := range apps {
		if UserHasApplicationAccess(user, app) {
			return true
		}
	}
	return false
}

// UserCanEditApplication gates unpublished-release visibility: edit access to
// the owning application is required.
func UserCanEditApplication(user *model.User, app model.Application) bool {
	if user == nil {
		return false
	}
	if !PermissionsFor(user.Role).CanEditRelease {
		return false
	}
	return UserHasApplicationAccess(user, app)
}
