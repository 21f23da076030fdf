package user

type Permission string

const (
	// Attendance
	PermissionAttendanceView   Permission = "attendance.view"
	PermissionAttendanceManage Permission = "attendance.manage"

	// Employees
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"

	// Dashboard
	PermissionDashboardView Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionAttendanceView,
		PermissionAttendanceManage,
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionDashboardView,
	},
	RoleManager: {
		PermissionAttendanceView,
		PermissionAttendanceManage,
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionDashboardView,
	},
	RoleViewer: {
		PermissionAttendanceView,
		PermissionEmployeeView,
		PermissionDashboardView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
