package authz

import "github.com/rahulpatel51/hostel-management/internal/entity"

// Resource names the API surface an action applies to.
type Resource string

const (
	ResourceUsers      Resource = "users"
	ResourceStudents   Resource = "students"
	ResourceWardens    Resource = "wardens"
	ResourceRooms      Resource = "rooms"
	ResourceComplaints Resource = "complaints"
	ResourceLeaves     Resource = "leaves"
	ResourceAttendance Resource = "attendance"
	ResourceDiscipline Resource = "discipline"
	ResourceNotices    Resource = "notices"
	ResourceMess       Resource = "mess"
	ResourceFees       Resource = "fees"
	ResourceReports    Resource = "reports"
	ResourceDashboard  Resource = "dashboard"
)

// Action is the operation attempted on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionManage Action = "manage" // assignment, status changes, activation
)

type permission struct {
	role     entity.Role
	resource Resource
	action   Action
}

// policy is the single source of truth for what each role may do.
// Handlers never compare role strings themselves; they go through
// Allowed (usually via the RequirePermission middleware).
var policy = buildPolicy()

func buildPolicy() map[permission]struct{} {
	p := make(map[permission]struct{})

	grant := func(role entity.Role, resource Resource, actions ...Action) {
		for _, a := range actions {
			p[permission{role: role, resource: resource, action: a}] = struct{}{}
		}
	}

	all := []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionManage}

	// Admin can do everything on every resource.
	for _, res := range []Resource{
		ResourceUsers, ResourceStudents, ResourceWardens, ResourceRooms,
		ResourceComplaints, ResourceLeaves, ResourceAttendance, ResourceDiscipline,
		ResourceNotices, ResourceMess, ResourceFees, ResourceReports, ResourceDashboard,
	} {
		grant(entity.RoleAdmin, res, all...)
	}

	// Wardens manage day-to-day hostel operations within their blocks.
	grant(entity.RoleWarden, ResourceStudents, ActionRead)
	grant(entity.RoleWarden, ResourceRooms, ActionRead, ActionCreate, ActionUpdate, ActionManage)
	grant(entity.RoleWarden, ResourceComplaints, ActionRead, ActionUpdate, ActionManage)
	grant(entity.RoleWarden, ResourceLeaves, ActionRead, ActionUpdate, ActionManage)
	grant(entity.RoleWarden, ResourceAttendance, ActionRead, ActionCreate, ActionUpdate)
	grant(entity.RoleWarden, ResourceDiscipline, ActionRead, ActionCreate, ActionUpdate, ActionManage)
	// Wardens may update or delete only notices they authored; the notice
	// service enforces ownership.
	grant(entity.RoleWarden, ResourceNotices, ActionRead, ActionCreate, ActionUpdate, ActionDelete)
	grant(entity.RoleWarden, ResourceMess, ActionRead, ActionUpdate)

	// Students read shared resources and create/read their own records.
	grant(entity.RoleStudent, ResourceRooms, ActionRead)
	grant(entity.RoleStudent, ResourceComplaints, ActionRead, ActionCreate, ActionManage)
	grant(entity.RoleStudent, ResourceLeaves, ActionRead, ActionCreate, ActionManage)
	grant(entity.RoleStudent, ResourceAttendance, ActionRead)
	grant(entity.RoleStudent, ResourceNotices, ActionRead)
	grant(entity.RoleStudent, ResourceMess, ActionRead)
	grant(entity.RoleStudent, ResourceFees, ActionRead)

	return p
}

// Allowed reports whether role may perform action on resource.
func Allowed(role entity.Role, resource Resource, action Action) bool {
	_, ok := policy[permission{role: role, resource: resource, action: action}]
	return ok
}
