package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rahulpatel51/hostel-management/internal/authz"
	"github.com/rahulpatel51/hostel-management/internal/entity"
)

func TestAdminMayDoEverything(t *testing.T) {
	resources := []authz.Resource{
		authz.ResourceUsers, authz.ResourceStudents, authz.ResourceWardens,
		authz.ResourceRooms, authz.ResourceComplaints, authz.ResourceLeaves,
		authz.ResourceAttendance, authz.ResourceDiscipline, authz.ResourceNotices,
		authz.ResourceMess, authz.ResourceFees, authz.ResourceReports,
		authz.ResourceDashboard,
	}
	actions := []authz.Action{
		authz.ActionRead, authz.ActionCreate, authz.ActionUpdate,
		authz.ActionDelete, authz.ActionManage,
	}

	for _, res := range resources {
		for _, act := range actions {
			assert.True(t, authz.Allowed(entity.RoleAdmin, res, act),
				"admin should be allowed to %s %s", act, res)
		}
	}
}

func TestWardenScope(t *testing.T) {
	assert.True(t, authz.Allowed(entity.RoleWarden, authz.ResourceRooms, authz.ActionManage))
	assert.True(t, authz.Allowed(entity.RoleWarden, authz.ResourceComplaints, authz.ActionUpdate))
	assert.True(t, authz.Allowed(entity.RoleWarden, authz.ResourceAttendance, authz.ActionCreate))
	assert.True(t, authz.Allowed(entity.RoleWarden, authz.ResourceDiscipline, authz.ActionCreate))
	assert.True(t, authz.Allowed(entity.RoleWarden, authz.ResourceNotices, authz.ActionCreate))

	// Wardens never touch accounts, fees or reports.
	assert.False(t, authz.Allowed(entity.RoleWarden, authz.ResourceRooms, authz.ActionDelete))
	assert.False(t, authz.Allowed(entity.RoleWarden, authz.ResourceStudents, authz.ActionCreate))
	assert.False(t, authz.Allowed(entity.RoleWarden, authz.ResourceFees, authz.ActionRead))
	assert.False(t, authz.Allowed(entity.RoleWarden, authz.ResourceReports, authz.ActionRead))
	assert.False(t, authz.Allowed(entity.RoleWarden, authz.ResourceDashboard, authz.ActionRead))
}

func TestStudentScope(t *testing.T) {
	assert.True(t, authz.Allowed(entity.RoleStudent, authz.ResourceComplaints, authz.ActionCreate))
	assert.True(t, authz.Allowed(entity.RoleStudent, authz.ResourceLeaves, authz.ActionCreate))
	assert.True(t, authz.Allowed(entity.RoleStudent, authz.ResourceRooms, authz.ActionRead))
	assert.True(t, authz.Allowed(entity.RoleStudent, authz.ResourceFees, authz.ActionRead))

	assert.False(t, authz.Allowed(entity.RoleStudent, authz.ResourceRooms, authz.ActionCreate))
	assert.False(t, authz.Allowed(entity.RoleStudent, authz.ResourceComplaints, authz.ActionUpdate))
	assert.False(t, authz.Allowed(entity.RoleStudent, authz.ResourceAttendance, authz.ActionCreate))
	assert.False(t, authz.Allowed(entity.RoleStudent, authz.ResourceDiscipline, authz.ActionCreate))
	assert.False(t, authz.Allowed(entity.RoleStudent, authz.ResourceNotices, authz.ActionCreate))
}

func TestUnknownRoleDeniedEverywhere(t *testing.T) {
	assert.False(t, authz.Allowed(entity.Role("guest"), authz.ResourceRooms, authz.ActionRead))
	assert.False(t, authz.Allowed(entity.Role(""), authz.ResourceNotices, authz.ActionRead))
}
