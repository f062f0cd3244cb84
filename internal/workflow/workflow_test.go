package workflow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/workflow"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

func TestComplaintTransitions(t *testing.T) {
	t.Run("warden moves pending to in-progress", func(t *testing.T) {
		err := workflow.Complaints.Transition("pending", "in-progress", entity.RoleWarden)
		assert.NoError(t, err)
	})

	t.Run("student cannot resolve", func(t *testing.T) {
		err := workflow.Complaints.Transition("in-progress", "resolved", entity.RoleStudent)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	})

	t.Run("student cancels pending complaint", func(t *testing.T) {
		err := workflow.Complaints.Transition("pending", "cancelled", entity.RoleStudent)
		assert.NoError(t, err)
	})

	t.Run("cancel after review started is rejected", func(t *testing.T) {
		err := workflow.Complaints.Transition("in-progress", "cancelled", entity.RoleStudent)
		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	})

	t.Run("resolved is terminal", func(t *testing.T) {
		assert.True(t, workflow.Complaints.Terminal("resolved"))
		assert.False(t, workflow.Complaints.Terminal("pending"))

		err := workflow.Complaints.Transition("resolved", "pending", entity.RoleAdmin)
		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		err := workflow.Complaints.Transition("pending", "pending", entity.RoleStudent)
		assert.NoError(t, err)
	})

	t.Run("skipping straight to resolved is rejected", func(t *testing.T) {
		err := workflow.Complaints.Transition("pending", "resolved", entity.RoleAdmin)
		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	})
}

func TestLeaveTransitions(t *testing.T) {
	t.Run("warden decides pending leave", func(t *testing.T) {
		assert.NoError(t, workflow.Leaves.Transition("pending", "approved", entity.RoleWarden))
		assert.NoError(t, workflow.Leaves.Transition("pending", "rejected", entity.RoleAdmin))
	})

	t.Run("student may only cancel", func(t *testing.T) {
		err := workflow.Leaves.Transition("pending", "approved", entity.RoleStudent)
		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))

		assert.NoError(t, workflow.Leaves.Transition("pending", "cancelled", entity.RoleStudent))
	})

	t.Run("decisions are final", func(t *testing.T) {
		assert.True(t, workflow.Leaves.Terminal("approved"))
		assert.True(t, workflow.Leaves.Terminal("rejected"))
		assert.True(t, workflow.Leaves.Terminal("cancelled"))

		err := workflow.Leaves.Transition("approved", "rejected", entity.RoleAdmin)
		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	})
}

func TestDisciplineTransitions(t *testing.T) {
	t.Run("warden drives the incident", func(t *testing.T) {
		assert.NoError(t, workflow.Disciplines.Transition("open", "under-review", entity.RoleWarden))
		assert.NoError(t, workflow.Disciplines.Transition("under-review", "closed", entity.RoleAdmin))
		assert.NoError(t, workflow.Disciplines.Transition("open", "closed", entity.RoleWarden))
	})

	t.Run("students touch nothing", func(t *testing.T) {
		err := workflow.Disciplines.Transition("open", "closed", entity.RoleStudent)
		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	})

	t.Run("closed is terminal", func(t *testing.T) {
		assert.True(t, workflow.Disciplines.Terminal("closed"))

		err := workflow.Disciplines.Transition("closed", "open", entity.RoleAdmin)
		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	})
}
