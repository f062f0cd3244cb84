package workflow

import (
	"fmt"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

// Machine is a per-entity transition table. A transition is legal only when
// an entry exists for (from, to) and the acting role is listed on it.
// Anything else is rejected with apperror.ErrInvalidTransition.
type Machine struct {
	name        string
	transitions map[transitionKey][]entity.Role
}

type transitionKey struct {
	from string
	to   string
}

func NewMachine(name string) *Machine {
	return &Machine{
		name:        name,
		transitions: make(map[transitionKey][]entity.Role),
	}
}

// Allow registers a legal transition for the given roles.
func (m *Machine) Allow(from, to string, roles ...entity.Role) *Machine {
	m.transitions[transitionKey{from: from, to: to}] = roles
	return m
}

// Transition validates that actor may move a record from one status to
// another. Setting the same status again is treated as a no-op.
func (m *Machine) Transition(from, to string, actor entity.Role) error {
	if from == to {
		return nil
	}

	roles, ok := m.transitions[transitionKey{from: from, to: to}]
	if !ok {
		return apperror.New(0,
			fmt.Sprintf("%s cannot move from %q to %q", m.name, from, to),
			apperror.ErrInvalidTransition)
	}

	for _, r := range roles {
		if r == actor {
			return nil
		}
	}

	return apperror.New(0,
		fmt.Sprintf("role %q may not move %s from %q to %q", actor, m.name, from, to),
		apperror.ErrInvalidTransition)
}

// Terminal reports whether no transition leads out of the given status.
func (m *Machine) Terminal(status string) bool {
	for key := range m.transitions {
		if key.from == status {
			return false
		}
	}
	return true
}

// Complaints: students submit and may cancel while pending; wardens and
// admins drive the review.
var Complaints = NewMachine("complaint").
	Allow(string(entity.ComplaintPending), string(entity.ComplaintInProgress), entity.RoleWarden, entity.RoleAdmin).
	Allow(string(entity.ComplaintPending), string(entity.ComplaintRejected), entity.RoleWarden, entity.RoleAdmin).
	Allow(string(entity.ComplaintPending), string(entity.ComplaintCancelled), entity.RoleStudent).
	Allow(string(entity.ComplaintInProgress), string(entity.ComplaintResolved), entity.RoleWarden, entity.RoleAdmin).
	Allow(string(entity.ComplaintInProgress), string(entity.ComplaintRejected), entity.RoleWarden, entity.RoleAdmin)

// Leaves: decided in a single step; students may withdraw a pending request.
var Leaves = NewMachine("leave").
	Allow(string(entity.LeavePending), string(entity.LeaveApproved), entity.RoleWarden, entity.RoleAdmin).
	Allow(string(entity.LeavePending), string(entity.LeaveRejected), entity.RoleWarden, entity.RoleAdmin).
	Allow(string(entity.LeavePending), string(entity.LeaveCancelled), entity.RoleStudent)

// Disciplines: raised open, optionally reviewed, then closed.
var Disciplines = NewMachine("discipline").
	Allow(string(entity.DisciplineOpen), string(entity.DisciplineUnderReview), entity.RoleWarden, entity.RoleAdmin).
	Allow(string(entity.DisciplineOpen), string(entity.DisciplineClosed), entity.RoleWarden, entity.RoleAdmin).
	Allow(string(entity.DisciplineUnderReview), string(entity.DisciplineClosed), entity.RoleWarden, entity.RoleAdmin)
