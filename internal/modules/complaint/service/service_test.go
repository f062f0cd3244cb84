package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/complaint/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/complaint/service"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type fakeComplaintRepo struct {
	complaints map[uuid.UUID]*entity.Complaint
	comments   []*entity.Comment
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{complaints: make(map[uuid.UUID]*entity.Complaint)}
}

func (f *fakeComplaintRepo) Create(_ context.Context, complaint *entity.Complaint) error {
	complaint.ID = uuid.New()
	f.complaints[complaint.ID] = complaint
	return nil
}

func (f *fakeComplaintRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Complaint, error) {
	complaint, ok := f.complaints[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return complaint, nil
}

func (f *fakeComplaintRepo) FindByStudent(_ context.Context, studentID uuid.UUID) ([]*entity.Complaint, error) {
	var out []*entity.Complaint
	for _, complaint := range f.complaints {
		if complaint.StudentID == studentID {
			out = append(out, complaint)
		}
	}
	return out, nil
}

func (f *fakeComplaintRepo) FindByBlocks(_ context.Context, blocks []string, status string) ([]*entity.Complaint, error) {
	var out []*entity.Complaint
	for _, complaint := range f.complaints {
		if status != "" && string(complaint.Status) != status {
			continue
		}
		for _, block := range blocks {
			if complaint.Block == block {
				out = append(out, complaint)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeComplaintRepo) FindAll(_ context.Context, status string) ([]*entity.Complaint, error) {
	var out []*entity.Complaint
	for _, complaint := range f.complaints {
		if status != "" && string(complaint.Status) != status {
			continue
		}
		out = append(out, complaint)
	}
	return out, nil
}

func (f *fakeComplaintRepo) Update(_ context.Context, complaint *entity.Complaint) error {
	f.complaints[complaint.ID] = complaint
	return nil
}

func (f *fakeComplaintRepo) AddComment(_ context.Context, comment *entity.Comment) error {
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakeComplaintRepo) CountByStatus(_ context.Context, status entity.ComplaintStatus) (int64, error) {
	var n int64
	for _, complaint := range f.complaints {
		if complaint.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeUsers struct {
	userRepo.UserRepository
	students map[uuid.UUID]*entity.StudentProfile
	wardens  map[uuid.UUID]*entity.WardenProfile
}

func (f *fakeUsers) FindStudentByUserID(_ context.Context, userID uuid.UUID) (*entity.StudentProfile, error) {
	for _, student := range f.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeUsers) FindWardenByUserID(_ context.Context, userID uuid.UUID) (*entity.WardenProfile, error) {
	warden, ok := f.wardens[userID]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return warden, nil
}

type fixture struct {
	svc     service.ComplaintService
	repo    *fakeComplaintRepo
	student *entity.StudentProfile
	warden  *entity.User
}

func setup(t *testing.T) fixture {
	t.Helper()

	student := &entity.StudentProfile{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Room:   &entity.Room{Block: "A"},
	}
	wardenUser := &entity.User{ID: uuid.New(), Role: entity.RoleWarden, Active: true}
	warden := &entity.WardenProfile{
		ID:             uuid.New(),
		UserID:         wardenUser.ID,
		AssignedBlocks: pq.StringArray{"A"},
	}

	repo := newFakeComplaintRepo()
	users := &fakeUsers{
		students: map[uuid.UUID]*entity.StudentProfile{student.ID: student},
		wardens:  map[uuid.UUID]*entity.WardenProfile{wardenUser.ID: warden},
	}

	return fixture{
		svc:     service.NewComplaintService(repo, users, nil),
		repo:    repo,
		student: student,
		warden:  wardenUser,
	}
}

func fileComplaint(t *testing.T, fx fixture) *entity.Complaint {
	t.Helper()
	complaint, err := fx.svc.Create(context.Background(), fx.student.UserID, dto.CreateComplaintInput{
		Category:    "maintenance",
		Subject:     "broken fan",
		Description: "ceiling fan in room 101 stopped working",
	}, nil)
	require.NoError(t, err)
	return complaint
}

func TestCreateComplaintInheritsBlock(t *testing.T) {
	fx := setup(t)

	complaint := fileComplaint(t, fx)
	assert.Equal(t, entity.ComplaintPending, complaint.Status)
	assert.Equal(t, "A", complaint.Block)
	assert.Equal(t, fx.student.ID, complaint.StudentID)
}

func TestUpdateStatusFollowsWorkflow(t *testing.T) {
	fx := setup(t)
	complaint := fileComplaint(t, fx)
	ctx := context.Background()

	updated, err := fx.svc.UpdateStatus(ctx, complaint.ID, fx.warden, dto.UpdateComplaintStatusInput{
		Status:  "in-progress",
		Comment: "plumber scheduled",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintInProgress, updated.Status)
	assert.Len(t, fx.repo.comments, 1)

	updated, err = fx.svc.UpdateStatus(ctx, complaint.ID, fx.warden, dto.UpdateComplaintStatusInput{Status: "resolved"})
	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintResolved, updated.Status)
	assert.NotNil(t, updated.ResolvedAt)

	// Resolved is terminal.
	_, err = fx.svc.UpdateStatus(ctx, complaint.ID, fx.warden, dto.UpdateComplaintStatusInput{Status: "pending"})
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestUpdateStatusRejectsForeignBlock(t *testing.T) {
	fx := setup(t)
	complaint := fileComplaint(t, fx)

	otherWarden := &entity.User{ID: uuid.New(), Role: entity.RoleWarden, Active: true}
	fxUsers := &fakeUsers{
		students: map[uuid.UUID]*entity.StudentProfile{fx.student.ID: fx.student},
		wardens: map[uuid.UUID]*entity.WardenProfile{
			otherWarden.ID: {ID: uuid.New(), UserID: otherWarden.ID, AssignedBlocks: pq.StringArray{"B"}},
		},
	}
	svc := service.NewComplaintService(fx.repo, fxUsers, nil)

	_, err := svc.UpdateStatus(context.Background(), complaint.ID, otherWarden, dto.UpdateComplaintStatusInput{
		Status: "in-progress",
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestGetByIDScopedToOwner(t *testing.T) {
	fx := setup(t)
	complaint := fileComplaint(t, fx)

	other := &entity.StudentProfile{ID: uuid.New(), UserID: uuid.New()}
	users := &fakeUsers{
		students: map[uuid.UUID]*entity.StudentProfile{
			fx.student.ID: fx.student,
			other.ID:      other,
		},
	}
	svc := service.NewComplaintService(fx.repo, users, nil)

	owner := &entity.User{ID: fx.student.UserID, Role: entity.RoleStudent}
	got, err := svc.GetByID(context.Background(), complaint.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, complaint.ID, got.ID)

	// A different student must not read someone else's complaint.
	stranger := &entity.User{ID: other.UserID, Role: entity.RoleStudent}
	_, err = svc.GetByID(context.Background(), complaint.ID, stranger)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestGetByIDScopedToWardenBlocks(t *testing.T) {
	fx := setup(t)
	complaint := fileComplaint(t, fx)

	// The block A warden from the fixture reads it.
	got, err := fx.svc.GetByID(context.Background(), complaint.ID, fx.warden)
	require.NoError(t, err)
	assert.Equal(t, complaint.ID, got.ID)

	// A warden assigned elsewhere is rejected.
	otherWarden := &entity.User{ID: uuid.New(), Role: entity.RoleWarden}
	users := &fakeUsers{
		students: map[uuid.UUID]*entity.StudentProfile{fx.student.ID: fx.student},
		wardens: map[uuid.UUID]*entity.WardenProfile{
			otherWarden.ID: {ID: uuid.New(), UserID: otherWarden.ID, AssignedBlocks: pq.StringArray{"B"}},
		},
	}
	svc := service.NewComplaintService(fx.repo, users, nil)
	_, err = svc.GetByID(context.Background(), complaint.ID, otherWarden)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// Admins read everything.
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	_, err = fx.svc.GetByID(context.Background(), complaint.ID, admin)
	assert.NoError(t, err)
}

func TestCancelOwn(t *testing.T) {
	fx := setup(t)
	complaint := fileComplaint(t, fx)

	cancelled, err := fx.svc.CancelOwn(context.Background(), complaint.ID, fx.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintCancelled, cancelled.Status)
}

func TestCancelOwnRejectsOtherStudents(t *testing.T) {
	fx := setup(t)
	complaint := fileComplaint(t, fx)

	other := &entity.StudentProfile{ID: uuid.New(), UserID: uuid.New()}
	users := &fakeUsers{
		students: map[uuid.UUID]*entity.StudentProfile{
			fx.student.ID: fx.student,
			other.ID:      other,
		},
	}
	svc := service.NewComplaintService(fx.repo, users, nil)

	_, err := svc.CancelOwn(context.Background(), complaint.ID, other.UserID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCancelOwnRejectedAfterReviewStarts(t *testing.T) {
	fx := setup(t)
	complaint := fileComplaint(t, fx)

	_, err := fx.svc.UpdateStatus(context.Background(), complaint.ID, fx.warden, dto.UpdateComplaintStatusInput{
		Status: "in-progress",
	})
	require.NoError(t, err)

	_, err = fx.svc.CancelOwn(context.Background(), complaint.ID, fx.student.UserID)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}
