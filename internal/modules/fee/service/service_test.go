package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/fee/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/fee/service"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type fakeFeeRepo struct {
	fees map[uuid.UUID]*entity.Fee
}

func newFakeFeeRepo() *fakeFeeRepo {
	return &fakeFeeRepo{fees: make(map[uuid.UUID]*entity.Fee)}
}

func (f *fakeFeeRepo) Create(_ context.Context, fee *entity.Fee) error {
	fee.ID = uuid.New()
	f.fees[fee.ID] = fee
	return nil
}

func (f *fakeFeeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Fee, error) {
	fee, ok := f.fees[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return fee, nil
}

func (f *fakeFeeRepo) FindByStudent(_ context.Context, studentID uuid.UUID, status string) ([]*entity.Fee, error) {
	var out []*entity.Fee
	for _, fee := range f.fees {
		if fee.StudentID != studentID {
			continue
		}
		if status != "" && string(fee.Status) != status {
			continue
		}
		out = append(out, fee)
	}
	return out, nil
}

func (f *fakeFeeRepo) FindAll(_ context.Context, status string) ([]*entity.Fee, error) {
	var out []*entity.Fee
	for _, fee := range f.fees {
		if status != "" && string(fee.Status) != status {
			continue
		}
		out = append(out, fee)
	}
	return out, nil
}

func (f *fakeFeeRepo) Update(_ context.Context, fee *entity.Fee) error {
	f.fees[fee.ID] = fee
	return nil
}

func (f *fakeFeeRepo) MarkOverdue(_ context.Context, asOf time.Time) (int64, error) {
	var n int64
	for _, fee := range f.fees {
		if fee.Status == entity.FeePending && fee.DueDate.Before(asOf) {
			fee.Status = entity.FeeOverdue
			n++
		}
	}
	return n, nil
}

func (f *fakeFeeRepo) SumByStatus(_ context.Context, status entity.FeeStatus) (int64, error) {
	var total int64
	for _, fee := range f.fees {
		if fee.Status == status {
			total += fee.Amount
		}
	}
	return total, nil
}

type fakeUsers struct {
	userRepo.UserRepository
	students map[uuid.UUID]*entity.StudentProfile
}

func (f *fakeUsers) FindStudentByID(_ context.Context, id uuid.UUID) (*entity.StudentProfile, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return student, nil
}

func (f *fakeUsers) FindStudentByUserID(_ context.Context, userID uuid.UUID) (*entity.StudentProfile, error) {
	for _, student := range f.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func setup() (service.FeeService, *fakeFeeRepo, *entity.StudentProfile) {
	student := &entity.StudentProfile{ID: uuid.New(), UserID: uuid.New()}
	repo := newFakeFeeRepo()
	users := &fakeUsers{students: map[uuid.UUID]*entity.StudentProfile{student.ID: student}}
	return service.NewFeeService(repo, users), repo, student
}

func createFee(t *testing.T, svc service.FeeService, studentID uuid.UUID, dueDate string) *entity.Fee {
	t.Helper()
	fee, err := svc.Create(context.Background(), dto.CreateFeeInput{
		StudentID:   studentID.String(),
		Description: "hostel fee march",
		Amount:      500000,
		DueDate:     dueDate,
	})
	require.NoError(t, err)
	return fee
}

func TestCreateFee(t *testing.T) {
	svc, _, student := setup()

	fee := createFee(t, svc, student.ID, "2026-04-01")
	assert.Equal(t, entity.FeePending, fee.Status)
	assert.Equal(t, student.ID, fee.StudentID)

	_, err := svc.Create(context.Background(), dto.CreateFeeInput{
		StudentID: "nope", Description: "x", Amount: 1, DueDate: "2026-04-01",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = svc.Create(context.Background(), dto.CreateFeeInput{
		StudentID: uuid.NewString(), Description: "x", Amount: 1, DueDate: "2026-04-01",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRecordPayment(t *testing.T) {
	svc, _, student := setup()
	fee := createFee(t, svc, student.ID, "2026-04-01")

	paid, err := svc.RecordPayment(context.Background(), fee.ID, dto.RecordPaymentInput{Method: "upi"})
	require.NoError(t, err)
	assert.Equal(t, entity.FeePaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	require.NotNil(t, paid.Method)
	assert.Equal(t, "upi", *paid.Method)

	// A paid fee cannot be paid again.
	_, err = svc.RecordPayment(context.Background(), fee.ID, dto.RecordPaymentInput{Method: "cash"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "upi", *paid.Method)
}

func TestRecordPaymentSettlesOverdueFee(t *testing.T) {
	svc, _, student := setup()
	fee := createFee(t, svc, student.ID, "2020-01-01")

	n, err := svc.RefreshOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	paid, err := svc.RecordPayment(context.Background(), fee.ID, dto.RecordPaymentInput{Method: "cash"})
	require.NoError(t, err)
	assert.Equal(t, entity.FeePaid, paid.Status)
}

func TestRefreshOverdueSkipsPaidAndFutureFees(t *testing.T) {
	svc, _, student := setup()

	overdue := createFee(t, svc, student.ID, "2020-01-01")
	future := createFee(t, svc, student.ID, "2099-01-01")
	settled := createFee(t, svc, student.ID, "2020-06-01")
	_, err := svc.RecordPayment(context.Background(), settled.ID, dto.RecordPaymentInput{Method: "card"})
	require.NoError(t, err)

	n, err := svc.RefreshOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, entity.FeeOverdue, overdue.Status)
	assert.Equal(t, entity.FeePending, future.Status)
	assert.Equal(t, entity.FeePaid, settled.Status)
}

func TestGetByIDScopesStudents(t *testing.T) {
	svc, _, student := setup()
	fee := createFee(t, svc, student.ID, "2026-04-01")

	owner := &entity.User{ID: student.UserID, Role: entity.RoleStudent}
	got, err := svc.GetByID(context.Background(), fee.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, fee.ID, got.ID)

	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	_, err = svc.GetByID(context.Background(), fee.ID, admin)
	assert.NoError(t, err)
}

func TestGetByIDRejectsOtherStudents(t *testing.T) {
	student := &entity.StudentProfile{ID: uuid.New(), UserID: uuid.New()}
	other := &entity.StudentProfile{ID: uuid.New(), UserID: uuid.New()}
	repo := newFakeFeeRepo()
	users := &fakeUsers{students: map[uuid.UUID]*entity.StudentProfile{
		student.ID: student,
		other.ID:   other,
	}}
	svc := service.NewFeeService(repo, users)

	fee := createFee(t, svc, student.ID, "2026-04-01")

	_, err := svc.GetByID(context.Background(), fee.ID, &entity.User{ID: other.UserID, Role: entity.RoleStudent})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestListOwnFiltersByStatus(t *testing.T) {
	svc, _, student := setup()

	createFee(t, svc, student.ID, "2026-04-01")
	paid := createFee(t, svc, student.ID, "2026-05-01")
	_, err := svc.RecordPayment(context.Background(), paid.ID, dto.RecordPaymentInput{Method: "upi"})
	require.NoError(t, err)

	pending, err := svc.ListOwn(context.Background(), student.UserID, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := svc.ListOwn(context.Background(), student.UserID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
