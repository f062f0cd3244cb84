package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/fee/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/fee/repository"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type FeeService interface {
	Create(ctx context.Context, input dto.CreateFeeInput) (*entity.Fee, error)
	GetByID(ctx context.Context, id uuid.UUID, viewer *entity.User) (*entity.Fee, error)
	ListOwn(ctx context.Context, userID uuid.UUID, status string) ([]*entity.Fee, error)
	ListAll(ctx context.Context, status string) ([]*entity.Fee, error)
	RecordPayment(ctx context.Context, id uuid.UUID, input dto.RecordPaymentInput) (*entity.Fee, error)
	RefreshOverdue(ctx context.Context) (int64, error)
}

type feeService struct {
	repo  repository.FeeRepository
	users userRepo.UserRepository
}

func NewFeeService(repo repository.FeeRepository, users userRepo.UserRepository) FeeService {
	return &feeService{repo: repo, users: users}
}

func (s *feeService) Create(ctx context.Context, input dto.CreateFeeInput) (*entity.Fee, error) {
	studentID, err := uuid.Parse(input.StudentID)
	if err != nil {
		return nil, apperror.New(0, "invalid student id", apperror.ErrInvalidInput)
	}

	student, err := s.users.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	dueDate, err := time.Parse("2006-01-02", input.DueDate)
	if err != nil {
		return nil, apperror.New(0, "due date must be YYYY-MM-DD", apperror.ErrInvalidInput)
	}

	fee := &entity.Fee{
		StudentID:   student.ID,
		Description: input.Description,
		Amount:      input.Amount,
		DueDate:     dueDate,
		Status:      entity.FeePending,
	}

	if err := s.repo.Create(ctx, fee); err != nil {
		return nil, err
	}

	return fee, nil
}

// GetByID scopes students to their own ledger rows.
func (s *feeService) GetByID(ctx context.Context, id uuid.UUID, viewer *entity.User) (*entity.Fee, error) {
	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewer.Role == entity.RoleStudent {
		student, err := s.users.FindStudentByUserID(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		if fee.StudentID != student.ID {
			return nil, apperror.ErrForbidden
		}
	}

	return fee, nil
}

func (s *feeService) ListOwn(ctx context.Context, userID uuid.UUID, status string) ([]*entity.Fee, error) {
	student, err := s.users.FindStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStudent(ctx, student.ID, status)
}

func (s *feeService) ListAll(ctx context.Context, status string) ([]*entity.Fee, error) {
	return s.repo.FindAll(ctx, status)
}

// RecordPayment settles a pending or overdue fee. Paid fees stay paid;
// a second payment attempt is rejected.
func (s *feeService) RecordPayment(ctx context.Context, id uuid.UUID, input dto.RecordPaymentInput) (*entity.Fee, error) {
	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fee.Status == entity.FeePaid {
		return nil, apperror.New(0, "fee is already paid", apperror.ErrConflict)
	}

	now := time.Now()
	fee.Status = entity.FeePaid
	fee.PaidAt = &now
	fee.Method = &input.Method

	if err := s.repo.Update(ctx, fee); err != nil {
		return nil, err
	}

	return fee, nil
}

func (s *feeService) RefreshOverdue(ctx context.Context) (int64, error) {
	return s.repo.MarkOverdue(ctx, time.Now())
}
