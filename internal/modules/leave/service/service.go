package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/leave/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/leave/repository"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/internal/workflow"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
	"github.com/rahulpatel51/hostel-management/pkg/storage"
)

type LeaveService interface {
	Apply(ctx context.Context, userID uuid.UUID, input dto.CreateLeaveInput, attachment *dto.AttachmentFile) (*entity.Leave, error)
	GetByID(ctx context.Context, id uuid.UUID, viewer *entity.User) (*entity.Leave, error)
	ListOwn(ctx context.Context, userID uuid.UUID) ([]*entity.Leave, error)
	ListForWarden(ctx context.Context, wardenUserID uuid.UUID, status string) ([]*entity.Leave, error)
	ListAll(ctx context.Context, status string) ([]*entity.Leave, error)
	Decide(ctx context.Context, id uuid.UUID, actor *entity.User, input dto.DecideLeaveInput) (*entity.Leave, error)
	CancelOwn(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Leave, error)
}

type leaveService struct {
	repo         repository.LeaveRepository
	users        userRepo.UserRepository
	imageStorage storage.ImageStorage
}

func NewLeaveService(repo repository.LeaveRepository, users userRepo.UserRepository, imageStorage storage.ImageStorage) LeaveService {
	return &leaveService{
		repo:         repo,
		users:        users,
		imageStorage: imageStorage,
	}
}

func (s *leaveService) Apply(ctx context.Context, userID uuid.UUID, input dto.CreateLeaveInput, attachment *dto.AttachmentFile) (*entity.Leave, error) {
	student, err := s.users.FindStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fromDate, err := time.Parse("2006-01-02", input.FromDate)
	if err != nil {
		return nil, apperror.New(0, "from_date must be YYYY-MM-DD", apperror.ErrInvalidInput)
	}
	toDate, err := time.Parse("2006-01-02", input.ToDate)
	if err != nil {
		return nil, apperror.New(0, "to_date must be YYYY-MM-DD", apperror.ErrInvalidInput)
	}
	if toDate.Before(fromDate) {
		return nil, apperror.New(0, "to_date cannot be before from_date", apperror.ErrInvalidInput)
	}

	leave := &entity.Leave{
		StudentID:   student.ID,
		Reason:      input.Reason,
		Destination: input.Destination,
		FromDate:    fromDate,
		ToDate:      toDate,
		Status:      entity.LeavePending,
	}

	if student.Room != nil {
		leave.Block = student.Room.Block
	}

	if attachment != nil {
		url, err := s.imageStorage.UploadImage(ctx, attachment.Reader, "hostel/leaves", attachment.FileName)
		if err != nil {
			return nil, err
		}
		leave.AttachmentURL = &url
	}

	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, err
	}

	return leave, nil
}

// GetByID scopes single-record reads: students see only their own
// applications, wardens only applications from their assigned blocks.
func (s *leaveService) GetByID(ctx context.Context, id uuid.UUID, viewer *entity.User) (*entity.Leave, error) {
	leave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch viewer.Role {
	case entity.RoleStudent:
		student, err := s.users.FindStudentByUserID(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		if leave.StudentID != student.ID {
			return nil, apperror.ErrForbidden
		}
	case entity.RoleWarden:
		warden, err := s.users.FindWardenByUserID(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		if leave.Block != "" && !warden.ManagesBlock(leave.Block) {
			return nil, apperror.New(0, "leave application belongs to another block", apperror.ErrForbidden)
		}
	}

	return leave, nil
}

func (s *leaveService) ListOwn(ctx context.Context, userID uuid.UUID) ([]*entity.Leave, error) {
	student, err := s.users.FindStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStudent(ctx, student.ID)
}

func (s *leaveService) ListForWarden(ctx context.Context, wardenUserID uuid.UUID, status string) ([]*entity.Leave, error) {
	warden, err := s.users.FindWardenByUserID(ctx, wardenUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByBlocks(ctx, warden.AssignedBlocks, status)
}

func (s *leaveService) ListAll(ctx context.Context, status string) ([]*entity.Leave, error) {
	return s.repo.FindAll(ctx, status)
}

// Decide approves or rejects a pending application, stamping who decided
// and when.
func (s *leaveService) Decide(ctx context.Context, id uuid.UUID, actor *entity.User, input dto.DecideLeaveInput) (*entity.Leave, error) {
	leave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role == entity.RoleWarden {
		warden, err := s.users.FindWardenByUserID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if leave.Block != "" && !warden.ManagesBlock(leave.Block) {
			return nil, apperror.New(0, "leave application belongs to another block", apperror.ErrForbidden)
		}
	}

	next := entity.LeaveStatus(input.Status)
	if err := workflow.Leaves.Transition(string(leave.Status), string(next), actor.Role); err != nil {
		return nil, err
	}

	now := time.Now()
	leave.Status = next
	leave.DecidedAt = &now
	leave.DecidedBy = &actor.ID

	if err := s.repo.Update(ctx, leave); err != nil {
		return nil, err
	}

	if input.Comment != "" {
		comment := &entity.Comment{
			RefType:  "leave",
			RefID:    leave.ID,
			AuthorID: actor.ID,
			Text:     input.Comment,
		}
		if err := s.repo.AddComment(ctx, comment); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, id)
}

func (s *leaveService) CancelOwn(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Leave, error) {
	student, err := s.users.FindStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	leave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if leave.StudentID != student.ID {
		return nil, apperror.ErrForbidden
	}

	if err := workflow.Leaves.Transition(string(leave.Status), string(entity.LeaveCancelled), entity.RoleStudent); err != nil {
		return nil, err
	}

	leave.Status = entity.LeaveCancelled
	if err := s.repo.Update(ctx, leave); err != nil {
		return nil, err
	}

	return leave, nil
}
