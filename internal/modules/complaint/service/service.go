package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/complaint/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/complaint/repository"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/internal/workflow"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
	"github.com/rahulpatel51/hostel-management/pkg/storage"
)

type ComplaintService interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.CreateComplaintInput, attachment *dto.AttachmentFile) (*entity.Complaint, error)
	GetByID(ctx context.Context, id uuid.UUID, viewer *entity.User) (*entity.Complaint, error)
	ListOwn(ctx context.Context, userID uuid.UUID) ([]*entity.Complaint, error)
	ListForWarden(ctx context.Context, wardenUserID uuid.UUID, status string) ([]*entity.Complaint, error)
	ListAll(ctx context.Context, status string) ([]*entity.Complaint, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, actor *entity.User, input dto.UpdateComplaintStatusInput) (*entity.Complaint, error)
	AddComment(ctx context.Context, id uuid.UUID, authorID uuid.UUID, text string) (*entity.Complaint, error)
	CancelOwn(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Complaint, error)
}

type complaintService struct {
	repo         repository.ComplaintRepository
	users        userRepo.UserRepository
	imageStorage storage.ImageStorage
}

func NewComplaintService(repo repository.ComplaintRepository, users userRepo.UserRepository, imageStorage storage.ImageStorage) ComplaintService {
	return &complaintService{
		repo:         repo,
		users:        users,
		imageStorage: imageStorage,
	}
}

func (s *complaintService) Create(ctx context.Context, userID uuid.UUID, input dto.CreateComplaintInput, attachment *dto.AttachmentFile) (*entity.Complaint, error) {
	student, err := s.users.FindStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	complaint := &entity.Complaint{
		StudentID:   student.ID,
		Category:    input.Category,
		Subject:     input.Subject,
		Description: input.Description,
		Status:      entity.ComplaintPending,
	}

	if student.Room != nil {
		complaint.Block = student.Room.Block
	}

	// Upload failure fails the whole create; the complaint is never half-written.
	if attachment != nil {
		url, err := s.imageStorage.UploadImage(ctx, attachment.Reader, "hostel/complaints", attachment.FileName)
		if err != nil {
			return nil, err
		}
		complaint.AttachmentURL = &url
	}

	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	return complaint, nil
}

// GetByID scopes single-record reads: students see only their own
// complaints, wardens only complaints raised in their assigned blocks.
func (s *complaintService) GetByID(ctx context.Context, id uuid.UUID, viewer *entity.User) (*entity.Complaint, error) {
	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch viewer.Role {
	case entity.RoleStudent:
		student, err := s.users.FindStudentByUserID(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		if complaint.StudentID != student.ID {
			return nil, apperror.ErrForbidden
		}
	case entity.RoleWarden:
		warden, err := s.users.FindWardenByUserID(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		if complaint.Block != "" && !warden.ManagesBlock(complaint.Block) {
			return nil, apperror.New(0, "complaint belongs to another block", apperror.ErrForbidden)
		}
	}

	return complaint, nil
}

func (s *complaintService) ListOwn(ctx context.Context, userID uuid.UUID) ([]*entity.Complaint, error) {
	student, err := s.users.FindStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStudent(ctx, student.ID)
}

func (s *complaintService) ListForWarden(ctx context.Context, wardenUserID uuid.UUID, status string) ([]*entity.Complaint, error) {
	warden, err := s.users.FindWardenByUserID(ctx, wardenUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByBlocks(ctx, warden.AssignedBlocks, status)
}

func (s *complaintService) ListAll(ctx context.Context, status string) ([]*entity.Complaint, error) {
	return s.repo.FindAll(ctx, status)
}

// UpdateStatus drives the complaint through its transition table. Wardens
// may only touch complaints raised in their assigned blocks.
func (s *complaintService) UpdateStatus(ctx context.Context, id uuid.UUID, actor *entity.User, input dto.UpdateComplaintStatusInput) (*entity.Complaint, error) {
	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role == entity.RoleWarden {
		warden, err := s.users.FindWardenByUserID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if complaint.Block != "" && !warden.ManagesBlock(complaint.Block) {
			return nil, apperror.New(0, "complaint belongs to another block", apperror.ErrForbidden)
		}
	}

	next := entity.ComplaintStatus(input.Status)
	if err := workflow.Complaints.Transition(string(complaint.Status), string(next), actor.Role); err != nil {
		return nil, err
	}

	complaint.Status = next
	if next == entity.ComplaintResolved {
		now := time.Now()
		complaint.ResolvedAt = &now
	}

	if err := s.repo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	if input.Comment != "" {
		comment := &entity.Comment{
			RefType:  "complaint",
			RefID:    complaint.ID,
			AuthorID: actor.ID,
			Text:     input.Comment,
		}
		if err := s.repo.AddComment(ctx, comment); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, id)
}

func (s *complaintService) AddComment(ctx context.Context, id uuid.UUID, authorID uuid.UUID, text string) (*entity.Complaint, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		RefType:  "complaint",
		RefID:    id,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// CancelOwn lets the submitting student withdraw a still-pending complaint.
func (s *complaintService) CancelOwn(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Complaint, error) {
	student, err := s.users.FindStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if complaint.StudentID != student.ID {
		return nil, apperror.ErrForbidden
	}

	if err := workflow.Complaints.Transition(string(complaint.Status), string(entity.ComplaintCancelled), entity.RoleStudent); err != nil {
		return nil, err
	}

	complaint.Status = entity.ComplaintCancelled
	if err := s.repo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	return complaint, nil
}
