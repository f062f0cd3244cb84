package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/discipline/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/discipline/repository"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/internal/workflow"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
	"github.com/rahulpatel51/hostel-management/pkg/storage"
)

type DisciplineService interface {
	Create(ctx context.Context, reporter *entity.User, input dto.CreateDisciplineInput, attachment *dto.AttachmentFile) (*entity.Discipline, error)
	GetByID(ctx context.Context, id uuid.UUID, viewer *entity.User) (*entity.Discipline, error)
	ListOwn(ctx context.Context, userID uuid.UUID) ([]*entity.Discipline, error)
	ListForWarden(ctx context.Context, wardenUserID uuid.UUID, status string) ([]*entity.Discipline, error)
	ListAll(ctx context.Context, status string) ([]*entity.Discipline, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, actor *entity.User, input dto.UpdateDisciplineStatusInput) (*entity.Discipline, error)
	AddComment(ctx context.Context, id uuid.UUID, actor *entity.User, text string) (*entity.Discipline, error)
}

type disciplineService struct {
	repo         repository.DisciplineRepository
	users        userRepo.UserRepository
	imageStorage storage.ImageStorage
}

func NewDisciplineService(repo repository.DisciplineRepository, users userRepo.UserRepository, imageStorage storage.ImageStorage) DisciplineService {
	return &disciplineService{
		repo:         repo,
		users:        users,
		imageStorage: imageStorage,
	}
}

// Create opens an incident against a student. Wardens can only report
// students housed in their assigned blocks.
func (s *disciplineService) Create(ctx context.Context, reporter *entity.User, input dto.CreateDisciplineInput, attachment *dto.AttachmentFile) (*entity.Discipline, error) {
	studentID, err := uuid.Parse(input.StudentID)
	if err != nil {
		return nil, apperror.New(0, "invalid student id", apperror.ErrInvalidInput)
	}

	student, err := s.users.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	record := &entity.Discipline{
		StudentID:   student.ID,
		ReportedBy:  reporter.ID,
		Incident:    input.Incident,
		Description: input.Description,
		Status:      entity.DisciplineOpen,
	}

	if student.Room != nil {
		record.Block = student.Room.Block
	}

	if reporter.Role == entity.RoleWarden {
		warden, err := s.users.FindWardenByUserID(ctx, reporter.ID)
		if err != nil {
			return nil, err
		}
		if record.Block != "" && !warden.ManagesBlock(record.Block) {
			return nil, apperror.New(0, "student belongs to another block", apperror.ErrForbidden)
		}
	}

	if attachment != nil {
		url, err := s.imageStorage.UploadImage(ctx, attachment.Reader, "hostel/discipline", attachment.FileName)
		if err != nil {
			return nil, err
		}
		record.AttachmentURL = &url
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// GetByID hides other students' records: a student may read only their own.
func (s *disciplineService) GetByID(ctx context.Context, id uuid.UUID, viewer *entity.User) (*entity.Discipline, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewer.Role == entity.RoleStudent {
		student, err := s.users.FindStudentByUserID(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		if record.StudentID != student.ID {
			return nil, apperror.ErrForbidden
		}
	}

	return record, nil
}

func (s *disciplineService) ListOwn(ctx context.Context, userID uuid.UUID) ([]*entity.Discipline, error) {
	student, err := s.users.FindStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStudent(ctx, student.ID)
}

func (s *disciplineService) ListForWarden(ctx context.Context, wardenUserID uuid.UUID, status string) ([]*entity.Discipline, error) {
	warden, err := s.users.FindWardenByUserID(ctx, wardenUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByBlocks(ctx, warden.AssignedBlocks, status)
}

func (s *disciplineService) ListAll(ctx context.Context, status string) ([]*entity.Discipline, error) {
	return s.repo.FindAll(ctx, status)
}

func (s *disciplineService) UpdateStatus(ctx context.Context, id uuid.UUID, actor *entity.User, input dto.UpdateDisciplineStatusInput) (*entity.Discipline, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role == entity.RoleWarden {
		warden, err := s.users.FindWardenByUserID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if record.Block != "" && !warden.ManagesBlock(record.Block) {
			return nil, apperror.New(0, "incident belongs to another block", apperror.ErrForbidden)
		}
	}

	next := entity.DisciplineStatus(input.Status)
	if err := workflow.Disciplines.Transition(string(record.Status), string(next), actor.Role); err != nil {
		return nil, err
	}

	record.Status = next
	if input.ActionTaken != "" {
		record.ActionTaken = &input.ActionTaken
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	if input.Comment != "" {
		comment := &entity.Comment{
			RefType:  "discipline",
			RefID:    record.ID,
			AuthorID: actor.ID,
			Text:     input.Comment,
		}
		if err := s.repo.AddComment(ctx, comment); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, id)
}

// AddComment lets staff and the reported student discuss the incident.
func (s *disciplineService) AddComment(ctx context.Context, id uuid.UUID, actor *entity.User, text string) (*entity.Discipline, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role == entity.RoleStudent {
		student, err := s.users.FindStudentByUserID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if record.StudentID != student.ID {
			return nil, apperror.ErrForbidden
		}
	}

	comment := &entity.Comment{
		RefType:  "discipline",
		RefID:    id,
		AuthorID: actor.ID,
		Text:     text,
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}
