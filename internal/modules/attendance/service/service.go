package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/attendance/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/attendance/repository"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type AttendanceService interface {
	Mark(ctx context.Context, marker *entity.User, input dto.MarkAttendanceInput) (*entity.Attendance, error)
	ListOwn(ctx context.Context, userID uuid.UUID, from, to string) ([]*entity.Attendance, error)
	ListByDate(ctx context.Context, actor *entity.User, date string) ([]*entity.Attendance, error)
}

type attendanceService struct {
	repo  repository.AttendanceRepository
	users userRepo.UserRepository
}

func NewAttendanceService(repo repository.AttendanceRepository, users userRepo.UserRepository) AttendanceService {
	return &attendanceService{repo: repo, users: users}
}

// Mark upserts the (student, date) row; marking the same day twice keeps a
// single record carrying the second write.
func (s *attendanceService) Mark(ctx context.Context, marker *entity.User, input dto.MarkAttendanceInput) (*entity.Attendance, error) {
	studentID, err := uuid.Parse(input.StudentID)
	if err != nil {
		return nil, apperror.New(0, "invalid student id", apperror.ErrInvalidInput)
	}

	student, err := s.users.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if marker.Role == entity.RoleWarden {
		warden, err := s.users.FindWardenByUserID(ctx, marker.ID)
		if err != nil {
			return nil, err
		}
		if student.Room != nil && !warden.ManagesBlock(student.Room.Block) {
			return nil, apperror.New(0, "student belongs to another block", apperror.ErrForbidden)
		}
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, apperror.New(0, "date must be YYYY-MM-DD", apperror.ErrInvalidInput)
	}

	record := &entity.Attendance{
		StudentID: student.ID,
		Date:      date,
		Morning:   entity.AttendanceStatus(input.Morning),
		Evening:   entity.AttendanceStatus(input.Evening),
		MarkedBy:  marker.ID,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return s.repo.FindByStudentAndDate(ctx, student.ID, date)
}

func (s *attendanceService) ListOwn(ctx context.Context, userID uuid.UUID, from, to string) ([]*entity.Attendance, error) {
	student, err := s.users.FindStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var fromDate, toDate time.Time
	if from != "" {
		fromDate, _ = time.Parse("2006-01-02", from)
	}
	if to != "" {
		toDate, _ = time.Parse("2006-01-02", to)
	}

	return s.repo.FindByStudent(ctx, student.ID, fromDate, toDate)
}

// ListByDate returns the day's register: all rows for admins, scoped to
// assigned blocks for wardens.
func (s *attendanceService) ListByDate(ctx context.Context, actor *entity.User, date string) ([]*entity.Attendance, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, apperror.New(0, "date must be YYYY-MM-DD", apperror.ErrInvalidInput)
	}

	var blocks []string
	if actor.Role == entity.RoleWarden {
		warden, err := s.users.FindWardenByUserID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		blocks = warden.AssignedBlocks
	}

	return s.repo.FindByDate(ctx, day, blocks)
}
