package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/admin/dto"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
	"github.com/rahulpatel51/hostel-management/pkg/storage"
)

// AdminService provisions and manages accounts. Each create makes the User
// and its role profile in one repository transaction.
type AdminService interface {
	CreateStudent(ctx context.Context, input dto.CreateStudentInput, avatar *dto.AvatarFile) (*entity.StudentProfile, error)
	GetAllStudents(ctx context.Context) ([]*entity.StudentProfile, error)
	GetStudentsForWarden(ctx context.Context, wardenUserID uuid.UUID) ([]*entity.StudentProfile, error)
	GetStudent(ctx context.Context, id uuid.UUID) (*entity.StudentProfile, error)
	UpdateStudent(ctx context.Context, id uuid.UUID, input dto.UpdateStudentInput, avatar *dto.AvatarFile) (*entity.StudentProfile, error)
	DeleteStudent(ctx context.Context, id uuid.UUID) error

	CreateWarden(ctx context.Context, input dto.CreateWardenInput, avatar *dto.AvatarFile) (*entity.WardenProfile, error)
	GetAllWardens(ctx context.Context) ([]*entity.WardenProfile, error)
	GetWarden(ctx context.Context, id uuid.UUID) (*entity.WardenProfile, error)
	UpdateWarden(ctx context.Context, id uuid.UUID, input dto.UpdateWardenInput, avatar *dto.AvatarFile) (*entity.WardenProfile, error)
	DeleteWarden(ctx context.Context, id uuid.UUID) error

	SetUserActive(ctx context.Context, userID string, active bool) error
	ResetPassword(ctx context.Context, userID string, newPassword string) error
}

type adminService struct {
	users        userRepo.UserRepository
	imageStorage storage.ImageStorage
}

func NewAdminService(users userRepo.UserRepository, imageStorage storage.ImageStorage) AdminService {
	return &adminService{
		users:        users,
		imageStorage: imageStorage,
	}
}

func (s *adminService) CreateStudent(ctx context.Context, input dto.CreateStudentInput, avatar *dto.AvatarFile) (*entity.StudentProfile, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         entity.RoleStudent,
		Active:       true,
	}

	if avatar != nil {
		url, err := s.uploadAvatar(ctx, avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = &url
	}

	profile := &entity.StudentProfile{
		FullName:        input.FullName,
		Email:           input.Email,
		RollNumber:      input.RollNumber,
		Course:          input.Course,
		Year:            input.Year,
		ContactNumber:   input.ContactNumber,
		GuardianName:    input.GuardianName,
		GuardianContact: input.GuardianContact,
	}

	if err := s.users.CreateStudent(ctx, user, profile); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.New(0, "a student with this email or roll number already exists", apperror.ErrConflict)
		}
		return nil, err
	}

	return profile, nil
}

func (s *adminService) GetAllStudents(ctx context.Context) ([]*entity.StudentProfile, error) {
	return s.users.FindAllStudents(ctx)
}

// GetStudentsForWarden lists only students housed in the caller's assigned
// blocks.
func (s *adminService) GetStudentsForWarden(ctx context.Context, wardenUserID uuid.UUID) ([]*entity.StudentProfile, error) {
	warden, err := s.users.FindWardenByUserID(ctx, wardenUserID)
	if err != nil {
		return nil, err
	}
	return s.users.FindStudentsByBlocks(ctx, warden.AssignedBlocks)
}

func (s *adminService) GetStudent(ctx context.Context, id uuid.UUID) (*entity.StudentProfile, error) {
	return s.users.FindStudentByID(ctx, id)
}

func (s *adminService) UpdateStudent(ctx context.Context, id uuid.UUID, input dto.UpdateStudentInput, avatar *dto.AvatarFile) (*entity.StudentProfile, error) {
	profile, err := s.users.FindStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.Course != nil {
		profile.Course = *input.Course
	}
	if input.Year != nil {
		profile.Year = *input.Year
	}
	if input.ContactNumber != nil {
		profile.ContactNumber = *input.ContactNumber
	}
	if input.GuardianName != nil {
		profile.GuardianName = input.GuardianName
	}
	if input.GuardianContact != nil {
		profile.GuardianContact = input.GuardianContact
	}

	var user *entity.User
	if avatar != nil {
		user, err = s.users.FindByID(ctx, profile.UserID.String())
		if err != nil {
			return nil, err
		}

		url, err := s.uploadAvatar(ctx, avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = &url
	}

	if err := s.users.UpdateStudent(ctx, user, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *adminService) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	return s.users.DeleteStudent(ctx, id)
}

func (s *adminService) CreateWarden(ctx context.Context, input dto.CreateWardenInput, avatar *dto.AvatarFile) (*entity.WardenProfile, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         entity.RoleWarden,
		Active:       true,
	}

	if avatar != nil {
		url, err := s.uploadAvatar(ctx, avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = &url
	}

	profile := &entity.WardenProfile{
		FullName:       input.FullName,
		Email:          input.Email,
		EmployeeID:     input.EmployeeID,
		Qualification:  input.Qualification,
		ContactNumber:  input.ContactNumber,
		AssignedBlocks: input.AssignedBlocks,
	}

	if err := s.users.CreateWarden(ctx, user, profile); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.New(0, "a warden with this email or employee id already exists", apperror.ErrConflict)
		}
		return nil, err
	}

	return profile, nil
}

func (s *adminService) GetAllWardens(ctx context.Context) ([]*entity.WardenProfile, error) {
	return s.users.FindAllWardens(ctx)
}

func (s *adminService) GetWarden(ctx context.Context, id uuid.UUID) (*entity.WardenProfile, error) {
	return s.users.FindWardenByID(ctx, id)
}

func (s *adminService) UpdateWarden(ctx context.Context, id uuid.UUID, input dto.UpdateWardenInput, avatar *dto.AvatarFile) (*entity.WardenProfile, error) {
	profile, err := s.users.FindWardenByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.Qualification != nil {
		profile.Qualification = *input.Qualification
	}
	if input.ContactNumber != nil {
		profile.ContactNumber = *input.ContactNumber
	}
	if input.AssignedBlocks != nil {
		profile.AssignedBlocks = input.AssignedBlocks
	}

	var user *entity.User
	if avatar != nil {
		user, err = s.users.FindByID(ctx, profile.UserID.String())
		if err != nil {
			return nil, err
		}

		url, err := s.uploadAvatar(ctx, avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = &url
	}

	if err := s.users.UpdateWarden(ctx, user, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *adminService) DeleteWarden(ctx context.Context, id uuid.UUID) error {
	return s.users.DeleteWarden(ctx, id)
}

func (s *adminService) SetUserActive(ctx context.Context, userID string, active bool) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == entity.RoleAdmin && !active {
		return apperror.New(0, "admin accounts cannot be deactivated", apperror.ErrBadRequest)
	}

	user.Active = active
	return s.users.Update(ctx, user)
}

func (s *adminService) ResetPassword(ctx context.Context, userID string, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashed)
	return s.users.Update(ctx, user)
}

func (s *adminService) uploadAvatar(ctx context.Context, avatar *dto.AvatarFile) (string, error) {
	return s.imageStorage.UploadImage(ctx, avatar.Reader, "hostel/avatars", avatar.FileName)
}
