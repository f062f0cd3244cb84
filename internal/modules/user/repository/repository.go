package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

// UserRepository persists identity records together with their role
// profiles. Creation and deletion of a user and its profile happen in one
// database transaction so a partial failure can never leave an orphan on
// either side.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	CountByRole(ctx context.Context, role entity.Role) (int64, error)

	CreateStudent(ctx context.Context, user *entity.User, profile *entity.StudentProfile) error
	FindStudentByID(ctx context.Context, id uuid.UUID) (*entity.StudentProfile, error)
	FindStudentByUserID(ctx context.Context, userID uuid.UUID) (*entity.StudentProfile, error)
	FindAllStudents(ctx context.Context) ([]*entity.StudentProfile, error)
	FindStudentsByBlocks(ctx context.Context, blocks []string) ([]*entity.StudentProfile, error)
	UpdateStudent(ctx context.Context, user *entity.User, profile *entity.StudentProfile) error
	DeleteStudent(ctx context.Context, id uuid.UUID) error

	CreateWarden(ctx context.Context, user *entity.User, profile *entity.WardenProfile) error
	FindWardenByID(ctx context.Context, id uuid.UUID) (*entity.WardenProfile, error)
	FindWardenByUserID(ctx context.Context, userID uuid.UUID) (*entity.WardenProfile, error)
	FindAllWardens(ctx context.Context) ([]*entity.WardenProfile, error)
	UpdateWarden(ctx context.Context, user *entity.User, profile *entity.WardenProfile) error
	DeleteWarden(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// translate maps driver-level errors to the application error taxonomy.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrConflict
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("StudentProfile").
		Preload("WardenProfile").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("StudentProfile").
		Preload("WardenProfile").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return translate(r.db.WithContext(ctx).Save(user).Error)
}

func (r *userRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("role = ?", role).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) CreateStudent(ctx context.Context, user *entity.User, profile *entity.StudentProfile) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		profile.UserID = user.ID
		return tx.Create(profile).Error
	}))
}

func (r *userRepository) FindStudentByID(ctx context.Context, id uuid.UUID) (*entity.StudentProfile, error) {
	var profile entity.StudentProfile
	if err := r.db.WithContext(ctx).
		Preload("Room").
		First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *userRepository) FindStudentByUserID(ctx context.Context, userID uuid.UUID) (*entity.StudentProfile, error) {
	var profile entity.StudentProfile
	if err := r.db.WithContext(ctx).
		Preload("Room").
		First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *userRepository) FindAllStudents(ctx context.Context) ([]*entity.StudentProfile, error) {
	var profiles []*entity.StudentProfile
	if err := r.db.WithContext(ctx).
		Preload("Room").
		Order("full_name").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *userRepository) FindStudentsByBlocks(ctx context.Context, blocks []string) ([]*entity.StudentProfile, error) {
	var profiles []*entity.StudentProfile
	if err := r.db.WithContext(ctx).
		Joins("JOIN rooms ON rooms.id = student_profiles.room_id").
		Where("rooms.block IN ?", blocks).
		Preload("Room").
		Order("full_name").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *userRepository) UpdateStudent(ctx context.Context, user *entity.User, profile *entity.StudentProfile) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user != nil {
			if err := tx.Save(user).Error; err != nil {
				return err
			}
		}
		return tx.Save(profile).Error
	}))
}

// DeleteStudent removes the profile and its linked User in one transaction,
// releasing the room seat the student occupied.
func (r *userRepository) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile entity.StudentProfile
		if err := tx.First(&profile, "id = ?", id).Error; err != nil {
			return err
		}

		if profile.RoomID != nil {
			if err := tx.Model(&entity.Room{}).
				Where("id = ? AND occupied_count > 0", *profile.RoomID).
				UpdateColumns(map[string]interface{}{
					"occupied_count": gorm.Expr("occupied_count - 1"),
					"status":         gorm.Expr("CASE WHEN status = 'full' THEN 'available' ELSE status END"),
				}).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&entity.StudentProfile{}, "id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&entity.User{}, "id = ?", profile.UserID).Error
	}))
}

func (r *userRepository) CreateWarden(ctx context.Context, user *entity.User, profile *entity.WardenProfile) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		profile.UserID = user.ID
		return tx.Create(profile).Error
	}))
}

func (r *userRepository) FindWardenByID(ctx context.Context, id uuid.UUID) (*entity.WardenProfile, error) {
	var profile entity.WardenProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *userRepository) FindWardenByUserID(ctx context.Context, userID uuid.UUID) (*entity.WardenProfile, error) {
	var profile entity.WardenProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *userRepository) FindAllWardens(ctx context.Context) ([]*entity.WardenProfile, error) {
	var profiles []*entity.WardenProfile
	if err := r.db.WithContext(ctx).Order("full_name").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *userRepository) UpdateWarden(ctx context.Context, user *entity.User, profile *entity.WardenProfile) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user != nil {
			if err := tx.Save(user).Error; err != nil {
				return err
			}
		}
		return tx.Save(profile).Error
	}))
}

func (r *userRepository) DeleteWarden(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile entity.WardenProfile
		if err := tx.First(&profile, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&entity.WardenProfile{}, "id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&entity.User{}, "id = ?", profile.UserID).Error
	}))
}
