package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type LeaveRepository interface {
	Create(ctx context.Context, leave *entity.Leave) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Leave, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Leave, error)
	FindByBlocks(ctx context.Context, blocks []string, status string) ([]*entity.Leave, error)
	FindAll(ctx context.Context, status string) ([]*entity.Leave, error)
	Update(ctx context.Context, leave *entity.Leave) error
	AddComment(ctx context.Context, comment *entity.Comment) error
	CountByStatus(ctx context.Context, status entity.LeaveStatus) (int64, error)
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, leave *entity.Leave) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *leaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Leave, error) {
	var leave entity.Leave
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Comments.Author").
		First(&leave, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Leave, error) {
	var leaves []*entity.Leave
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *leaveRepository) FindByBlocks(ctx context.Context, blocks []string, status string) ([]*entity.Leave, error) {
	var leaves []*entity.Leave
	query := r.db.WithContext(ctx).
		Preload("Student").
		Where("block IN ?", blocks)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *leaveRepository) FindAll(ctx context.Context, status string) ([]*entity.Leave, error) {
	var leaves []*entity.Leave
	query := r.db.WithContext(ctx).Preload("Student")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *leaveRepository) Update(ctx context.Context, leave *entity.Leave) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

func (r *leaveRepository) AddComment(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *leaveRepository) CountByStatus(ctx context.Context, status entity.LeaveStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Leave{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
