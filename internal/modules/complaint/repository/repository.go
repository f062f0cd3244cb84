package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Complaint, error)
	FindByBlocks(ctx context.Context, blocks []string, status string) ([]*entity.Complaint, error)
	FindAll(ctx context.Context, status string) ([]*entity.Complaint, error)
	Update(ctx context.Context, complaint *entity.Complaint) error
	AddComment(ctx context.Context, comment *entity.Comment) error
	CountByStatus(ctx context.Context, status entity.ComplaintStatus) (int64, error)
}

type complaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	var complaint entity.Complaint
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Comments.Author").
		First(&complaint, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Complaint, error) {
	var complaints []*entity.Complaint
	if err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) FindByBlocks(ctx context.Context, blocks []string, status string) ([]*entity.Complaint, error) {
	var complaints []*entity.Complaint
	query := r.db.WithContext(ctx).
		Preload("Student").
		Where("block IN ?", blocks)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) FindAll(ctx context.Context, status string) ([]*entity.Complaint, error) {
	var complaints []*entity.Complaint
	query := r.db.WithContext(ctx).Preload("Student")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) Update(ctx context.Context, complaint *entity.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

func (r *complaintRepository) AddComment(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *complaintRepository) CountByStatus(ctx context.Context, status entity.ComplaintStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Complaint{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
