package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type DisciplineRepository interface {
	Create(ctx context.Context, record *entity.Discipline) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Discipline, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Discipline, error)
	FindByBlocks(ctx context.Context, blocks []string, status string) ([]*entity.Discipline, error)
	FindAll(ctx context.Context, status string) ([]*entity.Discipline, error)
	Update(ctx context.Context, record *entity.Discipline) error
	AddComment(ctx context.Context, comment *entity.Comment) error
	CountByStatus(ctx context.Context, status entity.DisciplineStatus) (int64, error)
}

type disciplineRepository struct {
	db *gorm.DB
}

func NewDisciplineRepository(db *gorm.DB) DisciplineRepository {
	return &disciplineRepository{db: db}
}

func (r *disciplineRepository) Create(ctx context.Context, record *entity.Discipline) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *disciplineRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Discipline, error) {
	var record entity.Discipline
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Comments.Author").
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *disciplineRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Discipline, error) {
	var records []*entity.Discipline
	if err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *disciplineRepository) FindByBlocks(ctx context.Context, blocks []string, status string) ([]*entity.Discipline, error) {
	var records []*entity.Discipline
	query := r.db.WithContext(ctx).
		Preload("Student").
		Where("block IN ?", blocks)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *disciplineRepository) FindAll(ctx context.Context, status string) ([]*entity.Discipline, error) {
	var records []*entity.Discipline
	query := r.db.WithContext(ctx).Preload("Student")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *disciplineRepository) Update(ctx context.Context, record *entity.Discipline) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *disciplineRepository) AddComment(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *disciplineRepository) CountByStatus(ctx context.Context, status entity.DisciplineStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Discipline{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
