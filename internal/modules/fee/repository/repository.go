package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type FeeRepository interface {
	Create(ctx context.Context, fee *entity.Fee) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Fee, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID, status string) ([]*entity.Fee, error)
	FindAll(ctx context.Context, status string) ([]*entity.Fee, error)
	Update(ctx context.Context, fee *entity.Fee) error
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
	SumByStatus(ctx context.Context, status entity.FeeStatus) (int64, error)
}

type feeRepository struct {
	db *gorm.DB
}

func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) Create(ctx context.Context, fee *entity.Fee) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

func (r *feeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Fee, error) {
	var fee entity.Fee
	if err := r.db.WithContext(ctx).
		Preload("Student").
		First(&fee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &fee, nil
}

func (r *feeRepository) FindByStudent(ctx context.Context, studentID uuid.UUID, status string) ([]*entity.Fee, error) {
	var fees []*entity.Fee
	query := r.db.WithContext(ctx).Where("student_id = ?", studentID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("due_date DESC").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (r *feeRepository) FindAll(ctx context.Context, status string) ([]*entity.Fee, error) {
	var fees []*entity.Fee
	query := r.db.WithContext(ctx).Preload("Student")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("due_date DESC").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (r *feeRepository) Update(ctx context.Context, fee *entity.Fee) error {
	return r.db.WithContext(ctx).Save(fee).Error
}

// MarkOverdue flips every pending fee whose due date has passed. One UPDATE
// covers the whole ledger, no per-row reads.
func (r *feeRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.Fee{}).
		Where("status = ? AND due_date < ?", entity.FeePending, asOf).
		Update("status", entity.FeeOverdue)
	return res.RowsAffected, res.Error
}

func (r *feeRepository) SumByStatus(ctx context.Context, status entity.FeeStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Fee{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
