package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *entity.Notice) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notice, error)
	FindForAudience(ctx context.Context, audiences []entity.NoticeAudience) ([]*entity.Notice, error)
	Update(ctx context.Context, notice *entity.Notice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type noticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) Create(ctx context.Context, notice *entity.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

func (r *noticeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notice, error) {
	var notice entity.Notice
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&notice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &notice, nil
}

func (r *noticeRepository) FindForAudience(ctx context.Context, audiences []entity.NoticeAudience) ([]*entity.Notice, error) {
	var notices []*entity.Notice
	query := r.db.WithContext(ctx).Preload("Author")

	if len(audiences) > 0 {
		query = query.Where("audience IN ?", audiences)
	}

	if err := query.Order("important DESC, published_at DESC").Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

func (r *noticeRepository) Update(ctx context.Context, notice *entity.Notice) error {
	return r.db.WithContext(ctx).Save(notice).Error
}

func (r *noticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Notice{}, "id = ?", id).Error
}
