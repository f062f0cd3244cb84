package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type MessRepository interface {
	Upsert(ctx context.Context, menu *entity.MessMenu) error
	FindByDayAndMeal(ctx context.Context, day, meal string) (*entity.MessMenu, error)
	FindByDay(ctx context.Context, day string) ([]*entity.MessMenu, error)
	FindAll(ctx context.Context) ([]*entity.MessMenu, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type messRepository struct {
	db *gorm.DB
}

func NewMessRepository(db *gorm.DB) MessRepository {
	return &messRepository{db: db}
}

// Upsert writes the (day, meal) slot; a second write for the same slot
// replaces the items instead of failing the unique index.
func (r *messRepository) Upsert(ctx context.Context, menu *entity.MessMenu) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day"}, {Name: "meal"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"items":      menu.Items,
			"updated_by": menu.UpdatedBy,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(menu).Error
}

func (r *messRepository) FindByDayAndMeal(ctx context.Context, day, meal string) (*entity.MessMenu, error) {
	var menu entity.MessMenu
	if err := r.db.WithContext(ctx).
		First(&menu, "day = ? AND meal = ?", day, meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &menu, nil
}

func (r *messRepository) FindByDay(ctx context.Context, day string) ([]*entity.MessMenu, error) {
	var menus []*entity.MessMenu
	if err := r.db.WithContext(ctx).
		Where("day = ?", day).
		Order("meal").
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *messRepository) FindAll(ctx context.Context) ([]*entity.MessMenu, error) {
	var menus []*entity.MessMenu
	if err := r.db.WithContext(ctx).
		Order("day, meal").
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *messRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.MessMenu{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
