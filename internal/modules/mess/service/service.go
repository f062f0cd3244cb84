package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/mess/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/mess/repository"
)

type MessService interface {
	SetMenu(ctx context.Context, actor *entity.User, input dto.SetMenuInput) (*entity.MessMenu, error)
	GetMenu(ctx context.Context, day string) ([]*entity.MessMenu, error)
	DeleteMenu(ctx context.Context, id uuid.UUID) error
}

type messService struct {
	repo repository.MessRepository
}

func NewMessService(repo repository.MessRepository) MessService {
	return &messService{repo: repo}
}

func (s *messService) SetMenu(ctx context.Context, actor *entity.User, input dto.SetMenuInput) (*entity.MessMenu, error) {
	menu := &entity.MessMenu{
		Day:       input.Day,
		Meal:      input.Meal,
		Items:     input.Items,
		UpdatedBy: &actor.ID,
	}

	if err := s.repo.Upsert(ctx, menu); err != nil {
		return nil, err
	}

	return s.repo.FindByDayAndMeal(ctx, input.Day, input.Meal)
}

func (s *messService) GetMenu(ctx context.Context, day string) ([]*entity.MessMenu, error) {
	if day != "" {
		return s.repo.FindByDay(ctx, day)
	}
	return s.repo.FindAll(ctx)
}

func (s *messService) DeleteMenu(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
