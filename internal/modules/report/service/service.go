package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/report/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/report/repository"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type ReportService interface {
	Create(ctx context.Context, author *entity.User, input dto.CreateReportInput) (*entity.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	ListAll(ctx context.Context, reportType string) ([]*entity.Report, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateReportInput) (*entity.Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) Create(ctx context.Context, author *entity.User, input dto.CreateReportInput) (*entity.Report, error) {
	periodStart, err := time.Parse("2006-01-02", input.PeriodStart)
	if err != nil {
		return nil, apperror.New(0, "period start must be YYYY-MM-DD", apperror.ErrInvalidInput)
	}
	periodEnd, err := time.Parse("2006-01-02", input.PeriodEnd)
	if err != nil {
		return nil, apperror.New(0, "period end must be YYYY-MM-DD", apperror.ErrInvalidInput)
	}
	if periodEnd.Before(periodStart) {
		return nil, apperror.New(0, "period end must not be before period start", apperror.ErrInvalidInput)
	}

	report := &entity.Report{
		Title:       input.Title,
		Type:        input.Type,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Body:        input.Body,
		GeneratedBy: author.ID,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *reportService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *reportService) ListAll(ctx context.Context, reportType string) ([]*entity.Report, error) {
	return s.repo.FindAll(ctx, reportType)
}

func (s *reportService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateReportInput) (*entity.Report, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		report.Title = *input.Title
	}
	if input.Type != nil {
		report.Type = *input.Type
	}
	if input.PeriodStart != nil {
		periodStart, err := time.Parse("2006-01-02", *input.PeriodStart)
		if err != nil {
			return nil, apperror.New(0, "period start must be YYYY-MM-DD", apperror.ErrInvalidInput)
		}
		report.PeriodStart = periodStart
	}
	if input.PeriodEnd != nil {
		periodEnd, err := time.Parse("2006-01-02", *input.PeriodEnd)
		if err != nil {
			return nil, apperror.New(0, "period end must be YYYY-MM-DD", apperror.ErrInvalidInput)
		}
		report.PeriodEnd = periodEnd
	}
	if report.PeriodEnd.Before(report.PeriodStart) {
		return nil, apperror.New(0, "period end must not be before period start", apperror.ErrInvalidInput)
	}
	if input.Body != nil {
		report.Body = *input.Body
	}

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
