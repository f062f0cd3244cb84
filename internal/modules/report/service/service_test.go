package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/report/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/report/service"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type fakeReportRepo struct {
	reports map[uuid.UUID]*entity.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*entity.Report)}
}

func (f *fakeReportRepo) Create(_ context.Context, report *entity.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	f.reports[report.ID] = report
	return nil
}

func (f *fakeReportRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	copied := *report
	return &copied, nil
}

func (f *fakeReportRepo) FindAll(_ context.Context, reportType string) ([]*entity.Report, error) {
	var out []*entity.Report
	for _, r := range f.reports {
		if reportType == "" || r.Type == reportType {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) Update(_ context.Context, report *entity.Report) error {
	if _, ok := f.reports[report.ID]; !ok {
		return apperror.ErrNotFound
	}
	copied := *report
	f.reports[report.ID] = &copied
	return nil
}

func (f *fakeReportRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reports[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(f.reports, id)
	return nil
}

func createReport(t *testing.T, svc service.ReportService) *entity.Report {
	t.Helper()
	author := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	report, err := svc.Create(context.Background(), author, dto.CreateReportInput{
		Title:       "March occupancy",
		Type:        "occupancy",
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		Body:        "84% average occupancy across all blocks.",
	})
	require.NoError(t, err)
	return report
}

func TestCreateReportStampsAuthor(t *testing.T) {
	repo := newFakeReportRepo()
	svc := service.NewReportService(repo)

	report := createReport(t, svc)
	assert.NotEqual(t, uuid.Nil, report.GeneratedBy)
	assert.Equal(t, "occupancy", report.Type)
}

func TestUpdateReportAppliesPartialFields(t *testing.T) {
	repo := newFakeReportRepo()
	svc := service.NewReportService(repo)
	ctx := context.Background()

	report := createReport(t, svc)

	title := "March occupancy (revised)"
	body := "86% after the late check-ins were counted."
	updated, err := svc.Update(ctx, report.ID, dto.UpdateReportInput{Title: &title, Body: &body})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, body, updated.Body)

	// Untouched fields survive the partial update.
	assert.Equal(t, report.Type, updated.Type)
	assert.Equal(t, report.PeriodStart, updated.PeriodStart)

	stored, err := svc.GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, title, stored.Title)
}

func TestUpdateReportRejectsInvertedPeriod(t *testing.T) {
	repo := newFakeReportRepo()
	svc := service.NewReportService(repo)
	ctx := context.Background()

	report := createReport(t, svc)

	periodEnd := "2026-02-01"
	_, err := svc.Update(ctx, report.ID, dto.UpdateReportInput{PeriodEnd: &periodEnd})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	// The rejected update left the stored report untouched.
	stored, err := svc.GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.PeriodEnd, stored.PeriodEnd)
}

func TestUpdateReportUnknownID(t *testing.T) {
	repo := newFakeReportRepo()
	svc := service.NewReportService(repo)

	title := "whatever"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateReportInput{Title: &title})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
