package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

type AttendanceRepository interface {
	// Upsert writes the attendance row for (student, date). A second write
	// for the same pair overwrites the statuses instead of inserting a
	// duplicate row.
	Upsert(ctx context.Context, record *entity.Attendance) error
	FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*entity.Attendance, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]*entity.Attendance, error)
	FindByDate(ctx context.Context, date time.Time, blocks []string) ([]*entity.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Upsert(ctx context.Context, record *entity.Attendance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"morning":    record.Morning,
			"evening":    record.Evening,
			"marked_by":  record.MarkedBy,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(record).Error
}

func (r *attendanceRepository) FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*entity.Attendance, error) {
	var record entity.Attendance
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ?", studentID, date).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) FindByStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]*entity.Attendance, error) {
	var records []*entity.Attendance
	query := r.db.WithContext(ctx).Where("student_id = ?", studentID)

	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}

	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) FindByDate(ctx context.Context, date time.Time, blocks []string) ([]*entity.Attendance, error) {
	var records []*entity.Attendance
	query := r.db.WithContext(ctx).
		Preload("Student").
		Where("date = ?", date)

	if len(blocks) > 0 {
		query = query.
			Joins("JOIN student_profiles ON student_profiles.id = attendances.student_id").
			Joins("JOIN rooms ON rooms.id = student_profiles.room_id").
			Where("rooms.block IN ?", blocks)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
