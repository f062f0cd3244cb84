package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceOnLeave AttendanceStatus = "on-leave"
)

// Attendance holds exactly one row per (student, calendar day). The composite
// unique index backs the ON CONFLICT upsert in the attendance repository.
type Attendance struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_student_date" json:"student_id"`
	Student   *StudentProfile  `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Date      time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_student_date" json:"date"`
	Morning   AttendanceStatus `gorm:"size:20;not null;default:'absent'" json:"morning"`
	Evening   AttendanceStatus `gorm:"size:20;not null;default:'absent'" json:"evening"`
	MarkedBy  uuid.UUID        `gorm:"type:uuid;not null" json:"marked_by"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}
