package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeeStatus string

const (
	FeePending FeeStatus = "pending"
	FeePaid    FeeStatus = "paid"
	FeeOverdue FeeStatus = "overdue"
)

// Fee is one ledger row of the hostel fee account of a student.
// Amount is stored in the smallest currency unit.
type Fee struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"student_id"`
	Student     *StudentProfile `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      int64           `gorm:"not null" json:"amount"`
	DueDate     time.Time       `gorm:"type:date;not null" json:"due_date"`
	Status      FeeStatus       `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	Method      *string         `gorm:"size:50" json:"method,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (f *Fee) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID, err = uuid.NewV7()
	}
	return
}
