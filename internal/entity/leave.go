package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

type Leave struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"student_id"`
	Student       *StudentProfile `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Block         string          `gorm:"size:50;index" json:"block"`
	Reason        string          `gorm:"type:text;not null" json:"reason"`
	Destination   string          `gorm:"size:255" json:"destination"`
	FromDate      time.Time       `gorm:"type:date;not null" json:"from_date"`
	ToDate        time.Time       `gorm:"type:date;not null" json:"to_date"`
	AttachmentURL *string         `gorm:"type:text" json:"attachment_url,omitempty"`
	Status        LeaveStatus     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	DecidedAt     *time.Time      `json:"decided_at,omitempty"`
	DecidedBy     *uuid.UUID      `gorm:"type:uuid" json:"decided_by,omitempty"`
	Comments      []Comment       `gorm:"polymorphicType:RefType;polymorphicId:RefID;polymorphicValue:leave" json:"comments,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *Leave) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}
