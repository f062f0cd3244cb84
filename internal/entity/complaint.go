package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "pending"
	ComplaintInProgress ComplaintStatus = "in-progress"
	ComplaintResolved   ComplaintStatus = "resolved"
	ComplaintRejected   ComplaintStatus = "rejected"
	ComplaintCancelled  ComplaintStatus = "cancelled"
)

type Complaint struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"student_id"`
	Student       *StudentProfile `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Block         string          `gorm:"size:50;index" json:"block"` // copied from the student's room for warden scoping
	Category      string          `gorm:"size:50;not null" json:"category"`
	Subject       string          `gorm:"size:255;not null" json:"subject"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	AttachmentURL *string         `gorm:"type:text" json:"attachment_url,omitempty"`
	Status        ComplaintStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ResolvedAt    *time.Time      `json:"resolved_at,omitempty"`
	Comments      []Comment       `gorm:"polymorphicType:RefType;polymorphicId:RefID;polymorphicValue:complaint" json:"comments,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
