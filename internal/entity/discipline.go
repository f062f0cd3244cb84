package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DisciplineStatus string

const (
	DisciplineOpen        DisciplineStatus = "open"
	DisciplineUnderReview DisciplineStatus = "under-review"
	DisciplineClosed      DisciplineStatus = "closed"
)

// Discipline records an incident raised by a warden against a student.
type Discipline struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"student_id"`
	Student       *StudentProfile  `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	ReportedBy    uuid.UUID        `gorm:"type:uuid;not null" json:"reported_by"`
	Block         string           `gorm:"size:50;index" json:"block"`
	Incident      string           `gorm:"size:255;not null" json:"incident"`
	Description   string           `gorm:"type:text" json:"description"`
	ActionTaken   *string          `gorm:"type:text" json:"action_taken,omitempty"`
	AttachmentURL *string          `gorm:"type:text" json:"attachment_url,omitempty"`
	Status        DisciplineStatus `gorm:"size:20;not null;default:'open';index" json:"status"`
	Comments      []Comment        `gorm:"polymorphicType:RefType;polymorphicId:RefID;polymorphicValue:discipline" json:"comments,omitempty"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (d *Discipline) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID, err = uuid.NewV7()
	}
	return
}
