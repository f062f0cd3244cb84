package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is an admin-authored summary document (occupancy, fee collection,
// attendance digests and the like).
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Type        string    `gorm:"size:50;not null;index" json:"type"`
	PeriodStart time.Time `gorm:"type:date" json:"period_start"`
	PeriodEnd   time.Time `gorm:"type:date" json:"period_end"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	GeneratedBy uuid.UUID `gorm:"type:uuid;not null" json:"generated_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
