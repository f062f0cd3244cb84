package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessMenu holds one menu entry per (day of week, meal).
type MessMenu struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Day       string     `gorm:"size:10;not null;uniqueIndex:idx_mess_day_meal" json:"day"`
	Meal      string     `gorm:"size:20;not null;uniqueIndex:idx_mess_day_meal" json:"meal"`
	Items     string     `gorm:"type:text;not null" json:"items"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *MessMenu) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID, err = uuid.NewV7()
	}
	return
}
