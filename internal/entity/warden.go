package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// WardenProfile is the one-to-one role extension of a User with role "warden".
type WardenProfile struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName       string         `gorm:"size:100;not null" json:"full_name"`
	Email          string         `gorm:"size:100;not null" json:"email"`
	EmployeeID     string         `gorm:"size:50;uniqueIndex;not null" json:"employee_id"`
	Qualification  string         `gorm:"size:100" json:"qualification"`
	ContactNumber  string         `gorm:"size:20" json:"contact_number"`
	AssignedBlocks pq.StringArray `gorm:"type:text[]" json:"assigned_blocks"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (w *WardenProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID, err = uuid.NewV7()
	}
	return
}

// ManagesBlock reports whether the warden is responsible for the given block.
func (w *WardenProfile) ManagesBlock(block string) bool {
	for _, b := range w.AssignedBlocks {
		if b == block {
			return true
		}
	}
	return false
}
