package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentProfile is the one-to-one role extension of a User with role "student".
// FullName and Email are denormalized copies kept in sync by the admin service.
type StudentProfile struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName        string     `gorm:"size:100;not null" json:"full_name"`
	Email           string     `gorm:"size:100;not null" json:"email"`
	RollNumber      string     `gorm:"size:50;uniqueIndex;not null" json:"roll_number"`
	Course          string     `gorm:"size:100;not null" json:"course"`
	Year            int        `gorm:"not null" json:"year"`
	ContactNumber   string     `gorm:"size:20" json:"contact_number"`
	GuardianName    *string    `gorm:"size:100" json:"guardian_name,omitempty"`
	GuardianContact *string    `gorm:"size:20" json:"guardian_contact,omitempty"`
	RoomID          *uuid.UUID `gorm:"type:uuid;index" json:"room_id,omitempty"`
	Room            *Room      `gorm:"constraint:OnDelete:SET NULL" json:"room,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *StudentProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
