package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomFull        RoomStatus = "full"
	RoomMaintenance RoomStatus = "maintenance"
)

// Room holds capacity bookkeeping for one hostel room. OccupiedCount is
// denormalized for query efficiency; the occupant list itself is derived
// from students whose RoomID references this room. Both are mutated only
// inside room repository transactions so that
// occupied_count == len(occupants) <= capacity always holds.
type Room struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Number        string           `gorm:"size:20;uniqueIndex;not null" json:"number"`
	Block         string           `gorm:"size:50;not null;index" json:"block"`
	Floor         int              `gorm:"not null" json:"floor"`
	Capacity      int              `gorm:"not null;check:capacity > 0" json:"capacity"`
	OccupiedCount int              `gorm:"not null;default:0" json:"occupied_count"`
	Status        RoomStatus       `gorm:"size:20;not null;default:'available'" json:"status"`
	Occupants     []StudentProfile `gorm:"foreignKey:RoomID" json:"occupants,omitempty"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
