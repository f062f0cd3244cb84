package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoticeAudience string

const (
	NoticeAll      NoticeAudience = "all"
	NoticeStudents NoticeAudience = "students"
	NoticeWardens  NoticeAudience = "wardens"
)

type Notice struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Body          string         `gorm:"type:text;not null" json:"body"`
	Audience      NoticeAudience `gorm:"size:20;not null;default:'all';index" json:"audience"`
	Important     bool           `gorm:"not null;default:false" json:"important"`
	AuthorID      uuid.UUID      `gorm:"type:uuid;not null" json:"author_id"`
	Author        *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	AttachmentURL *string        `gorm:"type:text" json:"attachment_url,omitempty"`
	PublishedAt   time.Time      `gorm:"autoCreateTime" json:"published_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (n *Notice) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
