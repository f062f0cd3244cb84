package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is one entry of the ordered response thread attached to a
// complaint, leave application or discipline record. RefType/RefID follow
// the same polymorphic reference shape used elsewhere in the codebase.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RefType   string    `gorm:"size:20;not null;index:idx_comments_ref" json:"ref_type"`
	RefID     uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_ref" json:"ref_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
