package dto

import (
	"io"

	"github.com/rahulpatel51/hostel-management/internal/entity"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	Email           string  `json:"email" form:"email" binding:"required,email"`
	Password        string  `json:"password" form:"password" binding:"required,min=8"`
	FullName        string  `json:"full_name" form:"full_name" binding:"required,max=100"`
	RollNumber      string  `json:"roll_number" form:"roll_number" binding:"required,max=50"`
	Course          string  `json:"course" form:"course" binding:"required,max=100"`
	Year            int     `json:"year" form:"year" binding:"required,min=1,max=6"`
	ContactNumber   string  `json:"contact_number" form:"contact_number" binding:"max=20"`
	GuardianName    *string `json:"guardian_name" form:"guardian_name"`
	GuardianContact *string `json:"guardian_contact" form:"guardian_contact"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// AvatarFile carries an uploaded profile picture from handler to service.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

// AuthResponse is the login/register payload. ExpiresAt is the token's
// expiry as a Unix timestamp, not a duration.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   int64        `json:"expires_at"`
	User        *entity.User `json:"user"`
}
