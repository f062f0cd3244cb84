package dto

import "io"

type CreateComplaintInput struct {
	Category    string `json:"category" form:"category" binding:"required,oneof=maintenance food security cleanliness other"`
	Subject     string `json:"subject" form:"subject" binding:"required,max=255"`
	Description string `json:"description" form:"description" binding:"required"`
}

type UpdateComplaintStatusInput struct {
	Status  string `json:"status" binding:"required,oneof=pending in-progress resolved rejected cancelled"`
	Comment string `json:"comment"`
}

type AddCommentInput struct {
	Text string `json:"text" binding:"required"`
}

type ComplaintFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending in-progress resolved rejected cancelled"`
}

// AttachmentFile carries an uploaded complaint photo from handler to service.
type AttachmentFile struct {
	Reader   io.Reader
	FileName string
}
