package dto

import "io"

type CreateNoticeInput struct {
	Title     string `json:"title" form:"title" binding:"required,max=255"`
	Body      string `json:"body" form:"body" binding:"required"`
	Audience  string `json:"audience" form:"audience" binding:"required,oneof=all students wardens"`
	Important bool   `json:"important" form:"important"`
}

type UpdateNoticeInput struct {
	Title     *string `json:"title" binding:"omitempty,max=255"`
	Body      *string `json:"body"`
	Audience  *string `json:"audience" binding:"omitempty,oneof=all students wardens"`
	Important *bool   `json:"important"`
}

// AttachmentFile carries an uploaded circular image from handler to service.
type AttachmentFile struct {
	Reader   io.Reader
	FileName string
}
