package dto

import "io"

type CreateLeaveInput struct {
	Reason      string `json:"reason" form:"reason" binding:"required"`
	Destination string `json:"destination" form:"destination" binding:"max=255"`
	FromDate    string `json:"from_date" form:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate      string `json:"to_date" form:"to_date" binding:"required,datetime=2006-01-02"`
}

type DecideLeaveInput struct {
	Status  string `json:"status" binding:"required,oneof=approved rejected"`
	Comment string `json:"comment"`
}

type LeaveFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
}

type AddCommentInput struct {
	Text string `json:"text" binding:"required"`
}

type AttachmentFile struct {
	Reader   io.Reader
	FileName string
}
