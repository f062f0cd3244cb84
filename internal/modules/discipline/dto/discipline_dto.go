package dto

import "io"

type CreateDisciplineInput struct {
	StudentID   string `json:"student_id" form:"student_id" binding:"required,uuid"`
	Incident    string `json:"incident" form:"incident" binding:"required,max=255"`
	Description string `json:"description" form:"description"`
}

type UpdateDisciplineStatusInput struct {
	Status      string `json:"status" binding:"required,oneof=open under-review closed"`
	ActionTaken string `json:"action_taken"`
	Comment     string `json:"comment"`
}

type DisciplineFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=open under-review closed"`
}

// AttachmentFile carries uploaded incident evidence from handler to service.
type AttachmentFile struct {
	Reader   io.Reader
	FileName string
}
