package dto

import "io"

type CreateStudentInput struct {
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

type UpdateStudentInput struct {
	FullName        *string `json:"full_name" form:"full_name" binding:"omitempty,max=100"`
	Course          *string `json:"course" form:"course" binding:"omitempty,max=100"`
	Year            *int    `json:"year" form:"year" binding:"omitempty,min=1,max=6"`
	ContactNumber   *string `json:"contact_number" form:"contact_number" binding:"omitempty,max=20"`
	GuardianName    *string `json:"guardian_name" form:"guardian_name"`
	GuardianContact *string `json:"guardian_contact" form:"guardian_contact"`
}

type CreateWardenInput struct {
	Email          string   `json:"email" form:"email" binding:"required,email"`
	Password       string   `json:"password" form:"password" binding:"required,min=8"`
	FullName       string   `json:"full_name" form:"full_name" binding:"required,max=100"`
	EmployeeID     string   `json:"employee_id" form:"employee_id" binding:"required,max=50"`
	Qualification  string   `json:"qualification" form:"qualification" binding:"max=100"`
	ContactNumber  string   `json:"contact_number" form:"contact_number" binding:"max=20"`
	AssignedBlocks []string `json:"assigned_blocks" form:"assigned_blocks"`
}

type UpdateWardenInput struct {
	FullName       *string  `json:"full_name" form:"full_name" binding:"omitempty,max=100"`
	Qualification  *string  `json:"qualification" form:"qualification" binding:"omitempty,max=100"`
	ContactNumber  *string  `json:"contact_number" form:"contact_number" binding:"omitempty,max=20"`
	AssignedBlocks []string `json:"assigned_blocks" form:"assigned_blocks"`
}

type ResetPasswordInput struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AvatarFile carries an uploaded profile picture from handler to service.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}
