package dto

type MarkAttendanceInput struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Morning   string `json:"morning" binding:"required,oneof=present absent on-leave"`
	Evening   string `json:"evening" binding:"required,oneof=present absent on-leave"`
}

type AttendanceFilter struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type AttendanceByDateFilter struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}
