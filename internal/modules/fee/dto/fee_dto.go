package dto

type CreateFeeInput struct {
	StudentID   string `json:"student_id" binding:"required,uuid"`
	Description string `json:"description" binding:"required,max=255"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	DueDate     string `json:"due_date" binding:"required,datetime=2006-01-02"`
}

type RecordPaymentInput struct {
	Method string `json:"method" binding:"required,max=50"`
}

type FeeFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending paid overdue"`
}
