package dto

type CreateReportInput struct {
	Title       string `json:"title" binding:"required,max=255"`
	Type        string `json:"type" binding:"required,oneof=occupancy attendance fees complaints discipline general"`
	PeriodStart string `json:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" binding:"required,datetime=2006-01-02"`
	Body        string `json:"body" binding:"required"`
}

type UpdateReportInput struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Type        *string `json:"type" binding:"omitempty,oneof=occupancy attendance fees complaints discipline general"`
	PeriodStart *string `json:"period_start" binding:"omitempty,datetime=2006-01-02"`
	PeriodEnd   *string `json:"period_end" binding:"omitempty,datetime=2006-01-02"`
	Body        *string `json:"body" binding:"omitempty"`
}

type ReportFilter struct {
	Type string `form:"type" binding:"omitempty,oneof=occupancy attendance fees complaints discipline general"`
}
