package dto

type SetMenuInput struct {
	Day   string `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Meal  string `json:"meal" binding:"required,oneof=breakfast lunch snacks dinner"`
	Items string `json:"items" binding:"required"`
}

type MenuFilter struct {
	Day string `form:"day" binding:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
}
