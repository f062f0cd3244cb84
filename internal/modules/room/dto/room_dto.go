package dto

type CreateRoomInput struct {
	Number   string `json:"number" binding:"required,max=20"`
	Block    string `json:"block" binding:"required,max=50"`
	Floor    int    `json:"floor" binding:"min=0"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

type UpdateRoomInput struct {
	Block  *string `json:"block" binding:"omitempty,max=50"`
	Floor  *int    `json:"floor" binding:"omitempty,min=0"`
	Status *string `json:"status" binding:"omitempty,oneof=available full maintenance"`
}

type AssignStudentInput struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}

type ResizeRoomInput struct {
	Capacity int `json:"capacity" binding:"required,gt=0"`
}

type RoomFilter struct {
	Block string `form:"block"`
}
