package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/middleware"
	"github.com/rahulpatel51/hostel-management/internal/modules/room/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/room/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
	"github.com/rahulpatel51/hostel-management/pkg/validator"
)

type RoomHandler struct {
	service service.RoomService
}

func NewRoomHandler(service service.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input dto.CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	room, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, room)
}

// GetAllRooms lists rooms. Wardens only see rooms in their assigned blocks;
// everyone else gets the full register, optionally filtered by block.
func (h *RoomHandler) GetAllRooms(c *gin.Context) {
	var filter dto.RoomFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var rooms []*entity.Room
	var err error
	if user.Role == entity.RoleWarden {
		rooms, err = h.service.GetForWarden(c.Request.Context(), user.ID)
	} else {
		rooms, err = h.service.GetAll(c.Request.Context(), filter.Block)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(rooms), rooms)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid room id")
		return
	}

	room, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, room)
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid room id")
		return
	}

	var input dto.UpdateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	room, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, room)
}

func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid room id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "room deleted successfully")
}

func (h *RoomHandler) AssignStudent(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid room id")
		return
	}

	var input dto.AssignStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	studentID, _ := uuid.Parse(input.StudentID)
	room, err := h.service.Assign(c.Request.Context(), roomID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, room)
}

func (h *RoomHandler) RemoveStudent(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid room id")
		return
	}

	studentID, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid student id")
		return
	}

	room, err := h.service.Remove(c.Request.Context(), roomID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, room)
}

func (h *RoomHandler) ResizeRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid room id")
		return
	}

	var input dto.ResizeRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	room, err := h.service.Resize(c.Request.Context(), roomID, input.Capacity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, room)
}
