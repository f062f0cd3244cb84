package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/middleware"
	"github.com/rahulpatel51/hostel-management/internal/modules/leave/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/leave/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
	"github.com/rahulpatel51/hostel-management/pkg/validator"
)

type LeaveHandler struct {
	service service.LeaveService
}

func NewLeaveHandler(service service.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

func (h *LeaveHandler) ApplyLeave(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CreateLeaveInput
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	var attachment *dto.AttachmentFile
	if fileHeader, err := c.FormFile("attachment"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.ErrorMessage(c, http.StatusBadRequest, "failed to read attachment upload")
			return
		}
		defer file.Close()

		attachment = &dto.AttachmentFile{
			Reader:   file,
			FileName: fileHeader.Filename,
		}
	}

	leave, err := h.service.Apply(c.Request.Context(), userID, input, attachment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, leave)
}

func (h *LeaveHandler) ListMyLeaves(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	leaves, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(leaves), leaves)
}

func (h *LeaveHandler) ListLeaves(c *gin.Context) {
	var filter dto.LeaveFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var leaves []*entity.Leave
	var err error
	if user.Role == entity.RoleWarden {
		leaves, err = h.service.ListForWarden(c.Request.Context(), user.ID, filter.Status)
	} else {
		leaves, err = h.service.ListAll(c.Request.Context(), filter.Status)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(leaves), leaves)
}

func (h *LeaveHandler) GetLeave(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid leave id")
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	leave, err := h.service.GetByID(c.Request.Context(), id, user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, leave)
}

func (h *LeaveHandler) DecideLeave(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid leave id")
		return
	}

	var input dto.DecideLeaveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	leave, err := h.service.Decide(c.Request.Context(), id, user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, leave)
}

func (h *LeaveHandler) CancelLeave(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid leave id")
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	leave, err := h.service.CancelOwn(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, leave)
}
