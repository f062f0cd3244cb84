package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahulpatel51/hostel-management/internal/middleware"
	"github.com/rahulpatel51/hostel-management/internal/modules/attendance/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/attendance/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
	"github.com/rahulpatel51/hostel-management/pkg/validator"
)

type AttendanceHandler struct {
	service service.AttendanceService
}

func NewAttendanceHandler(service service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var input dto.MarkAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	record, err := h.service.Mark(c.Request.Context(), user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, record)
}

func (h *AttendanceHandler) ListMyAttendance(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter dto.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	records, err := h.service.ListOwn(c.Request.Context(), userID, filter.From, filter.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(records), records)
}

func (h *AttendanceHandler) ListByDate(c *gin.Context) {
	var filter dto.AttendanceByDateFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	records, err := h.service.ListByDate(c.Request.Context(), user, filter.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(records), records)
}
