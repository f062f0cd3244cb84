package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/middleware"
	"github.com/rahulpatel51/hostel-management/internal/modules/fee/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/fee/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
	"github.com/rahulpatel51/hostel-management/pkg/validator"
)

type FeeHandler struct {
	service service.FeeService
}

func NewFeeHandler(service service.FeeService) *FeeHandler {
	return &FeeHandler{service: service}
}

func (h *FeeHandler) CreateFee(c *gin.Context) {
	var input dto.CreateFeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	fee, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fee)
}

func (h *FeeHandler) ListFees(c *gin.Context) {
	var filter dto.FeeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	fees, err := h.service.ListAll(c.Request.Context(), filter.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(fees), fees)
}

func (h *FeeHandler) ListMyFees(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter dto.FeeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	fees, err := h.service.ListOwn(c.Request.Context(), userID, filter.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(fees), fees)
}

func (h *FeeHandler) GetFee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid fee id")
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	fee, err := h.service.GetByID(c.Request.Context(), id, user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, fee)
}

func (h *FeeHandler) RecordPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid fee id")
		return
	}

	var input dto.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	fee, err := h.service.RecordPayment(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, fee)
}

func (h *FeeHandler) RefreshOverdue(c *gin.Context) {
	updated, err := h.service.RefreshOverdue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"updated": updated})
}
