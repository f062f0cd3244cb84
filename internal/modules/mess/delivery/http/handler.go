package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/middleware"
	"github.com/rahulpatel51/hostel-management/internal/modules/mess/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/mess/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
	"github.com/rahulpatel51/hostel-management/pkg/validator"
)

type MessHandler struct {
	service service.MessService
}

func NewMessHandler(service service.MessService) *MessHandler {
	return &MessHandler{service: service}
}

func (h *MessHandler) SetMenu(c *gin.Context) {
	var input dto.SetMenuInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	menu, err := h.service.SetMenu(c.Request.Context(), user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, menu)
}

func (h *MessHandler) GetMenu(c *gin.Context) {
	var filter dto.MenuFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	menus, err := h.service.GetMenu(c.Request.Context(), filter.Day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(menus), menus)
}

func (h *MessHandler) DeleteMenu(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid menu id")
		return
	}

	if err := h.service.DeleteMenu(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "menu entry deleted")
}
