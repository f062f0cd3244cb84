package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rahulpatel51/hostel-management/internal/modules/stat/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
)

type StatHandler struct {
	service service.StatService
}

func NewStatHandler(service service.StatService) *StatHandler {
	return &StatHandler{service: service}
}

func (h *StatHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dashboard)
}
