package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/middleware"
	"github.com/rahulpatel51/hostel-management/internal/modules/discipline/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/discipline/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
	"github.com/rahulpatel51/hostel-management/pkg/validator"
)

type DisciplineHandler struct {
	service service.DisciplineService
}

func NewDisciplineHandler(service service.DisciplineService) *DisciplineHandler {
	return &DisciplineHandler{service: service}
}

func (h *DisciplineHandler) CreateDiscipline(c *gin.Context) {
	var input dto.CreateDisciplineInput
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	attachment, err := attachmentFromForm(c)
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "failed to read attachment")
		return
	}

	record, err := h.service.Create(c.Request.Context(), user, input, attachment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, record)
}

func attachmentFromForm(c *gin.Context) (*dto.AttachmentFile, error) {
	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		// Attachment is optional.
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}

	return &dto.AttachmentFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	}, nil
}

func (h *DisciplineHandler) ListMyDisciplines(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(records), records)
}

func (h *DisciplineHandler) ListDisciplines(c *gin.Context) {
	var filter dto.DisciplineFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var (
		records []*entity.Discipline
		err     error
	)
	if user.Role == entity.RoleWarden {
		records, err = h.service.ListForWarden(c.Request.Context(), user.ID, filter.Status)
	} else {
		records, err = h.service.ListAll(c.Request.Context(), filter.Status)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(records), records)
}

func (h *DisciplineHandler) GetDiscipline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid discipline id")
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), id, user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, record)
}

func (h *DisciplineHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid discipline id")
		return
	}

	var input dto.UpdateDisciplineStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	record, err := h.service.UpdateStatus(c.Request.Context(), id, user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, record)
}

func (h *DisciplineHandler) AddComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid discipline id")
		return
	}

	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	record, err := h.service.AddComment(c.Request.Context(), id, user, input.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, record)
}
