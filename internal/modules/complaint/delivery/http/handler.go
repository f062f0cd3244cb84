package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/middleware"
	"github.com/rahulpatel51/hostel-management/internal/modules/complaint/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/complaint/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
	"github.com/rahulpatel51/hostel-management/pkg/validator"
)

type ComplaintHandler struct {
	service service.ComplaintService
}

func NewComplaintHandler(service service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CreateComplaintInput
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

	complaint, err := h.service.Create(c.Request.Context(), userID, input, attachment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, complaint)
}

// ListMyComplaints returns the calling student's own complaints.
func (h *ComplaintHandler) ListMyComplaints(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	complaints, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(complaints), complaints)
}

// ListComplaints serves wardens (scoped to their blocks) and admins (all).
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	var filter dto.ComplaintFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var complaints []*entity.Complaint
	var err error
	if user.Role == entity.RoleWarden {
		complaints, err = h.service.ListForWarden(c.Request.Context(), user.ID, filter.Status)
	} else {
		complaints, err = h.service.ListAll(c.Request.Context(), filter.Status)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(complaints), complaints)
}

func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid complaint id")
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	complaint, err := h.service.GetByID(c.Request.Context(), id, user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, complaint)
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid complaint id")
		return
	}

	var input dto.UpdateComplaintStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	complaint, err := h.service.UpdateStatus(c.Request.Context(), id, user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, complaint)
}

func (h *ComplaintHandler) AddComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid complaint id")
		return
	}

	var input dto.AddCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	complaint, err := h.service.AddComment(c.Request.Context(), id, userID, input.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, complaint)
}

func (h *ComplaintHandler) CancelComplaint(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid complaint id")
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	complaint, err := h.service.CancelOwn(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, complaint)
}
