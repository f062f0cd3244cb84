package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/modules/admin/dto"
	adminService "github.com/rahulpatel51/hostel-management/internal/modules/admin/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
	"github.com/rahulpatel51/hostel-management/pkg/validator"
)

type AdminHandler struct {
	adminService adminService.AdminService
}

func NewAdminHandler(adminService adminService.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// avatarFromForm extracts an optional multipart avatar field.
func avatarFromForm(c *gin.Context) (*dto.AvatarFile, error) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil || fileHeader == nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}

	return &dto.AvatarFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	}, nil
}

func (h *AdminHandler) CreateStudent(c *gin.Context) {
	var input dto.CreateStudentInput
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	avatar, err := avatarFromForm(c)
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "failed to read avatar upload")
		return
	}

	profile, err := h.adminService.CreateStudent(c.Request.Context(), input, avatar)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, profile)
}

func (h *AdminHandler) GetAllStudents(c *gin.Context) {
	profiles, err := h.adminService.GetAllStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(profiles), profiles)
}

// ListBlockStudents is the warden-facing roster: students housed in the
// caller's assigned blocks.
func (h *AdminHandler) ListBlockStudents(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profiles, err := h.adminService.GetStudentsForWarden(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(profiles), profiles)
}

func (h *AdminHandler) GetStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid student id")
		return
	}

	profile, err := h.adminService.GetStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, profile)
}

func (h *AdminHandler) UpdateStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid student id")
		return
	}

	var input dto.UpdateStudentInput
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	avatar, err := avatarFromForm(c)
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "failed to read avatar upload")
		return
	}

	profile, err := h.adminService.UpdateStudent(c.Request.Context(), id, input, avatar)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, profile)
}

func (h *AdminHandler) DeleteStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid student id")
		return
	}

	if err := h.adminService.DeleteStudent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "student deleted successfully")
}

func (h *AdminHandler) CreateWarden(c *gin.Context) {
	var input dto.CreateWardenInput
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	avatar, err := avatarFromForm(c)
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "failed to read avatar upload")
		return
	}

	profile, err := h.adminService.CreateWarden(c.Request.Context(), input, avatar)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, profile)
}

func (h *AdminHandler) GetAllWardens(c *gin.Context) {
	profiles, err := h.adminService.GetAllWardens(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(profiles), profiles)
}

func (h *AdminHandler) GetWarden(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid warden id")
		return
	}

	profile, err := h.adminService.GetWarden(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, profile)
}

func (h *AdminHandler) UpdateWarden(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid warden id")
		return
	}

	var input dto.UpdateWardenInput
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	avatar, err := avatarFromForm(c)
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "failed to read avatar upload")
		return
	}

	profile, err := h.adminService.UpdateWarden(c.Request.Context(), id, input, avatar)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, profile)
}

func (h *AdminHandler) DeleteWarden(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid warden id")
		return
	}

	if err := h.adminService.DeleteWarden(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "warden deleted successfully")
}

func (h *AdminHandler) ActivateUser(c *gin.Context) {
	if err := h.adminService.SetUserActive(c.Request.Context(), c.Param("id"), true); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "user activated")
}

func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	if err := h.adminService.SetUserActive(c.Request.Context(), c.Param("id"), false); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "user deactivated")
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
	var input dto.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	if err := h.adminService.ResetPassword(c.Request.Context(), c.Param("id"), input.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "password reset")
}
