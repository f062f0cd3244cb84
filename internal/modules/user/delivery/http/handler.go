package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rahulpatel51/hostel-management/internal/modules/user/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/user/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
	"github.com/rahulpatel51/hostel-management/pkg/validator"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// cookieMaxAge converts the token's absolute expiry into the remaining
// lifetime in seconds, which is what Max-Age expects.
func cookieMaxAge(expiresAt int64) int {
	remaining := time.Until(time.Unix(expiresAt, 0))
	if remaining <= 0 {
		return -1
	}
	return int(remaining.Seconds())
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Cookie mirrors the bearer token so browser dashboards stay logged in.
	c.SetCookie("token", res.AccessToken, cookieMaxAge(res.ExpiresAt), "/", "", false, true)
	response.OK(c, res)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	res, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie("token", res.AccessToken, cookieMaxAge(res.ExpiresAt), "/", "", false, true)
	response.Created(c, res)
}

// Logout clears the session cookie; the bearer token simply expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	response.Message(c, "logged out")
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID.String())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "avatar file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "failed to read avatar")
		return
	}

	user, err := h.service.UpdateAvatar(c.Request.Context(), userID.String(), &dto.AvatarFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID.String(), input); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "password updated")
}
