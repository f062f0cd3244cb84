package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/rahulpatel51/hostel-management/internal/middleware"
	"github.com/rahulpatel51/hostel-management/internal/modules/notice/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/notice/service"
	"github.com/rahulpatel51/hostel-management/pkg/response"
	"github.com/rahulpatel51/hostel-management/pkg/validator"
)

type NoticeHandler struct {
	service     service.NoticeService
	redisClient *redis.Client
	upgrader    websocket.Upgrader
}

func NewNoticeHandler(service service.NoticeService, redisClient *redis.Client) *NoticeHandler {
	return &NoticeHandler{
		service:     service,
		redisClient: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	var input dto.CreateNoticeInput
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

	notice, err := h.service.Create(c.Request.Context(), user, input, attachment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, notice)
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

func (h *NoticeHandler) ListNotices(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	notices, err := h.service.ListFor(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(notices), notices)
}

func (h *NoticeHandler) GetNotice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid notice id")
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	notice, err := h.service.GetByID(c.Request.Context(), id, user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, notice)
}

func (h *NoticeHandler) UpdateNotice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid notice id")
		return
	}

	var input dto.UpdateNoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	notice, err := h.service.Update(c.Request.Context(), id, user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, notice)
}

func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid notice id")
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, user); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "notice deleted")
}

// NoticeFeed upgrades the connection and streams freshly published notices
// over the viewer's audience channels until either side hangs up.
func (h *NoticeHandler) NoticeFeed(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	if h.redisClient == nil {
		log.Println("redis client is nil, live notice feed disabled")
		return
	}

	audiences := service.AudiencesFor(user.Role)
	channels := make([]string, 0, len(audiences))
	for _, audience := range audiences {
		channels = append(channels, service.ChannelFor(audience))
	}
	if len(channels) == 0 {
		// Admins subscribe to every audience.
		channels = []string{
			service.ChannelFor("all"),
			service.ChannelFor("students"),
			service.ChannelFor("wardens"),
		}
	}

	pubsub := h.redisClient.Subscribe(c.Request.Context(), channels...)
	defer pubsub.Close()

	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		log.Printf("failed to subscribe to redis channels: %v", err)
		return
	}

	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("failed to write message to websocket: %v", err)
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
