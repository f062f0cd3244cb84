package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/notice/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/notice/repository"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
	"github.com/rahulpatel51/hostel-management/pkg/storage"
)

type NoticeService interface {
	Create(ctx context.Context, author *entity.User, input dto.CreateNoticeInput, attachment *dto.AttachmentFile) (*entity.Notice, error)
	GetByID(ctx context.Context, id uuid.UUID, viewer *entity.User) (*entity.Notice, error)
	ListFor(ctx context.Context, viewer *entity.User) ([]*entity.Notice, error)
	Update(ctx context.Context, id uuid.UUID, actor *entity.User, input dto.UpdateNoticeInput) (*entity.Notice, error)
	Delete(ctx context.Context, id uuid.UUID, actor *entity.User) error
}

type noticeService struct {
	repo         repository.NoticeRepository
	redisClient  *redis.Client
	imageStorage storage.ImageStorage
}

func NewNoticeService(repo repository.NoticeRepository, redisClient *redis.Client, imageStorage storage.ImageStorage) NoticeService {
	return &noticeService{repo: repo, redisClient: redisClient, imageStorage: imageStorage}
}

// ChannelFor returns the pub/sub channel a notice audience is broadcast on.
func ChannelFor(audience entity.NoticeAudience) string {
	return fmt.Sprintf("notices:%s", audience)
}

// AudiencesFor lists the audiences visible to a role. Admins see everything.
func AudiencesFor(role entity.Role) []entity.NoticeAudience {
	switch role {
	case entity.RoleStudent:
		return []entity.NoticeAudience{entity.NoticeAll, entity.NoticeStudents}
	case entity.RoleWarden:
		return []entity.NoticeAudience{entity.NoticeAll, entity.NoticeWardens}
	default:
		return nil
	}
}

func (s *noticeService) Create(ctx context.Context, author *entity.User, input dto.CreateNoticeInput, attachment *dto.AttachmentFile) (*entity.Notice, error) {
	notice := &entity.Notice{
		Title:       input.Title,
		Body:        input.Body,
		Audience:    entity.NoticeAudience(input.Audience),
		Important:   input.Important,
		AuthorID:    author.ID,
		PublishedAt: time.Now(),
	}

	if attachment != nil {
		url, err := s.imageStorage.UploadImage(ctx, attachment.Reader, "hostel/notices", attachment.FileName)
		if err != nil {
			return nil, err
		}
		notice.AttachmentURL = &url
	}

	if err := s.repo.Create(ctx, notice); err != nil {
		return nil, err
	}

	// Push to live subscribers when Redis is available; a publish failure
	// never rolls back the persisted notice.
	if s.redisClient != nil {
		if payload, err := json.Marshal(notice); err == nil {
			s.redisClient.Publish(ctx, ChannelFor(notice.Audience), payload)
		}
	}

	return s.repo.FindByID(ctx, notice.ID)
}

func (s *noticeService) GetByID(ctx context.Context, id uuid.UUID, viewer *entity.User) (*entity.Notice, error) {
	notice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visibleTo(notice, viewer.Role) {
		return nil, apperror.New(0, "notice is not addressed to you", apperror.ErrForbidden)
	}
	return notice, nil
}

func (s *noticeService) ListFor(ctx context.Context, viewer *entity.User) ([]*entity.Notice, error) {
	return s.repo.FindForAudience(ctx, AudiencesFor(viewer.Role))
}

func (s *noticeService) Update(ctx context.Context, id uuid.UUID, actor *entity.User, input dto.UpdateNoticeInput) (*entity.Notice, error) {
	notice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Wardens may only edit notices they published; admins may edit any.
	if actor.Role != entity.RoleAdmin && notice.AuthorID != actor.ID {
		return nil, apperror.New(0, "you can only edit your own notices", apperror.ErrForbidden)
	}

	if input.Title != nil {
		notice.Title = *input.Title
	}
	if input.Body != nil {
		notice.Body = *input.Body
	}
	if input.Audience != nil {
		notice.Audience = entity.NoticeAudience(*input.Audience)
	}
	if input.Important != nil {
		notice.Important = *input.Important
	}

	if err := s.repo.Update(ctx, notice); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *noticeService) Delete(ctx context.Context, id uuid.UUID, actor *entity.User) error {
	notice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != entity.RoleAdmin && notice.AuthorID != actor.ID {
		return apperror.New(0, "you can only delete your own notices", apperror.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

func visibleTo(notice *entity.Notice, role entity.Role) bool {
	if role == entity.RoleAdmin {
		return true
	}
	for _, audience := range AudiencesFor(role) {
		if notice.Audience == audience {
			return true
		}
	}
	return false
}
