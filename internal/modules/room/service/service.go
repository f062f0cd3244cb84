package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/room/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/room/repository"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

// RoomService keeps a Room's occupant list and occupied counter consistent
// with the students' room back-references. All occupancy mutations delegate
// to the repository's transactional primitives.
type RoomService interface {
	Create(ctx context.Context, input dto.CreateRoomInput) (*entity.Room, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	GetAll(ctx context.Context, block string) ([]*entity.Room, error)
	GetForWarden(ctx context.Context, wardenUserID uuid.UUID) ([]*entity.Room, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateRoomInput) (*entity.Room, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Assign(ctx context.Context, roomID, studentID uuid.UUID) (*entity.Room, error)
	Remove(ctx context.Context, roomID, studentID uuid.UUID) (*entity.Room, error)
	Resize(ctx context.Context, roomID uuid.UUID, newCapacity int) (*entity.Room, error)
}

type roomService struct {
	repo  repository.RoomRepository
	users userRepo.UserRepository
}

func NewRoomService(repo repository.RoomRepository, users userRepo.UserRepository) RoomService {
	return &roomService{repo: repo, users: users}
}

func (s *roomService) Create(ctx context.Context, input dto.CreateRoomInput) (*entity.Room, error) {
	room := &entity.Room{
		Number:   input.Number,
		Block:    input.Block,
		Floor:    input.Floor,
		Capacity: input.Capacity,
		Status:   entity.RoomAvailable,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.New(0, "a room with this number already exists", apperror.ErrConflict)
		}
		return nil, err
	}

	return room, nil
}

func (s *roomService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *roomService) GetAll(ctx context.Context, block string) ([]*entity.Room, error) {
	return s.repo.FindAll(ctx, block)
}

// GetForWarden lists only the rooms in the caller's assigned blocks.
func (s *roomService) GetForWarden(ctx context.Context, wardenUserID uuid.UUID) ([]*entity.Room, error) {
	warden, err := s.users.FindWardenByUserID(ctx, wardenUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByBlocks(ctx, warden.AssignedBlocks)
}

func (s *roomService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateRoomInput) (*entity.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Block != nil {
		room.Block = *input.Block
	}
	if input.Floor != nil {
		room.Floor = *input.Floor
	}
	if input.Status != nil {
		// "full" is derived from occupancy; only maintenance/available may be forced.
		status := entity.RoomStatus(*input.Status)
		if status == entity.RoomFull && room.OccupiedCount < room.Capacity {
			return nil, apperror.New(0, "room status full is derived from occupancy", apperror.ErrBadRequest)
		}
		room.Status = status
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

func (s *roomService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *roomService) Assign(ctx context.Context, roomID, studentID uuid.UUID) (*entity.Room, error) {
	if err := s.repo.AssignStudent(ctx, roomID, studentID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, roomID)
}

func (s *roomService) Remove(ctx context.Context, roomID, studentID uuid.UUID) (*entity.Room, error) {
	if err := s.repo.RemoveStudent(ctx, roomID, studentID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, roomID)
}

func (s *roomService) Resize(ctx context.Context, roomID uuid.UUID, newCapacity int) (*entity.Room, error) {
	if newCapacity <= 0 {
		return nil, apperror.New(0, "capacity must be greater than zero", apperror.ErrInvalidInput)
	}

	if err := s.repo.Resize(ctx, roomID, newCapacity); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, roomID)
}
