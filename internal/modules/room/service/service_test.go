package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/room/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/room/repository"
	"github.com/rahulpatel51/hostel-management/internal/modules/room/service"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

// fakeRoomRepository mirrors the real repository's occupancy contract in
// memory: conditional capacity checks, seat release on moves, and no partial
// state on rejected operations.
type fakeRoomRepository struct {
	rooms    map[uuid.UUID]*entity.Room
	students map[uuid.UUID]*entity.StudentProfile
	numbers  map[string]uuid.UUID
}

func newFakeRoomRepository() *fakeRoomRepository {
	return &fakeRoomRepository{
		rooms:    make(map[uuid.UUID]*entity.Room),
		students: make(map[uuid.UUID]*entity.StudentProfile),
		numbers:  make(map[string]uuid.UUID),
	}
}

func (f *fakeRoomRepository) addStudent() *entity.StudentProfile {
	s := &entity.StudentProfile{ID: uuid.New()}
	f.students[s.ID] = s
	return s
}

func (f *fakeRoomRepository) Create(_ context.Context, room *entity.Room) error {
	if _, dup := f.numbers[room.Number]; dup {
		return apperror.ErrConflict
	}
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	f.rooms[room.ID] = room
	f.numbers[room.Number] = room.ID
	return nil
}

func (f *fakeRoomRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	copied := *room
	return &copied, nil
}

func (f *fakeRoomRepository) FindAll(_ context.Context, block string) ([]*entity.Room, error) {
	var out []*entity.Room
	for _, r := range f.rooms {
		if block == "" || r.Block == block {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRoomRepository) FindByBlocks(_ context.Context, blocks []string) ([]*entity.Room, error) {
	var out []*entity.Room
	for _, r := range f.rooms {
		for _, b := range blocks {
			if r.Block == b {
				copied := *r
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (f *fakeRoomRepository) Update(_ context.Context, room *entity.Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return apperror.ErrNotFound
	}
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRoomRepository) Delete(_ context.Context, id uuid.UUID) error {
	room, ok := f.rooms[id]
	if !ok {
		return apperror.ErrNotFound
	}
	if room.OccupiedCount > 0 {
		return apperror.New(0, "room still has occupants", apperror.ErrBadRequest)
	}
	delete(f.numbers, room.Number)
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomRepository) Count(_ context.Context) (int64, error) {
	return int64(len(f.rooms)), nil
}

func (f *fakeRoomRepository) OccupancySummary(_ context.Context) (*repository.OccupancySummary, error) {
	summary := &repository.OccupancySummary{}
	for _, r := range f.rooms {
		summary.TotalRooms++
		summary.TotalCapacity += int64(r.Capacity)
		summary.TotalOccupied += int64(r.OccupiedCount)
	}
	return summary, nil
}

func (f *fakeRoomRepository) releaseSeat(roomID uuid.UUID) {
	if room, ok := f.rooms[roomID]; ok && room.OccupiedCount > 0 {
		room.OccupiedCount--
		if room.Status == entity.RoomFull {
			room.Status = entity.RoomAvailable
		}
	}
}

func (f *fakeRoomRepository) AssignStudent(_ context.Context, roomID, studentID uuid.UUID) error {
	student, ok := f.students[studentID]
	if !ok {
		return apperror.ErrNotFound
	}

	if student.RoomID != nil && *student.RoomID == roomID {
		return nil
	}

	room, ok := f.rooms[roomID]
	if !ok {
		return apperror.ErrNotFound
	}
	if room.OccupiedCount >= room.Capacity {
		return apperror.ErrCapacityExceeded
	}

	if student.RoomID != nil {
		f.releaseSeat(*student.RoomID)
	}

	room.OccupiedCount++
	if room.OccupiedCount >= room.Capacity {
		room.Status = entity.RoomFull
	}
	student.RoomID = &roomID
	return nil
}

func (f *fakeRoomRepository) RemoveStudent(_ context.Context, roomID, studentID uuid.UUID) error {
	if _, ok := f.rooms[roomID]; !ok {
		return apperror.ErrNotFound
	}
	student, ok := f.students[studentID]
	if !ok {
		return apperror.ErrNotFound
	}
	if student.RoomID == nil || *student.RoomID != roomID {
		return apperror.ErrNotAssigned
	}

	f.releaseSeat(roomID)
	student.RoomID = nil
	return nil
}

func (f *fakeRoomRepository) Resize(_ context.Context, roomID uuid.UUID, newCapacity int) error {
	room, ok := f.rooms[roomID]
	if !ok {
		return apperror.ErrNotFound
	}
	if room.OccupiedCount > newCapacity {
		return apperror.ErrCapacityBelowOccupancy
	}

	room.Capacity = newCapacity
	if room.OccupiedCount >= newCapacity {
		room.Status = entity.RoomFull
	} else if room.Status == entity.RoomFull {
		room.Status = entity.RoomAvailable
	}
	return nil
}

type fakeWardenUsers struct {
	userRepo.UserRepository
	wardens map[uuid.UUID]*entity.WardenProfile
}

func (f *fakeWardenUsers) FindWardenByUserID(_ context.Context, userID uuid.UUID) (*entity.WardenProfile, error) {
	warden, ok := f.wardens[userID]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return warden, nil
}

func createRoom(t *testing.T, svc service.RoomService, number string, capacity int) *entity.Room {
	t.Helper()
	room, err := svc.Create(context.Background(), dto.CreateRoomInput{
		Number:   number,
		Block:    "A",
		Floor:    1,
		Capacity: capacity,
	})
	require.NoError(t, err)
	return room
}

func TestCreateRoomDuplicateNumber(t *testing.T) {
	repo := newFakeRoomRepository()
	svc := service.NewRoomService(repo, nil)

	createRoom(t, svc, "A-101", 2)

	_, err := svc.Create(context.Background(), dto.CreateRoomInput{
		Number: "A-101", Block: "A", Floor: 1, Capacity: 2,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestAssignFillsRoomAndFlipsStatus(t *testing.T) {
	repo := newFakeRoomRepository()
	svc := service.NewRoomService(repo, nil)
	ctx := context.Background()

	room := createRoom(t, svc, "A-101", 2)
	s1 := repo.addStudent()
	s2 := repo.addStudent()

	got, err := svc.Assign(ctx, room.ID, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OccupiedCount)
	assert.Equal(t, entity.RoomAvailable, got.Status)

	got, err = svc.Assign(ctx, room.ID, s2.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.OccupiedCount)
	assert.Equal(t, entity.RoomFull, got.Status)
}

func TestAssignToFullRoomLeavesStateUntouched(t *testing.T) {
	repo := newFakeRoomRepository()
	svc := service.NewRoomService(repo, nil)
	ctx := context.Background()

	room := createRoom(t, svc, "A-101", 1)
	occupant := repo.addStudent()
	latecomer := repo.addStudent()

	_, err := svc.Assign(ctx, room.ID, occupant.ID)
	require.NoError(t, err)

	_, err = svc.Assign(ctx, room.ID, latecomer.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrCapacityExceeded))

	// The rejected assign changed nothing.
	after, err := svc.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.OccupiedCount)
	assert.Nil(t, repo.students[latecomer.ID].RoomID)
}

func TestAssignIsIdempotentForCurrentOccupant(t *testing.T) {
	repo := newFakeRoomRepository()
	svc := service.NewRoomService(repo, nil)
	ctx := context.Background()

	room := createRoom(t, svc, "A-101", 1)
	student := repo.addStudent()

	_, err := svc.Assign(ctx, room.ID, student.ID)
	require.NoError(t, err)

	// Re-assigning the same student to the same room is a no-op, even
	// though the room is now full.
	got, err := svc.Assign(ctx, room.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OccupiedCount)
}

func TestAssignMovesStudentBetweenRooms(t *testing.T) {
	repo := newFakeRoomRepository()
	svc := service.NewRoomService(repo, nil)
	ctx := context.Background()

	first := createRoom(t, svc, "A-101", 1)
	second := createRoom(t, svc, "A-102", 1)
	student := repo.addStudent()

	_, err := svc.Assign(ctx, first.ID, student.ID)
	require.NoError(t, err)

	got, err := svc.Assign(ctx, second.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OccupiedCount)

	// The old seat was released and the full flag cleared.
	old, err := svc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, old.OccupiedCount)
	assert.Equal(t, entity.RoomAvailable, old.Status)
}

func TestRemoveStudentNotInRoom(t *testing.T) {
	repo := newFakeRoomRepository()
	svc := service.NewRoomService(repo, nil)
	ctx := context.Background()

	room := createRoom(t, svc, "A-101", 2)
	other := createRoom(t, svc, "A-102", 2)
	student := repo.addStudent()

	_, err := svc.Assign(ctx, other.ID, student.ID)
	require.NoError(t, err)

	_, err = svc.Remove(ctx, room.ID, student.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotAssigned))

	// Their real seat is untouched.
	assert.Equal(t, other.ID, *repo.students[student.ID].RoomID)
}

func TestResizeBelowOccupancyRejected(t *testing.T) {
	repo := newFakeRoomRepository()
	svc := service.NewRoomService(repo, nil)
	ctx := context.Background()

	room := createRoom(t, svc, "A-101", 3)
	for i := 0; i < 2; i++ {
		_, err := svc.Assign(ctx, room.ID, repo.addStudent().ID)
		require.NoError(t, err)
	}

	_, err := svc.Resize(ctx, room.ID, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrCapacityBelowOccupancy))

	after, err := svc.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Capacity)
}

func TestResizeDownToOccupancyMarksFull(t *testing.T) {
	repo := newFakeRoomRepository()
	svc := service.NewRoomService(repo, nil)
	ctx := context.Background()

	room := createRoom(t, svc, "A-101", 4)
	for i := 0; i < 2; i++ {
		_, err := svc.Assign(ctx, room.ID, repo.addStudent().ID)
		require.NoError(t, err)
	}

	got, err := svc.Resize(ctx, room.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Capacity)
	assert.Equal(t, entity.RoomFull, got.Status)

	_, err = svc.Resize(ctx, room.ID, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestUpdateCannotForceFullStatus(t *testing.T) {
	repo := newFakeRoomRepository()
	svc := service.NewRoomService(repo, nil)
	ctx := context.Background()

	room := createRoom(t, svc, "A-101", 2)

	full := string(entity.RoomFull)
	_, err := svc.Update(ctx, room.ID, dto.UpdateRoomInput{Status: &full})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))

	maintenance := string(entity.RoomMaintenance)
	got, err := svc.Update(ctx, room.ID, dto.UpdateRoomInput{Status: &maintenance})
	require.NoError(t, err)
	assert.Equal(t, entity.RoomMaintenance, got.Status)
}

func TestGetForWardenListsOnlyAssignedBlocks(t *testing.T) {
	repo := newFakeRoomRepository()
	wardenUserID := uuid.New()
	users := &fakeWardenUsers{wardens: map[uuid.UUID]*entity.WardenProfile{
		wardenUserID: {ID: uuid.New(), UserID: wardenUserID, AssignedBlocks: pq.StringArray{"A"}},
	}}
	svc := service.NewRoomService(repo, users)
	ctx := context.Background()

	createRoom(t, svc, "A-101", 2)
	_, err := svc.Create(ctx, dto.CreateRoomInput{Number: "B-201", Block: "B", Floor: 2, Capacity: 2})
	require.NoError(t, err)

	rooms, err := svc.GetForWarden(ctx, wardenUserID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "A", rooms[0].Block)

	_, err = svc.GetForWarden(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteOccupiedRoomRefused(t *testing.T) {
	repo := newFakeRoomRepository()
	svc := service.NewRoomService(repo, nil)
	ctx := context.Background()

	room := createRoom(t, svc, "A-101", 2)
	_, err := svc.Assign(ctx, room.ID, repo.addStudent().ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, room.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))
}
