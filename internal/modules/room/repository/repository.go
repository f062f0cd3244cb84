package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

// RoomRepository owns all writes that touch occupancy bookkeeping. Every
// multi-row sequence (assign, remove, delete) runs inside one database
// transaction, and the occupied counter is only ever changed through
// conditional single-statement updates, so two concurrent assigns can never
// both squeeze past the capacity check.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindAll(ctx context.Context, block string) ([]*entity.Room, error)
	FindByBlocks(ctx context.Context, blocks []string) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	OccupancySummary(ctx context.Context) (*OccupancySummary, error)

	AssignStudent(ctx context.Context, roomID, studentID uuid.UUID) error
	RemoveStudent(ctx context.Context, roomID, studentID uuid.UUID) error
	Resize(ctx context.Context, roomID uuid.UUID, newCapacity int) error
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrConflict
	}
	return err
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	return translate(r.db.WithContext(ctx).Create(room).Error)
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	var room entity.Room
	if err := r.db.WithContext(ctx).
		Preload("Occupants").
		First(&room, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *roomRepository) FindAll(ctx context.Context, block string) ([]*entity.Room, error) {
	var rooms []*entity.Room
	query := r.db.WithContext(ctx).Preload("Occupants")

	if block != "" {
		query = query.Where("block = ?", block)
	}

	if err := query.Order("block, number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) FindByBlocks(ctx context.Context, blocks []string) ([]*entity.Room, error) {
	var rooms []*entity.Room
	if err := r.db.WithContext(ctx).
		Preload("Occupants").
		Where("block IN ?", blocks).
		Order("block, number").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	return translate(r.db.WithContext(ctx).Save(room).Error)
}

// Delete refuses to drop a room that still houses students.
func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room entity.Room
		if err := tx.First(&room, "id = ?", id).Error; err != nil {
			return err
		}

		if room.OccupiedCount > 0 {
			return apperror.New(0, "room still has occupants", apperror.ErrBadRequest)
		}

		return tx.Delete(&entity.Room{}, "id = ?", id).Error
	}))
}

func (r *roomRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Room{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// OccupancySummary aggregates the whole hostel in one query.
type OccupancySummary struct {
	TotalRooms       int64 `json:"total_rooms"`
	TotalCapacity    int64 `json:"total_capacity"`
	TotalOccupied    int64 `json:"total_occupied"`
	AvailableRooms   int64 `json:"available_rooms"`
	FullRooms        int64 `json:"full_rooms"`
	MaintenanceRooms int64 `json:"maintenance_rooms"`
}

func (r *roomRepository) OccupancySummary(ctx context.Context) (*OccupancySummary, error) {
	var summary OccupancySummary
	err := r.db.WithContext(ctx).Model(&entity.Room{}).
		Select(`COUNT(*) AS total_rooms,
			COALESCE(SUM(capacity), 0) AS total_capacity,
			COALESCE(SUM(occupied_count), 0) AS total_occupied,
			COUNT(*) FILTER (WHERE status = 'available') AS available_rooms,
			COUNT(*) FILTER (WHERE status = 'full') AS full_rooms,
			COUNT(*) FILTER (WHERE status = 'maintenance') AS maintenance_rooms`).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// AssignStudent moves a student into a room, releasing any previous seat,
// as one transaction. Assigning a student who already occupies the target
// room is a no-op. The capacity check and the counter increment are one
// conditional UPDATE: zero rows affected means the room was full (or gone)
// and the whole transaction rolls back untouched.
func (r *roomRepository) AssignStudent(ctx context.Context, roomID, studentID uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student entity.StudentProfile
		if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
			return err
		}

		if student.RoomID != nil && *student.RoomID == roomID {
			return nil
		}

		if student.RoomID != nil {
			if err := releaseSeat(tx, *student.RoomID); err != nil {
				return err
			}
		}

		res := tx.Model(&entity.Room{}).
			Where("id = ? AND occupied_count < capacity", roomID).
			UpdateColumns(map[string]interface{}{
				"occupied_count": gorm.Expr("occupied_count + 1"),
				"status":         gorm.Expr("CASE WHEN occupied_count + 1 >= capacity THEN 'full' ELSE status END"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var room entity.Room
			if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
				return err
			}
			return apperror.ErrCapacityExceeded
		}

		return tx.Model(&entity.StudentProfile{}).
			Where("id = ?", studentID).
			Update("room_id", roomID).Error
	}))
}

// RemoveStudent clears a student's seat. The student must actually occupy
// the given room.
func (r *roomRepository) RemoveStudent(ctx context.Context, roomID, studentID uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room entity.Room
		if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
			return err
		}

		var student entity.StudentProfile
		if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
			return err
		}

		if student.RoomID == nil || *student.RoomID != roomID {
			return apperror.ErrNotAssigned
		}

		if err := releaseSeat(tx, roomID); err != nil {
			return err
		}

		return tx.Model(&entity.StudentProfile{}).
			Where("id = ?", studentID).
			Update("room_id", nil).Error
	}))
}

// Resize changes capacity only, guarded so it can never drop below the
// current occupancy.
func (r *roomRepository) Resize(ctx context.Context, roomID uuid.UUID, newCapacity int) error {
	res := r.db.WithContext(ctx).Model(&entity.Room{}).
		Where("id = ? AND occupied_count <= ?", roomID, newCapacity).
		UpdateColumns(map[string]interface{}{
			"capacity": newCapacity,
			"status": gorm.Expr(
				"CASE WHEN occupied_count >= ? THEN 'full' WHEN status = 'full' THEN 'available' ELSE status END",
				newCapacity),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var room entity.Room
		if err := r.db.WithContext(ctx).First(&room, "id = ?", roomID).Error; err != nil {
			return translate(err)
		}
		return apperror.ErrCapacityBelowOccupancy
	}
	return nil
}

func releaseSeat(tx *gorm.DB, roomID uuid.UUID) error {
	return tx.Model(&entity.Room{}).
		Where("id = ? AND occupied_count > 0", roomID).
		UpdateColumns(map[string]interface{}{
			"occupied_count": gorm.Expr("occupied_count - 1"),
			"status":         gorm.Expr("CASE WHEN status = 'full' THEN 'available' ELSE status END"),
		}).Error
}
