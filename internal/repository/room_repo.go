package repository

import (
	"context"
	"errors"

	"clinic-room-allocation/internal/models"

	"gorm.io/gorm"
)

type roomRepo struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

// List retrieves every room ordered by id
func (r *roomRepo) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rooms).Error
	return rooms, err
}

// GetByID retrieves a room by ID
func (r *roomRepo) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) UpdateLiveState(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", room.ID).
		Updates(liveStateColumns(room)).Error
}

func (r *roomRepo) ApplyProjection(ctx context.Context, occupied []ProjectedOccupancy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reset := map[string]interface{}{
			"status":        models.RoomStatusFree,
			"occupant":      nil,
			"entry_time":    nil,
			"status_origin": models.OriginProjected,
		}
		if err := tx.Model(&models.Room{}).Where("is_maintenance = ?", false).Updates(reset).Error; err != nil {
			return err
		}

		for _, o := range occupied {
			updates := map[string]interface{}{
				"status":        models.RoomStatusOccupied,
				"occupant":      o.Occupant,
				"entry_time":    o.EntryTime,
				"status_origin": models.OriginProjected,
			}
			if err := tx.Model(&models.Room{}).
				Where("id = ? AND is_maintenance = ?", o.RoomID, false).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *roomRepo) UpsertByName(ctx context.Context, rooms []models.Room) (int, int, error) {
	created, updated := 0, 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rooms {
			incoming := rooms[i]

			var existing models.Room
			err := tx.Where("name = ?", incoming.Name).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				incoming.Release("")
				if err := tx.Create(&incoming).Error; err != nil {
					return err
				}
				created++
				continue
			}
			if err != nil {
				return err
			}

			updates := map[string]interface{}{
				"block":               incoming.Block,
				"floor":               incoming.Floor,
				"preferred_specialty": incoming.PreferredSpecialty,
				"is_maintenance":      incoming.IsMaintenance,
			}
			// a room going into maintenance cannot keep an occupant
			if incoming.IsMaintenance {
				updates["status"] = models.RoomStatusFree
				updates["occupant"] = nil
				updates["entry_time"] = nil
			}
			if err := tx.Model(&models.Room{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

func liveStateColumns(room *models.Room) map[string]interface{} {
	return map[string]interface{}{
		"status":        room.Status,
		"occupant":      room.Occupant,
		"entry_time":    room.EntryTime,
		"status_origin": room.StatusOrigin,
	}
}
