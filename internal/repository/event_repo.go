package repository

import (
	"context"

	"clinic-room-allocation/internal/models"

	"gorm.io/gorm"
)

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

// Create stores one or more occupancy events
func (r *eventRepo) Create(ctx context.Context, events ...models.OccupancyEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&events).Error
}

// ListByRoom returns the latest events of a room, newest first
func (r *eventRepo) ListByRoom(ctx context.Context, roomID uint, limit int) ([]models.OccupancyEvent, error) {
	var events []models.OccupancyEvent
	q := r.db.WithContext(ctx).Where("room_id = ?", roomID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&events).Error
	return events, err
}
