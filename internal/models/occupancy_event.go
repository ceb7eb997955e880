package models

import "time"

// Occupancy event actions
const (
	ActionCheckIn   = "CHECK_IN"
	ActionCheckOut  = "CHECK_OUT"
	ActionProjected = "PROJECTED"
)

// OccupancyEvent represents the occupancy_events table
// Every live-status transition is recorded with its origin
type OccupancyEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"not null;index" json:"room_id"`
	Action    string    `gorm:"size:20;not null" json:"action"`
	Origin    string    `gorm:"size:20;not null" json:"origin"`
	Occupant  string    `gorm:"size:255" json:"occupant,omitempty"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for OccupancyEvent model
func (OccupancyEvent) TableName() string {
	return "occupancy_events"
}
