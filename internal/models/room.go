package models

import "time"

// Live status values for a room
const (
	RoomStatusFree     = "FREE"
	RoomStatusOccupied = "OCCUPIED"
)

// Origin of the last live-status transition
const (
	OriginProjected = "PROJECTED"
	OriginManual    = "MANUAL"
)

// Room represents a physical consulting room that can be scheduled
type Room struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Block              string    `gorm:"size:50" json:"block"`
	Floor              string    `gorm:"size:50" json:"floor"`
	PreferredSpecialty string    `gorm:"size:100" json:"preferred_specialty"`
	IsMaintenance      bool      `gorm:"default:false" json:"is_maintenance"`
	Status             string    `gorm:"size:20;default:'FREE'" json:"status"`
	Occupant           *string   `gorm:"size:255" json:"occupant"`
	EntryTime          *string   `gorm:"size:5" json:"entry_time"`
	StatusOrigin       string    `gorm:"size:20" json:"status_origin,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for Room model
func (Room) TableName() string {
	return "rooms"
}

// IsFree reports whether the room can take a new occupant right now
func (r *Room) IsFree() bool {
	return !r.IsMaintenance && r.Status != RoomStatusOccupied
}

// Occupy marks the room as occupied. Occupant, entry time and status always move together.
func (r *Room) Occupy(occupant, entryTime, origin string) {
	r.Status = RoomStatusOccupied
	r.Occupant = &occupant
	r.EntryTime = &entryTime
	r.StatusOrigin = origin
}

// Release clears the occupant and entry time and sets the room FREE
func (r *Room) Release(origin string) {
	r.Status = RoomStatusFree
	r.Occupant = nil
	r.EntryTime = nil
	r.StatusOrigin = origin
}

// Location returns the "Block X - floor" label used in reports
func (r *Room) Location() string {
	return LocationLabel(r.Block, r.Floor)
}

// LocationLabel formats a block and floor as "Block X - floor"
func LocationLabel(block, floor string) string {
	return "Block " + block + " - " + floor
}
