package models

import "time"

// PlanRun is the commit point of one allocation run. Assignments and
// conflicts belonging to older runs are removed in the same transaction
// that inserts a new run.
type PlanRun struct {
	ID            string    `gorm:"size:36;primaryKey" json:"id"`
	AssignedCount int       `json:"assigned_count"`
	ConflictCount int       `json:"conflict_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for PlanRun model
func (PlanRun) TableName() string {
	return "plan_runs"
}

// Assignment links a demand to a room for one weekday/shift
type Assignment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PlanID   string `gorm:"size:36;not null;index" json:"plan_id"`
	DemandID uint   `gorm:"not null;index" json:"demand_id"`
	RoomID   uint   `gorm:"not null;index" json:"room_id"`
	Weekday  string `gorm:"size:3;not null;index:idx_assignment_period" json:"weekday"`
	Shift    string `gorm:"size:10;not null;index:idx_assignment_period" json:"shift"`
	Score    int    `json:"score"`
}

// TableName specifies the table name for Assignment model
func (Assignment) TableName() string {
	return "assignments"
}

// Conflict is a demand that received no room in a run
type Conflict struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	PlanID           string `gorm:"size:36;not null;index" json:"plan_id"`
	DemandID         uint   `gorm:"not null" json:"demand_id"`
	ProfessionalName string `gorm:"size:255" json:"professional_name"`
	Specialty        string `gorm:"size:100" json:"specialty"`
	Weekday          string `gorm:"size:3" json:"weekday"`
	Shift            string `gorm:"size:10" json:"shift"`
	Reason           string `gorm:"size:255" json:"reason"`
}

// TableName specifies the table name for Conflict model
func (Conflict) TableName() string {
	return "conflicts"
}

// AssignmentDetail is an assignment denormalized with demand and room fields
type AssignmentDetail struct {
	AssignmentID     uint   `json:"assignment_id,omitempty"`
	DemandID         uint   `json:"demand_id"`
	ProfessionalName string `json:"professional_name"`
	Specialty        string `json:"specialty"`
	RoomID           uint   `json:"room_id"`
	RoomName         string `json:"room_name"`
	Block            string `json:"block"`
	Floor            string `json:"floor"`
	Weekday          string `json:"weekday"`
	Shift            string `json:"shift"`
	Score            int    `json:"score"`
}
