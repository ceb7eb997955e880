package models

import "time"

// Weekday labels. Planning only uses Monday to Friday; the weekend labels
// exist so the current period can always be named.
const (
	Monday    = "MON"
	Tuesday   = "TUE"
	Wednesday = "WED"
	Thursday  = "THU"
	Friday    = "FRI"
	Saturday  = "SAT"
	Sunday    = "SUN"
)

// Shift labels. Night is never planned.
const (
	ShiftMorning   = "MORNING"
	ShiftAfternoon = "AFTERNOON"
	ShiftNight     = "NIGHT"
)

// Resource types and origins of a demand
const (
	ResourceOrdinary = "ORDINARY"
	ResourceExtra    = "EXTRA"

	DemandOriginImported = "IMPORTED"
	DemandOriginManual   = "MANUAL"
)

// CalendarWeekdays is indexed with Monday as 0
var CalendarWeekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// PlanningWeekdays are the weekdays a demand may request
var PlanningWeekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday}

// PlanningShifts are the shifts a demand may request
var PlanningShifts = []string{ShiftMorning, ShiftAfternoon}

// Demand is one weekly requirement: a professional needs a room on a weekday/shift
type Demand struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProfessionalName string    `gorm:"size:255;not null" json:"professional_name"`
	Specialty        string    `gorm:"size:100;index" json:"specialty"`
	Weekday          string    `gorm:"size:3;not null;index:idx_demand_period" json:"weekday"`
	Shift            string    `gorm:"size:10;not null;index:idx_demand_period" json:"shift"`
	ResourceType     string    `gorm:"size:20;default:'ORDINARY'" json:"resource_type"`
	Origin           string    `gorm:"size:20;default:'IMPORTED'" json:"origin"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName specifies the table name for Demand model
func (Demand) TableName() string {
	return "demands"
}

// IsPlanningWeekday reports whether the label is one of the plannable weekdays
func IsPlanningWeekday(day string) bool {
	for _, d := range PlanningWeekdays {
		if d == day {
			return true
		}
	}
	return false
}

// IsPlanningShift reports whether the label is one of the plannable shifts
func IsPlanningShift(shift string) bool {
	return shift == ShiftMorning || shift == ShiftAfternoon
}
