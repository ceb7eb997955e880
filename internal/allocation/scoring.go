package allocation

import (
	"math"

	"clinic-room-allocation/internal/models"
)

// Weekly pairing weights
const (
	MaintenanceScore      = -10000
	SpecialtyMatchBonus   = 100
	GroundFloorAdjustment = 50

	// AcceptanceThreshold is the lowest score (exclusive) a pairing needs to be committed
	AcceptanceThreshold = -1000
)

// Live placement weights
const (
	FillerBonus        = 10.0
	LiveSpecialtyBonus = 100.0
	SameFloorBonus     = 30.0
	DistancePenalty    = 0.5
)

// WeeklyScore rates how well a room fits a weekly demand
func WeeklyScore(demand *models.Demand, room *models.Room) int {
	if room.IsMaintenance {
		return MaintenanceScore
	}

	score := 0
	if Normalize(room.PreferredSpecialty) != "" && ContainsFold(room.PreferredSpecialty, demand.Specialty) {
		score += SpecialtyMatchBonus
	}

	if HasKeyword(demand.Specialty, OrthopedicsKeyword) {
		if IsGroundFloor(room.Floor) {
			score += GroundFloorAdjustment
		} else {
			score -= GroundFloorAdjustment
		}
	}

	return score
}

// LiveAffinity rates a room for an ad-hoc check-in of the given specialty.
// targetFloor and targetNumber come from ResolveFloorAffinity and may be empty/zero.
func LiveAffinity(room *models.Room, specialty, targetFloor string, targetNumber float64) float64 {
	score := 0.0

	if Normalize(room.PreferredSpecialty) == "" {
		score += FillerBonus
	}

	if MutuallyContains(room.PreferredSpecialty, specialty) {
		score += LiveSpecialtyBonus
	}

	if targetFloor != "" && SameFloor(room.Floor, targetFloor) {
		score += SameFloorBonus
		if targetNumber > 0 {
			if n := TrailingNumber(room.Name); n > 0 {
				score -= math.Abs(targetNumber-float64(n)) * DistancePenalty
			}
		}
	}

	return roundOneDecimal(score)
}
