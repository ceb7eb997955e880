package allocation

import "clinic-room-allocation/internal/models"

// ConflictReason is recorded for every demand left without a room
const ConflictReason = "no available or compatible room"

// Plan is the result of one weekly allocation run
type Plan struct {
	Assignments []models.Assignment
	Details     []models.AssignmentDetail
	Conflicts   []models.Conflict
}

type periodKey struct {
	weekday string
	shift   string
}

// BuildPlan runs the greedy weekly allocation.
//
// Demands are served in the given order. For each demand every room not yet
// taken in the same weekday/shift is scored with WeeklyScore and the best one
// wins; on equal scores the room seen first is kept. A room is never handed to
// two demands of the same weekday/shift. Demands without an acceptable room
// become conflicts.
func BuildPlan(demands []models.Demand, rooms []models.Room) Plan {
	candidates := make([]*models.Room, 0, len(rooms))
	for i := range rooms {
		if !rooms[i].IsMaintenance {
			candidates = append(candidates, &rooms[i])
		}
	}

	taken := make(map[periodKey]map[uint]bool)
	plan := Plan{
		Assignments: make([]models.Assignment, 0, len(demands)),
		Details:     make([]models.AssignmentDetail, 0, len(demands)),
		Conflicts:   []models.Conflict{},
	}

	for i := range demands {
		demand := &demands[i]
		key := periodKey{weekday: demand.Weekday, shift: demand.Shift}
		used := taken[key]

		var best *models.Room
		bestScore := AcceptanceThreshold - 1
		for _, room := range candidates {
			if used[room.ID] {
				continue
			}
			score := WeeklyScore(demand, room)
			if best == nil || score > bestScore {
				best = room
				bestScore = score
			}
		}

		if best == nil || bestScore <= AcceptanceThreshold {
			plan.Conflicts = append(plan.Conflicts, models.Conflict{
				DemandID:         demand.ID,
				ProfessionalName: demand.ProfessionalName,
				Specialty:        demand.Specialty,
				Weekday:          demand.Weekday,
				Shift:            demand.Shift,
				Reason:           ConflictReason,
			})
			continue
		}

		if used == nil {
			used = make(map[uint]bool)
			taken[key] = used
		}
		used[best.ID] = true

		plan.Assignments = append(plan.Assignments, models.Assignment{
			DemandID: demand.ID,
			RoomID:   best.ID,
			Weekday:  demand.Weekday,
			Shift:    demand.Shift,
			Score:    bestScore,
		})
		plan.Details = append(plan.Details, Detail(demand, best, bestScore))
	}

	return plan
}

// Detail builds the denormalized view of one assignment
func Detail(demand *models.Demand, room *models.Room, score int) models.AssignmentDetail {
	return models.AssignmentDetail{
		DemandID:         demand.ID,
		ProfessionalName: demand.ProfessionalName,
		Specialty:        demand.Specialty,
		RoomID:           room.ID,
		RoomName:         room.Name,
		Block:            room.Block,
		Floor:            room.Floor,
		Weekday:          demand.Weekday,
		Shift:            demand.Shift,
		Score:            score,
	}
}
