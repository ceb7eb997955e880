package allocation

import "clinic-room-allocation/internal/models"

// LivePlacement is the room picked for an assisted check-in
type LivePlacement struct {
	Room     *models.Room
	Score    float64
	Affinity FloorAffinity
	// Fallback is set when no free room scored above zero and the first
	// free room was taken instead.
	Fallback bool
}

// ChooseLiveRoom picks the best free room for an ad-hoc check-in. rooms is
// the whole inventory: it is used both to resolve the floor affinity of the
// specialty and as the candidate list. It reports false only when no room is
// free.
func ChooseLiveRoom(rooms []models.Room, specialty string) (LivePlacement, bool) {
	affinity, _ := ResolveFloorAffinity(rooms, specialty)

	var free []*models.Room
	for i := range rooms {
		if rooms[i].IsFree() {
			free = append(free, &rooms[i])
		}
	}
	if len(free) == 0 {
		return LivePlacement{Affinity: affinity}, false
	}

	var best *models.Room
	bestScore := 0.0
	for _, room := range free {
		score := LiveAffinity(room, specialty, affinity.Floor, affinity.TargetNumber)
		if score > bestScore {
			best = room
			bestScore = score
		}
	}

	if best == nil {
		first := free[0]
		return LivePlacement{
			Room:     first,
			Score:    LiveAffinity(first, specialty, affinity.Floor, affinity.TargetNumber),
			Affinity: affinity,
			Fallback: true,
		}, true
	}

	return LivePlacement{Room: best, Score: bestScore, Affinity: affinity}, true
}
