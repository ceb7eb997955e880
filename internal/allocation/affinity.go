package allocation

import "clinic-room-allocation/internal/models"

// FloorAffinity is where a specialty usually lives: its most common floor
// and the median room number on that floor.
type FloorAffinity struct {
	Floor        string  `json:"floor"`
	TargetNumber float64 `json:"target_number"`
}

// ResolveFloorAffinity looks at every room whose preferred specialty mentions
// the given specialty. It reports false when the specialty is blank or no
// room mentions it.
func ResolveFloorAffinity(rooms []models.Room, specialty string) (FloorAffinity, bool) {
	if Normalize(specialty) == "" {
		return FloorAffinity{}, false
	}

	var matches []*models.Room
	for i := range rooms {
		if ContainsFold(rooms[i].PreferredSpecialty, specialty) {
			matches = append(matches, &rooms[i])
		}
	}
	if len(matches) == 0 {
		return FloorAffinity{}, false
	}

	// mode, ties broken by first appearance
	counts := make(map[string]int)
	var floors []string
	for _, r := range matches {
		if counts[r.Floor] == 0 {
			floors = append(floors, r.Floor)
		}
		counts[r.Floor]++
	}
	mode := floors[0]
	for _, f := range floors[1:] {
		if counts[f] > counts[mode] {
			mode = f
		}
	}

	var numbers []int
	for _, r := range matches {
		if r.Floor != mode {
			continue
		}
		if n := TrailingNumber(r.Name); n > 0 {
			numbers = append(numbers, n)
		}
	}

	return FloorAffinity{Floor: mode, TargetNumber: Median(numbers)}, true
}
