package allocation

import (
	"sort"
	"strconv"
	"strings"

	"clinic-room-allocation/internal/models"
)

// SpecialtySummary is the per-specialty rollup of a plan
type SpecialtySummary struct {
	Specialty  string   `json:"specialty"`
	TotalRooms int      `json:"total_rooms"`
	Locations  []string `json:"locations"`
	Rooms      []string `json:"rooms"`
}

// Summarize groups assignment details by specialty. Specialties with more
// distinct rooms come first; ties keep the order in which they were met.
func Summarize(details []models.AssignmentDetail) []SpecialtySummary {
	type group struct {
		rooms     []string
		seenRooms map[string]bool
		locations []string
		seenLocs  map[string]bool
	}

	order := []string{}
	groups := make(map[string]*group)
	for _, d := range details {
		g, ok := groups[d.Specialty]
		if !ok {
			g = &group{seenRooms: map[string]bool{}, seenLocs: map[string]bool{}}
			groups[d.Specialty] = g
			order = append(order, d.Specialty)
		}
		if !g.seenRooms[d.RoomName] {
			g.seenRooms[d.RoomName] = true
			g.rooms = append(g.rooms, d.RoomName)
		}
		loc := models.LocationLabel(d.Block, d.Floor)
		if !g.seenLocs[loc] {
			g.seenLocs[loc] = true
			g.locations = append(g.locations, loc)
		}
	}

	summaries := make([]SpecialtySummary, 0, len(order))
	for _, specialty := range order {
		g := groups[specialty]
		rooms := append([]string(nil), g.rooms...)
		SortNatural(rooms)
		summaries = append(summaries, SpecialtySummary{
			Specialty:  specialty,
			TotalRooms: len(g.rooms),
			Locations:  g.locations,
			Rooms:      rooms,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalRooms > summaries[j].TotalRooms
	})
	return summaries
}

// SortNatural orders names so that digit runs compare as numbers ("E2-2" < "E2-10")
func SortNatural(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return NaturalLess(names[i], names[j])
	})
}

// NaturalLess compares alternating text/number runs. Text runs are compared
// case-insensitively, number runs by value.
func NaturalLess(a, b string) bool {
	ca, cb := naturalChunks(a), naturalChunks(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		x, y := ca[i], cb[i]
		if x.numeric && y.numeric {
			if c := compareDigits(x.text, y.text); c != 0 {
				return c < 0
			}
			continue
		}
		lx, ly := strings.ToLower(x.text), strings.ToLower(y.text)
		if lx != ly {
			return lx < ly
		}
	}
	return len(ca) < len(cb)
}

type chunk struct {
	text    string
	numeric bool
}

func naturalChunks(s string) []chunk {
	var chunks []chunk
	var cur strings.Builder
	curNumeric := false
	for i, r := range s {
		isDigit := r >= '0' && r <= '9'
		if i > 0 && isDigit != curNumeric {
			chunks = append(chunks, chunk{text: cur.String(), numeric: curNumeric})
			cur.Reset()
		}
		curNumeric = isDigit
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, chunk{text: cur.String(), numeric: curNumeric})
	}
	return chunks
}

// compareDigits compares two digit strings by numeric value without overflow
func compareDigits(a, b string) int {
	if x, errA := strconv.ParseUint(a, 10, 64); errA == nil {
		if y, errB := strconv.ParseUint(b, 10, 64); errB == nil {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
