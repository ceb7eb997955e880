package allocation

import (
	"math"
	"regexp"
	"sort"
	"strconv"
)

var digitRun = regexp.MustCompile(`\d+`)

// NoRoomNumber is returned by TrailingNumber when a name has no digits
const NoRoomNumber = -1

// TrailingNumber extracts the last run of digits of a room name: "E3-40" -> 40
func TrailingNumber(name string) int {
	runs := digitRun.FindAllString(name, -1)
	if len(runs) == 0 {
		return NoRoomNumber
	}
	n, err := strconv.Atoi(runs[len(runs)-1])
	if err != nil {
		return NoRoomNumber
	}
	return n
}

// Median returns the median of values, averaging the two middle values on
// even counts. It returns 0 for an empty slice.
func Median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
