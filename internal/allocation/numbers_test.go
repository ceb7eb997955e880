package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrailingNumber(t *testing.T) {
	assert.Equal(t, 40, TrailingNumber("E3-40"))
	assert.Equal(t, 7, TrailingNumber("B12 room 007"))
	assert.Equal(t, 5, TrailingNumber("5"))
	assert.Equal(t, NoRoomNumber, TrailingNumber("Auditorium"))
	assert.Equal(t, NoRoomNumber, TrailingNumber(""))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 12.0, Median([]int{40, 12, 3}))
	assert.Equal(t, 11.5, Median([]int{10, 13, 2, 40}))
}
