package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinic-room-allocation/internal/models"
)

func TestWeeklyScore(t *testing.T) {
	tests := []struct {
		name   string
		demand models.Demand
		room   models.Room
		want   int
	}{
		{
			name:   "maintenance disqualifies",
			demand: models.Demand{Specialty: "Cardiology"},
			room:   models.Room{PreferredSpecialty: "Cardiology", IsMaintenance: true},
			want:   MaintenanceScore,
		},
		{
			name:   "specialty contained in room field",
			demand: models.Demand{Specialty: "cardio"},
			room:   models.Room{PreferredSpecialty: "Cardiology / Arrhythmia", Floor: "2"},
			want:   100,
		},
		{
			name:   "containment is one-directional",
			demand: models.Demand{Specialty: "Cardiology"},
			room:   models.Room{PreferredSpecialty: "Cardio", Floor: "2"},
			want:   0,
		},
		{
			name:   "blank room preference earns nothing",
			demand: models.Demand{Specialty: "Cardiology"},
			room:   models.Room{Floor: "2"},
			want:   0,
		},
		{
			name:   "orthopedics on floor zero",
			demand: models.Demand{Specialty: "Orthopedics"},
			room:   models.Room{PreferredSpecialty: "Orthopedics", Floor: "0"},
			want:   150,
		},
		{
			name:   "orthopedics on named ground floor",
			demand: models.Demand{Specialty: "Pediatric Orthopedics"},
			room:   models.Room{Floor: "Ground floor"},
			want:   50,
		},
		{
			name:   "orthopedics upstairs is penalized",
			demand: models.Demand{Specialty: "orthopedics"},
			room:   models.Room{PreferredSpecialty: "orthopedics", Floor: "3"},
			want:   50,
		},
		{
			name:   "orthopedics upstairs without preference",
			demand: models.Demand{Specialty: "orthopedics"},
			room:   models.Room{Floor: "3"},
			want:   -50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeeklyScore(&tt.demand, &tt.room))
		})
	}
}

func TestLiveAffinity(t *testing.T) {
	t.Run("filler room", func(t *testing.T) {
		// filler bonus plus containment of the blank preference
		room := models.Room{Name: "E1-01", Floor: "1"}
		assert.Equal(t, 110.0, LiveAffinity(&room, "Cardiology", "", 0))
	})

	t.Run("blank requested specialty matches every room", func(t *testing.T) {
		room := models.Room{Name: "E1-01", PreferredSpecialty: "Cardiology", Floor: "1"}
		assert.Equal(t, 100.0, LiveAffinity(&room, "  ", "", 0))
	})

	t.Run("mutual containment either way", func(t *testing.T) {
		room := models.Room{Name: "E1-01", PreferredSpecialty: "Cardio", Floor: "1"}
		assert.Equal(t, 100.0, LiveAffinity(&room, "Cardiology", "", 0))

		room.PreferredSpecialty = "Cardiology clinic"
		assert.Equal(t, 100.0, LiveAffinity(&room, "cardiology", "", 0))
	})

	t.Run("same floor with distance penalty", func(t *testing.T) {
		room := models.Room{Name: "E3-40", PreferredSpecialty: "Dermatology", Floor: " 3 "}
		// 100 + 30 - 0.5*|37-40|
		assert.Equal(t, 128.5, LiveAffinity(&room, "Dermatology", "3", 37))
	})

	t.Run("target number ignored when zero", func(t *testing.T) {
		room := models.Room{Name: "E3-40", Floor: "3"}
		assert.Equal(t, 140.0, LiveAffinity(&room, "Dermatology", "3", 0))
	})

	t.Run("room without number skips penalty", func(t *testing.T) {
		room := models.Room{Name: "Lab", Floor: "3"}
		assert.Equal(t, 140.0, LiveAffinity(&room, "Dermatology", "3", 12))
	})

	t.Run("different floor", func(t *testing.T) {
		room := models.Room{Name: "E2-10", Floor: "2"}
		assert.Equal(t, 110.0, LiveAffinity(&room, "Dermatology", "3", 12))
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		room := models.Room{Name: "E3-7", Floor: "3", PreferredSpecialty: "x"}
		assert.Equal(t, 27.8, LiveAffinity(&room, "Dermatology", "3", 11.5))
	})
}

func TestTextPolicy(t *testing.T) {
	assert.True(t, IsGroundFloor("0"))
	assert.True(t, IsGroundFloor(" GROUND "))
	assert.True(t, IsGroundFloor("Térreo"))
	assert.False(t, IsGroundFloor("10"))
	assert.False(t, IsGroundFloor(""))

	assert.True(t, MutuallyContains("", "cardio"))
	assert.True(t, MutuallyContains("cardio", " "))
	assert.False(t, MutuallyContains("Neuro", "cardiology"))
	assert.True(t, MutuallyContains("Cardio", "cardiology"))
	assert.True(t, SameFloor(" 2", "2 "))
}
