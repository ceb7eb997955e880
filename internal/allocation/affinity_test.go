package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-room-allocation/internal/models"
)

func affinityRooms() []models.Room {
	return []models.Room{
		{ID: 1, Name: "E2-10", Floor: "2", PreferredSpecialty: "Dermatology"},
		{ID: 2, Name: "E3-40", Floor: "3", PreferredSpecialty: "Dermatology"},
		{ID: 3, Name: "E3-30", Floor: "3", PreferredSpecialty: "dermatology and allergy"},
		{ID: 4, Name: "E3-Lab", Floor: "3", PreferredSpecialty: "Dermatology"},
		{ID: 5, Name: "E1-01", Floor: "1", PreferredSpecialty: "Cardiology"},
		{ID: 6, Name: "E3-35", Floor: "3"},
	}
}

func TestResolveFloorAffinity(t *testing.T) {
	aff, ok := ResolveFloorAffinity(affinityRooms(), "DERMATOLOGY")
	require.True(t, ok)
	assert.Equal(t, "3", aff.Floor)
	// E3-Lab has no number and is ignored
	assert.Equal(t, 35.0, aff.TargetNumber)
}

func TestResolveFloorAffinity_TieKeepsFirstFloor(t *testing.T) {
	rooms := []models.Room{
		{Name: "B1-4", Floor: "1", PreferredSpecialty: "ENT"},
		{Name: "B2-8", Floor: "2", PreferredSpecialty: "ENT"},
	}
	aff, ok := ResolveFloorAffinity(rooms, "ent")
	require.True(t, ok)
	assert.Equal(t, "1", aff.Floor)
	assert.Equal(t, 4.0, aff.TargetNumber)
}

func TestResolveFloorAffinity_NoMatch(t *testing.T) {
	_, ok := ResolveFloorAffinity(affinityRooms(), "Urology")
	assert.False(t, ok)

	_, ok = ResolveFloorAffinity(affinityRooms(), "  ")
	assert.False(t, ok)
}

func TestResolveFloorAffinity_NoNumbers(t *testing.T) {
	rooms := []models.Room{{Name: "Lab", Floor: "G", PreferredSpecialty: "Radiology"}}
	aff, ok := ResolveFloorAffinity(rooms, "Radiology")
	require.True(t, ok)
	assert.Equal(t, "G", aff.Floor)
	assert.Zero(t, aff.TargetNumber)
}

func TestChooseLiveRoom(t *testing.T) {
	rooms := affinityRooms()
	rooms[2].Occupy("Dr. Ana", "08:00", models.OriginManual)

	placement, ok := ChooseLiveRoom(rooms, "Dermatology")
	require.True(t, ok)
	// E3-40 scores 127.5 after the distance penalty; E3-Lab has no number and keeps 130
	assert.Equal(t, "E3-Lab", placement.Room.Name)
	assert.Equal(t, 130.0, placement.Score)
	assert.Equal(t, "3", placement.Affinity.Floor)
	assert.False(t, placement.Fallback)
}

func TestChooseLiveRoom_FallsBackToFirstFree(t *testing.T) {
	rooms := []models.Room{
		{ID: 1, Name: "A-1", Floor: "1", PreferredSpecialty: "Cardiology", IsMaintenance: true},
		{ID: 2, Name: "A-2", Floor: "1", PreferredSpecialty: "Cardiology"},
		{ID: 3, Name: "A-3", Floor: "1", PreferredSpecialty: "Neurology"},
	}

	placement, ok := ChooseLiveRoom(rooms, "Urology")
	require.True(t, ok)
	assert.Equal(t, uint(2), placement.Room.ID)
	assert.True(t, placement.Fallback)
	assert.Zero(t, placement.Score)
}

func TestChooseLiveRoom_SingleFreeRoomAlwaysChosen(t *testing.T) {
	rooms := []models.Room{
		{ID: 1, Name: "A-1", PreferredSpecialty: "Dermatology"},
		{ID: 2, Name: "A-2", PreferredSpecialty: "Urology"},
	}
	rooms[0].Occupy("Dr. X", "09:00", models.OriginManual)

	placement, ok := ChooseLiveRoom(rooms, "Dermatology")
	require.True(t, ok)
	assert.Equal(t, uint(2), placement.Room.ID)
}

func TestChooseLiveRoom_NoFreeRooms(t *testing.T) {
	rooms := []models.Room{
		{ID: 1, Name: "A-1", IsMaintenance: true},
		{ID: 2, Name: "A-2"},
	}
	rooms[1].Occupy("Dr. Y", "10:00", models.OriginProjected)

	_, ok := ChooseLiveRoom(rooms, "Dermatology")
	assert.False(t, ok)
}

func TestChooseLiveRoom_FillerOnTargetFloorBeatsFarMatch(t *testing.T) {
	rooms := []models.Room{
		{ID: 1, Name: "E3-10", Floor: "3", PreferredSpecialty: "Dermatology"},
		{ID: 2, Name: "E3-90", Floor: "3", PreferredSpecialty: "Dermatology"},
		{ID: 3, Name: "E3-48", Floor: "3"},
		{ID: 4, Name: "E3-50", Floor: "3", PreferredSpecialty: "Dermatology"},
	}
	rooms[3].Occupy("Dr. Lima", "08:00", models.OriginManual)

	placement, ok := ChooseLiveRoom(rooms, "Dermatology")
	require.True(t, ok)
	assert.Equal(t, 50.0, placement.Affinity.TargetNumber)
	// matches score 100+30-20; the filler room scores 10+100+30-1
	assert.Equal(t, "E3-48", placement.Room.Name)
	assert.Equal(t, 139.0, placement.Score)
	assert.False(t, placement.Fallback)
}
