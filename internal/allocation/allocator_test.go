package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-room-allocation/internal/models"
)

func sampleRooms() []models.Room {
	return []models.Room{
		{ID: 1, Name: "E1-01", Block: "E", Floor: "1", PreferredSpecialty: "Cardiology"},
		{ID: 2, Name: "E1-02", Block: "E", Floor: "1", PreferredSpecialty: "Cardiology"},
		{ID: 3, Name: "E0-01", Block: "E", Floor: "0", PreferredSpecialty: "Orthopedics"},
		{ID: 4, Name: "E2-10", Block: "E", Floor: "2"},
		{ID: 5, Name: "E2-11", Block: "E", Floor: "2", PreferredSpecialty: "Cardiology", IsMaintenance: true},
	}
}

func sampleDemands() []models.Demand {
	return []models.Demand{
		{ID: 1, ProfessionalName: "Dr. Ana", Specialty: "Cardiology", Weekday: models.Monday, Shift: models.ShiftMorning},
		{ID: 2, ProfessionalName: "Dr. Bruno", Specialty: "Cardiology", Weekday: models.Monday, Shift: models.ShiftMorning},
		{ID: 3, ProfessionalName: "Dr. Carla", Specialty: "Cardiology", Weekday: models.Monday, Shift: models.ShiftMorning},
		{ID: 4, ProfessionalName: "Dr. Davi", Specialty: "Orthopedics", Weekday: models.Monday, Shift: models.ShiftMorning},
		{ID: 5, ProfessionalName: "Dr. Eva", Specialty: "Cardiology", Weekday: models.Monday, Shift: models.ShiftAfternoon},
		{ID: 6, ProfessionalName: "Dr. Fabio", Specialty: "Neurology", Weekday: models.Monday, Shift: models.ShiftMorning},
	}
}

func TestBuildPlan_GreedyBestFit(t *testing.T) {
	plan := BuildPlan(sampleDemands(), sampleRooms())

	byDemand := map[uint]models.Assignment{}
	for _, a := range plan.Assignments {
		byDemand[a.DemandID] = a
	}

	assert.Equal(t, uint(1), byDemand[1].RoomID)
	assert.Equal(t, 100, byDemand[1].Score)
	assert.Equal(t, uint(2), byDemand[2].RoomID)
	// cardiology rooms exhausted, first zero-score room wins the tie
	assert.Equal(t, uint(3), byDemand[3].RoomID)
	assert.Equal(t, 0, byDemand[3].Score)
	// orthopedics would have taken E0-01 but it was consumed; only E2-10 is left
	assert.Equal(t, uint(4), byDemand[4].RoomID)
	assert.Equal(t, -50, byDemand[4].Score)
	// a different shift starts with every room available again
	assert.Equal(t, uint(1), byDemand[5].RoomID)

	require.Len(t, plan.Conflicts, 1)
	assert.Equal(t, uint(6), plan.Conflicts[0].DemandID)
	assert.Equal(t, ConflictReason, plan.Conflicts[0].Reason)

	require.Len(t, plan.Details, len(plan.Assignments))
	assert.Equal(t, "Dr. Ana", plan.Details[0].ProfessionalName)
	assert.Equal(t, "E1-01", plan.Details[0].RoomName)
}

func TestBuildPlan_NeverUsesMaintenanceRooms(t *testing.T) {
	rooms := []models.Room{
		{ID: 1, Name: "M-1", PreferredSpecialty: "Cardiology", IsMaintenance: true},
		{ID: 2, Name: "M-2", IsMaintenance: true},
	}
	demands := sampleDemands()

	plan := BuildPlan(demands, rooms)

	assert.Empty(t, plan.Assignments)
	assert.Len(t, plan.Conflicts, len(demands))
}

func TestBuildPlan_ExclusivityPerPeriod(t *testing.T) {
	rooms := sampleRooms()
	var demands []models.Demand
	id := uint(1)
	for _, day := range models.PlanningWeekdays {
		for _, shift := range models.PlanningShifts {
			for i := 0; i < 6; i++ {
				demands = append(demands, models.Demand{
					ID: id, ProfessionalName: "P", Specialty: "Cardiology", Weekday: day, Shift: shift,
				})
				id++
			}
		}
	}

	plan := BuildPlan(demands, rooms)

	for i := range plan.Assignments {
		for j := i + 1; j < len(plan.Assignments); j++ {
			a, b := plan.Assignments[i], plan.Assignments[j]
			if a.Weekday == b.Weekday && a.Shift == b.Shift {
				assert.NotEqual(t, a.RoomID, b.RoomID, "room %d assigned twice on %s %s", a.RoomID, a.Weekday, a.Shift)
			}
		}
	}
	// four usable rooms per period, six demands per period
	assert.Len(t, plan.Assignments, 4*len(models.PlanningWeekdays)*len(models.PlanningShifts))
	assert.Len(t, plan.Conflicts, 2*len(models.PlanningWeekdays)*len(models.PlanningShifts))
}

func TestBuildPlan_Idempotent(t *testing.T) {
	first := BuildPlan(sampleDemands(), sampleRooms())
	second := BuildPlan(sampleDemands(), sampleRooms())

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Conflicts, second.Conflicts)
}

func TestBuildPlan_OrthopedicsPrefersGroundFloor(t *testing.T) {
	rooms := []models.Room{
		{ID: 10, Name: "E3-01", Floor: "3", PreferredSpecialty: "Orthopedics"},
		{ID: 11, Name: "E0-01", Floor: "0", PreferredSpecialty: "Orthopedics"},
	}
	demands := []models.Demand{
		{ID: 1, ProfessionalName: "Dr. Gil", Specialty: "orthopedics", Weekday: models.Tuesday, Shift: models.ShiftMorning},
	}

	plan := BuildPlan(demands, rooms)

	require.Len(t, plan.Assignments, 1)
	assert.Equal(t, uint(11), plan.Assignments[0].RoomID)
	assert.Equal(t, 150, plan.Assignments[0].Score)
}
