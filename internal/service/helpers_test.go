package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"clinic-room-allocation/internal/models"
	"clinic-room-allocation/internal/repository"
)

// mondayMorning is 09:30 on Monday 2024-01-01
var mondayMorning = time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)

type fixture struct {
	repo      *repository.Repository
	occupancy *OccupancyService
	planning  *PlanningService
	inventory *InventoryService
	demands   *DemandService
}

func newFixture(t *testing.T, cache PlanCache) *fixture {
	t.Helper()

	repo := repository.NewMemoryRepository()
	logger := zap.NewNop()
	occupancy := NewOccupancyService(repo, logger)
	occupancy.now = func() time.Time { return mondayMorning }

	return &fixture{
		repo:      repo,
		occupancy: occupancy,
		planning:  NewPlanningService(repo, occupancy, cache, logger),
		inventory: NewInventoryService(repo, logger),
		demands:   NewDemandService(repo, logger),
	}
}

// seedClinic stores four rooms (ids 1-4, the last under maintenance) and
// five demands (ids 1-5)
func (f *fixture) seedClinic(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, _, err := f.repo.Room.UpsertByName(ctx, []models.Room{
		{Name: "Room 101", Block: "A", Floor: "1", PreferredSpecialty: "Cardiology"},
		{Name: "Room 102", Block: "A", Floor: "1", PreferredSpecialty: "Cardiology"},
		{Name: "Room 001", Block: "B", Floor: "0", PreferredSpecialty: "Orthopedics"},
		{Name: "Room 201", Block: "B", Floor: "2", IsMaintenance: true},
	})
	require.NoError(t, err)

	err = f.repo.Demand.CreateBatch(ctx, []models.Demand{
		{ProfessionalName: "Ana", Specialty: "Cardiology", Weekday: models.Monday, Shift: models.ShiftMorning},
		{ProfessionalName: "Bruno", Specialty: "Cardiology", Weekday: models.Monday, Shift: models.ShiftMorning},
		{ProfessionalName: "Carla", Specialty: "Orthopedics", Weekday: models.Monday, Shift: models.ShiftMorning},
		{ProfessionalName: "Davi", Specialty: "Pediatrics", Weekday: models.Monday, Shift: models.ShiftMorning},
		{ProfessionalName: "Eva", Specialty: "Cardiology", Weekday: models.Tuesday, Shift: models.ShiftAfternoon},
	})
	require.NoError(t, err)
}

func roomByName(t *testing.T, rooms []models.Room, name string) models.Room {
	t.Helper()
	for _, r := range rooms {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("room %s not found", name)
	return models.Room{}
}

// workbook renders rows into an in-memory xlsx file
func workbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

// memoryCache is a PlanCache backed by a map
type memoryCache struct {
	values  map[string]interface{}
	puts    int
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]interface{}{}}
}

func (c *memoryCache) PutJSON(_ context.Context, key string, value interface{}) error {
	c.values[key] = value
	c.puts++
	return nil
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	*dest.(*PlanSummary) = *v.(*PlanSummary)
	return true, nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	c.deleted = append(c.deleted, key)
	return nil
}
