package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"clinic-room-allocation/internal/models"
	"clinic-room-allocation/internal/repository"
)

// NoPreference keys rooms without a preferred specialty in the specialty index
const NoPreference = "NO_PREFERENCE"

type InventoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewInventoryService(repo *repository.Repository, logger *zap.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

// ListRooms returns every room with its live status
func (s *InventoryService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.repo.Room.List(ctx)
}

// ListFreeRooms returns rooms that are neither occupied nor under maintenance
func (s *InventoryService) ListFreeRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		return nil, err
	}
	free := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsFree() {
			free = append(free, r)
		}
	}
	return free, nil
}

// SpecialtyRooms is one entry of the specialty index
type SpecialtyRooms struct {
	Specialty string `json:"specialty"`
	RoomIDs   []uint `json:"room_ids"`
}

// SpecialtyIndex groups room ids by preferred specialty, sorted by key
func (s *InventoryService) SpecialtyIndex(ctx context.Context) ([]SpecialtyRooms, error) {
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string][]uint)
	for _, r := range rooms {
		key := strings.TrimSpace(r.PreferredSpecialty)
		if key == "" {
			key = NoPreference
		}
		byKey[key] = append(byKey[key], r.ID)
	}

	index := make([]SpecialtyRooms, 0, len(byKey))
	for key, ids := range byKey {
		index = append(index, SpecialtyRooms{Specialty: key, RoomIDs: ids})
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Specialty < index[j].Specialty })
	return index, nil
}

// ImportRooms loads rooms from the first sheet of an xlsx workbook. Rooms are
// matched by name; existing rooms keep their live status.
func (s *InventoryService) ImportRooms(ctx context.Context, r io.Reader) (*ImportReport, error) {
	sh, err := readSheet(r, roomColumns)
	if err != nil {
		return nil, err
	}
	if err := sh.requireColumns("name"); err != nil {
		return nil, err
	}

	report := &ImportReport{Skipped: []RowError{}}
	seen := make(map[string]int)
	var rooms []models.Room
	for i, row := range sh.rows {
		if blankRow(row) {
			continue
		}
		report.Total++
		line := i + 2

		name := sh.cell(row, "name")
		if name == "" {
			report.Skipped = append(report.Skipped, RowError{Row: line, Reason: "room name is empty"})
			continue
		}
		if first, dup := seen[name]; dup {
			report.Skipped = append(report.Skipped, RowError{
				Row:    line,
				Reason: fmt.Sprintf("room %s already listed on row %d", name, first),
			})
			continue
		}
		seen[name] = line

		rooms = append(rooms, models.Room{
			Name:               name,
			Block:              sh.cell(row, "block"),
			Floor:              sh.cell(row, "floor"),
			PreferredSpecialty: sh.cell(row, "specialty"),
			IsMaintenance:      parseFlag(sh.cell(row, "maintenance")),
		})
	}

	if len(rooms) > 0 {
		created, updated, err := s.repo.Room.UpsertByName(ctx, rooms)
		if err != nil {
			return nil, fmt.Errorf("failed to store rooms: %w", err)
		}
		report.Created, report.Updated = created, updated
	}

	s.logger.Info("Rooms imported",
		zap.Int("total", report.Total),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}
