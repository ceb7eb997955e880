package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"clinic-room-allocation/internal/allocation"
	"clinic-room-allocation/internal/models"
	"clinic-room-allocation/internal/repository"
)

// FallbackOccupant labels projected rooms whose demand no longer exists
const FallbackOccupant = "Automatic allocation"

// OccupancyService owns the live status of rooms. Projection, check-in and
// check-out share one lock; the last writer wins. A manual transition stays
// in effect until the next projection overwrites it.
type OccupancyService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex
}

func NewOccupancyService(repo *repository.Repository, logger *zap.Logger) *OccupancyService {
	return &OccupancyService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// SyncResult describes one projection of the plan onto live state
type SyncResult struct {
	Occupied int    `json:"occupied"`
	Weekday  string `json:"weekday"`
	Shift    string `json:"shift"`
	SyncedAt string `json:"synced_at"`
}

// Sync projects the plan of the current (or overridden) weekday/shift onto
// the rooms. Every non-maintenance room is freed first; rooms planned for the
// period are then occupied with an entry time of now.
func (s *OccupancyService) Sync(ctx context.Context, weekday, shift string) (*SyncResult, error) {
	weekday, shift, err := normalizePeriodOverride(weekday, shift)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	period := allocation.ResolvePeriod(now, weekday, shift)
	entry := allocation.ClockTime(now)

	assignments, err := s.repo.Plan.ListAssignmentsByPeriod(ctx, period.Weekday, period.Shift)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	usable := make(map[uint]bool, len(rooms))
	for _, r := range rooms {
		usable[r.ID] = !r.IsMaintenance
	}

	demandIDs := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		demandIDs = append(demandIDs, a.DemandID)
	}
	demands, err := s.repo.Demand.FindByIDs(ctx, demandIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load demands: %w", err)
	}
	names := make(map[uint]string, len(demands))
	for _, d := range demands {
		names[d.ID] = d.ProfessionalName
	}

	projected := make([]repository.ProjectedOccupancy, 0, len(assignments))
	events := make([]models.OccupancyEvent, 0, len(assignments))
	for _, a := range assignments {
		if !usable[a.RoomID] {
			continue
		}
		occupant, ok := names[a.DemandID]
		if !ok {
			occupant = FallbackOccupant
		}
		projected = append(projected, repository.ProjectedOccupancy{
			RoomID:    a.RoomID,
			Occupant:  occupant,
			EntryTime: entry,
		})
		events = append(events, models.OccupancyEvent{
			RoomID:   a.RoomID,
			Action:   models.ActionProjected,
			Origin:   models.OriginProjected,
			Occupant: occupant,
			Details:  fmt.Sprintf("Projected from plan for %s %s", period.Weekday, period.Shift),
		})
	}

	if err := s.repo.Room.ApplyProjection(ctx, projected); err != nil {
		return nil, fmt.Errorf("failed to apply projection: %w", err)
	}
	s.recordEvents(ctx, events...)

	s.logger.Info("Live status synchronized with plan",
		zap.String("weekday", period.Weekday),
		zap.String("shift", period.Shift),
		zap.Int("occupied", len(projected)),
	)

	return &SyncResult{
		Occupied: len(projected),
		Weekday:  period.Weekday,
		Shift:    period.Shift,
		SyncedAt: entry,
	}, nil
}

// CheckIn manually occupies a free room
func (s *OccupancyService) CheckIn(ctx context.Context, roomID uint, occupant string) (*models.Room, error) {
	occupant = strings.TrimSpace(occupant)
	if occupant == "" {
		return nil, fmt.Errorf("%w: occupant is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.IsMaintenance {
		return nil, fmt.Errorf("%w: room %s is under maintenance", ErrInvalidState, room.Name)
	}
	if room.Status == models.RoomStatusOccupied {
		return nil, fmt.Errorf("%w: room %s is already occupied", ErrInvalidState, room.Name)
	}

	if err := s.occupy(ctx, room, occupant, fmt.Sprintf("Manual check-in to room %s", room.Name)); err != nil {
		return nil, err
	}
	return room, nil
}

// CheckOut frees a room. Checking out a free room succeeds without changes.
func (s *OccupancyService) CheckOut(ctx context.Context, roomID uint) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != models.RoomStatusOccupied {
		return room, nil
	}

	previous := ""
	if room.Occupant != nil {
		previous = *room.Occupant
	}
	room.Release(models.OriginManual)
	if err := s.repo.Room.UpdateLiveState(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to check out room: %w", err)
	}

	s.recordEvents(ctx, models.OccupancyEvent{
		RoomID:   room.ID,
		Action:   models.ActionCheckOut,
		Origin:   models.OriginManual,
		Occupant: previous,
		Details:  fmt.Sprintf("Manual check-out from room %s", room.Name),
	})
	return room, nil
}

// AssistedCheckInResult is the room chosen for an ad-hoc check-in and why
type AssistedCheckInResult struct {
	Room         *models.Room `json:"room"`
	Score        float64      `json:"score"`
	TargetFloor  string       `json:"target_floor,omitempty"`
	TargetNumber float64      `json:"target_number,omitempty"`
	Fallback     bool         `json:"fallback"`
	Rationale    string       `json:"rationale"`
}

// AssistedCheckIn places a professional in the free room that best matches
// the specialty's usual floor and room numbers
func (s *OccupancyService) AssistedCheckIn(ctx context.Context, professional, specialty string) (*AssistedCheckInResult, error) {
	professional = strings.TrimSpace(professional)
	if professional == "" {
		return nil, fmt.Errorf("%w: professional is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	placement, ok := allocation.ChooseLiveRoom(rooms, specialty)
	if !ok {
		return nil, ErrNoCapacity
	}

	room := placement.Room
	rationale := explainPlacement(placement)
	if err := s.occupy(ctx, room, professional, "Assisted check-in: "+rationale); err != nil {
		return nil, err
	}

	return &AssistedCheckInResult{
		Room:         room,
		Score:        placement.Score,
		TargetFloor:  placement.Affinity.Floor,
		TargetNumber: placement.Affinity.TargetNumber,
		Fallback:     placement.Fallback,
		Rationale:    rationale,
	}, nil
}

// History returns the latest live-status transitions of a room
func (s *OccupancyService) History(ctx context.Context, roomID uint, limit int) ([]models.OccupancyEvent, error) {
	if _, err := s.getRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.repo.Event.ListByRoom(ctx, roomID, limit)
}

func (s *OccupancyService) occupy(ctx context.Context, room *models.Room, occupant, details string) error {
	room.Occupy(occupant, allocation.ClockTime(s.now()), models.OriginManual)
	if err := s.repo.Room.UpdateLiveState(ctx, room); err != nil {
		return fmt.Errorf("failed to check in room: %w", err)
	}
	s.recordEvents(ctx, models.OccupancyEvent{
		RoomID:   room.ID,
		Action:   models.ActionCheckIn,
		Origin:   models.OriginManual,
		Occupant: occupant,
		Details:  details,
	})
	return nil
}

func (s *OccupancyService) getRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	room, err := s.repo.Room.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %d", ErrNotFound, roomID)
		}
		return nil, err
	}
	return room, nil
}

// recordEvents logs but does not fail the transition when history cannot be written
func (s *OccupancyService) recordEvents(ctx context.Context, events ...models.OccupancyEvent) {
	if len(events) == 0 {
		return
	}
	if err := s.repo.Event.Create(ctx, events...); err != nil {
		s.logger.Warn("Failed to record occupancy events", zap.Int("count", len(events)), zap.Error(err))
	}
}

// normalizePeriodOverride accepts any calendar weekday and any shift,
// including NIGHT, so that off-hours can be simulated. Blank means "now".
func normalizePeriodOverride(weekday, shift string) (string, string, error) {
	if weekday != "" {
		weekday = NormalizeWeekday(weekday)
		if !isCalendarWeekday(weekday) {
			return "", "", fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, weekday)
		}
	}
	if shift != "" {
		shift = NormalizeShift(shift)
		if !models.IsPlanningShift(shift) && shift != models.ShiftNight {
			return "", "", fmt.Errorf("%w: unknown shift %q", ErrInvalidInput, shift)
		}
	}
	return weekday, shift, nil
}

func isCalendarWeekday(day string) bool {
	for _, d := range models.CalendarWeekdays {
		if d == day {
			return true
		}
	}
	return false
}

func explainPlacement(p allocation.LivePlacement) string {
	switch {
	case p.Fallback:
		return fmt.Sprintf("no free room matched, took first free room %s (%s)", p.Room.Name, p.Room.Location())
	case p.Affinity.Floor == "":
		return fmt.Sprintf("room %s scored %.1f; specialty has no usual floor", p.Room.Name, p.Score)
	case p.Affinity.TargetNumber > 0:
		return fmt.Sprintf("room %s scored %.1f; specialty usually on floor %s near room %g",
			p.Room.Name, p.Score, p.Affinity.Floor, p.Affinity.TargetNumber)
	default:
		return fmt.Sprintf("room %s scored %.1f; specialty usually on floor %s",
			p.Room.Name, p.Score, p.Affinity.Floor)
	}
}
