package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"clinic-room-allocation/internal/models"
)

// memoryStore backs every in-memory repository with one lock so that plan
// replacement and projection are atomic for readers.
type memoryStore struct {
	mu sync.RWMutex

	rooms       map[uint]models.Room
	demands     map[uint]models.Demand
	runs        []models.PlanRun
	assignments []models.Assignment
	conflicts   []models.Conflict
	events      []models.OccupancyEvent

	nextRoomID       uint
	nextDemandID     uint
	nextAssignmentID uint
	nextConflictID   uint
	nextEventID      uint
}

// NewMemoryRepository builds repositories that keep everything in process
// memory. Used for local runs without MySQL and in tests.
func NewMemoryRepository() *Repository {
	s := &memoryStore{
		rooms:   make(map[uint]models.Room),
		demands: make(map[uint]models.Demand),
	}
	return &Repository{
		Room:   &memoryRoomRepo{s},
		Demand: &memoryDemandRepo{s},
		Plan:   &memoryPlanRepo{s},
		Event:  &memoryEventRepo{s},
	}
}

// ── rooms ──

type memoryRoomRepo struct{ s *memoryStore }

func (r *memoryRoomRepo) List(_ context.Context) ([]models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rooms := make([]models.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		rooms = append(rooms, copyRoom(room))
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (r *memoryRoomRepo) GetByID(_ context.Context, id uint) (*models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	c := copyRoom(room)
	return &c, nil
}

func (r *memoryRoomRepo) UpdateLiveState(_ context.Context, room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.rooms[room.ID]
	if !ok {
		return ErrRecordNotFound
	}
	stored.Status = room.Status
	stored.Occupant = copyString(room.Occupant)
	stored.EntryTime = copyString(room.EntryTime)
	stored.StatusOrigin = room.StatusOrigin
	stored.UpdatedAt = time.Now()
	r.s.rooms[room.ID] = stored
	return nil
}

func (r *memoryRoomRepo) ApplyProjection(_ context.Context, occupied []ProjectedOccupancy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for id, room := range r.s.rooms {
		if room.IsMaintenance {
			continue
		}
		room.Release(models.OriginProjected)
		room.UpdatedAt = now
		r.s.rooms[id] = room
	}
	for _, o := range occupied {
		room, ok := r.s.rooms[o.RoomID]
		if !ok || room.IsMaintenance {
			continue
		}
		room.Occupy(o.Occupant, o.EntryTime, models.OriginProjected)
		r.s.rooms[o.RoomID] = room
	}
	return nil
}

func (r *memoryRoomRepo) UpsertByName(_ context.Context, rooms []models.Room) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byName := make(map[string]uint, len(r.s.rooms))
	for id, room := range r.s.rooms {
		byName[room.Name] = id
	}

	created, updated := 0, 0
	now := time.Now()
	for _, incoming := range rooms {
		if id, ok := byName[incoming.Name]; ok {
			room := r.s.rooms[id]
			room.Block = incoming.Block
			room.Floor = incoming.Floor
			room.PreferredSpecialty = incoming.PreferredSpecialty
			room.IsMaintenance = incoming.IsMaintenance
			if room.IsMaintenance {
				room.Release(room.StatusOrigin)
			}
			room.UpdatedAt = now
			r.s.rooms[id] = room
			updated++
			continue
		}

		r.s.nextRoomID++
		room := incoming
		room.ID = r.s.nextRoomID
		room.Release("")
		room.CreatedAt = now
		room.UpdatedAt = now
		r.s.rooms[room.ID] = room
		byName[room.Name] = room.ID
		created++
	}
	return created, updated, nil
}

// ── demands ──

type memoryDemandRepo struct{ s *memoryStore }

func (r *memoryDemandRepo) List(_ context.Context) ([]models.Demand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	demands := make([]models.Demand, 0, len(r.s.demands))
	for _, d := range r.s.demands {
		demands = append(demands, d)
	}
	sort.Slice(demands, func(i, j int) bool { return demands[i].ID < demands[j].ID })
	return demands, nil
}

func (r *memoryDemandRepo) FindByIDs(_ context.Context, ids []uint) ([]models.Demand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	demands := make([]models.Demand, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.s.demands[id]; ok {
			demands = append(demands, d)
		}
	}
	return demands, nil
}

func (r *memoryDemandRepo) Create(_ context.Context, demand *models.Demand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.insertDemand(demand)
	return nil
}

func (r *memoryDemandRepo) CreateBatch(_ context.Context, demands []models.Demand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range demands {
		r.s.insertDemand(&demands[i])
	}
	return nil
}

func (s *memoryStore) insertDemand(demand *models.Demand) {
	s.nextDemandID++
	demand.ID = s.nextDemandID
	if demand.CreatedAt.IsZero() {
		demand.CreatedAt = time.Now()
	}
	s.demands[demand.ID] = *demand
}

// ── plan ──

type memoryPlanRepo struct{ s *memoryStore }

func (r *memoryPlanRepo) ReplacePlan(_ context.Context, run *models.PlanRun, assignments []models.Assignment, conflicts []models.Conflict) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	next := make([]models.Assignment, len(assignments))
	for i := range assignments {
		r.s.nextAssignmentID++
		assignments[i].ID = r.s.nextAssignmentID
		assignments[i].PlanID = run.ID
		next[i] = assignments[i]
	}
	nextConflicts := make([]models.Conflict, len(conflicts))
	for i := range conflicts {
		r.s.nextConflictID++
		conflicts[i].ID = r.s.nextConflictID
		conflicts[i].PlanID = run.ID
		nextConflicts[i] = conflicts[i]
	}

	r.s.runs = []models.PlanRun{*run}
	r.s.assignments = next
	r.s.conflicts = nextConflicts
	return nil
}

func (r *memoryPlanRepo) LatestRun(_ context.Context) (*models.PlanRun, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if len(r.s.runs) == 0 {
		return nil, ErrRecordNotFound
	}
	run := r.s.runs[len(r.s.runs)-1]
	return &run, nil
}

func (r *memoryPlanRepo) ListAssignments(_ context.Context) ([]models.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append([]models.Assignment{}, r.s.assignments...), nil
}

func (r *memoryPlanRepo) ListAssignmentsByPeriod(_ context.Context, weekday, shift string) ([]models.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []models.Assignment
	for _, a := range r.s.assignments {
		if a.Weekday == weekday && a.Shift == shift {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryPlanRepo) ListConflicts(_ context.Context) ([]models.Conflict, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append([]models.Conflict{}, r.s.conflicts...), nil
}

// ── events ──

type memoryEventRepo struct{ s *memoryStore }

func (r *memoryEventRepo) Create(_ context.Context, events ...models.OccupancyEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range events {
		r.s.nextEventID++
		e.ID = r.s.nextEventID
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		r.s.events = append(r.s.events, e)
	}
	return nil
}

func (r *memoryEventRepo) ListByRoom(_ context.Context, roomID uint, limit int) ([]models.OccupancyEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []models.OccupancyEvent
	for i := len(r.s.events) - 1; i >= 0; i-- {
		if r.s.events[i].RoomID != roomID {
			continue
		}
		out = append(out, r.s.events[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func copyRoom(room models.Room) models.Room {
	room.Occupant = copyString(room.Occupant)
	room.EntryTime = copyString(room.EntryTime)
	return room
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
