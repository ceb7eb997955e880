package repository

import (
	"context"
	"errors"

	"clinic-room-allocation/internal/models"

	"gorm.io/gorm"
)

// ErrRecordNotFound is returned by every implementation when a lookup misses
var ErrRecordNotFound = errors.New("record not found")

// ProjectedOccupancy marks one room as occupied by the weekly plan
type ProjectedOccupancy struct {
	RoomID    uint
	Occupant  string
	EntryTime string
}

// RoomRepository is the room inventory and its live status
type RoomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	// UpdateLiveState persists status, occupant, entry time and origin only
	UpdateLiveState(ctx context.Context, room *models.Room) error
	// ApplyProjection frees every non-maintenance room and then occupies the
	// given ones, atomically
	ApplyProjection(ctx context.Context, occupied []ProjectedOccupancy) error
	// UpsertByName creates rooms by display name or refreshes their metadata
	UpsertByName(ctx context.Context, rooms []models.Room) (created int, updated int, err error)
}

// DemandRepository is the weekly demand ledger
type DemandRepository interface {
	List(ctx context.Context) ([]models.Demand, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Demand, error)
	Create(ctx context.Context, demand *models.Demand) error
	CreateBatch(ctx context.Context, demands []models.Demand) error
}

// PlanRepository stores the current assignment plan
type PlanRepository interface {
	// ReplacePlan commits a new run and drops the rows of every older run in
	// one step, so readers see either the old plan or the new one
	ReplacePlan(ctx context.Context, run *models.PlanRun, assignments []models.Assignment, conflicts []models.Conflict) error
	LatestRun(ctx context.Context) (*models.PlanRun, error)
	ListAssignments(ctx context.Context) ([]models.Assignment, error)
	ListAssignmentsByPeriod(ctx context.Context, weekday, shift string) ([]models.Assignment, error)
	ListConflicts(ctx context.Context) ([]models.Conflict, error)
}

// EventRepository keeps the history of live-status transitions
type EventRepository interface {
	Create(ctx context.Context, events ...models.OccupancyEvent) error
	ListByRoom(ctx context.Context, roomID uint, limit int) ([]models.OccupancyEvent, error)
}

// Repository groups every repository the services need
type Repository struct {
	Room   RoomRepository
	Demand DemandRepository
	Plan   PlanRepository
	Event  EventRepository
}

// NewRepository builds the GORM-backed repositories
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Room:   NewRoomRepo(db),
		Demand: NewDemandRepo(db),
		Plan:   NewPlanRepo(db),
		Event:  NewEventRepo(db),
	}
}
