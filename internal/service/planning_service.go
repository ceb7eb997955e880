package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"clinic-room-allocation/internal/allocation"
	"clinic-room-allocation/internal/models"
	"clinic-room-allocation/internal/repository"
)

// PlanCache keeps rendered plan summaries between runs. It is optional.
type PlanCache interface {
	PutJSON(ctx context.Context, key string, value interface{}) error
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	Delete(ctx context.Context, key string) error
}

type PlanningService struct {
	repo      *repository.Repository
	occupancy *OccupancyService
	cache     PlanCache
	logger    *zap.Logger

	mu sync.Mutex
}

// NewPlanningService wires the planner. cache may be nil.
func NewPlanningService(repo *repository.Repository, occupancy *OccupancyService, cache PlanCache, logger *zap.Logger) *PlanningService {
	return &PlanningService{
		repo:      repo,
		occupancy: occupancy,
		cache:     cache,
		logger:    logger,
	}
}

// AllocationResult is what a full reallocation reports back
type AllocationResult struct {
	PlanID      string                        `json:"plan_id"`
	Summary     []allocation.SpecialtySummary `json:"summary"`
	Assignments []models.AssignmentDetail     `json:"assignments"`
	Conflicts   []models.Conflict             `json:"conflicts"`
	Sync        *SyncResult                   `json:"sync,omitempty"`
	SyncError   string                        `json:"sync_error,omitempty"`
	Rooms       []models.Room                 `json:"rooms"`
}

// PlanSummary is the cached per-specialty rollup of one plan run
type PlanSummary struct {
	PlanID        string                        `json:"plan_id"`
	CreatedAt     time.Time                     `json:"created_at"`
	AssignedCount int                           `json:"assigned_count"`
	ConflictCount int                           `json:"conflict_count"`
	Specialties   []allocation.SpecialtySummary `json:"specialties"`
}

// Reallocate rebuilds the whole weekly plan from the demand ledger and then
// projects it onto the live status of the rooms. The new plan is committed
// before projection; a projection failure is reported in SyncError and the
// plan stays in place.
func (s *PlanningService) Reallocate(ctx context.Context, weekday, shift string) (*AllocationResult, error) {
	weekday, shift, err := normalizePeriodOverride(weekday, shift)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	demands, err := s.repo.Demand.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load demands: %w", err)
	}
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	previous, err := s.repo.Plan.LatestRun(ctx)
	if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load current plan: %w", err)
	}

	plan := allocation.BuildPlan(demands, rooms)

	run := &models.PlanRun{
		ID:            uuid.New().String(),
		AssignedCount: len(plan.Assignments),
		ConflictCount: len(plan.Conflicts),
	}
	if err := s.repo.Plan.ReplacePlan(ctx, run, plan.Assignments, plan.Conflicts); err != nil {
		return nil, fmt.Errorf("failed to store plan: %w", err)
	}
	for i := range plan.Details {
		plan.Details[i].AssignmentID = plan.Assignments[i].ID
	}

	summary := &PlanSummary{
		PlanID:        run.ID,
		CreatedAt:     run.CreatedAt,
		AssignedCount: run.AssignedCount,
		ConflictCount: run.ConflictCount,
		Specialties:   allocation.Summarize(plan.Details),
	}
	s.cacheSummary(ctx, summary)
	if previous != nil {
		s.evictSummary(ctx, previous.ID)
	}

	s.logger.Info("Weekly plan rebuilt",
		zap.String("plan_id", run.ID),
		zap.Int("demands", len(demands)),
		zap.Int("assigned", run.AssignedCount),
		zap.Int("conflicts", run.ConflictCount),
	)

	result := &AllocationResult{
		PlanID:      run.ID,
		Summary:     summary.Specialties,
		Assignments: plan.Details,
		Conflicts:   plan.Conflicts,
	}

	syncResult, err := s.occupancy.Sync(ctx, weekday, shift)
	if err != nil {
		s.logger.Error("Plan stored but live status sync failed", zap.String("plan_id", run.ID), zap.Error(err))
		result.SyncError = err.Error()
	} else {
		result.Sync = syncResult
	}

	result.Rooms, err = s.repo.Room.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	return result, nil
}

// Summary returns the rollup of the current plan, from cache when possible.
// Before the first run it returns an empty summary.
func (s *PlanningService) Summary(ctx context.Context) (*PlanSummary, error) {
	run, err := s.repo.Plan.LatestRun(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return &PlanSummary{Specialties: []allocation.SpecialtySummary{}}, nil
		}
		return nil, err
	}

	if s.cache != nil {
		var cached PlanSummary
		hit, err := s.cache.GetJSON(ctx, summaryKey(run.ID), &cached)
		if err != nil {
			s.logger.Warn("Plan cache read failed", zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	details, err := s.Assignments(ctx)
	if err != nil {
		return nil, err
	}
	summary := &PlanSummary{
		PlanID:        run.ID,
		CreatedAt:     run.CreatedAt,
		AssignedCount: run.AssignedCount,
		ConflictCount: run.ConflictCount,
		Specialties:   allocation.Summarize(details),
	}
	s.cacheSummary(ctx, summary)
	return summary, nil
}

// Assignments returns the stored plan joined with demand and room fields
func (s *PlanningService) Assignments(ctx context.Context) ([]models.AssignmentDetail, error) {
	assignments, err := s.repo.Plan.ListAssignments(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		return nil, err
	}
	roomByID := make(map[uint]*models.Room, len(rooms))
	for i := range rooms {
		roomByID[rooms[i].ID] = &rooms[i]
	}

	ids := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.DemandID)
	}
	demands, err := s.repo.Demand.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	demandByID := make(map[uint]*models.Demand, len(demands))
	for i := range demands {
		demandByID[demands[i].ID] = &demands[i]
	}

	details := make([]models.AssignmentDetail, 0, len(assignments))
	for _, a := range assignments {
		room, ok := roomByID[a.RoomID]
		if !ok {
			room = &models.Room{ID: a.RoomID}
		}
		demand, ok := demandByID[a.DemandID]
		if !ok {
			demand = &models.Demand{ID: a.DemandID, ProfessionalName: FallbackOccupant}
		}
		d := allocation.Detail(demand, room, a.Score)
		d.AssignmentID = a.ID
		d.Weekday, d.Shift = a.Weekday, a.Shift
		details = append(details, d)
	}
	return details, nil
}

// Conflicts returns the demands the current plan could not place
func (s *PlanningService) Conflicts(ctx context.Context) ([]models.Conflict, error) {
	return s.repo.Plan.ListConflicts(ctx)
}

// ExportPlan renders the current plan and its conflicts as an xlsx workbook
func (s *PlanningService) ExportPlan(ctx context.Context) (*bytes.Buffer, string, error) {
	details, err := s.Assignments(ctx)
	if err != nil {
		return nil, "", err
	}
	conflicts, err := s.Conflicts(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	const planSheet, conflictSheet = "Plan", "Conflicts"
	if err := f.SetSheetName("Sheet1", planSheet); err != nil {
		return nil, "", fmt.Errorf("failed to build workbook: %w", err)
	}
	if _, err := f.NewSheet(conflictSheet); err != nil {
		return nil, "", fmt.Errorf("failed to build workbook: %w", err)
	}

	planRows := make([][]interface{}, 0, len(details))
	for _, d := range details {
		planRows = append(planRows, []interface{}{
			d.Weekday, d.Shift, d.ProfessionalName, d.Specialty, d.RoomName, d.Block, d.Floor, d.Score,
		})
	}
	if err := writeTable(f, planSheet, headerStyle,
		[]string{"Weekday", "Shift", "Professional", "Specialty", "Room", "Block", "Floor", "Score"},
		planRows); err != nil {
		return nil, "", err
	}

	conflictRows := make([][]interface{}, 0, len(conflicts))
	for _, c := range conflicts {
		conflictRows = append(conflictRows, []interface{}{
			c.Weekday, c.Shift, c.ProfessionalName, c.Specialty, c.Reason,
		})
	}
	if err := writeTable(f, conflictSheet, headerStyle,
		[]string{"Weekday", "Shift", "Professional", "Specialty", "Reason"},
		conflictRows); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, fmt.Sprintf("room-plan-%s.xlsx", time.Now().Format("20060102")), nil
}

func writeTable(f *excelize.File, sheet string, headerStyle int, header []string, rows [][]interface{}) error {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write %s header: %w", sheet, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheet, "A1", last, headerStyle)
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	f.SetColWidth(sheet, "A", lastCol, 18)

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, r+2, err)
			}
		}
	}
	return nil
}

func (s *PlanningService) cacheSummary(ctx context.Context, summary *PlanSummary) {
	if s.cache == nil {
		return
	}
	if err := s.cache.PutJSON(ctx, summaryKey(summary.PlanID), summary); err != nil {
		s.logger.Warn("Plan cache write failed", zap.String("plan_id", summary.PlanID), zap.Error(err))
	}
}

// evictSummary drops the cached summary of a superseded run
func (s *PlanningService) evictSummary(ctx context.Context, planID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, summaryKey(planID)); err != nil {
		s.logger.Warn("Plan cache eviction failed", zap.String("plan_id", planID), zap.Error(err))
	}
}

func summaryKey(planID string) string {
	return "plan:" + planID + ":summary"
}
