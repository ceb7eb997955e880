package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"clinic-room-allocation/internal/models"
	"clinic-room-allocation/internal/repository"
)

type DemandService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewDemandService(repo *repository.Repository, logger *zap.Logger) *DemandService {
	return &DemandService{repo: repo, logger: logger}
}

// DemandInput is a demand as entered by a user or read from a spreadsheet row
type DemandInput struct {
	ProfessionalName string
	Specialty        string
	Weekday          string
	Shift            string
	ResourceType     string
}

// List returns the demand ledger in insertion order
func (s *DemandService) List(ctx context.Context) ([]models.Demand, error) {
	return s.repo.Demand.List(ctx)
}

// AddManual appends one demand to the ledger. It takes effect on the next reallocation.
func (s *DemandService) AddManual(ctx context.Context, in DemandInput) (*models.Demand, error) {
	demand, err := buildDemand(in, models.DemandOriginManual)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Demand.Create(ctx, demand); err != nil {
		return nil, fmt.Errorf("failed to create demand: %w", err)
	}

	s.logger.Info("Manual demand added",
		zap.Uint("demand_id", demand.ID),
		zap.String("weekday", demand.Weekday),
		zap.String("shift", demand.Shift),
	)
	return demand, nil
}

// ImportDemands appends demands read from the first sheet of an xlsx
// workbook. Rows with an invalid weekday or shift are reported and skipped.
func (s *DemandService) ImportDemands(ctx context.Context, r io.Reader) (*ImportReport, error) {
	sh, err := readSheet(r, demandColumns)
	if err != nil {
		return nil, err
	}
	if err := sh.requireColumns("professional", "weekday", "shift"); err != nil {
		return nil, err
	}

	report := &ImportReport{Skipped: []RowError{}}
	var demands []models.Demand
	for i, row := range sh.rows {
		if blankRow(row) {
			continue
		}
		report.Total++

		demand, err := buildDemand(DemandInput{
			ProfessionalName: sh.cell(row, "professional"),
			Specialty:        sh.cell(row, "specialty"),
			Weekday:          sh.cell(row, "weekday"),
			Shift:            sh.cell(row, "shift"),
			ResourceType:     sh.cell(row, "resource_type"),
		}, models.DemandOriginImported)
		if err != nil {
			report.Skipped = append(report.Skipped, RowError{
				Row:    i + 2,
				Reason: strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "),
			})
			continue
		}
		demands = append(demands, *demand)
	}

	if len(demands) > 0 {
		if err := s.repo.Demand.CreateBatch(ctx, demands); err != nil {
			return nil, fmt.Errorf("failed to store demands: %w", err)
		}
	}
	report.Created = len(demands)

	s.logger.Info("Demands imported",
		zap.Int("total", report.Total),
		zap.Int("created", report.Created),
		zap.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

func buildDemand(in DemandInput, origin string) (*models.Demand, error) {
	name := strings.TrimSpace(in.ProfessionalName)
	if name == "" {
		return nil, fmt.Errorf("%w: professional name is required", ErrInvalidInput)
	}

	weekday := NormalizeWeekday(in.Weekday)
	if !models.IsPlanningWeekday(weekday) {
		return nil, fmt.Errorf("%w: weekday %q is not one of %s", ErrInvalidInput,
			in.Weekday, strings.Join(models.PlanningWeekdays, ", "))
	}
	shift := NormalizeShift(in.Shift)
	if !models.IsPlanningShift(shift) {
		return nil, fmt.Errorf("%w: shift %q is not one of %s", ErrInvalidInput,
			in.Shift, strings.Join(models.PlanningShifts, ", "))
	}

	resource := strings.ToUpper(strings.TrimSpace(in.ResourceType))
	switch resource {
	case "":
		resource = models.ResourceOrdinary
	case models.ResourceOrdinary, models.ResourceExtra:
	default:
		return nil, fmt.Errorf("%w: resource type %q is not ORDINARY or EXTRA", ErrInvalidInput, in.ResourceType)
	}

	return &models.Demand{
		ProfessionalName: name,
		Specialty:        strings.TrimSpace(in.Specialty),
		Weekday:          weekday,
		Shift:            shift,
		ResourceType:     resource,
		Origin:           origin,
	}, nil
}
