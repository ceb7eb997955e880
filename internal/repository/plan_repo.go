package repository

import (
	"context"
	"errors"

	"clinic-room-allocation/internal/models"

	"gorm.io/gorm"
)

type planRepo struct {
	db *gorm.DB
}

func NewPlanRepo(db *gorm.DB) PlanRepository {
	return &planRepo{db: db}
}

func (r *planRepo) ReplacePlan(ctx context.Context, run *models.PlanRun, assignments []models.Assignment, conflicts []models.Conflict) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}

		for i := range assignments {
			assignments[i].PlanID = run.ID
		}
		if len(assignments) > 0 {
			if err := tx.CreateInBatches(assignments, 200).Error; err != nil {
				return err
			}
		}

		for i := range conflicts {
			conflicts[i].PlanID = run.ID
		}
		if len(conflicts) > 0 {
			if err := tx.CreateInBatches(conflicts, 200).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("plan_id <> ?", run.ID).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id <> ?", run.ID).Delete(&models.Conflict{}).Error; err != nil {
			return err
		}
		// only the current run is kept, so LatestRun has a single candidate
		return tx.Where("id <> ?", run.ID).Delete(&models.PlanRun{}).Error
	})
}

func (r *planRepo) LatestRun(ctx context.Context) (*models.PlanRun, error) {
	var run models.PlanRun
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &run, nil
}

func (r *planRepo) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.WithContext(ctx).Order("id ASC").Find(&assignments).Error
	return assignments, err
}

func (r *planRepo) ListAssignmentsByPeriod(ctx context.Context, weekday, shift string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.WithContext(ctx).
		Where("weekday = ? AND shift = ?", weekday, shift).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *planRepo) ListConflicts(ctx context.Context) ([]models.Conflict, error) {
	var conflicts []models.Conflict
	err := r.db.WithContext(ctx).Order("id ASC").Find(&conflicts).Error
	return conflicts, err
}
