package repository

import (
	"context"

	"clinic-room-allocation/internal/models"

	"gorm.io/gorm"
)

type demandRepo struct {
	db *gorm.DB
}

func NewDemandRepo(db *gorm.DB) DemandRepository {
	return &demandRepo{db: db}
}

// List retrieves the ledger in insertion order, which is the allocation order
func (r *demandRepo) List(ctx context.Context) ([]models.Demand, error) {
	var demands []models.Demand
	err := r.db.WithContext(ctx).Order("id ASC").Find(&demands).Error
	return demands, err
}

func (r *demandRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.Demand, error) {
	var demands []models.Demand
	if len(ids) == 0 {
		return demands, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&demands).Error
	return demands, err
}

func (r *demandRepo) Create(ctx context.Context, demand *models.Demand) error {
	return r.db.WithContext(ctx).Create(demand).Error
}

func (r *demandRepo) CreateBatch(ctx context.Context, demands []models.Demand) error {
	if len(demands) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(demands, 200).Error
}
