package repositories

import (
	"context"

	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/uptrace/bun"
)

type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*models.Business, error)
	GetAll(ctx context.Context) ([]*models.Business, error)
}

type businessRepository struct {
	*BaseRepository
}

func NewBusinessRepository(db *bun.DB) BusinessRepository {
	return &businessRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *businessRepository) GetByID(ctx context.Context, id string) (*models.Business, error) {
	business := new(models.Business)
	err := r.SelectOneWithTimeout(ctx, "get", "business", id, func(ctx context.Context) error {
		return r.GetDB().NewSelect().Model(business).Where("b.id = ?", id).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return business, nil
}

func (r *businessRepository) GetAll(ctx context.Context) ([]*models.Business, error) {
	var businesses []*models.Business
	err := r.SelectWithTimeout(ctx, "list", "business", func(ctx context.Context) error {
		return r.GetDB().NewSelect().Model(&businesses).Order("b.name ASC").Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return businesses, nil
}
