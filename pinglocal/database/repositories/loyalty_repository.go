package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/uptrace/bun"
)

type LoyaltyRepository interface {
	AppendEntry(ctx context.Context, entry *models.PointsEntry) error
	TotalPoints(ctx context.Context, userID, businessID string) (int64, error)
	GetAccount(ctx context.Context, userID, businessID string) (*models.LoyaltyAccount, error)
	UpsertAccountTier(ctx context.Context, userID, businessID, tier string) error
}

type loyaltyRepository struct {
	*BaseRepository
}

func NewLoyaltyRepository(db *bun.DB) LoyaltyRepository {
	return &loyaltyRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *loyaltyRepository) AppendEntry(ctx context.Context, entry *models.PointsEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.SelectWithTimeout(ctx, "append", "points_entry", func(ctx context.Context) error {
		_, err := r.GetDB().NewInsert().Model(entry).Exec(ctx)
		return err
	})
}

// TotalPoints sums the ledger for a user/business pair. The balance is never
// stored, so manual adjustments (extra ledger rows) are always reflected.
func (r *loyaltyRepository) TotalPoints(ctx context.Context, userID, businessID string) (int64, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var total sql.NullInt64
	err := r.GetDB().NewSelect().
		Model((*models.PointsEntry)(nil)).
		ColumnExpr("SUM(points)").
		Where("user_id = ?", userID).
		Where("business_id = ?", businessID).
		Scan(timeoutCtx, &total)
	if err != nil {
		return 0, r.HandleError("total_points", "points_entry", err)
	}
	return total.Int64, nil
}

func (r *loyaltyRepository) GetAccount(ctx context.Context, userID, businessID string) (*models.LoyaltyAccount, error) {
	account := new(models.LoyaltyAccount)
	err := r.SelectOneWithTimeout(ctx, "get_account", "loyalty_account", userID, func(ctx context.Context) error {
		return r.GetDB().NewSelect().
			Model(account).
			Where("la.user_id = ?", userID).
			Where("la.business_id = ?", businessID).
			Scan(ctx)
	})
	if err != nil {
		var nfe *NotFoundError
		if errors.As(err, &nfe) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

func (r *loyaltyRepository) UpsertAccountTier(ctx context.Context, userID, businessID, tier string) error {
	account := &models.LoyaltyAccount{
		UserID:     userID,
		BusinessID: businessID,
		Tier:       tier,
		UpdatedAt:  time.Now(),
	}
	return r.SelectWithTimeout(ctx, "upsert_account", "loyalty_account", func(ctx context.Context) error {
		_, err := r.GetDB().NewInsert().
			Model(account).
			On("CONFLICT (user_id, business_id) DO UPDATE").
			Set("tier = EXCLUDED.tier").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		return err
	})
}
