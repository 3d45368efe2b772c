package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/uptrace/bun"
)

type RedemptionTokenRepository interface {
	Create(ctx context.Context, token *models.RedemptionToken) error
	GetByID(ctx context.Context, id string) (*models.RedemptionToken, error)
	GetFinishedForPurchase(ctx context.Context, purchaseTokenID string) (*models.RedemptionToken, error)
	GetLatestForPurchase(ctx context.Context, purchaseTokenID string) (*models.RedemptionToken, error)
	DeleteUnscanned(ctx context.Context, purchaseTokenID string) (int64, error)
	DeleteIfUnscanned(ctx context.Context, id string) error
	MarkScanned(ctx context.Context, id string) error
	Finish(ctx context.Context, id string, billTotal *float64, at time.Time) error
	SubmitBill(ctx context.Context, id string, amount float64) error
	Reject(ctx context.Context, id string) error
}

type redemptionTokenRepository struct {
	*BaseRepository
}

func NewRedemptionTokenRepository(db *bun.DB) RedemptionTokenRepository {
	return &redemptionTokenRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *redemptionTokenRepository) Create(ctx context.Context, token *models.RedemptionToken) error {
	if token.Status == "" {
		token.Status = models.StatusPending
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	return r.SelectOneWithTimeout(ctx, "create", "redemption_token", token.ID, func(ctx context.Context) error {
		_, err := r.GetDB().NewInsert().Model(token).Exec(ctx)
		return err
	})
}

func (r *redemptionTokenRepository) GetByID(ctx context.Context, id string) (*models.RedemptionToken, error) {
	token := new(models.RedemptionToken)
	err := r.SelectOneWithTimeout(ctx, "get", "redemption_token", id, func(ctx context.Context) error {
		return r.GetDB().NewSelect().Model(token).Where("rt.id = ?", id).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// GetFinishedForPurchase returns the Finished token for a purchase, or nil if
// the purchase was never redeemed. Scanned tokens are never deleted, so a
// Finished row is permanent evidence of redemption.
func (r *redemptionTokenRepository) GetFinishedForPurchase(ctx context.Context, purchaseTokenID string) (*models.RedemptionToken, error) {
	token := new(models.RedemptionToken)
	err := r.SelectOneWithTimeout(ctx, "get_finished", "redemption_token", purchaseTokenID, func(ctx context.Context) error {
		return r.GetDB().NewSelect().
			Model(token).
			Where("rt.purchase_token_id = ?", purchaseTokenID).
			Where("rt.status = ?", models.StatusFinished).
			Limit(1).
			Scan(ctx)
	})
	if err != nil {
		var nfe *NotFoundError
		if errors.As(err, &nfe) {
			return nil, nil
		}
		return nil, err
	}
	return token, nil
}

// GetLatestForPurchase returns the most recent token for a purchase. The
// scan path classifies the current attempt from it: unscanned means
// scannable, scanned means duplicate, Finished means already redeemed.
func (r *redemptionTokenRepository) GetLatestForPurchase(ctx context.Context, purchaseTokenID string) (*models.RedemptionToken, error) {
	token := new(models.RedemptionToken)
	err := r.SelectOneWithTimeout(ctx, "get_latest", "redemption_token", purchaseTokenID, func(ctx context.Context) error {
		return r.GetDB().NewSelect().
			Model(token).
			Where("rt.purchase_token_id = ?", purchaseTokenID).
			Order("rt.created_at DESC").
			Limit(1).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// DeleteUnscanned removes every unscanned token for a purchase. It backs the
// at-most-one-unscanned invariant: the presenter calls it before inserting a
// fresh token, and re-running it is harmless.
func (r *redemptionTokenRepository) DeleteUnscanned(ctx context.Context, purchaseTokenID string) (int64, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	result, err := r.GetDB().NewDelete().
		Model((*models.RedemptionToken)(nil)).
		Where("purchase_token_id = ?", purchaseTokenID).
		Where("scanned = false").
		Exec(timeoutCtx)
	if err != nil {
		return 0, r.HandleErrorWithID("delete_unscanned", "redemption_token", purchaseTokenID, err)
	}
	return result.RowsAffected()
}

// DeleteIfUnscanned deletes a single token only while it is still unscanned.
// A race with an in-flight scan matches no row and is not an error; the
// token has become meaningful and must survive.
func (r *redemptionTokenRepository) DeleteIfUnscanned(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.GetDB().NewDelete().
		Model((*models.RedemptionToken)(nil)).
		Where("id = ?", id).
		Where("scanned = false").
		Exec(timeoutCtx)
	return r.HandleErrorWithID("delete_if_unscanned", "redemption_token", id, err)
}

func (r *redemptionTokenRepository) MarkScanned(ctx context.Context, id string) error {
	return r.ExecConditional(ctx, "mark_scanned", "redemption_token", id, func(ctx context.Context) (sql.Result, error) {
		return r.GetDB().NewUpdate().
			Model((*models.RedemptionToken)(nil)).
			Set("scanned = true").
			Set("status = ?", models.StatusInProgress).
			Where("id = ?", id).
			Where("scanned = false").
			Where("status <> ?", models.StatusFinished).
			Where("completed = false").
			Exec(ctx)
	})
}

func (r *redemptionTokenRepository) Finish(ctx context.Context, id string, billTotal *float64, at time.Time) error {
	timeRedeemed := at.Format(models.TimeRedeemedFormat)
	dateRedeemed := at.Format(models.DateRedeemedFormat)

	return r.ExecConditional(ctx, "finish", "redemption_token", id, func(ctx context.Context) (sql.Result, error) {
		q := r.GetDB().NewUpdate().
			Model((*models.RedemptionToken)(nil)).
			Set("status = ?", models.StatusFinished).
			Set("completed = true").
			Set("time_redeemed = ?", timeRedeemed).
			Set("date_redeemed = ?", dateRedeemed).
			Where("id = ?", id).
			Where("status <> ?", models.StatusFinished).
			Where("completed = false")
		if billTotal != nil {
			q = q.Set("bill_input_total = ?", *billTotal)
		}
		return q.Exec(ctx)
	})
}

func (r *redemptionTokenRepository) SubmitBill(ctx context.Context, id string, amount float64) error {
	return r.ExecConditional(ctx, "submit_bill", "redemption_token", id, func(ctx context.Context) (sql.Result, error) {
		return r.GetDB().NewUpdate().
			Model((*models.RedemptionToken)(nil)).
			Set("status = ?", models.StatusSubmitted).
			Set("bill_input_total = ?", amount).
			Where("id = ?", id).
			Where("status <> ?", models.StatusFinished).
			Where("completed = false").
			Exec(ctx)
	})
}

func (r *redemptionTokenRepository) Reject(ctx context.Context, id string) error {
	return r.ExecConditional(ctx, "reject", "redemption_token", id, func(ctx context.Context) (sql.Result, error) {
		return r.GetDB().NewUpdate().
			Model((*models.RedemptionToken)(nil)).
			Set("status = ?", models.StatusRejected).
			Where("id = ?", id).
			Where("status = ?", models.StatusSubmitted).
			Where("completed = false").
			Exec(ctx)
	})
}
