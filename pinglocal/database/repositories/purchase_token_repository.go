package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/uptrace/bun"
)

type PurchaseTokenRepository interface {
	Create(ctx context.Context, token *models.PurchaseToken) error
	GetByID(ctx context.Context, id string) (*models.PurchaseToken, error)
	GetActiveByUser(ctx context.Context, userID string) ([]*models.PurchaseToken, error)
	MarkRedeemed(ctx context.Context, id string) error
	MarkCancelled(ctx context.Context, id string) error
	SetBooking(ctx context.Context, id string, date time.Time, reminderID *string) error
	ClearBooking(ctx context.Context, id string) error
}

type purchaseTokenRepository struct {
	*BaseRepository
}

func NewPurchaseTokenRepository(db *bun.DB) PurchaseTokenRepository {
	return &purchaseTokenRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *purchaseTokenRepository) Create(ctx context.Context, token *models.PurchaseToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	return r.SelectOneWithTimeout(ctx, "create", "purchase_token", token.ID, func(ctx context.Context) error {
		_, err := r.GetDB().NewInsert().Model(token).Exec(ctx)
		return err
	})
}

func (r *purchaseTokenRepository) GetByID(ctx context.Context, id string) (*models.PurchaseToken, error) {
	token := new(models.PurchaseToken)
	err := r.SelectOneWithTimeout(ctx, "get", "purchase_token", id, func(ctx context.Context) error {
		return r.GetDB().NewSelect().Model(token).Where("pt.id = ?", id).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (r *purchaseTokenRepository) GetActiveByUser(ctx context.Context, userID string) ([]*models.PurchaseToken, error) {
	var tokens []*models.PurchaseToken
	err := r.SelectWithTimeout(ctx, "list_active", "purchase_token", func(ctx context.Context) error {
		return r.GetDB().NewSelect().
			Model(&tokens).
			Where("pt.user_id = ?", userID).
			Where("pt.redeemed = false").
			Where("pt.cancelled = false").
			Order("pt.created_at DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// MarkRedeemed flips the terminal redeemed flag. The guard re-checks both
// terminal flags at write time so a second completion or a completion racing
// a cancellation matches no row.
func (r *purchaseTokenRepository) MarkRedeemed(ctx context.Context, id string) error {
	return r.ExecConditional(ctx, "mark_redeemed", "purchase_token", id, func(ctx context.Context) (sql.Result, error) {
		return r.GetDB().NewUpdate().
			Model((*models.PurchaseToken)(nil)).
			Set("redeemed = true").
			Where("id = ?", id).
			Where("redeemed = false").
			Where("cancelled = false").
			Exec(ctx)
	})
}

// MarkCancelled flips the terminal cancelled flag under the same guard.
func (r *purchaseTokenRepository) MarkCancelled(ctx context.Context, id string) error {
	return r.ExecConditional(ctx, "mark_cancelled", "purchase_token", id, func(ctx context.Context) (sql.Result, error) {
		return r.GetDB().NewUpdate().
			Model((*models.PurchaseToken)(nil)).
			Set("cancelled = true").
			Where("id = ?", id).
			Where("redeemed = false").
			Where("cancelled = false").
			Exec(ctx)
	})
}

func (r *purchaseTokenRepository) SetBooking(ctx context.Context, id string, date time.Time, reminderID *string) error {
	return r.ExecConditional(ctx, "set_booking", "purchase_token", id, func(ctx context.Context) (sql.Result, error) {
		return r.GetDB().NewUpdate().
			Model((*models.PurchaseToken)(nil)).
			Set("booking_confirmed = true").
			Set("booking_date = ?", date).
			Set("booking_reminder_id = ?", reminderID).
			Where("id = ?", id).
			Where("redeemed = false").
			Where("cancelled = false").
			Exec(ctx)
	})
}

func (r *purchaseTokenRepository) ClearBooking(ctx context.Context, id string) error {
	return r.ExecConditional(ctx, "clear_booking", "purchase_token", id, func(ctx context.Context) (sql.Result, error) {
		return r.GetDB().NewUpdate().
			Model((*models.PurchaseToken)(nil)).
			Set("booking_confirmed = false").
			Set("booking_date = NULL").
			Set("booking_reminder_id = NULL").
			Where("id = ?", id).
			Exec(ctx)
	})
}
