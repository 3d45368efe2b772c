package repositories

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/uptrace/bun"
)

const (
	offerCacheSize   = 4096
	offerCacheExpiry = 5 * time.Minute
)

type OfferRepository interface {
	GetByID(ctx context.Context, id string) (*models.Offer, error)
	GetActive(ctx context.Context) ([]*models.Offer, error)
	GetSlot(ctx context.Context, slotID string) (*models.OfferSlot, error)
	IncrementSold(ctx context.Context, offerID string) error
	DecrementSold(ctx context.Context, offerID string) error
	DecrementSlotBooked(ctx context.Context, slotID string, quantity int) error
}

type offerRepository struct {
	*BaseRepository
	cache *lru.Cache
}

type cachedOffer struct {
	offer     *models.Offer
	expiresAt time.Time
}

func NewOfferRepository(db *bun.DB) OfferRepository {
	cache, _ := lru.New(offerCacheSize)
	return &offerRepository{
		BaseRepository: NewBaseRepository(db),
		cache:          cache,
	}
}

func (r *offerRepository) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	if entry, ok := r.cache.Get(id); ok {
		cached := entry.(cachedOffer)
		if time.Now().Before(cached.expiresAt) {
			return cached.offer, nil
		}
		r.cache.Remove(id)
	}

	offer := new(models.Offer)
	err := r.SelectOneWithTimeout(ctx, "get", "offer", id, func(ctx context.Context) error {
		return r.GetDB().NewSelect().Model(offer).Where("o.id = ?", id).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	r.cache.Add(id, cachedOffer{offer: offer, expiresAt: time.Now().Add(offerCacheExpiry)})
	return offer, nil
}

func (r *offerRepository) GetActive(ctx context.Context) ([]*models.Offer, error) {
	var offers []*models.Offer
	err := r.SelectWithTimeout(ctx, "list_active", "offer", func(ctx context.Context) error {
		return r.GetDB().NewSelect().
			Model(&offers).
			Where("o.active = true").
			Order("o.name ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *offerRepository) GetSlot(ctx context.Context, slotID string) (*models.OfferSlot, error) {
	slot := new(models.OfferSlot)
	err := r.SelectOneWithTimeout(ctx, "get_slot", "offer_slot", slotID, func(ctx context.Context) error {
		return r.GetDB().NewSelect().Model(slot).Where("os.id = ?", slotID).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

func (r *offerRepository) IncrementSold(ctx context.Context, offerID string) error {
	offer, err := r.fetchOffer(ctx, offerID)
	if err != nil {
		return err
	}

	err = r.SelectOneWithTimeout(ctx, "increment_sold", "offer", offerID, func(ctx context.Context) error {
		_, err := r.GetDB().NewUpdate().
			Model((*models.Offer)(nil)).
			Set("sold_count = ?", offer.SoldCount+1).
			Where("id = ?", offerID).
			Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}
	r.cache.Remove(offerID)
	return nil
}

// DecrementSold lowers the sold counter by one, floored at zero. The counter
// is re-read immediately before the write; concurrent cancellations can still
// lose an update, which is an accepted limitation of this layer.
func (r *offerRepository) DecrementSold(ctx context.Context, offerID string) error {
	offer, err := r.fetchOffer(ctx, offerID)
	if err != nil {
		return err
	}

	next := floorDecrement(offer.SoldCount, 1)

	err = r.SelectOneWithTimeout(ctx, "decrement_sold", "offer", offerID, func(ctx context.Context) error {
		_, err := r.GetDB().NewUpdate().
			Model((*models.Offer)(nil)).
			Set("sold_count = ?", next).
			Where("id = ?", offerID).
			Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}
	r.cache.Remove(offerID)
	return nil
}

// DecrementSlotBooked lowers a slot's booked counter by the party size,
// floored at zero.
func (r *offerRepository) DecrementSlotBooked(ctx context.Context, slotID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	slot, err := r.GetSlot(ctx, slotID)
	if err != nil {
		return err
	}

	next := floorDecrement(slot.BookedCount, quantity)

	return r.SelectOneWithTimeout(ctx, "decrement_slot_booked", "offer_slot", slotID, func(ctx context.Context) error {
		_, err := r.GetDB().NewUpdate().
			Model((*models.OfferSlot)(nil)).
			Set("booked_count = ?", next).
			Where("id = ?", slotID).
			Exec(ctx)
		return err
	})
}

// floorDecrement lowers a counter, clamped at zero. Rollbacks never drive
// inventory counters negative however many times they run.
func floorDecrement(current, by int) int {
	next := current - by
	if next < 0 {
		return 0
	}
	return next
}

// fetchOffer bypasses the read cache; counter math must start from the
// current committed value, not a cached row.
func (r *offerRepository) fetchOffer(ctx context.Context, id string) (*models.Offer, error) {
	offer := new(models.Offer)
	err := r.SelectOneWithTimeout(ctx, "get", "offer", id, func(ctx context.Context) error {
		return r.GetDB().NewSelect().Model(offer).Where("o.id = ?", id).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return offer, nil
}
