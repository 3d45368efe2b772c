package redemption

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/pinglocal/pinglocal/pinglocal/config"
	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
)

// ReminderCanceller cancels a scheduled booking reminder. Unknown ids are a
// no-op.
type ReminderCanceller interface {
	Cancel(reminderID string)
}

// CancellationService moves a purchase token from claimed to cancelled and
// rolls back the inventory the claim consumed. The consumer and business
// entry points share one effect sequence; notifying the consumer is the only
// asymmetry.
type CancellationService struct {
	purchases repositories.PurchaseTokenRepository
	offers    repositories.OfferRepository
	reminders ReminderCanceller
	notifier  CustomerNotifier
}

func NewCancellationService(
	purchases repositories.PurchaseTokenRepository,
	offers repositories.OfferRepository,
	reminders ReminderCanceller,
	notifier CustomerNotifier,
) *CancellationService {
	return &CancellationService{
		purchases: purchases,
		offers:    offers,
		reminders: reminders,
		notifier:  notifier,
	}
}

// CancelByCustomer applies the consumer-side eligibility rules before
// cancelling: pay-on-the-day booking offers only, booking confirmed, and
// strictly more than the cancellation window away.
func (cs *CancellationService) CancelByCustomer(ctx context.Context, purchaseTokenID string, now time.Time) error {
	purchase, err := cs.purchases.GetByID(ctx, purchaseTokenID)
	if err != nil {
		return err
	}

	if err := cs.checkEligibility(ctx, purchase, now); err != nil {
		return err
	}

	return cs.cancel(ctx, purchase)
}

// CancelByBusiness is the staff-side entry point. Eligibility windows do not
// apply, only the terminal flags; the consumer is notified with the optional
// human-readable reason.
func (cs *CancellationService) CancelByBusiness(ctx context.Context, purchaseTokenID, reason string) error {
	purchase, err := cs.purchases.GetByID(ctx, purchaseTokenID)
	if err != nil {
		return err
	}

	if purchase.Redeemed {
		return ErrAlreadyRedeemed
	}
	if purchase.Cancelled {
		return ErrAlreadyCancelled
	}

	if err := cs.cancel(ctx, purchase); err != nil {
		return err
	}

	body := fmt.Sprintf("Your booking for %s has been cancelled by the business.", purchase.OfferName)
	if reason != "" {
		body = fmt.Sprintf("%s Reason: %s", body, reason)
	}
	cs.notifier.Notify(ctx, purchase.UserID, purchase.UserEmail, "Booking cancelled", body)

	return nil
}

func (cs *CancellationService) checkEligibility(ctx context.Context, purchase *models.PurchaseToken, now time.Time) error {
	if purchase.Redeemed {
		return ErrAlreadyRedeemed
	}
	if purchase.Cancelled {
		return ErrAlreadyCancelled
	}
	if !purchase.PayOnTheDay() {
		return ErrPayUpFrontNotCancellable
	}

	// The offer row may be gone; the booking fields on the purchase are the
	// denormalized fallback evidence.
	offer, err := cs.offers.GetByID(ctx, purchase.OfferID)
	if err != nil && !repositories.IsNotFound(err) {
		return err
	}
	if offer != nil && !offer.BookingRequired {
		return ErrNotBookingOffer
	}

	if !purchase.BookingConfirmed || purchase.BookingDate == nil {
		return ErrBookingNotConfirmed
	}

	// Strict inequality: exactly 48h out is not cancellable.
	if !purchase.BookingDate.After(now.Add(config.CancellationWindow)) {
		return ErrInsideCancellationWindow
	}
	return nil
}

// cancel runs the shared effect sequence. Steps after the first are best
// effort: a failure is logged and the remaining steps still run, so a partial
// failure never strands the purchase half-cancelled with no recovery path.
func (cs *CancellationService) cancel(ctx context.Context, purchase *models.PurchaseToken) error {
	if err := cs.purchases.MarkCancelled(ctx, purchase.ID); err != nil {
		if repositories.IsPrecondition(err) {
			return ErrAlreadyCancelled
		}
		return err
	}

	if err := cs.offers.DecrementSold(ctx, purchase.OfferID); err != nil {
		// A deleted offer has no inventory to roll back.
		if !repositories.IsNotFound(err) {
			slog.Error("Failed to decrement sold counter",
				slog.String("type", "db"),
				slog.String("offer_id", purchase.OfferID),
				slog.Any("error", err),
			)
		}
	}

	if purchase.OfferSlot != nil {
		if err := cs.offers.DecrementSlotBooked(ctx, *purchase.OfferSlot, purchase.PartySize()); err != nil {
			if !repositories.IsNotFound(err) {
				slog.Error("Failed to decrement slot booked counter",
					slog.String("type", "db"),
					slog.String("slot_id", *purchase.OfferSlot),
					slog.Any("error", err),
				)
			}
		}
	}

	if purchase.BookingReminderID != nil {
		cs.reminders.Cancel(*purchase.BookingReminderID)
	}

	return nil
}
