package redemption

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
	"github.com/pinglocal/pinglocal/pinglocal/loyalty"
)

// CustomerNotifier delivers best-effort notices to a consumer (in-app row,
// push, email). Implementations never fail the caller.
type CustomerNotifier interface {
	Notify(ctx context.Context, userID, email, title, body string)
}

// CompleteResult is the outcome of a successful complete or bill-confirm
// transition.
type CompleteResult struct {
	Token  *models.RedemptionToken
	Credit *loyalty.CreditResult
}

// StateMachine owns the legal transitions of a redemption token and the side
// effects each transition triggers on the purchase token and the loyalty
// ledger. Every mutation is a conditional update whose guard is re-checked at
// write time, so duplicate transitions arriving late are rejected rather than
// applied.
type StateMachine struct {
	redemptions repositories.RedemptionTokenRepository
	purchases   repositories.PurchaseTokenRepository
	offers      repositories.OfferRepository
	loyalty     *loyalty.Service
	notifier    CustomerNotifier
	tracer      trace.Tracer
}

func NewStateMachine(
	redemptions repositories.RedemptionTokenRepository,
	purchases repositories.PurchaseTokenRepository,
	offers repositories.OfferRepository,
	loyaltyService *loyalty.Service,
	notifier CustomerNotifier,
) *StateMachine {
	return &StateMachine{
		redemptions: redemptions,
		purchases:   purchases,
		offers:      offers,
		loyalty:     loyaltyService,
		notifier:    notifier,
		tracer:      otel.Tracer("redemption"),
	}
}

// Scan is the staff-side entry transition: the QR payload is the purchase
// token id, and the active redemption token for it moves Pending -> In
// Progress with scanned=true.
func (sm *StateMachine) Scan(ctx context.Context, purchaseTokenID string) (*models.RedemptionToken, error) {
	ctx, span := sm.tracer.Start(ctx, "redemption.Scan",
		trace.WithAttributes(attribute.String("purchase_token_id", purchaseTokenID)))
	defer span.End()

	purchase, err := sm.purchases.GetByID(ctx, purchaseTokenID)
	if err != nil {
		return nil, err
	}
	if purchase.Redeemed {
		return nil, ErrAlreadyCompleted
	}

	token, err := sm.redemptions.GetLatestForPurchase(ctx, purchaseTokenID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrNoActiveToken
		}
		return nil, err
	}

	switch {
	case token.Completed || token.Status == models.StatusFinished:
		return nil, ErrAlreadyCompleted
	case token.Scanned:
		return nil, ErrAlreadyScanned
	}

	if err := sm.redemptions.MarkScanned(ctx, token.ID); err != nil {
		// The guard failed between read and write: someone else got there
		// first.
		if repositories.IsPrecondition(err) {
			return nil, ErrAlreadyScanned
		}
		return nil, err
	}

	token.Scanned = true
	token.Status = models.StatusInProgress
	return token, nil
}

// Complete is the staff-side completion. Pay-up-front purchases finish in one
// step and mark the purchase redeemed; pay-on-the-day purchases submit the
// entered bill and wait for the customer's confirmation round trip.
func (sm *StateMachine) Complete(ctx context.Context, redemptionTokenID string, billAmount *float64) (*models.RedemptionToken, error) {
	ctx, span := sm.tracer.Start(ctx, "redemption.Complete",
		trace.WithAttributes(attribute.String("redemption_token_id", redemptionTokenID)))
	defer span.End()

	token, err := sm.redemptions.GetByID(ctx, redemptionTokenID)
	if err != nil {
		return nil, err
	}
	if token.Completed || token.Status == models.StatusFinished {
		return nil, ErrAlreadyCompleted
	}

	purchase, err := sm.purchases.GetByID(ctx, token.PurchaseTokenID)
	if err != nil {
		return nil, err
	}
	if purchase.Redeemed {
		return nil, ErrAlreadyCompleted
	}

	if purchase.PayOnTheDay() {
		if billAmount == nil {
			return nil, ErrBillAmountRequired
		}
		if err := sm.redemptions.SubmitBill(ctx, token.ID, *billAmount); err != nil {
			if repositories.IsPrecondition(err) {
				return nil, ErrAlreadyCompleted
			}
			return nil, err
		}
		token.Status = models.StatusSubmitted
		token.BillInputTotal = billAmount
		return token, nil
	}

	// Pay up front: the bill total is the price paid at claim time.
	if err := sm.finish(ctx, token, purchase, purchase.CustomerPrice); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmBill is the consumer accepting the submitted amount: the purchase
// becomes redeemed, the token finishes, and loyalty points are credited.
func (sm *StateMachine) ConfirmBill(ctx context.Context, redemptionTokenID string) (*CompleteResult, error) {
	ctx, span := sm.tracer.Start(ctx, "redemption.ConfirmBill",
		trace.WithAttributes(attribute.String("redemption_token_id", redemptionTokenID)))
	defer span.End()

	token, err := sm.redemptions.GetByID(ctx, redemptionTokenID)
	if err != nil {
		return nil, err
	}
	if token.Completed || token.Status == models.StatusFinished {
		return nil, ErrAlreadyCompleted
	}
	if token.Status != models.StatusSubmitted || token.BillInputTotal == nil {
		return nil, ErrNoBillToConfirm
	}

	purchase, err := sm.purchases.GetByID(ctx, token.PurchaseTokenID)
	if err != nil {
		return nil, err
	}

	if err := sm.finish(ctx, token, purchase, nil); err != nil {
		return nil, err
	}

	credit := sm.creditPoints(ctx, purchase, *token.BillInputTotal)
	return &CompleteResult{Token: token, Credit: credit}, nil
}

// DisputeBill is the consumer rejecting the submitted amount. The purchase is
// untouched; the token waits in Rejected until staff resubmits.
func (sm *StateMachine) DisputeBill(ctx context.Context, redemptionTokenID string) error {
	ctx, span := sm.tracer.Start(ctx, "redemption.DisputeBill",
		trace.WithAttributes(attribute.String("redemption_token_id", redemptionTokenID)))
	defer span.End()

	if err := sm.redemptions.Reject(ctx, redemptionTokenID); err != nil {
		if repositories.IsPrecondition(err) {
			return ErrNotDisputable
		}
		return err
	}
	return nil
}

// Resubmit is staff re-entering the amount after a dispute. The token returns
// to Submitted carrying the new total and the consumer is routed back to
// confirmation.
func (sm *StateMachine) Resubmit(ctx context.Context, redemptionTokenID string, billAmount float64) error {
	ctx, span := sm.tracer.Start(ctx, "redemption.Resubmit",
		trace.WithAttributes(attribute.String("redemption_token_id", redemptionTokenID)))
	defer span.End()

	if err := sm.redemptions.SubmitBill(ctx, redemptionTokenID, billAmount); err != nil {
		if repositories.IsPrecondition(err) {
			return ErrAlreadyCompleted
		}
		return err
	}
	return nil
}

// finish applies the terminal pair of mutations: purchase redeemed, token
// Finished. The purchase flag goes first because its guard is what makes a
// second completion impossible.
func (sm *StateMachine) finish(ctx context.Context, token *models.RedemptionToken, purchase *models.PurchaseToken, billTotal *float64) error {
	if err := sm.purchases.MarkRedeemed(ctx, purchase.ID); err != nil {
		if repositories.IsPrecondition(err) {
			return ErrAlreadyCompleted
		}
		return err
	}

	now := time.Now()
	if err := sm.redemptions.Finish(ctx, token.ID, billTotal, now); err != nil {
		if repositories.IsPrecondition(err) {
			return ErrAlreadyCompleted
		}
		return fmt.Errorf("purchase %s marked redeemed but token finish failed: %w", purchase.ID, err)
	}

	token.Status = models.StatusFinished
	token.Completed = true
	if billTotal != nil {
		token.BillInputTotal = billTotal
	}
	timeRedeemed := now.Format(models.TimeRedeemedFormat)
	dateRedeemed := now.Format(models.DateRedeemedFormat)
	token.TimeRedeemed = &timeRedeemed
	token.DateRedeemed = &dateRedeemed
	return nil
}

// creditPoints runs the loyalty side effects of a confirmed bill. Failures
// are logged and swallowed: the state mutation has committed and takes
// priority over downstream accounting.
func (sm *StateMachine) creditPoints(ctx context.Context, purchase *models.PurchaseToken, billAmount float64) *loyalty.CreditResult {
	credit, err := sm.loyalty.Credit(ctx, purchase.UserID, purchase.BusinessID, billAmount, purchase.ID)
	if err != nil {
		slog.Error("Failed to credit loyalty points",
			slog.String("type", "sys"),
			slog.String("purchase_token_id", purchase.ID),
			slog.Any("error", err),
		)
		return nil
	}

	if credit.Upgraded && sm.notifier != nil {
		sm.notifier.Notify(ctx, purchase.UserID, purchase.UserEmail,
			"Tier upgrade",
			fmt.Sprintf("You reached the %s tier at %s!", credit.Tier, purchase.OfferName),
		)
	}
	return credit
}
