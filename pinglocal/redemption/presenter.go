package redemption

import (
	"context"
	"encoding/json"
	"sync"

	"log/slog"

	"github.com/google/uuid"
	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
	"github.com/pinglocal/pinglocal/pinglocal/realtime"
)

// Route is the navigation decision the consumer screen should take after a
// remote state change.
type Route int

const (
	RouteNone Route = iota
	RouteWaiting
	RouteConfirmBill
	RouteSuccess
)

func (r Route) String() string {
	switch r {
	case RouteWaiting:
		return "waiting"
	case RouteConfirmBill:
		return "confirm_bill"
	case RouteSuccess:
		return "success"
	default:
		return "none"
	}
}

// RouteDecision pairs a route with the bill amount it carries, when any.
type RouteDecision struct {
	Route      Route
	BillAmount *float64
}

// decideRoute maps the full current token state to a navigation decision.
// The checks run in a load-bearing order: a token can be scanned and
// Submitted at once, and the confirmation screen must win over the generic
// waiting screen in that case.
func decideRoute(token *models.RedemptionToken) RouteDecision {
	switch {
	case token.Status == models.StatusSubmitted && token.BillInputTotal != nil:
		return RouteDecision{Route: RouteConfirmBill, BillAmount: token.BillInputTotal}
	case (token.Scanned || token.Status == models.StatusInProgress) && token.Status != models.StatusFinished:
		return RouteDecision{Route: RouteWaiting}
	case token.Status == models.StatusFinished:
		return RouteDecision{Route: RouteSuccess}
	default:
		return RouteDecision{Route: RouteNone}
	}
}

// ChangeSource scopes the presenter's dependency on the realtime notifier.
type ChangeSource interface {
	Subscribe(table, rowID string) *realtime.Subscription
}

// Presenter owns redemption sessions from the consumer perspective: one
// Session per open QR screen.
type Presenter struct {
	redemptions repositories.RedemptionTokenRepository
	purchases   repositories.PurchaseTokenRepository
	sm          *StateMachine
	changes     ChangeSource
}

func NewPresenter(
	redemptions repositories.RedemptionTokenRepository,
	purchases repositories.PurchaseTokenRepository,
	sm *StateMachine,
	changes ChangeSource,
) *Presenter {
	return &Presenter{
		redemptions: redemptions,
		purchases:   purchases,
		sm:          sm,
		changes:     changes,
	}
}

// Session is the live consumer side of one redemption attempt. Routes emits
// navigation decisions as the business side mutates the shared row; Close
// tears the session down and removes the token if it was never scanned.
type Session struct {
	PurchaseToken *models.PurchaseToken
	Token         *models.RedemptionToken

	presenter *Presenter
	createdID string

	purchaseSub *realtime.Subscription
	tokenSub    *realtime.Subscription

	routes chan RouteDecision
	done   chan struct{}

	mu        sync.Mutex
	disputing bool
	lastBill  *float64
	closeOnce sync.Once
}

// Open starts a session for a purchase token's QR screen.
//
// A Finished token short-circuits creation: the purchase was already
// redeemed, possibly on another device. Otherwise any abandoned unscanned
// sibling is removed and a fresh Pending token inserted, keeping at most one
// unscanned token per purchase no matter how many times the screen is opened.
func (p *Presenter) Open(ctx context.Context, purchaseTokenID string) (*Session, error) {
	purchase, err := p.purchases.GetByID(ctx, purchaseTokenID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		PurchaseToken: purchase,
		presenter:     p,
		routes:        make(chan RouteDecision, 8),
		done:          make(chan struct{}),
	}

	finished, err := p.redemptions.GetFinishedForPurchase(ctx, purchaseTokenID)
	if err != nil {
		return nil, err
	}

	if finished != nil {
		session.Token = finished
	} else {
		if _, err := p.redemptions.DeleteUnscanned(ctx, purchaseTokenID); err != nil {
			return nil, err
		}

		token := &models.RedemptionToken{
			ID:              uuid.NewString(),
			PurchaseTokenID: purchaseTokenID,
			Status:          models.StatusPending,
		}
		if err := p.redemptions.Create(ctx, token); err != nil {
			// Screen still renders the QR from the purchase id; callers log
			// and degrade rather than block.
			return nil, err
		}
		session.Token = token
		session.createdID = token.ID

		// Torn down while the insert was in flight: remove the record right
		// away. The scanned=false guard protects a racing scan.
		select {
		case <-ctx.Done():
			session.deleteOwnToken()
			return nil, ctx.Err()
		default:
		}
	}

	session.purchaseSub = p.changes.Subscribe("purchase_tokens", purchaseTokenID)
	session.tokenSub = p.changes.Subscribe("redemption_tokens", session.Token.ID)
	go session.loop()

	if initial := decideRoute(session.Token); initial.Route != RouteNone {
		session.routes <- initial
	}

	return session, nil
}

// Routes is the stream of navigation decisions for this session.
func (s *Session) Routes() <-chan RouteDecision {
	return s.routes
}

// Confirm accepts the submitted bill. On failure the session stays where it
// is: the caller reports the error and the confirmation screen remains.
func (s *Session) Confirm(ctx context.Context) (*CompleteResult, error) {
	s.mu.Lock()
	tokenID := s.Token.ID
	s.mu.Unlock()

	result, err := s.presenter.sm.ConfirmBill(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.disputing = false
	s.mu.Unlock()
	return result, nil
}

// Dispute rejects the submitted bill and arms the looser resubmission match:
// while disputing, any change to the bill amount routes back to confirmation
// even if the staff client did not flip the status atomically.
func (s *Session) Dispute(ctx context.Context) error {
	s.mu.Lock()
	tokenID := s.Token.ID
	s.mu.Unlock()

	if err := s.presenter.sm.DisputeBill(ctx, tokenID); err != nil {
		return err
	}

	s.mu.Lock()
	s.disputing = true
	s.lastBill = s.Token.BillInputTotal
	s.mu.Unlock()

	s.emit(RouteDecision{Route: RouteWaiting})
	return nil
}

// Close tears the session down: both subscriptions are released exactly once
// and the token this session created is deleted if it was never scanned.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.purchaseSub != nil {
			s.purchaseSub.Unsubscribe()
		}
		if s.tokenSub != nil {
			s.tokenSub.Unsubscribe()
		}
		s.deleteOwnToken()
	})
}

func (s *Session) deleteOwnToken() {
	if s.createdID == "" {
		return
	}
	if err := s.presenter.redemptions.DeleteIfUnscanned(context.Background(), s.createdID); err != nil {
		slog.Error("Failed to clean up redemption token",
			slog.String("type", "db"),
			slog.String("redemption_token_id", s.createdID),
			slog.Any("error", err),
		)
	}
}

// loop reacts to change notifications. Handlers are idempotent: every event
// is mapped from the full row state it carries, never diffed against a
// remembered previous event, so duplicates and reordering are harmless.
func (s *Session) loop() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.tokenSub.C:
			if !ok {
				return
			}
			s.handleTokenEvent(event)
		case <-s.purchaseSub.C:
			// Purchase row changes carry no routing signal of their own; the
			// token row drives navigation.
		}
	}
}

func (s *Session) handleTokenEvent(event realtime.Event) {
	if len(event.New) == 0 || event.New[0] == 'n' {
		return
	}

	var token models.RedemptionToken
	if err := json.Unmarshal(event.New, &token); err != nil {
		slog.Warn("Ignoring undecodable token event",
			slog.String("type", "sys"),
			slog.Any("error", err),
		)
		return
	}
	decision := decideRoute(&token)

	s.mu.Lock()
	s.Token = &token
	switch {
	case token.Status == models.StatusRejected && !s.disputing:
		// The dispute may have been raised through any client; the Rejected
		// row itself arms the resubmission watch, so the fallback works no
		// matter which entry point rejected the bill.
		s.disputing = true
	case s.disputing:
		switch {
		case decision.Route == RouteConfirmBill:
			// Staff resubmitted properly.
			s.disputing = false
		case token.BillInputTotal != nil && billChanged(s.lastBill, token.BillInputTotal):
			// Fallback: amount changed without a status flip.
			decision = RouteDecision{Route: RouteConfirmBill, BillAmount: token.BillInputTotal}
			s.disputing = false
		case decision.Route == RouteWaiting:
			// Still waiting on the resubmission.
			decision = RouteDecision{Route: RouteNone}
		}
	}
	s.lastBill = token.BillInputTotal
	s.mu.Unlock()

	if decision.Route != RouteNone {
		s.emit(decision)
	}
}

func (s *Session) emit(decision RouteDecision) {
	select {
	case s.routes <- decision:
	case <-s.done:
	}
}

func billChanged(previous, current *float64) bool {
	if previous == nil || current == nil {
		return previous != current
	}
	return *previous != *current
}
