package redemption

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/pinglocal/pinglocal/pinglocal/config"
	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories/mock"
)

type recordingCanceller struct {
	cancelled []string
}

func (rc *recordingCanceller) Cancel(reminderID string) {
	rc.cancelled = append(rc.cancelled, reminderID)
}

type cancellationFixture struct {
	service   *CancellationService
	purchases *mock.MockPurchaseTokenRepository
	offers    *mock.MockOfferRepository
	reminders *recordingCanceller
	notifier  *recordingNotifier
}

func newCancellationFixture(t *testing.T) *cancellationFixture {
	ctrl := gomock.NewController(t)
	f := &cancellationFixture{
		purchases: mock.NewMockPurchaseTokenRepository(ctrl),
		offers:    mock.NewMockOfferRepository(ctrl),
		reminders: &recordingCanceller{},
		notifier:  &recordingNotifier{},
	}
	f.service = NewCancellationService(f.purchases, f.offers, f.reminders, f.notifier)
	return f
}

func tptr(tm time.Time) *time.Time { return &tm }
func sptr(s string) *string        { return &s }

func TestCancellation_CustomerEligibility(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookingOffer := &models.Offer{ID: "o-1", BookingRequired: true}

	eligible := func() *models.PurchaseToken {
		return &models.PurchaseToken{
			ID:               "pt-1",
			OfferID:          "o-1",
			BookingConfirmed: true,
			BookingDate:      tptr(now.Add(config.CancellationWindow + time.Hour)),
		}
	}

	tests := []struct {
		name    string
		setup   func(f *cancellationFixture)
		wantErr error
	}{
		{
			name: "AlreadyRedeemed",
			setup: func(f *cancellationFixture) {
				p := eligible()
				p.Redeemed = true
				f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").Return(p, nil)
			},
			wantErr: ErrAlreadyRedeemed,
		},
		{
			name: "AlreadyCancelled",
			setup: func(f *cancellationFixture) {
				p := eligible()
				p.Cancelled = true
				f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").Return(p, nil)
			},
			wantErr: ErrAlreadyCancelled,
		},
		{
			name: "PayUpFrontNotCancellable",
			setup: func(f *cancellationFixture) {
				p := eligible()
				p.CustomerPrice = fptr(20)
				f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").Return(p, nil)
			},
			wantErr: ErrPayUpFrontNotCancellable,
		},
		{
			name: "NotABookingOffer",
			setup: func(f *cancellationFixture) {
				f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").Return(eligible(), nil)
				f.offers.EXPECT().GetByID(gomock.Any(), "o-1").
					Return(&models.Offer{ID: "o-1", BookingRequired: false}, nil)
			},
			wantErr: ErrNotBookingOffer,
		},
		{
			name: "BookingNotConfirmed",
			setup: func(f *cancellationFixture) {
				p := eligible()
				p.BookingConfirmed = false
				f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").Return(p, nil)
				f.offers.EXPECT().GetByID(gomock.Any(), "o-1").Return(bookingOffer, nil)
			},
			wantErr: ErrBookingNotConfirmed,
		},
		{
			name: "ExactlyAtWindowBoundary",
			setup: func(f *cancellationFixture) {
				p := eligible()
				p.BookingDate = tptr(now.Add(config.CancellationWindow))
				f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").Return(p, nil)
				f.offers.EXPECT().GetByID(gomock.Any(), "o-1").Return(bookingOffer, nil)
			},
			wantErr: ErrInsideCancellationWindow,
		},
		{
			name: "OneSecondPastBoundary",
			setup: func(f *cancellationFixture) {
				p := eligible()
				p.BookingDate = tptr(now.Add(config.CancellationWindow + time.Second))
				f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").Return(p, nil)
				f.offers.EXPECT().GetByID(gomock.Any(), "o-1").Return(bookingOffer, nil)
				f.purchases.EXPECT().MarkCancelled(gomock.Any(), "pt-1").Return(nil)
				f.offers.EXPECT().DecrementSold(gomock.Any(), "o-1").Return(nil)
			},
		},
		{
			name: "OrphanedOfferStillCancellable",
			setup: func(f *cancellationFixture) {
				f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").Return(eligible(), nil)
				f.offers.EXPECT().GetByID(gomock.Any(), "o-1").
					Return(nil, &repositories.NotFoundError{Entity: "offer", ID: "o-1"})
				f.purchases.EXPECT().MarkCancelled(gomock.Any(), "pt-1").Return(nil)
				f.offers.EXPECT().DecrementSold(gomock.Any(), "o-1").
					Return(&repositories.NotFoundError{Entity: "offer", ID: "o-1"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCancellationFixture(t)
			tt.setup(f)

			err := f.service.CancelByCustomer(context.Background(), "pt-1", now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CancelByCustomer() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCancellation_EffectSequence(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newCancellationFixture(t)

	purchase := &models.PurchaseToken{
		ID:                "pt-1",
		OfferID:           "o-1",
		OfferSlot:         sptr("slot-1"),
		Quantity:          3,
		BookingConfirmed:  true,
		BookingDate:       tptr(now.Add(72 * time.Hour)),
		BookingReminderID: sptr("rem-1"),
	}
	f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").Return(purchase, nil)
	f.offers.EXPECT().GetByID(gomock.Any(), "o-1").
		Return(&models.Offer{ID: "o-1", BookingRequired: true}, nil)
	f.purchases.EXPECT().MarkCancelled(gomock.Any(), "pt-1").Return(nil)
	// Counter rollback failing must not stop the remaining steps.
	f.offers.EXPECT().DecrementSold(gomock.Any(), "o-1").Return(errors.New("transient"))
	f.offers.EXPECT().DecrementSlotBooked(gomock.Any(), "slot-1", 3).Return(nil)

	if err := f.service.CancelByCustomer(context.Background(), "pt-1", now); err != nil {
		t.Fatalf("CancelByCustomer() error = %v", err)
	}
	if len(f.reminders.cancelled) != 1 || f.reminders.cancelled[0] != "rem-1" {
		t.Errorf("reminders cancelled = %v, want [rem-1]", f.reminders.cancelled)
	}
}

func TestCancellation_LostCancelRace(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newCancellationFixture(t)

	purchase := &models.PurchaseToken{
		ID:               "pt-1",
		OfferID:          "o-1",
		BookingConfirmed: true,
		BookingDate:      tptr(now.Add(72 * time.Hour)),
	}
	f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").Return(purchase, nil)
	f.offers.EXPECT().GetByID(gomock.Any(), "o-1").
		Return(&models.Offer{ID: "o-1", BookingRequired: true}, nil)
	f.purchases.EXPECT().MarkCancelled(gomock.Any(), "pt-1").
		Return(&repositories.PreconditionError{Operation: "mark_cancelled", Entity: "purchase_token", ID: "pt-1"})

	if err := f.service.CancelByCustomer(context.Background(), "pt-1", now); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("CancelByCustomer() error = %v, want %v", err, ErrAlreadyCancelled)
	}
}

func TestCancellation_ByBusiness(t *testing.T) {
	t.Run("RedeemedRejected", func(t *testing.T) {
		f := newCancellationFixture(t)
		f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
			Return(&models.PurchaseToken{ID: "pt-1", Redeemed: true}, nil)

		if err := f.service.CancelByBusiness(context.Background(), "pt-1", ""); !errors.Is(err, ErrAlreadyRedeemed) {
			t.Fatalf("CancelByBusiness() error = %v, want %v", err, ErrAlreadyRedeemed)
		}
	})

	t.Run("NotifiesWithReason", func(t *testing.T) {
		f := newCancellationFixture(t)
		// No eligibility window on the business side: pay up front and no
		// booking are both fine.
		f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
			Return(&models.PurchaseToken{
				ID:            "pt-1",
				OfferID:       "o-1",
				OfferName:     "Lunch deal",
				UserID:        "u-1",
				CustomerPrice: fptr(20),
			}, nil)
		f.purchases.EXPECT().MarkCancelled(gomock.Any(), "pt-1").Return(nil)
		f.offers.EXPECT().DecrementSold(gomock.Any(), "o-1").Return(nil)

		if err := f.service.CancelByBusiness(context.Background(), "pt-1", "kitchen flooded"); err != nil {
			t.Fatalf("CancelByBusiness() error = %v", err)
		}
		if len(f.notifier.calls) != 1 || !strings.HasPrefix(f.notifier.calls[0], "u-1:") {
			t.Errorf("notifier calls = %v, want one for u-1", f.notifier.calls)
		}
	})
}
