package redemption

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories/mock"
	"github.com/pinglocal/pinglocal/pinglocal/loyalty"
)

func fptr(f float64) *float64 { return &f }

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) Notify(_ context.Context, userID, _, title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, userID+":"+title)
}

type machineMocks struct {
	redemptions *mock.MockRedemptionTokenRepository
	purchases   *mock.MockPurchaseTokenRepository
	offers      *mock.MockOfferRepository
	loyalty     *mock.MockLoyaltyRepository
	notifier    *recordingNotifier
}

func newStateMachine(t *testing.T) (*StateMachine, *machineMocks) {
	ctrl := gomock.NewController(t)
	m := &machineMocks{
		redemptions: mock.NewMockRedemptionTokenRepository(ctrl),
		purchases:   mock.NewMockPurchaseTokenRepository(ctrl),
		offers:      mock.NewMockOfferRepository(ctrl),
		loyalty:     mock.NewMockLoyaltyRepository(ctrl),
		notifier:    &recordingNotifier{},
	}
	sm := NewStateMachine(m.redemptions, m.purchases, m.offers, loyalty.NewService(m.loyalty), m.notifier)
	return sm, m
}

func TestStateMachine_Scan(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *machineMocks)
		wantErr error
	}{
		{
			name: "Success",
			setup: func(m *machineMocks) {
				m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
					Return(&models.PurchaseToken{ID: "pt-1"}, nil)
				m.redemptions.EXPECT().GetLatestForPurchase(gomock.Any(), "pt-1").
					Return(&models.RedemptionToken{ID: "rt-1", PurchaseTokenID: "pt-1", Status: models.StatusPending}, nil)
				m.redemptions.EXPECT().MarkScanned(gomock.Any(), "rt-1").Return(nil)
			},
		},
		{
			name: "DoubleScanRejected",
			setup: func(m *machineMocks) {
				m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
					Return(&models.PurchaseToken{ID: "pt-1"}, nil)
				m.redemptions.EXPECT().GetLatestForPurchase(gomock.Any(), "pt-1").
					Return(&models.RedemptionToken{ID: "rt-1", Scanned: true, Status: models.StatusInProgress}, nil)
			},
			wantErr: ErrAlreadyScanned,
		},
		{
			name: "FinishedTokenRejected",
			setup: func(m *machineMocks) {
				m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
					Return(&models.PurchaseToken{ID: "pt-1"}, nil)
				m.redemptions.EXPECT().GetLatestForPurchase(gomock.Any(), "pt-1").
					Return(&models.RedemptionToken{ID: "rt-1", Scanned: true, Status: models.StatusFinished, Completed: true}, nil)
			},
			wantErr: ErrAlreadyCompleted,
		},
		{
			name: "RedeemedPurchaseRejected",
			setup: func(m *machineMocks) {
				m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
					Return(&models.PurchaseToken{ID: "pt-1", Redeemed: true}, nil)
			},
			wantErr: ErrAlreadyCompleted,
		},
		{
			name: "NoActiveToken",
			setup: func(m *machineMocks) {
				m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
					Return(&models.PurchaseToken{ID: "pt-1"}, nil)
				m.redemptions.EXPECT().GetLatestForPurchase(gomock.Any(), "pt-1").
					Return(nil, &repositories.NotFoundError{Entity: "redemption_token", ID: "pt-1"})
			},
			wantErr: ErrNoActiveToken,
		},
		{
			name: "LostScanRace",
			setup: func(m *machineMocks) {
				m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
					Return(&models.PurchaseToken{ID: "pt-1"}, nil)
				m.redemptions.EXPECT().GetLatestForPurchase(gomock.Any(), "pt-1").
					Return(&models.RedemptionToken{ID: "rt-1", Status: models.StatusPending}, nil)
				m.redemptions.EXPECT().MarkScanned(gomock.Any(), "rt-1").
					Return(&repositories.PreconditionError{Operation: "mark_scanned", Entity: "redemption_token", ID: "rt-1"})
			},
			wantErr: ErrAlreadyScanned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, m := newStateMachine(t)
			tt.setup(m)

			token, err := sm.Scan(context.Background(), "pt-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Scan() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if !token.Scanned || token.Status != models.StatusInProgress {
					t.Errorf("Scan() token = %+v, want scanned In Progress", token)
				}
			}
		})
	}
}

func TestStateMachine_Complete_PayUpFront(t *testing.T) {
	sm, m := newStateMachine(t)

	m.redemptions.EXPECT().GetByID(gomock.Any(), "rt-1").
		Return(&models.RedemptionToken{ID: "rt-1", PurchaseTokenID: "pt-1", Scanned: true, Status: models.StatusInProgress}, nil)
	m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
		Return(&models.PurchaseToken{ID: "pt-1", CustomerPrice: fptr(25)}, nil)
	m.purchases.EXPECT().MarkRedeemed(gomock.Any(), "pt-1").Return(nil)
	m.redemptions.EXPECT().Finish(gomock.Any(), "rt-1", fptr(25), gomock.Any()).Return(nil)

	token, err := sm.Complete(context.Background(), "rt-1", nil)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if token.Status != models.StatusFinished || !token.Completed {
		t.Errorf("Complete() token = %+v, want Finished and completed", token)
	}
	if token.BillInputTotal == nil || *token.BillInputTotal != 25 {
		t.Errorf("Complete() bill = %v, want 25", token.BillInputTotal)
	}
	if token.TimeRedeemed == nil || token.DateRedeemed == nil {
		t.Error("Complete() missing redeemed timestamps")
	}
}

func TestStateMachine_Complete_PayOnTheDay(t *testing.T) {
	t.Run("SubmitsBill", func(t *testing.T) {
		sm, m := newStateMachine(t)

		m.redemptions.EXPECT().GetByID(gomock.Any(), "rt-1").
			Return(&models.RedemptionToken{ID: "rt-1", PurchaseTokenID: "pt-1", Scanned: true, Status: models.StatusInProgress}, nil)
		m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
			Return(&models.PurchaseToken{ID: "pt-1"}, nil)
		// No MarkRedeemed expectation: the purchase must stay unredeemed
		// until the customer confirms.
		m.redemptions.EXPECT().SubmitBill(gomock.Any(), "rt-1", 42.5).Return(nil)

		token, err := sm.Complete(context.Background(), "rt-1", fptr(42.5))
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if token.Status != models.StatusSubmitted {
			t.Errorf("Complete() status = %q, want %q", token.Status, models.StatusSubmitted)
		}
	})

	t.Run("MissingBillRejected", func(t *testing.T) {
		sm, m := newStateMachine(t)

		m.redemptions.EXPECT().GetByID(gomock.Any(), "rt-1").
			Return(&models.RedemptionToken{ID: "rt-1", PurchaseTokenID: "pt-1", Scanned: true, Status: models.StatusInProgress}, nil)
		m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
			Return(&models.PurchaseToken{ID: "pt-1"}, nil)

		if _, err := sm.Complete(context.Background(), "rt-1", nil); !errors.Is(err, ErrBillAmountRequired) {
			t.Fatalf("Complete() error = %v, want %v", err, ErrBillAmountRequired)
		}
	})
}

func TestStateMachine_NoDoubleCompletion(t *testing.T) {
	t.Run("CompletedTokenRejected", func(t *testing.T) {
		sm, m := newStateMachine(t)

		m.redemptions.EXPECT().GetByID(gomock.Any(), "rt-1").
			Return(&models.RedemptionToken{ID: "rt-1", Status: models.StatusFinished, Completed: true}, nil)

		if _, err := sm.Complete(context.Background(), "rt-1", nil); !errors.Is(err, ErrAlreadyCompleted) {
			t.Fatalf("Complete() error = %v, want %v", err, ErrAlreadyCompleted)
		}
	})

	t.Run("LostCompletionRace", func(t *testing.T) {
		sm, m := newStateMachine(t)

		m.redemptions.EXPECT().GetByID(gomock.Any(), "rt-1").
			Return(&models.RedemptionToken{ID: "rt-1", PurchaseTokenID: "pt-1", Scanned: true, Status: models.StatusInProgress}, nil)
		m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
			Return(&models.PurchaseToken{ID: "pt-1", CustomerPrice: fptr(25)}, nil)
		m.purchases.EXPECT().MarkRedeemed(gomock.Any(), "pt-1").
			Return(&repositories.PreconditionError{Operation: "mark_redeemed", Entity: "purchase_token", ID: "pt-1"})

		if _, err := sm.Complete(context.Background(), "rt-1", nil); !errors.Is(err, ErrAlreadyCompleted) {
			t.Fatalf("Complete() error = %v, want %v", err, ErrAlreadyCompleted)
		}
	})
}

func TestStateMachine_ConfirmBill(t *testing.T) {
	sm, m := newStateMachine(t)

	m.redemptions.EXPECT().GetByID(gomock.Any(), "rt-1").
		Return(&models.RedemptionToken{
			ID:              "rt-1",
			PurchaseTokenID: "pt-1",
			Scanned:         true,
			Status:          models.StatusSubmitted,
			BillInputTotal:  fptr(45),
		}, nil)
	m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
		Return(&models.PurchaseToken{ID: "pt-1", UserID: "u-1", BusinessID: "b-1", OfferName: "Lunch deal"}, nil)
	m.purchases.EXPECT().MarkRedeemed(gomock.Any(), "pt-1").Return(nil)
	m.redemptions.EXPECT().Finish(gomock.Any(), "rt-1", nil, gomock.Any()).Return(nil)

	m.loyalty.EXPECT().GetAccount(gomock.Any(), "u-1", "b-1").Return(nil, nil)
	m.loyalty.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(nil)
	m.loyalty.EXPECT().TotalPoints(gomock.Any(), "u-1", "b-1").Return(int64(450), nil)
	m.loyalty.EXPECT().UpsertAccountTier(gomock.Any(), "u-1", "b-1", loyalty.TierHero).Return(nil)

	result, err := sm.ConfirmBill(context.Background(), "rt-1")
	if err != nil {
		t.Fatalf("ConfirmBill() error = %v", err)
	}
	if result.Credit == nil || result.Credit.Points != 450 {
		t.Fatalf("ConfirmBill() credit = %+v, want 450 points", result.Credit)
	}
	if !result.Credit.Upgraded {
		t.Error("ConfirmBill() expected tier upgrade")
	}
	if len(m.notifier.calls) != 1 {
		t.Errorf("ConfirmBill() notifier calls = %d, want 1", len(m.notifier.calls))
	}
}

func TestStateMachine_ConfirmBill_LoyaltyFailureIsSwallowed(t *testing.T) {
	sm, m := newStateMachine(t)

	m.redemptions.EXPECT().GetByID(gomock.Any(), "rt-1").
		Return(&models.RedemptionToken{
			ID:              "rt-1",
			PurchaseTokenID: "pt-1",
			Scanned:         true,
			Status:          models.StatusSubmitted,
			BillInputTotal:  fptr(45),
		}, nil)
	m.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
		Return(&models.PurchaseToken{ID: "pt-1", UserID: "u-1", BusinessID: "b-1"}, nil)
	m.purchases.EXPECT().MarkRedeemed(gomock.Any(), "pt-1").Return(nil)
	m.redemptions.EXPECT().Finish(gomock.Any(), "rt-1", nil, gomock.Any()).Return(nil)

	m.loyalty.EXPECT().GetAccount(gomock.Any(), "u-1", "b-1").Return(nil, nil)
	m.loyalty.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(errors.New("ledger down"))

	result, err := sm.ConfirmBill(context.Background(), "rt-1")
	if err != nil {
		t.Fatalf("ConfirmBill() error = %v, want success despite ledger failure", err)
	}
	if result.Credit != nil {
		t.Errorf("ConfirmBill() credit = %+v, want nil", result.Credit)
	}
}

func TestStateMachine_ConfirmBill_NothingSubmitted(t *testing.T) {
	sm, m := newStateMachine(t)

	m.redemptions.EXPECT().GetByID(gomock.Any(), "rt-1").
		Return(&models.RedemptionToken{ID: "rt-1", Scanned: true, Status: models.StatusInProgress}, nil)

	if _, err := sm.ConfirmBill(context.Background(), "rt-1"); !errors.Is(err, ErrNoBillToConfirm) {
		t.Fatalf("ConfirmBill() error = %v, want %v", err, ErrNoBillToConfirm)
	}
}

func TestStateMachine_DisputeAndResubmit(t *testing.T) {
	t.Run("Dispute", func(t *testing.T) {
		sm, m := newStateMachine(t)
		m.redemptions.EXPECT().Reject(gomock.Any(), "rt-1").Return(nil)

		if err := sm.DisputeBill(context.Background(), "rt-1"); err != nil {
			t.Fatalf("DisputeBill() error = %v", err)
		}
	})

	t.Run("DisputeOutsideSubmitted", func(t *testing.T) {
		sm, m := newStateMachine(t)
		m.redemptions.EXPECT().Reject(gomock.Any(), "rt-1").
			Return(&repositories.PreconditionError{Operation: "reject", Entity: "redemption_token", ID: "rt-1"})

		if err := sm.DisputeBill(context.Background(), "rt-1"); !errors.Is(err, ErrNotDisputable) {
			t.Fatalf("DisputeBill() error = %v, want %v", err, ErrNotDisputable)
		}
	})

	t.Run("Resubmit", func(t *testing.T) {
		sm, m := newStateMachine(t)
		m.redemptions.EXPECT().SubmitBill(gomock.Any(), "rt-1", 45.0).Return(nil)

		if err := sm.Resubmit(context.Background(), "rt-1", 45.0); err != nil {
			t.Fatalf("Resubmit() error = %v", err)
		}
	})

	t.Run("ResubmitAfterFinishRejected", func(t *testing.T) {
		sm, m := newStateMachine(t)
		m.redemptions.EXPECT().SubmitBill(gomock.Any(), "rt-1", 45.0).
			Return(&repositories.PreconditionError{Operation: "submit_bill", Entity: "redemption_token", ID: "rt-1"})

		if err := sm.Resubmit(context.Background(), "rt-1", 45.0); !errors.Is(err, ErrAlreadyCompleted) {
			t.Fatalf("Resubmit() error = %v, want %v", err, ErrAlreadyCompleted)
		}
	})
}
