package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/mock/gomock"

	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories/mock"
	"github.com/pinglocal/pinglocal/pinglocal/loyalty"
	"github.com/pinglocal/pinglocal/pinglocal/redemption"
	"github.com/pinglocal/pinglocal/pinglocal/services"
)

// stubScheduler records reminder traffic instead of arming timers.
type stubScheduler struct {
	mu        sync.Mutex
	nextID    int
	scheduled []string
	cancelled []string
}

func (s *stubScheduler) Schedule(userID, title, body string, delay time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("rem-%d", s.nextID)
	s.scheduled = append(s.scheduled, id)
	return id
}

func (s *stubScheduler) Cancel(reminderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = append(s.cancelled, reminderID)
}

type webFixture struct {
	app         *fiber.App
	purchases   *mock.MockPurchaseTokenRepository
	redemptions *mock.MockRedemptionTokenRepository
	reminders   *stubScheduler
}

func newWebFixture(t *testing.T) *webFixture {
	ctrl := gomock.NewController(t)
	purchases := mock.NewMockPurchaseTokenRepository(ctrl)
	redemptions := mock.NewMockRedemptionTokenRepository(ctrl)
	offers := mock.NewMockOfferRepository(ctrl)
	loyaltyRepo := mock.NewMockLoyaltyRepository(ctrl)
	businesses := mock.NewMockBusinessRepository(ctrl)
	notifications := mock.NewMockNotificationRepository(ctrl)

	tokens := services.NewTokenRegistry()
	notify := services.NewCustomerNotifyService(notifications, services.NewExpoPushClient(""), tokens, services.NewMailer("", "", ""))
	sm := redemption.NewStateMachine(redemptions, purchases, offers, loyalty.NewService(loyaltyRepo), notify)
	cancellation := redemption.NewCancellationService(purchases, offers, services.NewReminderManager(services.NewExpoPushClient(""), tokens), notify)
	search := services.NewSearchService(offers, businesses)

	reminders := &stubScheduler{}
	h := NewHandlers(nil, sm, nil, cancellation, search, tokens, reminders, purchases, notifications)
	return &webFixture{
		app:         NewApp(h),
		purchases:   purchases,
		redemptions: redemptions,
		reminders:   reminders,
	}
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, APIResponse) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	var envelope APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, envelope
}

func TestScanEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newWebFixture(t)
		f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
			Return(&models.PurchaseToken{ID: "pt-1"}, nil)
		f.redemptions.EXPECT().GetLatestForPurchase(gomock.Any(), "pt-1").
			Return(&models.RedemptionToken{ID: "rt-1", Status: models.StatusPending}, nil)
		f.redemptions.EXPECT().MarkScanned(gomock.Any(), "rt-1").Return(nil)

		resp, envelope := doRequest(t, f.app, http.MethodPost, "/api/staff/purchases/pt-1/scan", "")
		if resp.StatusCode != http.StatusOK || !envelope.Success {
			t.Fatalf("scan = %d %+v, want 200 success", resp.StatusCode, envelope)
		}
	})

	t.Run("AlreadyScannedIsConflict", func(t *testing.T) {
		f := newWebFixture(t)
		f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
			Return(&models.PurchaseToken{ID: "pt-1"}, nil)
		f.redemptions.EXPECT().GetLatestForPurchase(gomock.Any(), "pt-1").
			Return(&models.RedemptionToken{ID: "rt-1", Scanned: true, Status: models.StatusInProgress}, nil)

		resp, envelope := doRequest(t, f.app, http.MethodPost, "/api/staff/purchases/pt-1/scan", "")
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("status = %d, want 409", resp.StatusCode)
		}
		if envelope.Error == nil || envelope.Error.Code != "ALREADY_SCANNED" {
			t.Fatalf("error = %+v, want ALREADY_SCANNED", envelope.Error)
		}
	})

	t.Run("UnknownPurchaseIsNotFound", func(t *testing.T) {
		f := newWebFixture(t)
		f.purchases.EXPECT().GetByID(gomock.Any(), "pt-x").
			Return(nil, &repositories.NotFoundError{Entity: "purchase_token", ID: "pt-x"})

		resp, _ := doRequest(t, f.app, http.MethodPost, "/api/staff/purchases/pt-x/scan", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestResubmitEndpoint_RequiresBill(t *testing.T) {
	f := newWebFixture(t)

	resp, envelope := doRequest(t, f.app, http.MethodPost, "/api/staff/redemptions/rt-1/resubmit", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if envelope.Error == nil || envelope.Error.Code != "BAD_REQUEST" {
		t.Fatalf("error = %+v, want BAD_REQUEST", envelope.Error)
	}
}

func TestCompleteEndpoint_PayOnTheDay(t *testing.T) {
	f := newWebFixture(t)
	f.redemptions.EXPECT().GetByID(gomock.Any(), "rt-1").
		Return(&models.RedemptionToken{ID: "rt-1", PurchaseTokenID: "pt-1", Scanned: true, Status: models.StatusInProgress}, nil)
	f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
		Return(&models.PurchaseToken{ID: "pt-1"}, nil)
	f.redemptions.EXPECT().SubmitBill(gomock.Any(), "rt-1", 42.5).Return(nil)

	resp, envelope := doRequest(t, f.app, http.MethodPost, "/api/staff/redemptions/rt-1/complete", `{"bill_input_total":42.5}`)
	if resp.StatusCode != http.StatusOK || !envelope.Success {
		t.Fatalf("complete = %d %+v, want 200 success", resp.StatusCode, envelope)
	}
}

func TestBookingEndpoint_RebookCancelsOldReminder(t *testing.T) {
	f := newWebFixture(t)

	oldReminder := "rem-old"
	f.purchases.EXPECT().GetByID(gomock.Any(), "pt-1").
		Return(&models.PurchaseToken{
			ID:                "pt-1",
			UserID:            "user-1",
			OfferName:         "Dinner for two",
			BookingReminderID: &oldReminder,
		}, nil)
	f.purchases.EXPECT().SetBooking(gomock.Any(), "pt-1", gomock.Any(), gomock.Any()).
		Return(nil)

	date := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)
	resp, envelope := doRequest(t, f.app, http.MethodPost, "/api/purchases/pt-1/booking",
		fmt.Sprintf(`{"booking_date":%q}`, date))
	if resp.StatusCode != http.StatusOK || !envelope.Success {
		t.Fatalf("booking = %d %+v, want 200 success", resp.StatusCode, envelope)
	}

	if len(f.reminders.cancelled) != 1 || f.reminders.cancelled[0] != oldReminder {
		t.Fatalf("cancelled = %v, want the previous reminder %q", f.reminders.cancelled, oldReminder)
	}
	if len(f.reminders.scheduled) != 1 {
		t.Fatalf("scheduled = %v, want exactly one replacement reminder", f.reminders.scheduled)
	}
}

func TestPushTokenEndpoint_Validation(t *testing.T) {
	f := newWebFixture(t)

	resp, _ := doRequest(t, f.app, http.MethodPost, "/api/push-token", `{"user_id":""}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
