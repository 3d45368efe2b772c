package web

import (
	"bufio"
	"encoding/json"
	"errors"
	"time"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/pinglocal/pinglocal/pinglocal/database"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
	"github.com/pinglocal/pinglocal/pinglocal/redemption"
	"github.com/pinglocal/pinglocal/pinglocal/services"
)

// Handlers carries the wired application services into the HTTP layer.
type Handlers struct {
	db            *database.DB
	sm            *redemption.StateMachine
	presenter     *redemption.Presenter
	cancellation  *redemption.CancellationService
	search        *services.SearchService
	tokens        *services.TokenRegistry
	reminders     services.ReminderScheduler
	purchases     repositories.PurchaseTokenRepository
	notifications repositories.NotificationRepository
}

func NewHandlers(
	db *database.DB,
	sm *redemption.StateMachine,
	presenter *redemption.Presenter,
	cancellation *redemption.CancellationService,
	search *services.SearchService,
	tokens *services.TokenRegistry,
	reminders services.ReminderScheduler,
	purchases repositories.PurchaseTokenRepository,
	notifications repositories.NotificationRepository,
) *Handlers {
	return &Handlers{
		db:            db,
		sm:            sm,
		presenter:     presenter,
		cancellation:  cancellation,
		search:        search,
		tokens:        tokens,
		reminders:     reminders,
		purchases:     purchases,
		notifications: notifications,
	}
}

// sendRedemptionError maps domain errors onto HTTP statuses: violated state
// preconditions are conflicts, missing rows are 404s, bad input is 400.
func sendRedemptionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, redemption.ErrAlreadyScanned):
		return SendConflict(c, "ALREADY_SCANNED", err.Error())
	case errors.Is(err, redemption.ErrAlreadyCompleted):
		return SendConflict(c, "ALREADY_COMPLETED", err.Error())
	case errors.Is(err, redemption.ErrNoBillToConfirm):
		return SendConflict(c, "NO_BILL_TO_CONFIRM", err.Error())
	case errors.Is(err, redemption.ErrNotDisputable):
		return SendConflict(c, "NOT_DISPUTABLE", err.Error())
	case errors.Is(err, redemption.ErrAlreadyRedeemed):
		return SendConflict(c, "ALREADY_REDEEMED", err.Error())
	case errors.Is(err, redemption.ErrAlreadyCancelled):
		return SendConflict(c, "ALREADY_CANCELLED", err.Error())
	case errors.Is(err, redemption.ErrPayUpFrontNotCancellable):
		return SendConflict(c, "NOT_CANCELLABLE", err.Error())
	case errors.Is(err, redemption.ErrNotBookingOffer):
		return SendConflict(c, "NOT_CANCELLABLE", err.Error())
	case errors.Is(err, redemption.ErrBookingNotConfirmed):
		return SendConflict(c, "NOT_CANCELLABLE", err.Error())
	case errors.Is(err, redemption.ErrInsideCancellationWindow):
		return SendConflict(c, "INSIDE_CANCELLATION_WINDOW", err.Error())
	case errors.Is(err, redemption.ErrNoActiveToken):
		return SendNotFound(c, err.Error())
	case errors.Is(err, redemption.ErrBillAmountRequired):
		return SendBadRequest(c, err.Error())
	case repositories.IsNotFound(err):
		return SendNotFound(c, err.Error())
	case repositories.IsPrecondition(err):
		return SendConflict(c, "PRECONDITION_FAILED", err.Error())
	default:
		slog.Error("Unhandled redemption error",
			slog.String("type", "http"),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		return SendInternalServerError(c, "internal error")
	}
}

// ScanPurchase is the staff QR scan: the path id is the purchase token from
// the QR payload.
func (h *Handlers) ScanPurchase(c *fiber.Ctx) error {
	token, err := h.sm.Scan(c.Context(), c.Params("id"))
	if err != nil {
		return sendRedemptionError(c, err)
	}
	return SendSuccess(c, token, "scanned")
}

type completeRequest struct {
	BillInputTotal *float64 `json:"bill_input_total"`
}

func (h *Handlers) CompleteRedemption(c *fiber.Ctx) error {
	var req completeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return SendBadRequest(c, "invalid request body")
		}
	}

	token, err := h.sm.Complete(c.Context(), c.Params("id"), req.BillInputTotal)
	if err != nil {
		return sendRedemptionError(c, err)
	}
	return SendSuccess(c, token, "completed")
}

func (h *Handlers) ResubmitBill(c *fiber.Ctx) error {
	var req completeRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "invalid request body")
	}
	if req.BillInputTotal == nil {
		return SendBadRequest(c, "bill_input_total is required")
	}

	if err := h.sm.Resubmit(c.Context(), c.Params("id"), *req.BillInputTotal); err != nil {
		return sendRedemptionError(c, err)
	}
	return SendSuccess(c, nil, "resubmitted")
}

func (h *Handlers) ConfirmBill(c *fiber.Ctx) error {
	result, err := h.sm.ConfirmBill(c.Context(), c.Params("id"))
	if err != nil {
		return sendRedemptionError(c, err)
	}
	return SendSuccess(c, result, "confirmed")
}

func (h *Handlers) DisputeBill(c *fiber.Ctx) error {
	if err := h.sm.DisputeBill(c.Context(), c.Params("id")); err != nil {
		return sendRedemptionError(c, err)
	}
	return SendSuccess(c, nil, "disputed")
}

func (h *Handlers) CancelByCustomer(c *fiber.Ctx) error {
	if err := h.cancellation.CancelByCustomer(c.Context(), c.Params("id"), time.Now()); err != nil {
		return sendRedemptionError(c, err)
	}
	return SendSuccess(c, nil, "cancelled")
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *Handlers) CancelByBusiness(c *fiber.Ctx) error {
	var req cancelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return SendBadRequest(c, "invalid request body")
		}
	}

	if err := h.cancellation.CancelByBusiness(c.Context(), c.Params("id"), req.Reason); err != nil {
		return sendRedemptionError(c, err)
	}
	return SendSuccess(c, nil, "cancelled")
}

// StreamRedemption serves the consumer QR screen over SSE: each event is a
// routing decision derived from the shared redemption row.
func (h *Handlers) StreamRedemption(c *fiber.Ctx) error {
	session, err := h.presenter.Open(c.Context(), c.Params("id"))
	if err != nil {
		return sendRedemptionError(c, err)
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer session.Close()

		// Pings double as disconnect detection: a dead client surfaces as a
		// write error on the next tick.
		ping := time.NewTicker(15 * time.Second)
		defer ping.Stop()

		for {
			select {
			case decision := <-session.Routes():
				payload, err := json.Marshal(fiber.Map{
					"route":            decision.Route.String(),
					"bill_input_total": decision.BillAmount,
				})
				if err != nil {
					return
				}
				if _, err := w.WriteString("data: " + string(payload) + "\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-ping.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

func (h *Handlers) SearchOffers(c *fiber.Ctx) error {
	offers, err := h.search.SearchOffers(c.Context(), c.Query("q"), c.QueryInt("limit"))
	if err != nil {
		return SendInternalServerError(c, "search failed")
	}
	return SendSuccess(c, offers, "")
}

func (h *Handlers) SearchBusinesses(c *fiber.Ctx) error {
	businesses, err := h.search.SearchBusinesses(c.Context(), c.Query("q"), c.QueryInt("limit"))
	if err != nil {
		return SendInternalServerError(c, "search failed")
	}
	return SendSuccess(c, businesses, "")
}

type pushTokenRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

func (h *Handlers) RegisterPushToken(c *fiber.Ctx) error {
	var req pushTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "invalid request body")
	}
	if req.UserID == "" || req.Token == "" {
		return SendBadRequest(c, "user_id and token are required")
	}

	h.tokens.Register(req.UserID, req.Token)
	return SendSuccess(c, nil, "registered")
}

func (h *Handlers) ActivePurchases(c *fiber.Ctx) error {
	purchases, err := h.purchases.GetActiveByUser(c.Context(), c.Params("id"))
	if err != nil {
		return SendInternalServerError(c, "lookup failed")
	}
	return SendSuccess(c, purchases, "")
}

func (h *Handlers) UnreadNotifications(c *fiber.Ctx) error {
	notifications, err := h.notifications.GetUnreadByUser(c.Context(), c.Params("id"))
	if err != nil {
		return SendInternalServerError(c, "lookup failed")
	}
	return SendSuccess(c, notifications, "")
}

func (h *Handlers) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendBadRequest(c, "invalid notification id")
	}

	if err := h.notifications.MarkRead(c.Context(), int64(id)); err != nil {
		if repositories.IsNotFound(err) {
			return SendNotFound(c, "notification not found")
		}
		return SendInternalServerError(c, "update failed")
	}
	return SendSuccess(c, nil, "read")
}

type bookingRequest struct {
	BookingDate time.Time `json:"booking_date"`
}

// SetBooking confirms a booking on a purchase and schedules the reminder a
// day before.
func (h *Handlers) SetBooking(c *fiber.Ctx) error {
	var req bookingRequest
	if err := c.BodyParser(&req); err != nil || req.BookingDate.IsZero() {
		return SendBadRequest(c, "booking_date is required")
	}

	purchase, err := h.purchases.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return sendRedemptionError(c, err)
	}
	if purchase.Redeemed || purchase.Cancelled {
		return SendConflict(c, "NOT_BOOKABLE", "purchase is no longer active")
	}

	// Rebooking replaces the reminder; the timer for the old date must not
	// fire.
	if purchase.BookingReminderID != nil {
		h.reminders.Cancel(*purchase.BookingReminderID)
	}

	var reminderID *string
	if delay := time.Until(req.BookingDate.Add(-24 * time.Hour)); delay > 0 {
		id := h.reminders.Schedule(purchase.UserID,
			"Upcoming booking",
			"Your booking for "+purchase.OfferName+" is tomorrow.",
			delay,
		)
		reminderID = &id
	}

	if err := h.purchases.SetBooking(c.Context(), purchase.ID, req.BookingDate, reminderID); err != nil {
		if reminderID != nil {
			h.reminders.Cancel(*reminderID)
		}
		return sendRedemptionError(c, err)
	}
	return SendSuccess(c, nil, "booked")
}

func (h *Handlers) ClearBooking(c *fiber.Ctx) error {
	purchase, err := h.purchases.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return sendRedemptionError(c, err)
	}

	if purchase.BookingReminderID != nil {
		h.reminders.Cancel(*purchase.BookingReminderID)
	}

	if err := h.purchases.ClearBooking(c.Context(), purchase.ID); err != nil {
		return sendRedemptionError(c, err)
	}
	return SendSuccess(c, nil, "booking cleared")
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return SendError(c, fiber.StatusServiceUnavailable, "DB_UNAVAILABLE", "database unreachable", nil)
	}
	return SendSuccess(c, fiber.Map{"status": "ok"}, "")
}
