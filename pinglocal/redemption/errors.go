package redemption

import "errors"

// Precondition violations. Every rejected transition maps to one of these so
// callers can tell a double scan from a stale completion from an ineligible
// cancellation.
var (
	ErrAlreadyScanned     = errors.New("redemption token already scanned")
	ErrAlreadyCompleted   = errors.New("purchase already completed")
	ErrNoActiveToken      = errors.New("no active redemption token for purchase")
	ErrBillAmountRequired = errors.New("bill amount is required for pay-on-the-day offers")
	ErrNoBillToConfirm    = errors.New("no submitted bill to confirm")
	ErrNotDisputable      = errors.New("bill is not in a disputable state")

	ErrAlreadyRedeemed          = errors.New("purchase already redeemed")
	ErrAlreadyCancelled         = errors.New("purchase already cancelled")
	ErrPayUpFrontNotCancellable = errors.New("pay-up-front purchases cannot be cancelled")
	ErrNotBookingOffer          = errors.New("offer does not take bookings")
	ErrBookingNotConfirmed      = errors.New("booking is not confirmed")
	ErrInsideCancellationWindow = errors.New("booking is within the cancellation window")
)

// IsPreconditionViolation reports whether err is one of the transition
// precondition sentinels.
func IsPreconditionViolation(err error) bool {
	for _, sentinel := range []error{
		ErrAlreadyScanned,
		ErrAlreadyCompleted,
		ErrNoActiveToken,
		ErrBillAmountRequired,
		ErrNoBillToConfirm,
		ErrNotDisputable,
		ErrAlreadyRedeemed,
		ErrAlreadyCancelled,
		ErrPayUpFrontNotCancellable,
		ErrNotBookingOffer,
		ErrBookingNotConfirmed,
		ErrInsideCancellationWindow,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
