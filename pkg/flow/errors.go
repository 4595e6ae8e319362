package flow

import "errors"

var (
	// ErrNoDraft means the step needs a donation that was never started. Callers send the user back to the form.
	ErrNoDraft = errors.New("no donation in progress")

	ErrInvalidPrayerType = errors.New("please select who the kapparot is for")
	ErrInvalidAmount     = errors.New("please enter a donation amount greater than zero and no more than 1,000,000")
	ErrInvalidEmail      = errors.New("please enter a valid email address")

	ErrUnknownPaymentMethod     = errors.New("unknown payment method")
	ErrPaymentMethodUnavailable = errors.New("donation method not yet implemented")
)
