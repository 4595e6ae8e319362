package flow

import (
	"log/slog"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/scheduler"
	"github.com/abcstfabu/kapparot-online/pkg/sheets"
	"github.com/abcstfabu/kapparot-online/pkg/storage"
	"github.com/abcstfabu/kapparot-online/pkg/validation"
)

// State is a step of the donation flow.
type State string

const (
	Collecting       State = "collecting"
	PrayerShown      State = "prayer-shown"
	AwaitingPayment  State = "awaiting-payment"
	RemoteRedirect   State = "remote-redirect"
	LocallyCompleted State = "locally-completed"
	Completed        State = "completed"
)

// PaymentURLs are the external destinations of the redirect payment methods.
// An empty URL makes its method unavailable.
type PaymentURLs struct {
	Stripe string
	PayPal string
	Matbia string
	OJC    string
}

// Machine drives one session through Collecting, PrayerShown, AwaitingPayment and Completed.
// All state lives in Store, keyed by session id; Machine itself holds none.
type Machine struct {
	Store        *storage.LocalStore
	Scheduler    scheduler.Scheduler
	Updater      sheets.StatusUpdater
	Payments     PaymentURLs
	ContactEmail string
	Logger       *slog.Logger

	Now              func() time.Time
	NewTransactionID func(time.Time) string
}

func New(store *storage.LocalStore, sched scheduler.Scheduler, updater sheets.StatusUpdater, payments PaymentURLs, contactEmail string, logger *slog.Logger) *Machine {
	return &Machine{
		Store:            store,
		Scheduler:        sched,
		Updater:          updater,
		Payments:         payments,
		ContactEmail:     contactEmail,
		Logger:           logger,
		Now:              time.Now,
		NewTransactionID: validation.NewTransactionID,
	}
}

func (m *Machine) now() time.Time {
	return m.Now().UTC()
}
