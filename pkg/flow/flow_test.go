package flow

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/prayers"
	schedmocks "github.com/abcstfabu/kapparot-online/pkg/scheduler/mocks"
	"github.com/abcstfabu/kapparot-online/pkg/sheets"
	sheetmocks "github.com/abcstfabu/kapparot-online/pkg/sheets/mocks"
	"github.com/abcstfabu/kapparot-online/pkg/storage"
	"github.com/abcstfabu/kapparot-online/pkg/storage/memory"
	"github.com/abcstfabu/kapparot-online/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sid = "8d3c6f1e-2b1a-4c55-9a57-0c0f3a1d2e4b"

var txIDPattern = regexp.MustCompile(`^KAP-\d+-[0-9A-Z]{5}$`)

type fixture struct {
	m       *Machine
	store   *storage.LocalStore
	sched   *schedmocks.Scheduler
	updater *sheetmocks.Client
}

// newFixture returns a machine whose clock advances one second per reading.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewLocalStore(memory.New(0), logger)
	sched := schedmocks.NewScheduler(t)
	updater := sheetmocks.NewClient(t)

	m := New(store, sched, updater, PaymentURLs{
		Stripe: "https://donate.stripe.com/test_123",
		PayPal: "https://paypal.me/kapparot",
		Matbia: "https://matbia.org/kapparot",
	}, "donate@example.org", logger)

	clock := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	m.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	m.NewTransactionID = validation.NewTransactionID

	return &fixture{m: m, store: store, sched: sched, updater: updater}
}

func (f *fixture) submit(t *testing.T, prayerType models.PrayerType, amount, email string) *models.DonationDraft {
	t.Helper()
	d, err := f.m.Submit(context.Background(), sid, SubmitInput{PrayerType: string(prayerType), Amount: amount, Email: email})
	require.NoError(t, err)
	return d
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)

		d := f.submit(t, models.SelfMale, "18", "a@b.com")

		assert.Equal(t, models.SelfMale, d.PrayerType)
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(18)))
		assert.Equal(t, "a@b.com", d.Email)

		stored, ok := f.store.Draft(ctx, sid)
		require.True(t, ok)
		assert.Equal(t, d.PrayerType, stored.PrayerType)
		assert.True(t, stored.Amount.Equal(d.Amount))

		acc := f.store.Accumulator(ctx, sid)
		assert.True(t, acc.TotalAmount.Equal(decimal.NewFromInt(18)))
		assert.Len(t, acc.Prayers, 1)
		assert.Nil(t, acc.Prayers[0].CompletedAt)
	})

	t.Run("Validation", func(t *testing.T) {
		cases := []struct {
			name string
			in   SubmitInput
			err  error
		}{
			{"Missing Category", SubmitInput{Amount: "18", Email: "a@b.com"}, ErrInvalidPrayerType},
			{"Aggregate Category", SubmitInput{PrayerType: "multiple", Amount: "18", Email: "a@b.com"}, ErrInvalidPrayerType},
			{"Zero Amount", SubmitInput{PrayerType: "self-male", Amount: "0", Email: "a@b.com"}, ErrInvalidAmount},
			{"Negative Amount", SubmitInput{PrayerType: "self-male", Amount: "-5", Email: "a@b.com"}, ErrInvalidAmount},
			{"Unparsable Amount", SubmitInput{PrayerType: "self-male", Amount: "chai", Email: "a@b.com"}, ErrInvalidAmount},
			{"Huge Exponent", SubmitInput{PrayerType: "self-male", Amount: "1e999999999", Email: "a@b.com"}, ErrInvalidAmount},
			{"Tiny Exponent", SubmitInput{PrayerType: "self-male", Amount: "1e-999999999", Email: "a@b.com"}, ErrInvalidAmount},
			{"Above Maximum", SubmitInput{PrayerType: "self-male", Amount: "1000000.01", Email: "a@b.com"}, ErrInvalidAmount},
			{"Long Fraction", SubmitInput{PrayerType: "self-male", Amount: "18.0000000001", Email: "a@b.com"}, ErrInvalidAmount},
			{"Bad Email", SubmitInput{PrayerType: "self-male", Amount: "18", Email: "a@b"}, ErrInvalidEmail},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newFixture(t)

				_, err := f.m.Submit(ctx, sid, tc.in)

				assert.ErrorIs(t, err, tc.err)
				_, ok := f.store.Draft(ctx, sid)
				assert.False(t, ok)
				assert.Empty(t, f.store.Accumulator(ctx, sid).Prayers)
			})
		}
	})

	t.Run("Each Submission Adds Exactly Its Amount", func(t *testing.T) {
		f := newFixture(t)
		amounts := []string{"18", "36", "5.50", "100"}
		want := decimal.Zero

		for i, a := range amounts {
			before := f.store.Accumulator(ctx, sid)
			f.submit(t, models.PrayerTypes[i%len(models.PrayerTypes)], a, "a@b.com")
			after := f.store.Accumulator(ctx, sid)

			amount := decimal.RequireFromString(a)
			want = want.Add(amount)
			assert.Len(t, after.Prayers, len(before.Prayers)+1)
			assert.True(t, after.TotalAmount.Sub(before.TotalAmount).Equal(amount))
			assert.True(t, after.CurrentAmount.Equal(amount))
		}
		assert.True(t, f.store.Accumulator(ctx, sid).TotalAmount.Equal(want))
	})
}

func TestPerformAnotherCycles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	amounts := []int64{18, 36, 54, 72, 90}

	for _, a := range amounts {
		f.m.Start(ctx, sid, "", false)
		f.submit(t, models.OtherFemale, decimal.NewFromInt(a).String(), "x@y.org")
		_, err := f.m.Prayer(ctx, sid, StepCeremony, prayers.English)
		require.NoError(t, err)
		email := f.m.PerformAnother(ctx, sid)
		assert.Equal(t, "x@y.org", email)
	}

	acc := f.store.Accumulator(ctx, sid)
	assert.True(t, acc.TotalAmount.Equal(decimal.NewFromInt(270)))
	require.Len(t, acc.Prayers, len(amounts))

	seen := map[time.Time]bool{}
	for _, p := range acc.Prayers {
		assert.False(t, seen[p.PerformedAt], "duplicate performed-at %s", p.PerformedAt)
		seen[p.PerformedAt] = true
		assert.NotNil(t, p.CompletedAt)
	}
}

func TestStart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.submit(t, models.SelfMale, "18", "a@b.com")

	view := f.m.Start(ctx, sid, "a@b.com", false)
	assert.Equal(t, "a@b.com", view.Email)
	assert.Equal(t, 1, view.PrayerCount)
	assert.True(t, view.Total.Equal(decimal.NewFromInt(18)))

	view = f.m.Start(ctx, sid, "", true)
	assert.Zero(t, view.PrayerCount)
	assert.True(t, view.Total.IsZero())
}

func TestPrayer(t *testing.T) {
	ctx := context.Background()

	t.Run("No Draft", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.m.Prayer(ctx, sid, 1, prayers.Hebrew)
		assert.ErrorIs(t, err, ErrNoDraft)
	})

	t.Run("Steps", func(t *testing.T) {
		f := newFixture(t)
		f.submit(t, models.SelfPregnant, "18", "a@b.com")

		intro, err := f.m.Prayer(ctx, sid, 0, prayers.Transliteration)
		require.NoError(t, err)
		assert.Equal(t, StepIntroduction, intro.Step)
		assert.Equal(t, prayers.Introductory, intro.Text)
		assert.Equal(t, "Pregnant Woman (For Yourself)", intro.DisplayName)

		ceremony, err := f.m.Prayer(ctx, sid, StepCeremony, prayers.English)
		require.NoError(t, err)
		want, _ := prayers.For(models.SelfPregnant)
		assert.True(t, ceremony.HasText)
		assert.Equal(t, want, ceremony.Text)

		done, err := f.m.Prayer(ctx, sid, 9, prayers.English)
		require.NoError(t, err)
		assert.Equal(t, StepComplete, done.Step)
		assert.True(t, done.Total.Equal(decimal.NewFromInt(18)))
	})
}

func TestProceedToPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Aggregates The Sitting", func(t *testing.T) {
		f := newFixture(t)
		f.submit(t, models.SelfMale, "18", "a@b.com")
		f.m.PerformAnother(ctx, sid)
		f.submit(t, models.OtherPregnant, "36", "a@b.com")

		d, err := f.m.ProceedToPayment(ctx, sid)
		require.NoError(t, err)

		assert.Equal(t, models.Multiple, d.PrayerType)
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(54)))
		assert.Equal(t, "a@b.com", d.Email)
		assert.Regexp(t, txIDPattern, d.TransactionID)
		require.NotNil(t, d.Timestamp)

		stored, ok := f.store.Draft(ctx, sid)
		require.True(t, ok)
		assert.Equal(t, d.TransactionID, stored.TransactionID)

		acc := f.store.Accumulator(ctx, sid)
		require.Len(t, acc.Prayers, 2)
		assert.NotNil(t, acc.Prayers[1].CompletedAt)
	})

	t.Run("No Draft", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.m.ProceedToPayment(ctx, sid)
		assert.ErrorIs(t, err, ErrNoDraft)
	})

	t.Run("Lost Accumulator Falls Back To Draft", func(t *testing.T) {
		f := newFixture(t)
		f.submit(t, models.SelfMale, "18", "a@b.com")
		f.store.ClearAccumulator(ctx, sid)

		d, err := f.m.ProceedToPayment(ctx, sid)
		require.NoError(t, err)
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(18)))
		assert.Equal(t, "a@b.com", d.Email)
	})
}

func TestPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("No Draft", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.m.Payment(ctx, sid)
		assert.ErrorIs(t, err, ErrNoDraft)

		_, err = f.m.SelectPaymentMethod(ctx, sid, models.Zelle, true)
		assert.ErrorIs(t, err, ErrNoDraft)
	})

	t.Run("Methods", func(t *testing.T) {
		f := newFixture(t)
		f.submit(t, models.SelfMale, "18", "a@b.com")

		view, err := f.m.Payment(ctx, sid)
		require.NoError(t, err)

		available := map[models.PaymentMethod]bool{}
		for _, o := range view.Methods {
			available[o.Method] = o.Available
		}
		assert.Equal(t, map[models.PaymentMethod]bool{
			models.Stripe: true,
			models.PayPal: true,
			models.Zelle:  true,
			models.Matbia: true,
			models.OJC:    false,
		}, available)
	})
}

func TestSelectPaymentMethod_Zelle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.submit(t, models.SelfMale, "18", "a@b.com")

	var scheduled *models.LogEvent
	f.sched.On("Schedule", mock.Anything, mock.AnythingOfType("*models.LogEvent")).
		Run(func(args mock.Arguments) { scheduled = args.Get(1).(*models.LogEvent) }).
		Return(nil).Once()

	outcome, err := f.m.SelectPaymentMethod(ctx, sid, models.Zelle, true)
	require.NoError(t, err)

	assert.Equal(t, LocallyCompleted, outcome.State)
	assert.Empty(t, outcome.RedirectURL)
	assert.Contains(t, outcome.Prompt, "donate@example.org")
	assert.Contains(t, outcome.Prompt, "$18.00")

	d, ok := f.store.Draft(ctx, sid)
	require.True(t, ok)
	assert.NotNil(t, d.CompletedAt)
	assert.Regexp(t, txIDPattern, d.TransactionID)
	assert.Equal(t, "Zelle/QuickPay", d.PaymentMethod)
	assert.Empty(t, f.store.Accumulator(ctx, sid).Prayers)

	_, pending := f.store.PendingPayment(ctx, sid)
	assert.False(t, pending)

	require.NotNil(t, scheduled)
	assert.Equal(t, models.RecordDonation, scheduled.Kind)
	assert.Equal(t, d.TransactionID, scheduled.Record.TransactionID)
	assert.Equal(t, "Male (For Yourself)", scheduled.Record.PrayerType)
	assert.Equal(t, "Payment Selected", scheduled.Record.Status)
}

func TestSelectPaymentMethod_Redirect(t *testing.T) {
	ctx := context.Background()

	t.Run("Declined Leaves State Unchanged", func(t *testing.T) {
		f := newFixture(t)
		f.submit(t, models.SelfMale, "18", "a@b.com")
		before, _ := f.store.Draft(ctx, sid)

		outcome, err := f.m.SelectPaymentMethod(ctx, sid, models.PayPal, false)
		require.NoError(t, err)

		assert.Equal(t, AwaitingPayment, outcome.State)
		assert.Contains(t, outcome.Prompt, "Click OK to go to PayPal")
		after, _ := f.store.Draft(ctx, sid)
		assert.Equal(t, before, after)
		assert.Len(t, f.store.Accumulator(ctx, sid).Prayers, 1)
		f.sched.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
	})

	t.Run("Confirmed Stripe", func(t *testing.T) {
		f := newFixture(t)
		f.submit(t, models.SelfMale, "18", "a+b@c.com")
		aggregate, err := f.m.ProceedToPayment(ctx, sid)
		require.NoError(t, err)

		f.sched.On("Schedule", mock.Anything, mock.Anything).Return(nil).Once()

		outcome, err := f.m.SelectPaymentMethod(ctx, sid, models.Stripe, true)
		require.NoError(t, err)

		assert.Equal(t, RemoteRedirect, outcome.State)
		u, err := url.Parse(outcome.RedirectURL)
		require.NoError(t, err)
		assert.Equal(t, "donate.stripe.com", u.Host)
		assert.Equal(t, "a+b@c.com", u.Query().Get("prefilled_email"))

		p, ok := f.store.PendingPayment(ctx, sid)
		require.True(t, ok)
		assert.Equal(t, aggregate.TransactionID, p.TransactionID)
		assert.True(t, p.Amount.Equal(decimal.NewFromInt(18)))

		d, _ := f.store.Draft(ctx, sid)
		assert.Nil(t, d.CompletedAt)
		assert.Equal(t, "Credit Card (Stripe)", d.PaymentMethod)
		assert.Empty(t, f.store.Accumulator(ctx, sid).Prayers)
	})

	t.Run("Schedule Failure Does Not Block", func(t *testing.T) {
		f := newFixture(t)
		f.submit(t, models.SelfMale, "18", "a@b.com")
		f.sched.On("Schedule", mock.Anything, mock.Anything).Return(assert.AnError)

		outcome, err := f.m.SelectPaymentMethod(ctx, sid, models.Matbia, true)

		require.NoError(t, err)
		assert.Equal(t, RemoteRedirect, outcome.State)
		assert.Equal(t, "https://matbia.org/kapparot", outcome.RedirectURL)
	})

	t.Run("Unconfigured Destination", func(t *testing.T) {
		f := newFixture(t)
		f.submit(t, models.SelfMale, "18", "a@b.com")

		_, err := f.m.SelectPaymentMethod(ctx, sid, models.OJC, true)

		assert.ErrorIs(t, err, ErrPaymentMethodUnavailable)
		assert.Contains(t, f.m.UnavailableMessage(), "donate@example.org")
		assert.Len(t, f.store.Accumulator(ctx, sid).Prayers, 1)
	})

	t.Run("Unknown Method", func(t *testing.T) {
		f := newFixture(t)
		f.submit(t, models.SelfMale, "18", "a@b.com")

		_, err := f.m.SelectPaymentMethod(ctx, sid, "bitcoin", true)

		assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
	})
}

func TestComplete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.submit(t, models.SelfMale, "18", "a@b.com")

	d, ok := f.m.Complete(ctx, sid)
	require.True(t, ok)
	assert.Equal(t, models.SelfMale, d.PrayerType)

	_, ok = f.m.Complete(ctx, sid)
	assert.False(t, ok)
	assert.Len(t, f.store.Accumulator(ctx, sid).Prayers, 1)
}

func TestReturnFromPayment(t *testing.T) {
	ctx := context.Background()
	pending := &models.PendingPayment{TransactionID: "KAP-1759309200000-ABCDE", Amount: decimal.NewFromInt(54), Email: "x@y.org"}

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.store.SavePendingPayment(ctx, sid, pending)
		f.updater.On("UpdateStatus", mock.Anything, pending.TransactionID, "Completed").
			Return(sheets.Result{Success: true, Method: sheets.MethodAppsScript})

		rec := f.m.ReturnFromPayment(ctx, sid)

		assert.True(t, rec.Found())
		assert.True(t, rec.Result.Success)
		_, ok := f.store.PendingPayment(ctx, sid)
		assert.False(t, ok)
	})

	t.Run("Failure Still Discards Pending", func(t *testing.T) {
		f := newFixture(t)
		f.store.SavePendingPayment(ctx, sid, pending)
		f.updater.On("UpdateStatus", mock.Anything, pending.TransactionID, "Completed").
			Return(sheets.Result{Success: false, Method: sheets.MethodAppsScript, Error: "HTTP 502: bad gateway"})

		rec := f.m.ReturnFromPayment(ctx, sid)

		assert.True(t, rec.Found())
		assert.False(t, rec.Result.Success)
		_, ok := f.store.PendingPayment(ctx, sid)
		assert.False(t, ok)
	})

	t.Run("Nothing Pending", func(t *testing.T) {
		f := newFixture(t)

		rec := f.m.ReturnFromPayment(ctx, sid)

		assert.False(t, rec.Found())
		f.updater.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStartNewSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.submit(t, models.SelfMale, "18", "a@b.com")
	f.store.SavePendingPayment(ctx, sid, &models.PendingPayment{TransactionID: "KAP-1-ABCDE"})

	f.m.StartNewSession(ctx, sid)

	_, ok := f.store.Draft(ctx, sid)
	assert.False(t, ok)
	assert.Empty(t, f.store.Accumulator(ctx, sid).Prayers)
	_, ok = f.store.PendingPayment(ctx, sid)
	assert.False(t, ok)
}

func TestNoSessionIsHarmless(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.m.Submit(ctx, "", SubmitInput{PrayerType: "self-male", Amount: "18", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = f.m.Prayer(ctx, "", 1, prayers.Hebrew)
	assert.ErrorIs(t, err, ErrNoDraft)
	_, err = f.m.Payment(ctx, "")
	assert.ErrorIs(t, err, ErrNoDraft)
}
