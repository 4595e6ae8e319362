package flow

import (
	"context"
	"fmt"
	"net/url"

	"github.com/abcstfabu/kapparot-online/pkg/mapping"
	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/validation"
)

// PaymentMethods is the display order of the payment options.
var PaymentMethods = []models.PaymentMethod{models.Stripe, models.PayPal, models.Zelle, models.Matbia, models.OJC}

// MethodOption is one selectable payment method.
type MethodOption struct {
	Method    models.PaymentMethod
	Label     string
	Redirects bool
	Available bool
}

// PaymentView is what AwaitingPayment shows.
type PaymentView struct {
	Draft        *models.DonationDraft
	DisplayName  string
	Methods      []MethodOption
	ContactEmail string
}

// PaymentOutcome is the result of a payment method selection.
// Prompt is the confirmation text for the method, set in every state.
type PaymentOutcome struct {
	State       State
	Method      models.PaymentMethod
	Prompt      string
	RedirectURL string
	Draft       *models.DonationDraft
}

// Payment returns the AwaitingPayment view.
func (m *Machine) Payment(ctx context.Context, sessionID string) (*PaymentView, error) {
	draft, ok := m.Store.Draft(ctx, sessionID)
	if !ok {
		return nil, ErrNoDraft
	}

	view := &PaymentView{
		Draft:        draft,
		DisplayName:  validation.PrayerTypeDisplayName(draft.PrayerType),
		ContactEmail: m.ContactEmail,
	}
	for _, method := range PaymentMethods {
		redirects := method != models.Zelle
		view.Methods = append(view.Methods, MethodOption{
			Method:    method,
			Label:     validation.PaymentMethodLabel(method),
			Redirects: redirects,
			Available: !redirects || m.destination(method) != "",
		})
	}
	return view, nil
}

// SelectPaymentMethod handles a payment method choice. Without confirmation it
// only returns the prompt and leaves every record untouched. On confirmation the
// draft gets its payment label, timestamp and transaction id, the accumulator is
// cleared and a RecordDonation event is scheduled without waiting for it.
// Redirect methods then persist a pending payment for the return entry point;
// Zelle is completed locally instead.
func (m *Machine) SelectPaymentMethod(ctx context.Context, sessionID string, method models.PaymentMethod, confirmed bool) (*PaymentOutcome, error) {
	draft, ok := m.Store.Draft(ctx, sessionID)
	if !ok {
		return nil, ErrNoDraft
	}

	var redirectURL string
	switch method {
	case models.Zelle:
	case models.Stripe, models.PayPal, models.Matbia, models.OJC:
		redirectURL = m.destination(method)
		if redirectURL == "" {
			return nil, ErrPaymentMethodUnavailable
		}
		if method == models.Stripe {
			redirectURL = withPrefilledEmail(redirectURL, draft.Email)
		}
	default:
		return nil, ErrUnknownPaymentMethod
	}

	outcome := &PaymentOutcome{
		State:  AwaitingPayment,
		Method: method,
		Prompt: m.prompt(method, draft),
		Draft:  draft,
	}
	if !confirmed {
		return outcome, nil
	}

	now := m.now()
	updated := *draft
	updated.PaymentMethod = validation.PaymentMethodLabel(method)
	updated.Timestamp = &now
	if updated.TransactionID == "" {
		updated.TransactionID = m.NewTransactionID(now)
	}

	m.Store.SaveDraft(ctx, sessionID, &updated)
	m.Store.ClearAccumulator(ctx, sessionID)

	if err := m.Scheduler.Schedule(ctx, mapping.ToRecordEvent(&updated, now)); err != nil {
		m.Logger.WarnContext(ctx, "failed to schedule donation logging",
			"session_id", sessionID,
			"transaction_id", updated.TransactionID,
			"error", err,
		)
	}

	outcome.Draft = &updated

	if method == models.Zelle {
		completedAt := m.now()
		updated.CompletedAt = &completedAt
		m.Store.SaveDraft(ctx, sessionID, &updated)
		outcome.State = LocallyCompleted
	} else {
		m.Store.SavePendingPayment(ctx, sessionID, &models.PendingPayment{
			TransactionID: updated.TransactionID,
			Amount:        updated.Amount,
			Email:         updated.Email,
		})
		outcome.State = RemoteRedirect
		outcome.RedirectURL = redirectURL
	}

	m.Logger.InfoContext(ctx, "payment method selected",
		"session_id", sessionID,
		"transaction_id", updated.TransactionID,
		"method", method,
		"state", outcome.State,
	)

	return outcome, nil
}

// UnavailableMessage is shown when a method has no configured destination.
func (m *Machine) UnavailableMessage() string {
	return fmt.Sprintf("Donation method not yet implemented. Please contact us at %s", m.ContactEmail)
}

func (m *Machine) destination(method models.PaymentMethod) string {
	switch method {
	case models.Stripe:
		return m.Payments.Stripe
	case models.PayPal:
		return m.Payments.PayPal
	case models.Matbia:
		return m.Payments.Matbia
	case models.OJC:
		return m.Payments.OJC
	}
	return ""
}

var destinationNames = map[models.PaymentMethod]string{
	models.Stripe: "Stripe",
	models.PayPal: "PayPal",
	models.Matbia: "Matbia",
	models.OJC:    "OJC",
}

func (m *Machine) prompt(method models.PaymentMethod, d *models.DonationDraft) string {
	amount := d.Amount.StringFixed(2)
	if method == models.Zelle {
		return fmt.Sprintf("Zelle/QuickPay Donation\n\nAmount: $%s\n\n"+
			"1. Open your banking app\n"+
			"2. Go to Zelle/QuickPay\n"+
			"3. Send $%s to %s\n"+
			"4. Add note: \"Kapparot\"", amount, amount, m.ContactEmail)
	}
	name := destinationNames[method]
	return fmt.Sprintf("%s Donation\n\nAmount: $%s\n\nClick OK to go to %s and donate this amount.", name, amount, name)
}

func withPrefilledEmail(raw, email string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("prefilled_email", email)
	u.RawQuery = q.Encode()
	return u.String()
}
