// Package pages renders the donation flow as server-side HTML pages.
package pages

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/abcstfabu/kapparot-online/pkg/api"
	"github.com/abcstfabu/kapparot-online/pkg/flow"
	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/prayers"
	"github.com/abcstfabu/kapparot-online/pkg/session"
	"github.com/abcstfabu/kapparot-online/pkg/validation"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "prayer", "payment", "confirm", "completion", "payment_success"}

// Site is the page chrome.
type Site struct {
	Name         string
	Description  string
	ContactEmail string
}

// PagesHandler drives the flow state machine from browser form posts.
type PagesHandler struct {
	Flow   *flow.Machine
	Site   Site
	Logger *slog.Logger

	templates map[string]*template.Template
}

// NewPagesHandler parses the page templates.
func NewPagesHandler(machine *flow.Machine, site Site, logger *slog.Logger) (*PagesHandler, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"text":  func(t prayers.Text, l prayers.Language) string { return t.In(l) },
		"dir": func(l prayers.Language) string {
			if l == prayers.Hebrew {
				return "rtl"
			}
			return "ltr"
		},
		"lines": func(s string) []string { return strings.Split(s, "\n") },
		"label": func(p models.PrayerType) string { return validation.PrayerTypeDisplayName(p) },
	}

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		templates[name] = t
	}

	return &PagesHandler{Flow: machine, Site: site, Logger: logger, templates: templates}, nil
}

type page struct {
	Site Site
	Data any
}

type homeData struct {
	View        *flow.HomeView
	Form        api.PrayerForm
	Error       string
	PrayerTypes []models.PrayerType
}

type prayerData struct {
	View      *flow.PrayerView
	Languages []prayers.Language
}

type paymentData struct {
	View   *flow.PaymentView
	Notice string
}

type successData struct {
	Reconciliation *flow.Reconciliation
}

// GetHome shows the Collecting form.
func (h *PagesHandler) GetHome(w http.ResponseWriter, r *http.Request, params api.GetHomeParams) {
	var email string
	if params.Email != nil {
		email = *params.Email
	}
	reset := params.Reset != nil && *params.Reset

	view := h.Flow.Start(r.Context(), session.FromContext(r.Context()), email, reset)
	h.render(w, r, http.StatusOK, "home", &homeData{
		View:        view,
		Form:        api.PrayerForm{Email: view.Email},
		PrayerTypes: models.PrayerTypes,
	})
}

// SubmitPrayer validates the Collecting form. Invalid input re-renders the
// form with the error and the submitted values.
func (h *PagesHandler) SubmitPrayer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	form := api.PrayerForm{
		PrayerType: r.PostForm.Get("prayerType"),
		Amount:     r.PostForm.Get("amount"),
		Email:      r.PostForm.Get("email"),
	}

	ctx := r.Context()
	sid := session.FromContext(ctx)
	_, err := h.Flow.Submit(ctx, sid, flow.SubmitInput{
		PrayerType: form.PrayerType,
		Amount:     form.Amount,
		Email:      form.Email,
	})
	if err != nil {
		h.render(w, r, http.StatusBadRequest, "home", &homeData{
			View:        h.Flow.Start(ctx, sid, form.Email, false),
			Form:        form,
			Error:       userMessage(err),
			PrayerTypes: models.PrayerTypes,
		})
		return
	}

	http.Redirect(w, r, "/prayer-display", http.StatusSeeOther)
}

// GetPrayerDisplay shows one step of the ritual text.
func (h *PagesHandler) GetPrayerDisplay(w http.ResponseWriter, r *http.Request, params api.GetPrayerDisplayParams) {
	step := flow.StepIntroduction
	if params.Step != nil {
		step = *params.Step
	}
	lang := prayers.Hebrew
	if params.Lang != nil {
		lang = prayers.ParseLanguage(string(*params.Lang))
	}

	view, err := h.Flow.Prayer(r.Context(), session.FromContext(r.Context()), step, lang)
	if err != nil {
		h.handleFlowError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "prayer", &prayerData{View: view, Languages: prayers.Languages})
}

// PerformAnother loops back to the form with the email prefilled.
func (h *PagesHandler) PerformAnother(w http.ResponseWriter, r *http.Request) {
	email := h.Flow.PerformAnother(r.Context(), session.FromContext(r.Context()))
	target := "/"
	if email != "" {
		target = "/?email=" + url.QueryEscape(email)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// ProceedToPayment aggregates the sitting and moves to AwaitingPayment.
func (h *PagesHandler) ProceedToPayment(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Flow.ProceedToPayment(r.Context(), session.FromContext(r.Context())); err != nil {
		h.handleFlowError(w, r, err)
		return
	}
	http.Redirect(w, r, "/payment", http.StatusSeeOther)
}

// GetPayment lists the payment methods for the current draft.
func (h *PagesHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	view, err := h.Flow.Payment(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		h.handleFlowError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "payment", &paymentData{View: view})
}

// SelectPaymentMethod handles a method choice. A first post without an answer
// shows the confirmation prompt; "no" returns to the method list unchanged.
func (h *PagesHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	form := api.PaymentForm{Method: r.PostForm.Get("method")}
	if c := r.PostForm.Get("confirm"); c != "" {
		confirm := api.PaymentFormConfirm(c)
		form.Confirm = &confirm
	}

	if form.Confirm != nil && *form.Confirm == api.PaymentFormConfirmNo {
		http.Redirect(w, r, "/payment", http.StatusSeeOther)
		return
	}
	confirmed := form.Confirm != nil && *form.Confirm == api.PaymentFormConfirmYes

	ctx := r.Context()
	sid := session.FromContext(ctx)
	outcome, err := h.Flow.SelectPaymentMethod(ctx, sid, models.PaymentMethod(form.Method), confirmed)
	switch {
	case errors.Is(err, flow.ErrPaymentMethodUnavailable):
		h.renderPayment(w, r, http.StatusOK, h.Flow.UnavailableMessage())
		return
	case errors.Is(err, flow.ErrUnknownPaymentMethod):
		h.renderPayment(w, r, http.StatusBadRequest, userMessage(err))
		return
	case err != nil:
		h.handleFlowError(w, r, err)
		return
	}

	switch outcome.State {
	case flow.RemoteRedirect:
		http.Redirect(w, r, outcome.RedirectURL, http.StatusSeeOther)
	case flow.LocallyCompleted:
		http.Redirect(w, r, "/completion", http.StatusSeeOther)
	default:
		h.render(w, r, http.StatusOK, "confirm", outcome)
	}
}

// GetCompletion shows the finished donation once and clears the draft.
func (h *PagesHandler) GetCompletion(w http.ResponseWriter, r *http.Request) {
	draft, _ := h.Flow.Complete(r.Context(), session.FromContext(r.Context()))
	h.render(w, r, http.StatusOK, "completion", draft)
}

// StartNewSession wipes the session state and returns to a fresh form.
func (h *PagesHandler) StartNewSession(w http.ResponseWriter, r *http.Request) {
	h.Flow.StartNewSession(r.Context(), session.FromContext(r.Context()))
	http.Redirect(w, r, "/?reset=true", http.StatusSeeOther)
}

// GetPaymentSuccess is the return target of the external payment pages.
func (h *PagesHandler) GetPaymentSuccess(w http.ResponseWriter, r *http.Request) {
	rec := h.Flow.ReturnFromPayment(r.Context(), session.FromContext(r.Context()))
	h.render(w, r, http.StatusOK, "payment_success", &successData{Reconciliation: rec})
}

func (h *PagesHandler) renderPayment(w http.ResponseWriter, r *http.Request, status int, notice string) {
	view, err := h.Flow.Payment(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		h.handleFlowError(w, r, err)
		return
	}
	h.render(w, r, status, "payment", &paymentData{View: view, Notice: notice})
}

// handleFlowError sends a session without a draft back to the start.
func (h *PagesHandler) handleFlowError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, flow.ErrNoDraft) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.Logger.ErrorContext(r.Context(), "unexpected flow error", "path", r.URL.Path, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates[name].Execute(&buf, &page{Site: h.Site, Data: data}); err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to render page", "page", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.WarnContext(r.Context(), "failed to write page", "page", name, "error", err)
	}
}

// userMessage turns a flow validation error into a sentence.
func userMessage(err error) string {
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
