package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/abcstfabu/kapparot-online/pkg/api"
	"github.com/abcstfabu/kapparot-online/pkg/flow"
	"github.com/abcstfabu/kapparot-online/pkg/handlers/donations"
	"github.com/abcstfabu/kapparot-online/pkg/handlers/pages"
	"github.com/abcstfabu/kapparot-online/pkg/models"
	scheduler_mocks "github.com/abcstfabu/kapparot-online/pkg/scheduler/mocks"
	"github.com/abcstfabu/kapparot-online/pkg/session"
	sheets_mocks "github.com/abcstfabu/kapparot-online/pkg/sheets/mocks"
	"github.com/abcstfabu/kapparot-online/pkg/storage"
	"github.com/abcstfabu/kapparot-online/pkg/storage/memory"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var txIDPattern = regexp.MustCompile(`KAP-\d+-[0-9A-Z]{5}`)

func newServer(t *testing.T, sched *scheduler_mocks.Scheduler, client *sheets_mocks.Client) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewLocalStore(memory.New(0), logger)
	machine := flow.New(store, sched, client, flow.PaymentURLs{}, "donate@example.org", logger)

	p, err := pages.NewPagesHandler(machine, pages.Site{Name: "Kapparot Online"}, logger)
	require.NoError(t, err)
	h := NewApiHandler(p, donations.NewDonationsHandler(client, logger))

	router := chi.NewRouter()
	router.Use(session.Middleware(session.Options{}))
	api.HandlerFromMux(h, router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestDonationFlow_TwoPrayersPaidByZelle(t *testing.T) {
	// 1. Setup
	sched := scheduler_mocks.NewScheduler(t)
	client := sheets_mocks.NewClient(t)
	srv := newServer(t, sched, client)
	c := newClient(t)

	// 2. Mock expectations
	sched.On("Schedule", mock.Anything, mock.MatchedBy(func(ev *models.LogEvent) bool {
		return ev.Kind == models.RecordDonation &&
			ev.Record.PrayerType == "Multiple Kapparot Prayers" &&
			ev.Record.Amount == "54" &&
			ev.Record.Email == "x@y.org" &&
			ev.Record.PaymentMethod == "Zelle/QuickPay" &&
			ev.Record.Status == "Payment Selected"
	})).Return(nil).Once()

	// 3. Execute
	resp, err := c.Get(srv.URL + "/")
	require.NoError(t, err)
	readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = c.PostForm(srv.URL+"/", url.Values{"prayerType": {"self-male"}, "amount": {"18"}, "email": {"x@y.org"}})
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/prayer-display", resp.Request.URL.Path)
	assert.Contains(t, body, "Male (For Yourself)")

	resp, err = c.PostForm(srv.URL+"/prayer-display/another", nil)
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, "x@y.org", resp.Request.URL.Query().Get("email"))
	assert.Contains(t, body, "Running total: $18.00")

	resp, err = c.PostForm(srv.URL+"/", url.Values{"prayerType": {"other-female"}, "amount": {"36"}, "email": {"x@y.org"}})
	require.NoError(t, err)
	readBody(t, resp)

	resp, err = c.PostForm(srv.URL+"/prayer-display/donate", nil)
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, "/payment", resp.Request.URL.Path)
	assert.Contains(t, body, "Multiple Kapparot Prayers: $54.00")

	resp, err = c.PostForm(srv.URL+"/payment", url.Values{"method": {"zelle"}, "confirm": {"yes"}})
	require.NoError(t, err)
	body = readBody(t, resp)

	// 4. Assert
	assert.Equal(t, "/completion", resp.Request.URL.Path)
	assert.Contains(t, body, "Zelle/QuickPay")
	assert.Regexp(t, txIDPattern, body)

	resp, err = c.Get(srv.URL + "/completion")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.NotRegexp(t, txIDPattern, body)
}

func TestDonationFlow_PostWithoutSessionGoesHome(t *testing.T) {
	sched := scheduler_mocks.NewScheduler(t)
	client := sheets_mocks.NewClient(t)
	srv := newServer(t, sched, client)

	resp, err := http.Post(srv.URL+"/prayer-display/donate", "application/x-www-form-urlencoded", strings.NewReader(""))
	require.NoError(t, err)
	readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/", resp.Request.URL.Path)
}

func TestSaveDonationRoute(t *testing.T) {
	sched := scheduler_mocks.NewScheduler(t)
	client := sheets_mocks.NewClient(t)
	srv := newServer(t, sched, client)

	client.On("Configured").Return(false)

	resp, err := http.Post(srv.URL+"/api/save-donation", "application/json",
		strings.NewReader(`{"prayerType":"multiple","amount":54,"email":"x@y.org"}`))
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"method":"localStorage","message":"Data saved locally (Google Sheets not configured)"}`, body)
	client.AssertNotCalled(t, "RecordDonation", mock.Anything, mock.Anything)
}

func TestPrayerDisplayRoute_BadStep(t *testing.T) {
	sched := scheduler_mocks.NewScheduler(t)
	client := sheets_mocks.NewClient(t)
	srv := newServer(t, sched, client)

	resp, err := http.Get(srv.URL + "/prayer-display?step=abc")
	require.NoError(t, err)
	readBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
