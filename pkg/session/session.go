// Package session carries the opaque session id that partitions stored donation state.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const DefaultCookieName = "kapparot_session"

type ctxKey struct{}

type Options struct {
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

// Middleware resolves the session id from the cookie and stores it in the
// request context. Page views without a valid id get a new one; other
// requests without one proceed with no session, so their writes are dropped.
func Middleware(opts Options) func(http.Handler) http.Handler {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := fromCookie(r, opts.CookieName)
			if id == "" && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     opts.CookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(opts.MaxAge.Seconds()),
				})
			}
			if id != "" {
				r = r.WithContext(WithID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func fromCookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the session id, or "" outside a session.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
