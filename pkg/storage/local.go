package storage

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/abcstfabu/kapparot-online/pkg/models"
)

// Keys of the records kept per session.
const (
	DonationKey       = "kapparotDonation"
	SessionKey        = "kapparotSession"
	PendingPaymentKey = "pendingPayment"
)

// LocalStore reads and writes the session records as JSON on top of a KeyValueStore.
// It never fails: decode and backend errors are logged and surface as an absent record,
// and an empty session id turns every write into a no-op.
type LocalStore struct {
	KV     KeyValueStore
	Logger *slog.Logger
}

// NewLocalStore creates a new LocalStore.
func NewLocalStore(kv KeyValueStore, logger *slog.Logger) *LocalStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalStore{KV: kv, Logger: logger}
}

// Draft returns the session's donation draft.
func (s *LocalStore) Draft(ctx context.Context, sessionID string) (*models.DonationDraft, bool) {
	var d models.DonationDraft
	if !s.read(ctx, sessionID, DonationKey, &d) {
		return nil, false
	}
	return &d, true
}

// SaveDraft overwrites the session's donation draft.
func (s *LocalStore) SaveDraft(ctx context.Context, sessionID string, d *models.DonationDraft) {
	s.write(ctx, sessionID, DonationKey, d)
}

// ClearDraft removes the session's donation draft.
func (s *LocalStore) ClearDraft(ctx context.Context, sessionID string) {
	s.clear(ctx, sessionID, DonationKey)
}

// Accumulator returns the session's accumulator, or an empty one.
func (s *LocalStore) Accumulator(ctx context.Context, sessionID string) *models.SessionAccumulator {
	acc := &models.SessionAccumulator{}
	if !s.read(ctx, sessionID, SessionKey, acc) {
		return &models.SessionAccumulator{Prayers: []models.PrayerRecord{}}
	}
	if acc.Prayers == nil {
		acc.Prayers = []models.PrayerRecord{}
	}
	return acc
}

// SaveAccumulator overwrites the session's accumulator.
func (s *LocalStore) SaveAccumulator(ctx context.Context, sessionID string, acc *models.SessionAccumulator) {
	s.write(ctx, sessionID, SessionKey, acc)
}

// ClearAccumulator removes the session's accumulator.
func (s *LocalStore) ClearAccumulator(ctx context.Context, sessionID string) {
	s.clear(ctx, sessionID, SessionKey)
}

// PendingPayment returns the record left behind before an external redirect.
func (s *LocalStore) PendingPayment(ctx context.Context, sessionID string) (*models.PendingPayment, bool) {
	var p models.PendingPayment
	if !s.read(ctx, sessionID, PendingPaymentKey, &p) {
		return nil, false
	}
	return &p, true
}

// SavePendingPayment stores the record that survives an external redirect.
func (s *LocalStore) SavePendingPayment(ctx context.Context, sessionID string, p *models.PendingPayment) {
	s.write(ctx, sessionID, PendingPaymentKey, p)
}

// ClearPendingPayment removes the pending-payment record.
func (s *LocalStore) ClearPendingPayment(ctx context.Context, sessionID string) {
	s.clear(ctx, sessionID, PendingPaymentKey)
}

func (s *LocalStore) read(ctx context.Context, sessionID, key string, dst any) bool {
	if sessionID == "" {
		return false
	}

	raw, ok, err := s.KV.Get(ctx, sessionID, key)
	if err != nil {
		s.Logger.ErrorContext(ctx, "error reading session record", "key", key, "session_id", sessionID, "error", err)
		return false
	}
	if !ok || raw == "" {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.Logger.ErrorContext(ctx, "error decoding session record", "key", key, "session_id", sessionID, "error", err)
		return false
	}
	return true
}

func (s *LocalStore) write(ctx context.Context, sessionID, key string, v any) {
	if sessionID == "" {
		return
	}

	buf, err := json.Marshal(v)
	if err != nil {
		s.Logger.ErrorContext(ctx, "error encoding session record", "key", key, "session_id", sessionID, "error", err)
		return
	}

	if err := s.KV.Set(ctx, sessionID, key, string(buf)); err != nil {
		s.Logger.ErrorContext(ctx, "error saving session record", "key", key, "session_id", sessionID, "error", err)
	}
}

func (s *LocalStore) clear(ctx context.Context, sessionID, key string) {
	if sessionID == "" {
		return
	}

	if err := s.KV.Delete(ctx, sessionID, key); err != nil {
		s.Logger.ErrorContext(ctx, "error clearing session record", "key", key, "session_id", sessionID, "error", err)
	}
}
