package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrayerType identifies who the kapparot is performed for.
type PrayerType string

const (
	SelfMale      PrayerType = "self-male"
	SelfFemale    PrayerType = "self-female"
	SelfPregnant  PrayerType = "self-pregnant"
	OtherMale     PrayerType = "other-male"
	OtherFemale   PrayerType = "other-female"
	OtherPregnant PrayerType = "other-pregnant"

	// Multiple marks the aggregate draft built from a whole sitting.
	Multiple PrayerType = "multiple"
)

// PrayerTypes lists the leaf categories selectable on the home form.
var PrayerTypes = []PrayerType{SelfMale, SelfFemale, SelfPregnant, OtherMale, OtherFemale, OtherPregnant}

// IsLeaf reports whether p is one of the six selectable categories.
func (p PrayerType) IsLeaf() bool {
	for _, t := range PrayerTypes {
		if p == t {
			return true
		}
	}
	return false
}

// IsKnown reports whether p is a leaf category or the aggregate marker.
func (p PrayerType) IsKnown() bool {
	return p == Multiple || p.IsLeaf()
}

// PaymentMethod identifies an external payment destination.
type PaymentMethod string

const (
	Stripe PaymentMethod = "stripe"
	PayPal PaymentMethod = "paypal"
	Zelle  PaymentMethod = "zelle"
	Matbia PaymentMethod = "matbia"
	OJC    PaymentMethod = "ojc"
)

// TransactionStatus is the status column of a spreadsheet row.
type TransactionStatus string

const (
	PaymentSelected TransactionStatus = "Payment Selected"
	Completed       TransactionStatus = "Completed"
)

// DonationDraft is the single in-progress or finalized donation intent of a session.
type DonationDraft struct {
	PrayerType    PrayerType      `json:"prayerType"`
	Amount        decimal.Decimal `json:"amount"`
	Email         string          `json:"email"`
	TransactionID string          `json:"transactionId,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Timestamp     *time.Time      `json:"timestamp,omitempty"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}

// Status derives the spreadsheet status from the completion stamp.
func (d *DonationDraft) Status() TransactionStatus {
	if d.CompletedAt != nil {
		return Completed
	}
	return PaymentSelected
}

// PrayerRecord is one performed prayer within a sitting.
type PrayerRecord struct {
	PrayerType  PrayerType      `json:"prayerType"`
	Amount      decimal.Decimal `json:"amount"`
	PerformedAt time.Time       `json:"timestamp"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// SessionAccumulator is the running total of prayers performed before payment.
type SessionAccumulator struct {
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Email         string          `json:"email"`
	Prayers       []PrayerRecord  `json:"prayers"`
}

// Add appends a prayer and folds its amount into the totals.
func (s *SessionAccumulator) Add(p PrayerRecord) {
	s.TotalAmount = s.TotalAmount.Add(p.Amount)
	s.CurrentAmount = p.Amount
	s.Prayers = append(s.Prayers, p)
}

// MarkLastCompleted stamps the most recent prayer. It reports false when there is none.
func (s *SessionAccumulator) MarkLastCompleted(at time.Time) bool {
	if len(s.Prayers) == 0 {
		return false
	}
	s.Prayers[len(s.Prayers)-1].CompletedAt = &at
	return true
}

// PendingPayment bridges an external payment redirect back to reconciliation.
type PendingPayment struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Email         string          `json:"email"`
}

// TransactionRecord is a row of the external donations spreadsheet.
type TransactionRecord struct {
	Timestamp     string `json:"timestamp"`
	PrayerType    string `json:"prayerType"`
	Amount        string `json:"amount"`
	Email         string `json:"email"`
	TransactionID string `json:"transactionId"`
	PaymentMethod string `json:"paymentMethod"`
	Status        string `json:"status"`
}

// LogEventKind selects the remote logging operation for a LogEvent.
type LogEventKind string

const (
	RecordDonation LogEventKind = "record"
	UpdateStatus   LogEventKind = "update"
)

// LogEvent is a best-effort remote logging task.
type LogEvent struct {
	Kind          LogEventKind       `json:"kind"`
	Record        *TransactionRecord `json:"record,omitempty"`
	TransactionID string             `json:"transactionId,omitempty"`
	Status        string             `json:"status,omitempty"`
}
