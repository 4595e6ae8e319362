package validation

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	transactionIDPrefix = "KAP-"
	suffixLength        = 5
	base36Alphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewTransactionID returns KAP-<unix millis>-<5 base36 chars> for the given instant.
// Collisions are possible and tolerated.
func NewTransactionID(now time.Time) string {
	var b strings.Builder
	b.WriteString(transactionIDPrefix)
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('-')
	for i := 0; i < suffixLength; i++ {
		b.WriteByte(base36Alphabet[rand.IntN(len(base36Alphabet))])
	}
	return b.String()
}
