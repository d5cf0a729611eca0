package util

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID generates a lexicographically sortable reminder ID (ULID).
// Sortability matters: the selector breaks scheduled_at ties by id,
// which for ULIDs is insertion order.
func NewID() string {
	t := time.Now()
	entropy := ulid.Monotonic(rand.Reader, 0)

	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
