package pipeline

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Monotonic entropy is not safe for concurrent use, so IDs are minted under
// a lock. IDs from one process sort by creation time.
var (
	ulidMu  sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// NewJobID returns a new ULID string.
func NewJobID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
