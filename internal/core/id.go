package core

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var idMu sync.Mutex
var idEntropy = ulid.Monotonic(rand.Reader, 0)

// NewID returns a unique opaque identifier: a ULID combining a
// millisecond timestamp with random entropy, base-32 encoded. Monotonic
// entropy keeps IDs generated in the same millisecond ordered.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), idEntropy).String()
}
