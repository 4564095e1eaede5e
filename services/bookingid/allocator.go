package bookingid

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Prefix for all system generated booking identifiers.
const Prefix = "EP"

// Allocator produces human readable booking identifiers: the "EP" prefix, the
// current millisecond timestamp and a zero-padded running count. The count
// guards against two allocations landing in the same millisecond; the storage
// unique constraint remains the authoritative collision check.
type Allocator struct {
	mu  sync.Mutex
	seq uint64

	// nowFn is swappable for tests.
	nowFn func() time.Time
}

func NewAllocator() *Allocator {
	return &Allocator{nowFn: time.Now}
}

// Next returns a fresh identifier.
func (a *Allocator) Next() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	return fmt.Sprintf("%s%d%04d", Prefix, a.nowFn().UnixMilli(), a.seq%10000)
}

// Normalize uppercases a caller supplied identifier and trims whitespace.
func Normalize(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
