package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator assigns identifiers to new entities. The prefix names the
// entity kind, e.g. "ORD" for orders.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator produces random identifiers.
type UUIDGenerator struct{}

// NewID returns prefix-<uuid>.
func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// SequenceGenerator produces deterministic identifiers from a single
// monotonic counter shared by all prefixes.
type SequenceGenerator struct {
	mu   sync.Mutex
	next int
}

// NewSequenceGenerator starts counting at 1.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{next: 1}
}

// NewID returns prefix-000001, prefix-000002, ...
func (g *SequenceGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("%s-%06d", prefix, g.next)
	g.next++
	return id
}
