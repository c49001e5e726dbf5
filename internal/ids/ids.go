// Package ids generates entity identifiers.
//
// Identifiers are opaque strings. Production uses time-sortable UUIDv7
// values prefixed with the entity kind; tests use a fixed sequence for
// deterministic output.
package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces a new identifier for an entity kind.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type Generator interface {
	NewID(kind string) string
}

// UUIDv7Generator generates time-sortable UUIDv7 identifiers.
//
// UUIDv7 embeds a timestamp in the most significant bits, so ids created
// later sort after ids created earlier. That keeps id order aligned with
// insertion order for messages and moments.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// NewID returns "<kind>-<uuidv7>".
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) NewID(kind string) string {
	return fmt.Sprintf("%s-%s", kind, uuid.Must(uuid.NewV7()).String())
}

// FixedGenerator returns predetermined identifiers for testing.
//
// Tests provide a known sequence and can then assert on exact entity ids.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
//
// Example:
//
//	gen := ids.NewFixedGenerator("spot-1", "inv-1", "pay-1")
//	gen.NewID("spot") // "spot-1"
//	gen.NewID("inv")  // "inv-1"
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// NewID returns the next predetermined id. The kind argument is ignored.
//
// Panics when the sequence is exhausted; a test that consumes more ids
// than it declared is misconfigured and should fail fast.
func (g *FixedGenerator) NewID(string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("ids: FixedGenerator exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// SeqGenerator generates "<prefix><kind>-<n>" identifiers with a
// per-kind counter. Used by tests and scenarios that need readable,
// unbounded ids; the prefix keeps generated ids from colliding with
// seeded ones.
type SeqGenerator struct {
	mu     sync.Mutex
	prefix string
	counts map[string]int
}

// NewSeqGenerator creates a sequence generator with the given prefix.
func NewSeqGenerator(prefix string) *SeqGenerator {
	return &SeqGenerator{prefix: prefix, counts: make(map[string]int)}
}

// NewID returns the next id for the kind, starting at
// "<prefix><kind>-1".
func (g *SeqGenerator) NewID(kind string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counts[kind]++
	return fmt.Sprintf("%s%s-%d", g.prefix, kind, g.counts[kind])
}
