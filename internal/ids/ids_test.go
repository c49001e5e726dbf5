package ids

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7GeneratorFormat(t *testing.T) {
	gen := UUIDv7Generator{}
	id := gen.NewID("spot")

	require.True(t, strings.HasPrefix(id, "spot-"))
	parsed, err := uuid.Parse(strings.TrimPrefix(id, "spot-"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUUIDv7GeneratorUnique(t *testing.T) {
	gen := UUIDv7Generator{}
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.NewID("msg")
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestFixedGeneratorSequence(t *testing.T) {
	gen := NewFixedGenerator("a-1", "b-2")
	assert.Equal(t, "a-1", gen.NewID("a"))
	assert.Equal(t, "b-2", gen.NewID("ignored"))
	assert.Panics(t, func() { gen.NewID("c") })
}

func TestSeqGeneratorPerKindCounters(t *testing.T) {
	gen := NewSeqGenerator("sc-")
	assert.Equal(t, "sc-spot-1", gen.NewID("spot"))
	assert.Equal(t, "sc-inv-1", gen.NewID("inv"))
	assert.Equal(t, "sc-spot-2", gen.NewID("spot"))
	assert.Equal(t, "sc-inv-2", gen.NewID("inv"))
}

func TestSeqGeneratorPrefixAvoidsSeedCollisions(t *testing.T) {
	gen := NewSeqGenerator("t-")
	// Seeded entities use bare "spot-1" style ids.
	assert.NotEqual(t, "spot-1", gen.NewID("spot"))
}

func TestSeqGeneratorConcurrent(t *testing.T) {
	gen := NewSeqGenerator("c-")
	const n = 200

	var wg sync.WaitGroup
	out := make(chan string, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			out <- gen.NewID("msg")
		}()
	}
	wg.Wait()
	close(out)

	seen := make(map[string]bool)
	for id := range out {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
