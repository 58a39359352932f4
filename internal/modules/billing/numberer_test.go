package billing

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumbererIsStrictlyIncreasing(t *testing.T) {
	fixed := time.UnixMicro(1700000000000000)
	n := &Numberer{now: func() time.Time { return fixed }}

	assert.Equal(t, "INV-1700000000000000", n.Next())
	assert.Equal(t, "INV-1700000000000001", n.Next())

	fixed = fixed.Add(-time.Second)
	assert.Equal(t, "INV-1700000000000002", n.Next(), "clock stepping back")
}

func TestNumbererConcurrentCallsAreUnique(t *testing.T) {
	n := NewNumberer()
	const workers, each = 8, 250

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				v := n.Next()
				mu.Lock()
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*each)
	for v := range seen {
		assert.True(t, strings.HasPrefix(v, "INV-"))
	}
}
