package ulid

import (
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	validULID := NewSource().Next()

	tests := []struct {
		id       string
		expected bool
	}{
		{validULID, true},
		{"0", false},
		{"invalidulid", false},
		{"01B4E6BXY0PRJ5G420D25MWQY!", false},
		{"01b4e6bxy0prj5g420d25mwqyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, Valid(tt.id))
		})
	}
}

func TestSource(t *testing.T) {
	t.Run("Uniqueness", func(t *testing.T) {
		source := NewSource()
		assert.NotEqual(t, source.Next(), source.Next())
	})

	t.Run("ConcurrentUniqueness", func(t *testing.T) {
		source := NewSource()

		var wg sync.WaitGroup
		ids := make(map[string]struct{})
		mu := sync.Mutex{}

		numIDs := 10000

		wg.Add(numIDs)
		for i := 0; i < numIDs; i++ {
			go func() {
				defer wg.Done()
				id := source.Next()
				mu.Lock()
				defer mu.Unlock()
				ids[id] = struct{}{}
			}()
		}

		wg.Wait()

		assert.Equal(t, numIDs, len(ids))
	})

	t.Run("Clock", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		source := NewSource(WithClock(func() time.Time { return at }))

		parsed, err := ulid.Parse(source.Next())
		require.NoError(t, err)
		assert.Equal(t, ulid.Timestamp(at), parsed.Time())
	})

	t.Run("MonotonicWithinMillisecond", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		source := NewSource(WithClock(func() time.Time { return at }))

		first, second := source.Next(), source.Next()
		assert.Less(t, first, second)
	})
}
