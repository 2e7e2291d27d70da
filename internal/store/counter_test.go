package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageCounter_StartsAtZero(t *testing.T) {
	counter := NewUsageCounter(NewMemoryKV())
	assert.Equal(t, 0, counter.Current())
}

func TestUsageCounter_Increment(t *testing.T) {
	counter := NewUsageCounter(NewMemoryKV())

	for want := 1; want <= 5; want++ {
		got, err := counter.Increment()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 5, counter.Current())
}

func TestUsageCounter_GarbageReadsAsZero(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(UsageCounterKey, "not a number"))

	counter := NewUsageCounter(kv)
	assert.Equal(t, 0, counter.Current())

	got, err := counter.Increment()
	require.NoError(t, err)
	assert.Equal(t, 1, got, "increment recovers from garbage")
}
