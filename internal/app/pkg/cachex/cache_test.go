package cachex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotGetSetInvalidate(t *testing.T) {
	s := NewSnapshot(time.Minute)

	_, ok := s.Get()
	assert.False(t, ok, "empty snapshot misses")

	s.Set("v1")
	v, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	s.Invalidate()
	_, ok = s.Get()
	assert.False(t, ok, "invalidated snapshot misses")
}

func TestSnapshotTTLExpiry(t *testing.T) {
	s := NewSnapshot(time.Nanosecond)
	s.Set("v1")
	time.Sleep(time.Millisecond)

	_, ok := s.Get()
	assert.False(t, ok, "expired snapshot misses")
}

func TestSnapshotStatsCountHitsAndMisses(t *testing.T) {
	s := NewSnapshot(time.Minute)

	s.Get() // miss
	s.Set("v1")
	s.Get() // hit
	s.Get() // hit
	s.Invalidate()
	s.Get() // miss

	hits, misses := s.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(2), misses)
}
