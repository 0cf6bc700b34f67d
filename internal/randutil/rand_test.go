package randutil

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.IntN(3), b.IntN(3))
	}
}

func TestNewDiffersBySeed(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 20; i++ {
		if a.Uint64() != b.Uint64() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestSeed(t *testing.T) {
	explicit := int64(7)
	assert.Equal(t, int64(7), Seed(&explicit, nil))

	clock := quartz.NewMock(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.Set(now)
	assert.Equal(t, now.UnixNano(), Seed(nil, clock))
}
