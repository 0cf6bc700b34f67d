package matchid

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/roshambo/internal/randutil"
)

func TestNew(t *testing.T) {
	id := New()
	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New()
		assert.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}

func TestGenerateDeterministic(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	a := NewGenerator(randutil.New(9), clock).Generate()
	b := NewGenerator(randutil.New(9), clock).Generate()
	assert.Equal(t, a, b)
	require.NoError(t, Validate(a))
}

func TestGenerateTimeOrdered(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	gen := NewGenerator(randutil.New(1), clock)

	prev := gen.Generate()
	for i := 0; i < 10; i++ {
		clock.Advance(time.Millisecond)
		next := gen.Generate()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h2xcejqtf2nbrexx3vqjhp41", false},
		{"too short", "01h2xcejqtf2nbrexx3vqjhp4", true},
		{"too long", "01h2xcejqtf2nbrexx3vqjhp411", true},
		{"first char too high", "81h2xcejqtf2nbrexx3vqjhp41", true},
		{"excluded letter", "01h2xcejqtf2nbrexx3vqjhpi1", true},
		{"uppercase", "01H2XCEJQTF2NBREXX3VQJHP41", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
