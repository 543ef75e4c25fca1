package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDGenerator_Next(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name string
		now  time.Time
		want int64
	}{
		{"first uses the timestamp", base, 1_700_000_000_000},
		{"same millisecond bumps", base, 1_700_000_000_001},
		{"sub-millisecond bumps", base.Add(500 * time.Microsecond), 1_700_000_000_002},
		{"later time jumps ahead", base.Add(time.Second), 1_700_000_001_000},
		{"clock going back still increases", base, 1_700_000_001_001},
	}

	var g idGenerator
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Next(tt.now))
		})
	}
}

func TestIDGenerator_RapidCalls(t *testing.T) {
	var g idGenerator
	now := time.Now()

	seen := make(map[int64]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := g.Next(now)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
