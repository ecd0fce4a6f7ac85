package playback_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/heapwalk/pkg/playback"
)

func TestLevelInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level int
		want  time.Duration
	}{
		{name: "slowest", level: 1, want: 1200 * time.Millisecond},
		{name: "level_2", level: 2, want: 1078 * time.Millisecond},
		{name: "level_5", level: 5, want: 711 * time.Millisecond},
		{name: "level_9", level: 9, want: 222 * time.Millisecond},
		{name: "fastest", level: 10, want: 100 * time.Millisecond},
		{name: "below_range_clamps_to_slowest", level: 0, want: 1200 * time.Millisecond},
		{name: "above_range_clamps_to_fastest", level: 42, want: 100 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, playback.LevelInterval(tc.level))
		})
	}
}

func TestClampInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, playback.MinInterval, playback.ClampInterval(time.Nanosecond))
	assert.Equal(t, playback.MaxInterval, playback.ClampInterval(time.Hour))
	assert.Equal(t, 500*time.Millisecond, playback.ClampInterval(500*time.Millisecond))
}
