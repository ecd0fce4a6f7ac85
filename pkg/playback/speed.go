package playback

import (
	"math"
	"time"
)

// Interval bounds for the playback timer.
const (
	MinInterval = 100 * time.Millisecond
	MaxInterval = 1200 * time.Millisecond
)

// Speed level bounds for LevelInterval.
const (
	MinLevel = 1
	MaxLevel = 10
)

// msPerLevel is the interval shrink per speed level across the 1..10 range.
const msPerLevel = 1100.0 / 9.0

// LevelInterval maps a speed level (1 = slowest, 10 = fastest) to a tick
// interval. Out-of-range levels are clamped, and the result always lies
// within [MinInterval, MaxInterval].
func LevelInterval(level int) time.Duration {
	if level < MinLevel {
		level = MinLevel
	}

	if level > MaxLevel {
		level = MaxLevel
	}

	ms := math.Round(float64(MaxInterval/time.Millisecond) - float64(level-1)*msPerLevel)
	interval := time.Duration(ms) * time.Millisecond

	return ClampInterval(interval)
}

// ClampInterval bounds an arbitrary interval to [MinInterval, MaxInterval].
func ClampInterval(interval time.Duration) time.Duration {
	if interval < MinInterval {
		return MinInterval
	}

	if interval > MaxInterval {
		return MaxInterval
	}

	return interval
}
