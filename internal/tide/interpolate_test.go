package tide

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func TestInterpolateEndpointsExact(t *testing.T) {
	tests := []struct {
		name   string
		t1, t2 int
		h1, h2 float64
	}{
		{name: "rising tide", t1: 23, h1: 0.4, t2: 401, h2: 2.9},
		{name: "falling tide", t1: 401, h1: 2.9, t2: 778, h2: 0.5},
		{name: "negative heights", t1: 100, h1: -0.3, t2: 460, h2: 1.1},
		{name: "cross midnight", t1: 1380, h1: 3.0, t2: 60, h2: 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.h1, Interpolate(tt.t1, tt.t1, tt.h1, tt.t2, tt.h2), epsilon)
			assert.InDelta(t, tt.h2, Interpolate(tt.t2, tt.t1, tt.h1, tt.t2, tt.h2), epsilon)
		})
	}
}

func TestInterpolateTwelfthsFractions(t *testing.T) {
	// A clean 360-minute cycle from 0 to 12 meters puts one "hour" of the
	// rule at each 60-minute mark, so the cumulative heights are the
	// twelfths themselves: 1, 3, 6, 9, 11, 12.
	expected := map[int]float64{
		60:  1,
		120: 3,
		180: 6,
		240: 9,
		300: 11,
		360: 12,
	}

	for minute, want := range expected {
		got := Interpolate(minute, 0, 0, 360, 12)
		assert.InDelta(t, want, got, epsilon, "minute %d", minute)
	}
}

func TestInterpolateBoundedAndMonotone(t *testing.T) {
	tests := []struct {
		name   string
		t1, t2 int
		h1, h2 float64
	}{
		{name: "rising", t1: 23, h1: 0.4, t2: 401, h2: 2.9},
		{name: "falling", t1: 401, h1: 2.9, t2: 778, h2: 0.5},
		{name: "flat", t1: 0, h1: 1.5, t2: 360, h2: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.h1, tt.h2
			if lo > hi {
				lo, hi = hi, lo
			}

			prev := Interpolate(tt.t1, tt.t1, tt.h1, tt.t2, tt.h2)
			for minute := tt.t1; minute <= tt.t2; minute++ {
				h := Interpolate(minute, tt.t1, tt.h1, tt.t2, tt.h2)

				assert.GreaterOrEqual(t, h, lo-epsilon, "minute %d below range", minute)
				assert.LessOrEqual(t, h, hi+epsilon, "minute %d above range", minute)

				if tt.h2 >= tt.h1 {
					assert.GreaterOrEqual(t, h, prev-epsilon, "minute %d reverses direction", minute)
				} else {
					assert.LessOrEqual(t, h, prev+epsilon, "minute %d reverses direction", minute)
				}
				prev = h
			}
		})
	}
}

func TestInterpolateCrossesMidnight(t *testing.T) {
	// High at 23:00, low at 01:00 the next day. Query at 00:00 sits at the
	// halfway mark of the cycle.
	got := Interpolate(0, 1380, 3.0, 60, 1.0)
	assert.InDelta(t, 2.0, got, epsilon)

	// A query shortly after the first extremum stays near its height.
	early := Interpolate(1390, 1380, 3.0, 60, 1.0)
	assert.Greater(t, early, 2.9)
	assert.LessOrEqual(t, early, 3.0+epsilon)
}

func TestInterpolateDegenerateBracket(t *testing.T) {
	// Two extrema at the same clock time is legitimate if unusual data;
	// the left endpoint wins rather than dividing by zero.
	assert.InDelta(t, 1.2, Interpolate(500, 500, 1.2, 500, 2.4), epsilon)
}

func TestInterpolateClampsProgress(t *testing.T) {
	// Past the end of the bracket progress clamps to 1.
	assert.InDelta(t, 2.9, Interpolate(500, 23, 0.4, 401, 2.9), epsilon)

	// Before t1 the query is unwrapped onto the next day, which also lands
	// past the end of the bracket. Day-level clamping happens in HeightAt,
	// which never hands Interpolate a time before t1 except across midnight.
	assert.InDelta(t, 2.9, Interpolate(10, 23, 0.4, 401, 2.9), epsilon)
}
