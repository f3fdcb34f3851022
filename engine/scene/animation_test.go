package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFade(t *testing.T) {
	assert.Equal(t, float32(0.5), Fade(0))
	assert.InDelta(t, 1.0, Fade(1570.8), 1e-6, "quarter period peaks")
	assert.InDelta(t, 0.0, Fade(3*1570.8), 1e-5, "three quarters bottoms out")
	assert.InDelta(t, 6283.19, float64(FadePeriodMS), 0.01)
}

func TestFade_RangeAndPeriod(t *testing.T) {
	for ms := float32(0); ms < 20000; ms += 37 {
		f := Fade(ms)
		assert.GreaterOrEqual(t, f, float32(0), "ms=%v", ms)
		assert.LessOrEqual(t, f, float32(1), "ms=%v", ms)
		assert.InDelta(t, f, Fade(ms+FadePeriodMS), 1e-3, "ms=%v", ms)
	}
}

func TestFadeState_Update(t *testing.T) {
	var s FadeState
	s.Update(0)
	assert.Equal(t, float32(0.5), s.Factor)
	s.Update(1570.8)
	assert.InDelta(t, 1.0, s.Factor, 1e-6)
}

func TestCubeAngles(t *testing.T) {
	tests := []struct {
		frame uint64
		want  Angles
	}{
		{0, Angles{X: -45, Y: -45, Z: -10}},
		{4, Angles{X: -46, Y: -43, Z: -10.6}},
		{100, Angles{X: -70, Y: 5, Z: -25}},
	}
	for _, tt := range tests {
		got := CubeAngles(tt.frame)
		assert.InDelta(t, tt.want.X, got.X, 1e-4, "x at %d", tt.frame)
		assert.InDelta(t, tt.want.Y, got.Y, 1e-4, "y at %d", tt.frame)
		assert.InDelta(t, tt.want.Z, got.Z, 1e-4, "z at %d", tt.frame)
	}
}

func TestSpin_NextStartsAtZero(t *testing.T) {
	var s Spin
	assert.Equal(t, CubeAngles(0), s.Next())
	assert.Equal(t, CubeAngles(1), s.Next())
	assert.Equal(t, uint64(2), s.Frame)
	assert.Equal(t, CubeAngles(2), s.Angles())
}
