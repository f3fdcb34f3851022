package scene

import (
	"github.com/chewxy/math32"
)

// FadePeriodMS is the period of Fade: 2π / 0.001.
const FadePeriodMS = 2 * math32.Pi * 1000

// Fade maps wall-clock milliseconds to a smooth oscillation in [0,1]; Fade(0) = 0.5.
func Fade(ms float32) float32 {
	return math32.Sin(ms*0.001)*0.5 + 0.5
}

// FadeState is the quad's per-frame animation: one cross-fade factor.
type FadeState struct {
	Factor float32
}

func (s *FadeState) Update(ms float32) { s.Factor = Fade(ms) }

// Angles are rotations in degrees about X, Y and Z.
type Angles struct {
	X, Y, Z float32
}

// CubeAngles gives the cube's rotation after frame i. Rotation is tied to the frame
// counter, not to elapsed time, so the spin speed follows the display rate.
func CubeAngles(i uint64) Angles {
	f := float32(i)
	return Angles{
		X: -(45 + 0.25*f),
		Y: -(45 - 0.5*f),
		Z: -(10 + 0.15*f),
	}
}

// Spin is the cube's per-frame animation: a frame counter.
type Spin struct {
	Frame uint64
}

// Angles reports the rotation for the current frame.
func (s *Spin) Angles() Angles { return CubeAngles(s.Frame) }

// Next returns the angles for the frame about to be drawn and advances the counter by
// exactly one, so the first frame is drawn at i = 0.
func (s *Spin) Next() Angles {
	a := CubeAngles(s.Frame)
	s.Frame++
	return a
}
