package colors

import "fmt"

// Color is linear RGBA in [0,1].
type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

// RGB drops alpha; the cube's per-face vertex colours come from it.
func (c Color) RGB() [3]float32 { return [3]float32{c[0], c[1], c[2]} }

// Validate reports a channel outside [0,1].
func (c Color) Validate() error {
	for i, v := range c {
		if v < 0 || v > 1 {
			return fmt.Errorf("color channel %d out of range: %v", i, v)
		}
	}
	return nil
}
