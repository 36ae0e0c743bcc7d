// Package testdata provides synthetic detection sequences for tests. Each
// builder returns a per-cycle detection script shaped like real detector
// output for a single object moving through the frame.
package testdata

import "github.com/adikms/kinetrack/internal/detector"

// personBox builds a person-sized box centered at (x, y).
func personBox(x, y float64) detector.Detection {
	return detector.Detection{
		Box:        detector.BoundingBox{X: x - 20, Y: y - 40, Width: 40, Height: 80},
		ClassName:  "person",
		Confidence: 0.85,
	}
}

// StraightWalk returns cycles of a person moving right from (x, y) in
// stepPx increments. With the default calibration a step of 2-4 px per
// 33 ms cycle lands in the walking range.
func StraightWalk(x, y float64, stepPx float64, cycles int) [][]detector.Detection {
	script := make([][]detector.Detection, cycles)
	for i := 0; i < cycles; i++ {
		script[i] = []detector.Detection{personBox(x+float64(i)*stepPx, y)}
	}
	return script
}

// Sitter returns cycles of a person holding still at (x, y), the shape a
// detector produces for someone seated. Positions never move, so every
// displacement falls under the movement noise floor.
func Sitter(x, y float64, cycles int) [][]detector.Detection {
	script := make([][]detector.Detection, cycles)
	for i := 0; i < cycles; i++ {
		script[i] = []detector.Detection{personBox(x, y)}
	}
	return script
}

// Runner returns cycles of a person sprinting right from (x, y) in stepPx
// increments. Pick stepPx against the cycle interval so the computed speed
// lands in the running band without tripping the outlier cutoff; the step
// must also stay inside the association gate or the track splits.
func Runner(x, y float64, stepPx float64, cycles int) [][]detector.Detection {
	script := make([][]detector.Detection, cycles)
	for i := 0; i < cycles; i++ {
		script[i] = []detector.Detection{personBox(x+float64(i)*stepPx, y)}
	}
	return script
}

// Crossing returns cycles of two objects of different classes moving toward
// each other on the same row, for association tests around close passes.
func Crossing(leftX, rightX, y float64, stepPx float64, cycles int) [][]detector.Detection {
	script := make([][]detector.Detection, cycles)
	for i := 0; i < cycles; i++ {
		person := personBox(leftX+float64(i)*stepPx, y)
		dog := detector.Detection{
			Box:        detector.BoundingBox{X: rightX - float64(i)*stepPx - 25, Y: y - 20, Width: 50, Height: 40},
			ClassName:  "dog",
			Confidence: 0.8,
		}
		script[i] = []detector.Detection{person, dog}
	}
	return script
}

// Vanishing returns a walk that stops producing detections after
// visibleCycles, leaving emptyCycles of empty frames for timeout tests.
func Vanishing(x, y float64, visibleCycles, emptyCycles int) [][]detector.Detection {
	script := StraightWalk(x, y, 3, visibleCycles)
	for i := 0; i < emptyCycles; i++ {
		script = append(script, nil)
	}
	return script
}
