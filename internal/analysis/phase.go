package analysis

import (
	"errors"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var ErrNoPoints = errors.New("analysis: no points")

type Point struct{ X, Y float64 }

// Portrait is a 2D projection of a trajectory.
type Portrait struct {
	Points []Point
}

// NewPortrait pairs xs and ys.
func NewPortrait(xs, ys []float64) (*Portrait, error) {
	if len(xs) != len(ys) {
		return nil, errors.New("analysis: coordinate length mismatch")
	}
	p := &Portrait{Points: make([]Point, len(xs))}
	for i := range xs {
		p.Points[i] = Point{xs[i], ys[i]}
	}
	return p, nil
}

// Column extracts component k from every state.
func Column(states [][]float64, k int) []float64 {
	out := make([]float64, len(states))
	for i, s := range states {
		out[i] = s[k]
	}
	return out
}

// ASCII renders the portrait on a width × height character grid, with axes
// drawn where they cross the view.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	xs := make([]float64, len(p.Points))
	ys := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	minX, maxX := padRange(floats.Min(xs), floats.Max(xs))
	minY, maxY := padRange(floats.Min(ys), floats.Max(ys))
	rangeX, rangeY := maxX-minX, maxY-minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int(-minX / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int(-minY/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// padRange widens [lo, hi] by 10% on each side.
func padRange(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - 0.1*span, hi + 0.1*span
}

// Section records (states[recX], states[recY]) wherever component crossIdx
// passes upward through threshold, interpolating linearly between samples.
func Section(states [][]float64, crossIdx int, threshold float64, recX, recY int) (*Portrait, error) {
	if len(states) < 2 {
		return nil, ErrNoPoints
	}
	sec := &Portrait{}
	for i := 1; i < len(states); i++ {
		prev, curr := states[i-1][crossIdx], states[i][crossIdx]
		if !(prev < threshold && curr >= threshold) {
			continue
		}
		frac := (threshold - prev) / (curr - prev)
		sec.Points = append(sec.Points, Point{
			X: states[i-1][recX] + frac*(states[i][recX]-states[i-1][recX]),
			Y: states[i-1][recY] + frac*(states[i][recY]-states[i-1][recY]),
		})
	}
	if len(sec.Points) == 0 {
		return sec, ErrNoPoints
	}
	return sec, nil
}
