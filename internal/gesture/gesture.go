// Package gesture classifies free-hand pointer paths. The only shape it
// knows is a coarse "Z": a down-right stroke followed by an up-right stroke,
// which unlocks the coach login screen.
package gesture

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is one sampled pointer position. Y grows downward.
type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64)
}

// minPoints is the shortest path that can be classified
const minPoints = 3

// IsZ reports whether path looks like a "Z". Only three samples are used:
// the first point, the point at len/2 and the last point. The first half
// must move right and down, the second half right and up.
func IsZ(path []Point) bool {
	if len(path) < minPoints {
		return false
	}

	start := path[0]
	middle := path[len(path)/2]
	end := path[len(path)-1]

	downRight := middle.X > start.X && middle.Y > start.Y
	upRight := end.X > middle.X && end.Y < middle.Y

	return downRight && upRight
}

// Recorder accumulates the points of a single gesture.
// The zero value is ready to use.
type Recorder struct {
	path []Point
}

// Add appends a point to the current gesture
func (r *Recorder) Add(p Point) {
	r.path = append(r.path, p)
}

// Len returns the number of points captured so far
func (r *Recorder) Len() int {
	return len(r.path)
}

// Points returns a copy of the captured path
func (r *Recorder) Points() []Point {
	out := make([]Point, len(r.path))
	copy(out, r.path)
	return out
}

// End classifies the captured path and resets the recorder, whatever the result.
func (r *Recorder) End() bool {
	matched := IsZ(r.path)
	r.Reset()
	return matched
}

// Reset discards the captured path
func (r *Recorder) Reset() {
	r.path = r.path[:0]
}

// ParsePoint parses "x,y"
func ParsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: y: %w", s, err)
	}
	return Point{X: x, Y: y}, nil
}

// ParsePath parses a list of "x,y" arguments
func ParsePath(args []string) ([]Point, error) {
	path := make([]Point, 0, len(args))
	for _, a := range args {
		p, err := ParsePoint(a)
		if err != nil {
			return nil, err
		}
		path = append(path, p)
	}
	return path, nil
}
