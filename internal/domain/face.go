// Package domain implements spatial domain decomposition: rectangular region
// specifications, face geometry, and the inter-region connection topology
// used by the halo-exchange layer.
package domain

import "fmt"

// Face identifies one of the 2×D oriented boundaries of a region.
type Face int

// Face constants, enumerated low/high per axis.
const (
	XLow Face = iota
	XHigh
	YLow
	YHigh
	ZLow
	ZHigh
	numFaces
)

var faceNames = [...]string{"x_low", "x_high", "y_low", "y_high", "z_low", "z_high"}

func (f Face) String() string {
	if f < 0 || f >= numFaces {
		return fmt.Sprintf("face(%d)", int(f))
	}
	return faceNames[f]
}

// Axis returns the axis index (0=X, 1=Y, 2=Z) the face bounds.
func (f Face) Axis() int { return int(f) / 2 }

// Direction returns the outward sign of the face: -1 for low faces, +1 for
// high faces.
func (f Face) Direction() int {
	if int(f)%2 == 0 {
		return -1
	}
	return 1
}

// Opposite returns the face on the same axis with the opposite direction.
func (f Face) Opposite() Face { return f ^ 1 }

// Normal returns the outward normal vector of the face in dim dimensions.
func (f Face) Normal(dim int) []int {
	n := make([]int, dim)
	n[f.Axis()] = f.Direction()
	return n
}

// FaceFor returns the face bounding the given axis in the given direction.
// It is the inverse of Axis and Direction.
func FaceFor(axis, dir int) Face {
	f := Face(axis * 2)
	if dir == 1 {
		f++
	}
	return f
}
