package model

// Side is the edge length of the target cube.
const Side = 4

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Block is a single unit cube. Coordinates may go negative while a shape is
// being rotated; they are brought back into the cube by translation.
type Block struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Coord returns the coordinate of the block along the given axis.
func (b Block) Coord(axis Axis) int {
	switch axis {
	case AxisX:
		return b.X
	case AxisY:
		return b.Y
	default:
		return b.Z
	}
}

// Rotate turns the block 90 degrees about an axis through the origin.
func (b Block) Rotate(axis Axis) Block {
	switch axis {
	case AxisX:
		return Block{X: b.X, Y: b.Z, Z: -b.Y}
	case AxisY:
		return Block{X: -b.Z, Y: b.Y, Z: b.X}
	default:
		return Block{X: b.Y, Y: -b.X, Z: b.Z}
	}
}

// InBounds reports whether the block lies inside the cube.
func (b Block) InBounds() bool {
	return b.X >= 0 && b.X < Side &&
		b.Y >= 0 && b.Y < Side &&
		b.Z >= 0 && b.Z < Side
}

// Shape is an ordered set of distinct blocks forming one piece.
type Shape []Block

// Rotate returns a copy of the shape turned 90 degrees about the axis.
func (s Shape) Rotate(axis Axis) Shape {
	result := make(Shape, len(s))
	for i, b := range s {
		result[i] = b.Rotate(axis)
	}
	return result
}

// Shift returns a copy of the shape translated by dx, dy, dz.
func (s Shape) Shift(dx, dy, dz int) Shape {
	result := make(Shape, len(s))
	for i, b := range s {
		result[i] = Block{X: b.X + dx, Y: b.Y + dy, Z: b.Z + dz}
	}
	return result
}

// Bounds returns the minimum and maximum coordinate along an axis.
// An empty shape has zero bounds.
func (s Shape) Bounds(axis Axis) (min, max int) {
	if len(s) == 0 {
		return 0, 0
	}
	min = s[0].Coord(axis)
	max = min
	for _, b := range s[1:] {
		c := b.Coord(axis)
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	return min, max
}

// xRotations returns the shape and its three successive quarter turns about X.
func (s Shape) xRotations() []Shape {
	r1 := s.Rotate(AxisX)
	r2 := r1.Rotate(AxisX)
	r3 := r2.Rotate(AxisX)
	return []Shape{s, r1, r2, r3}
}

// Orientations returns the 24 proper rotations of the shape.
//
// Six seeds point the shape's X axis at each face of the cube (identity,
// three quarter turns about Y, one and three quarter turns about Z); every
// seed is then spun four times about X. Symmetric pieces yield repeated
// footprints here; those collapse when placements are deduplicated by mask.
func (s Shape) Orientations() []Shape {
	y1 := s.Rotate(AxisY)
	y2 := y1.Rotate(AxisY)
	y3 := y2.Rotate(AxisY)

	z1 := s.Rotate(AxisZ)
	z3 := z1.Rotate(AxisZ).Rotate(AxisZ)

	seeds := []Shape{s, y1, y2, y3, z1, z3}
	result := make([]Shape, 0, len(seeds)*4)
	for _, seed := range seeds {
		result = append(result, seed.xRotations()...)
	}
	return result
}

// Contains reports whether the shape includes the block.
func (s Shape) Contains(b Block) bool {
	for _, sb := range s {
		if sb == b {
			return true
		}
	}
	return false
}

// SameBlocks reports whether two shapes hold the same blocks, ignoring order.
func (s Shape) SameBlocks(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for _, b := range s {
		if !other.Contains(b) {
			return false
		}
	}
	return true
}
