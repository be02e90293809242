package model

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Encoded is a cube occupancy mask: bit x*16 + y*4 + z is set when the
// cell (x, y, z) is filled.
type Encoded uint64

const (
	// Empty has no cells filled.
	Empty Encoded = 0
	// Full has every cell of the cube filled.
	Full Encoded = 0xFFFF_FFFF_FFFF_FFFF
)

// Cells is the number of unit cells in the cube.
const Cells = Side * Side * Side

// EncodeBlock returns the single-bit mask for a block. The block must lie in
// the cube; anything else means the geometry produced a bad placement, which
// is a programming error rather than a condition callers can recover from.
func EncodeBlock(b Block) Encoded {
	if !b.InBounds() {
		panic(fmt.Sprintf("model: block %v outside %dx%dx%d cube", b, Side, Side, Side))
	}
	return Encoded(1) << uint(b.X*Side*Side+b.Y*Side+b.Z)
}

// Encode ORs together the masks of every block in the shape.
func Encode(s Shape) Encoded {
	var e Encoded
	for _, b := range s {
		e |= EncodeBlock(b)
	}
	return e
}

// Decode returns the blocks whose bits are set, in x, y, z order.
func Decode(e Encoded) Shape {
	shape := make(Shape, 0, e.Count())
	for x := 0; x < Side; x++ {
		for y := 0; y < Side; y++ {
			for z := 0; z < Side; z++ {
				b := Block{X: x, Y: y, Z: z}
				if e.Has(b) {
					shape = append(shape, b)
				}
			}
		}
	}
	return shape
}

// Has reports whether the cell of the block is set.
func (e Encoded) Has(b Block) bool {
	m := EncodeBlock(b)
	return e&m == m
}

// Count returns the number of filled cells.
func (e Encoded) Count() int {
	return bits.OnesCount64(uint64(e))
}

// Overlaps reports whether the two masks share any cell.
func (e Encoded) Overlaps(other Encoded) bool {
	return e&other != Empty
}

// String renders the mask as a zero-padded 64 digit binary number, most
// significant bit first.
func (e Encoded) String() string {
	return fmt.Sprintf("%064b", uint64(e))
}

// Hex renders the mask as a zero-padded 16 digit hexadecimal number.
func (e Encoded) Hex() string {
	return fmt.Sprintf("%016x", uint64(e))
}

// ParseEncoded is the inverse of Encoded.String.
func ParseEncoded(s string) (Encoded, error) {
	if len(s) != Cells {
		return Empty, fmt.Errorf("encoded mask %q: want %d binary digits, got %d", s, Cells, len(s))
	}
	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return Empty, fmt.Errorf("encoded mask %q: %w", s, err)
	}
	return Encoded(v), nil
}
