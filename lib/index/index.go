/*package index contains the bijections between multi-dimensional integer
coordinates and flat array offsets that the rest of dymaxion is built on.

All coordinates passed to this package must be non-negative. None of these
functions check this: behavior for negative inputs is undefined.
*/
package index

// Interleaving maps a (block, element) pair onto a single integer, where every
// block contains ElementsPerBlock consecutive elements.
type Interleaving struct {
	ElementsPerBlock int
}

// NewInterleaving returns an Interleaving with the given block size.
func NewInterleaving(elementsPerBlock int) Interleaving {
	return Interleaving{ elementsPerBlock }
}

// InterleavedID returns the flat id of element within block.
func (in Interleaving) InterleavedID(block, element int) int {
	return block*in.ElementsPerBlock + element
}

// BlockID returns the block that the flat id lies in.
func (in Interleaving) BlockID(id int) int {
	return id / in.ElementsPerBlock
}

// ElementID returns the position of the flat id within its block.
func (in Interleaving) ElementID(id int) int {
	return id % in.ElementsPerBlock
}

// Cartesian maps 2D coordinates within a square region of width Side onto
// flat ids. x is the fastest-changing coordinate.
type Cartesian struct {
	Side int
	rows Interleaving
}

// NewCartesian returns the Cartesian indexing of a Side x Side square.
func NewCartesian(side int) Cartesian {
	return Cartesian{ side, NewInterleaving(side) }
}

// ID returns the flat id of the coordinate (x, y).
func (c Cartesian) ID(x, y int) int { return c.rows.InterleavedID(y, x) }

// Coords returns the coordinate of a flat id. It is the inverse of ID.
func (c Cartesian) Coords(id int) (x, y int) {
	return c.rows.ElementID(id), c.rows.BlockID(id)
}

// Len returns the number of ids in the square.
func (c Cartesian) Len() int { return c.Side*c.Side }

// Contains returns true if (x, y) lies inside the square and false otherwise.
func (c Cartesian) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Side && y < c.Side
}

// Pow returns base^exp for small, non-negative integer exponents using exact
// integer arithmetic.
func Pow(base, exp int) int {
	out := 1
	for i := 0; i < exp; i++ { out *= base }
	return out
}

// Digits writes the exp least significant base-b digits of x into out,
// most significant digit first, and returns out. out is resized as needed.
func Digits(x, base, exp int, out []int) []int {
	if cap(out) >= exp {
		out = out[:exp]
	} else {
		out = make([]int, exp)
	}

	digits := NewInterleaving(base)
	for i := exp - 1; i >= 0; i-- {
		out[i] = digits.ElementID(x)
		x = digits.BlockID(x)
	}
	return out
}

// Undigits is the inverse of Digits: it reassembles base-b digits, given
// most significant first, into an integer.
func Undigits(digits []int, base int) int {
	in := NewInterleaving(base)
	x := 0
	for _, d := range digits {
		x = in.InterleavedID(x, d)
	}
	return x
}
