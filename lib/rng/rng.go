/*package rng contains a small, seedable random number generator along with
samplers for the random directions used to test grids.*/
package rng

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	xorshiftMaxUint = float64(math.MaxUint32)
)

// RNG is an xorshift random number generator. It is not thread safe.
type RNG struct {
	w, x, y, z uint32
}

// NewRNG initializes an RNG with a given seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{ uint32(seed) ^ uint32(seed >> 32), 123456789, 362436069,
		521288629 }
}

func (gen *RNG) next() uint32 {
	t := gen.x ^ (gen.x << 11)
	gen.x, gen.y, gen.z = gen.y, gen.z, gen.w
	gen.w = gen.w ^ (gen.w >> 19) ^ (t ^ (t >> 8))
	return gen.w
}

// Uniform generates a single random number in the range [0, 1)
func (gen *RNG) Uniform() float64 {
	res := float64(math.MaxUint32 - gen.next()) / xorshiftMaxUint
	if res == 1.0 { return gen.Uniform() }
	return res
}

// UniformSequence generates one random number in the range [0, 1) for each
// element of the array target and writes them to that array.
func (gen *RNG) UniformSequence(target []float64) {
	for i := range target { target[i] = gen.Uniform() }
}

// UnitVector returns a direction drawn uniformly from the unit sphere.
func (gen *RNG) UnitVector() r3.Vec {
	z := 2*gen.Uniform() - 1
	phi := 2*math.Pi*gen.Uniform()
	r := math.Sqrt(1 - z*z)
	return r3.Vec{ X: r*math.Cos(phi), Y: r*math.Sin(phi), Z: z }
}

// UnitVectors fills target with directions drawn uniformly from the unit
// sphere.
func (gen *RNG) UnitVectors(target []r3.Vec) {
	for i := range target { target[i] = gen.UnitVector() }
}
