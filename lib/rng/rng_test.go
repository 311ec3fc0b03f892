package rng

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestUniformRange(t *testing.T) {
	gen := NewRNG(1337)
	x := make([]float64, 10000)
	gen.UniformSequence(x)

	sum := 0.0
	for i := range x {
		if x[i] < 0 || x[i] >= 1 {
			t.Fatalf("%d) Expected a value in [0, 1), got %g.", i, x[i])
		}
		sum += x[i]
	}

	if mean := sum / float64(len(x)); math.Abs(mean - 0.5) > 0.02 {
		t.Errorf("Expected a mean near 0.5, got %g.", mean)
	}
}

func TestSeedsRepeat(t *testing.T) {
	tests := []uint64{ 0, 1, 42, 1<<40 + 3 }
	for i := range tests {
		g1, g2 := NewRNG(tests[i]), NewRNG(tests[i])
		for j := 0; j < 100; j++ {
			if x1, x2 := g1.Uniform(), g2.Uniform(); x1 != x2 {
				t.Errorf("%d) Seed %d gave %g and %g on draw %d.",
					i, tests[i], x1, x2, j)
				break
			}
		}
	}
}

func TestUnitVectors(t *testing.T) {
	gen := NewRNG(7)
	vecs := make([]r3.Vec, 20000)
	gen.UnitVectors(vecs)

	mean := r3.Vec{ }
	for i := range vecs {
		if n := r3.Norm(vecs[i]); math.Abs(n - 1) > 1e-12 {
			t.Fatalf("%d) Expected a unit vector, got %v with norm %g.",
				i, vecs[i], n)
		}
		mean = r3.Add(mean, vecs[i])
	}

	mean = r3.Scale(1/float64(len(vecs)), mean)
	if r3.Norm(mean) > 0.03 {
		t.Errorf("Expected directions to be isotropic, but their mean is %v.",
			mean)
	}
}
