package raster

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/dymaxion/lib/geodesic"
	"github.com/phil-mansfield/dymaxion/lib/rng"
)

func TestColumns(t *testing.T) {
	tests := [][]uint64{
		{ 0 },
		{ 1, 2, 3, 4, 5 },
		{ math.MaxUint64, 0, 1 << 63, 0xdeadbeefcafe },
	}

	for i := range tests {
		wr := &bytes.Buffer{ }
		b := make([]byte, len(tests[i]))
		_, err := writeColumns(tests[i], b, nil, binary.LittleEndian, wr)
		require.NoError(t, err)

		q := make([]uint64, len(tests[i]))
		for j := range q { q[j] = 17 }
		_, _, err = readColumns(wr, nil, nil, binary.LittleEndian, q)
		require.NoError(t, err)
		require.Equal(t, tests[i], q, "%d", i)
	}
}

func TestReadWriteScalars(t *testing.T) {
	gen := rng.NewRNG(4)
	g := geodesic.New(3, 6371)
	r := New[float64](g)
	Evaluate(r, func(m int) float64 {
		return math.Sin(3*g.VertexDirection(m).Z) + 1e-3*gen.Uniform()
	})
	r.Set(0, math.Inf(-1))
	r.Set(1, math.NaN())
	r.Set(2, math.Copysign(0, -1))

	orders := []binary.ByteOrder{ binary.LittleEndian, binary.BigEndian }
	for _, order := range orders {
		buf := &bytes.Buffer{ }
		require.NoError(t, Write(buf, order, Scalars{ }, r))

		out, err := Read[float64](buf, Scalars{ }, nil)
		require.NoError(t, err)
		require.Equal(t, g.Level(), out.Grid().Level())
		require.Equal(t, g.Radius(), out.Grid().Radius())

		for m := 0; m < r.Len(); m++ {
			if math.Float64bits(r.At(m)) != math.Float64bits(out.At(m)) {
				t.Fatalf("%v) Wrote %g to vertex %d, but read %g.",
					order, r.At(m), m, out.At(m))
			}
		}
	}
}

func TestReadWriteFile(t *testing.T) {
	g := geodesic.New(2, 1)
	r := dirRaster(g)
	fname := filepath.Join(t.TempDir(), "dirs.dym")

	require.NoError(t, WriteFile(fname, Vectors{ }, r))

	out, err := ReadFile[r3.Vec](fname, Vectors{ }, g)
	require.NoError(t, err)
	require.Same(t, g, out.Grid())
	require.Equal(t, r.Data(), out.Data())

	_, err = ReadFile[float64](fname, Scalars{ }, nil)
	require.Error(t, err)

	_, err = ReadFile[r3.Vec](fname, Vectors{ }, geodesic.New(3, 1))
	require.Error(t, err)

	_, err = ReadFile[r3.Vec](filepath.Join(t.TempDir(), "missing.dym"),
		Vectors{ }, nil)
	require.Error(t, err)
}

func TestReadCorrupt(t *testing.T) {
	g := geodesic.New(1, 1)
	buf := &bytes.Buffer{ }
	require.NoError(t, Write(buf, binary.LittleEndian, Scalars{ }, idRaster(g)))
	data := buf.Bytes()

	tests := []struct{
		name string
		data []byte
	} {
		{"empty", []byte{ }},
		{"magic", append([]byte{ 1, 2, 3, 4 }, data[4:]...)},
		{"version", append(append([]byte{ }, data[:4]...),
			append([]byte{ 99, 0, 0, 0 }, data[8:]...)...)},
		{"truncated", data[:len(data) - 3]},
		{"header", data[:20]},
	}

	for i := range tests {
		_, err := Read[float64](bytes.NewReader(tests[i].data), Scalars{ }, nil)
		if err == nil {
			t.Errorf("%d) Expected reading a file with a bad %s to fail.",
				i, tests[i].name)
		}
	}
}
