package catio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/dymaxion/lib/eq"
)

func TestReadFloat64s(t *testing.T) {
	text := `# id x y z
0 1.5 2 3

1 -1 0 1e3 # trailing comment
	2 0 0.25   -7
`
	tests := []struct{
		columns []int
		out [][]float64
	} {
		{[]int{ 0 }, [][]float64{ { 0, 1, 2 } }},
		{[]int{ 3, 1 }, [][]float64{ { 3, 1e3, -7 }, { 1.5, -1, 0 } }},
		{[]int{ }, [][]float64{ }},
	}

	for i := range tests {
		out, err := ReadFloat64s(strings.NewReader(text), tests[i].columns)
		require.NoError(t, err, "%d", i)
		require.Equal(t, len(tests[i].out), len(out), "%d", i)
		for j := range out {
			if !eq.Float64sEps(tests[i].out[j], out[j], 0) {
				t.Errorf("%d) Expected column %d to be %v, got %v.",
					i, tests[i].columns[j], tests[i].out[j], out[j])
			}
		}
	}
}

func TestReadConfig(t *testing.T) {
	text := "x,y\n1, 2\n3 ,4\n; comment\n"
	c := TextConfig{ Separator: ',', Comment: ';', SkipLines: 1,
		MaxLineSize: 100 }

	out, err := ReadFloat64s(strings.NewReader(text), []int{ 1, 0 }, c)
	require.NoError(t, err)
	require.Equal(t, [][]float64{ { 2, 4 }, { 1, 3 } }, out)
}

func TestReadErrors(t *testing.T) {
	tests := []struct{
		text string
		columns []int
	} {
		{"1 2\n3\n", []int{ 1 }},
		{"1 2\n3 x\n", []int{ 1 }},
		{"1 2\n", []int{ -1 }},
		{strings.Repeat("1", 2*DefaultConfig.MaxLineSize), []int{ 0 }},
	}

	for i := range tests {
		_, err := ReadFloat64s(strings.NewReader(tests[i].text),
			tests[i].columns)
		if err == nil {
			t.Errorf("%d) Expected an error, got none.", i)
		}
	}
}

func TestReadVectors(t *testing.T) {
	vecs, err := ReadVectors(strings.NewReader("a 1 2 3\nb 4 5 6\n"),
		[3]int{ 3, 2, 1 }, DefaultConfig)
	require.NoError(t, err)
	require.Equal(t, []r3.Vec{ { X: 3, Y: 2, Z: 1 }, { X: 6, Y: 5, Z: 4 } },
		vecs)

	vecs, err = ReadVectors(strings.NewReader("# nothing\n"), [3]int{ 0, 1, 2 })
	require.NoError(t, err)
	require.Len(t, vecs, 0)
}
