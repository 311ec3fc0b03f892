/*package catio reads columns of numbers out of text catalogues, e.g. lists of
query directions:

   # x     y     z
   0.1   0.2   0.9
   -1    0     0
*/
package catio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// TextConfig contains information neccessary for parsing catalogues.
type TextConfig struct {
	Separator byte // Character used to separate fields. ' ' means any whitespace.
	Comment byte // Character used to start comments.
	SkipLines int // Number of lines to skip at the start of the file.
	MaxLineSize int // Largest possible line size.
}

// DefaultConfig reads whitespace-separated files with '#' comments.
var DefaultConfig = TextConfig{
	Separator: ' ',
	Comment: '#',
	SkipLines: 0,
	MaxLineSize: 1<<20,
}

// ReadFloat64s reads the specified columns from rd. out[i][j] is the value of
// columns[i] on the j-th non-empty line.
func ReadFloat64s(
	rd io.Reader, columns []int, config ...TextConfig,
) ([][]float64, error) {
	c := DefaultConfig
	if len(config) > 0 { c = config[0] }

	maxCol := -1
	for _, col := range columns {
		if col < 0 {
			return nil, fmt.Errorf("Column index %d is negative.", col)
		}
		if col > maxCol { maxCol = col }
	}

	out := make([][]float64, len(columns))
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 4096), c.MaxLineSize)

	for line := 1; sc.Scan(); line++ {
		if line <= c.SkipLines { continue }
		fields := c.fields(sc.Text())
		if len(fields) == 0 { continue }

		if len(fields) <= maxCol {
			return nil, fmt.Errorf("Line %d has %d columns, but column %d " +
				"was requested.", line, len(fields), maxCol)
		}
		for i, col := range columns {
			x, err := strconv.ParseFloat(fields[col], 64)
			if err != nil {
				return nil, fmt.Errorf("Column %d of line %d, '%s', is not " +
					"a number.", col, line, fields[col])
			}
			out[i] = append(out[i], x)
		}
	}

	if err := sc.Err(); err != nil { return nil, err }
	return out, nil
}

// fields removes comments from a line and splits it into fields.
func (c *TextConfig) fields(line string) []string {
	if i := strings.IndexByte(line, c.Comment); i >= 0 { line = line[:i] }

	if c.Separator == ' ' { return strings.Fields(line) }
	if strings.TrimSpace(line) == "" { return nil }
	fields := strings.Split(line, string(c.Separator))
	for i := range fields { fields[i] = strings.TrimSpace(fields[i]) }
	return fields
}

// ReadVectors reads three columns from rd as the x, y, and z components of
// vectors.
func ReadVectors(
	rd io.Reader, columns [3]int, config ...TextConfig,
) ([]r3.Vec, error) {
	cols, err := ReadFloat64s(rd, columns[:], config...)
	if err != nil { return nil, err }

	out := make([]r3.Vec, len(cols[0]))
	for i := range out {
		out[i] = r3.Vec{ X: cols[0][i], Y: cols[1][i], Z: cols[2][i] }
	}
	return out, nil
}

// ReadVectorFile reads vectors from the file fname. See ReadVectors.
func ReadVectorFile(
	fname string, columns [3]int, config ...TextConfig,
) ([]r3.Vec, error) {
	f, err := os.Open(fname)
	if err != nil { return nil, err }
	defer f.Close()

	vecs, err := ReadVectors(f, columns, config...)
	if err != nil {
		return nil, fmt.Errorf("Could not read %s: %w", fname, err)
	}
	return vecs, nil
}
