package raster

/* codec.go compresses arrays of float64s by splitting their bit patterns into
eight one-byte "columns" and compressing each column separately with zstd.
The high-significance columns of smooth fields are nearly constant, so they
compress to almost nothing. */

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/DataDog/zstd"
)

// CompressionLevel is the zstd level used for every column.
const CompressionLevel = 1

// floatsToBits writes the IEEE-754 bit patterns of x into q.
func floatsToBits(x []float64, q []uint64) {
	for i := range x { q[i] = math.Float64bits(x[i]) }
}

// bitsToFloats is the inverse of floatsToBits.
func bitsToFloats(q []uint64, x []float64) {
	for i := range q { x[i] = math.Float64frombits(q[i]) }
}

// intToByte transfers a one-byte "column" from q to b. The bytes are indexed
// from least to most significant.
func intToByte(q []uint64, b []byte, col int) {
	for i := range q {
		b[i] = byte((q[i] >> (8*col)) & 0xff)
	}
}

// byteToInt adds a one-byte column to q. q must start out zeroed.
func byteToInt(b []byte, q []uint64, col int) {
	for i := range q {
		q[i] |= uint64(b[i]) << (8*col)
	}
}

// resizeBytes resizes a byte buffer to have length n.
func resizeBytes(b []byte, n int) []byte {
	if cap(b) >= n {
		b = b[:n]
	} else {
		b = b[:cap(b)]
		b = append(b, make([]byte, n - len(b))...)
	}

	return b
}

// writeColumns writes q to wr as eight length-prefixed zstd blocks, one per
// byte column. b is used as a temporary internal buffer and must be the same
// length as q. buf is resized as needed and returned so that it can be
// reused by later calls.
func writeColumns(
	q []uint64, b, buf []byte, order binary.ByteOrder, wr io.Writer,
) ([]byte, error) {
	if len(q) != len(b) {
		panic(fmt.Sprintf("Internal error: output byte buffer has length %d," +
			" but the bit array has length %d.", len(b), len(q)))
	}

	for i := 0; i < 8; i++ {
		intToByte(q, b, i)

		var err error
		buf, err = zstd.CompressLevel(buf[:cap(buf)], b, CompressionLevel)
		if err != nil { return nil, err }

		err = binary.Write(wr, order, int64(len(buf)))
		if err != nil { return nil, err }

		_, err = wr.Write(buf)
		if err != nil { return nil, err }
	}

	return buf[:0], nil
}

// readColumns reads q from rd, reversing writeColumns. b and buf are used as
// temporary internal buffers and will be resized as needed. Resized versions
// are returned by the function.
func readColumns(
	rd io.Reader, b, buf []byte, order binary.ByteOrder, q []uint64,
) (bOut, bufOut []byte, err error) {
	for i := range q { q[i] = 0 }
	b = resizeBytes(b, len(q))

	for i := 0; i < 8; i++ {
		nBuf := int64(0)
		err := binary.Read(rd, order, &nBuf)
		if err != nil { return nil, nil, err }
		if nBuf < 0 {
			return nil, nil, fmt.Errorf("Column %d has a negative length, " +
				"%d.", i, nBuf)
		}

		buf = resizeBytes(buf, int(nBuf))
		if _, err = io.ReadFull(rd, buf); err != nil { return nil, nil, err }

		b, err = zstd.Decompress(b[:cap(b)], buf)
		if err != nil { return nil, nil, err }
		if len(b) != len(q) {
			return nil, nil, fmt.Errorf("Column %d decompressed to %d bytes, " +
				"but %d values were expected.", i, len(b), len(q))
		}

		byteToInt(b, q, i)
	}

	return b[:0], buf[:0], nil
}
