package raster

/* file.go reads and writes compressed raster files. A raster file is laid out
as:

   uint32 MagicNumber
   uint32 Version
   Header
   for each component:
       for each of the eight byte columns:
           int64 length, followed by a zstd block of that length

All integers use the byte order of the machine that wrote the file, which is
detected from the magic number on read. */

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/phil-mansfield/dymaxion/lib/geodesic"
)

const (
	// MagicNumber is an arbitrary number at the start of all raster files
	// which should help identify when the code is run on something else by
	// accident.
	MagicNumber = 0xd1a5f00d
	// ReverseMagicNumber is the magic number if read on a machine with
	// flipped endianness.
	ReverseMagicNumber = 0x0df0a5d1
	Version = 1
)

// Header describes the grid and element type of a raster file.
type Header struct {
	// Level and Radius are the subdivision level and radius of the grid.
	Level int64
	Radius float64
	// N is the number of vertices in the grid.
	N int64
	// Type and Components give the element type of the raster and the number
	// of float64s each element is split into.
	Type TypeFlag
	Components uint32
}

// check returns an error if the header is inconsistent with itself or with
// the Layout it is being read into.
func (hd *Header) check(flag TypeFlag, components int) error {
	if hd.Level < 0 || hd.Level > geodesic.MaxLevel {
		return fmt.Errorf("The file has subdivision level %d, but only " +
			"levels in [0, %d] are supported.", hd.Level, geodesic.MaxLevel)
	} else if n := int64(10*(1 << uint(2*hd.Level)) + 2); hd.N != n {
		return fmt.Errorf("The file has %d values, but a level %d grid has " +
			"%d vertices.", hd.N, hd.Level, n)
	} else if hd.Radius < 0 {
		return fmt.Errorf("The file has a negative radius, %g.", hd.Radius)
	} else if hd.Type != flag {
		return fmt.Errorf("The file contains a %s raster, but a %s raster " +
			"was requested.", hd.Type, flag)
	} else if int(hd.Components) != components {
		return fmt.Errorf("The file's elements have %d components, but %s " +
			"elements have %d.", hd.Components, flag, components)
	}
	return nil
}

// Write writes r to wr using the given byte order.
func Write[T any, L Layout[T]](
	wr io.Writer, order binary.ByteOrder, l L, r *Raster[T],
) error {
	hd := Header{
		int64(r.grid.Level()), r.grid.Radius(), int64(r.Len()),
		l.TypeFlag(), uint32(l.Components()),
	}

	if err := binary.Write(wr, order, uint32(MagicNumber)); err != nil {
		return err
	}
	if err := binary.Write(wr, order, uint32(Version)); err != nil {
		return err
	}
	if err := binary.Write(wr, order, &hd); err != nil { return err }

	x := make([]float64, r.Len())
	q := make([]uint64, r.Len())
	b := make([]byte, r.Len())
	var buf []byte

	for comp := 0; comp < l.Components(); comp++ {
		l.Split(r.data, comp, x)
		floatsToBits(x, q)

		var err error
		buf, err = writeColumns(q, b, buf, order, wr)
		if err != nil { return err }
	}

	return nil
}

// Read reads a raster from rd. If g is nil, a new grid is built from the
// file's header. Otherwise the raster is placed on g, which must have the
// same subdivision level as the file.
func Read[T any, L Layout[T]](
	rd io.Reader, l L, g *geodesic.Grid,
) (*Raster[T], error) {
	order, err := checkHeader(rd)
	if err != nil { return nil, err }

	hd := Header{ }
	if err := binary.Read(rd, order, &hd); err != nil { return nil, err }
	if err := hd.check(l.TypeFlag(), l.Components()); err != nil {
		return nil, err
	}

	if g == nil {
		g = geodesic.New(int(hd.Level), hd.Radius)
	} else if int64(g.Level()) != hd.Level {
		return nil, fmt.Errorf("The file contains a level %d raster, but " +
			"it is being read onto a level %d grid.", hd.Level, g.Level())
	}

	r := New[T](g)
	x := make([]float64, r.Len())
	q := make([]uint64, r.Len())
	var b, buf []byte

	for comp := 0; comp < l.Components(); comp++ {
		b, buf, err = readColumns(rd, b, buf, order, q)
		if err != nil { return nil, err }

		bitsToFloats(q, x)
		l.Join(x, comp, r.data)
	}

	return r, nil
}

// checkHeader reads the magic number and version and returns the byte order
// of the file.
func checkHeader(rd io.Reader) (binary.ByteOrder, error) {
	var magicNumber, version uint32

	order := binary.ByteOrder(binary.LittleEndian)
	err := binary.Read(rd, order, &magicNumber)
	if err != nil { return nil, err }

	switch magicNumber {
	case MagicNumber:
	case ReverseMagicNumber: order = binary.BigEndian
	default:
		return nil, fmt.Errorf("This is not a raster file. All raster files " +
			"begin with either the 32-bit integer %x or %x. This file begins " +
			"with %x.", MagicNumber, ReverseMagicNumber, magicNumber)
	}

	err = binary.Read(rd, order, &version)
	if err != nil { return nil, err }
	if version > Version {
		return nil, fmt.Errorf("The file was written with raster version " +
			"%d, but is being read with version %d.", version, Version)
	}

	return order, nil
}

// WriteFile writes r to the file fname in the machine's native byte order.
func WriteFile[T any, L Layout[T]](fname string, l L, r *Raster[T]) error {
	data := &bytes.Buffer{ }
	if err := Write(data, binary.NativeEndian, l, r); err != nil {
		return err
	}
	return os.WriteFile(fname, data.Bytes(), 0644)
}

// ReadFile reads a raster from the file fname. See Read for the meaning of g.
func ReadFile[T any, L Layout[T]](
	fname string, l L, g *geodesic.Grid,
) (*Raster[T], error) {
	f, err := os.Open(fname)
	if err != nil { return nil, err }
	defer f.Close()

	r, err := Read[T](bufio.NewReader(f), l, g)
	if err != nil {
		return nil, fmt.Errorf("Could not read %s: %w", fname, err)
	}
	return r, nil
}
