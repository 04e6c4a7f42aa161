package ui

import (
	"errors"
	"fmt"
	"image"
)

var ErrBadBitmap = errors.New("ui: bad bitmap")

// Bitmap is a 1-bit image drawn with every source pixel as a scale×scale block.
type Bitmap struct {
	cols, rows int
	scale      int
	bits       []uint8
}

// ParseBitmap builds a bitmap from ASCII art: '#' is set, '.' and ' ' are
// clear. All rows must have the same width.
func ParseBitmap(art []string, scale int) (*Bitmap, error) {
	if len(art) == 0 || len(art[0]) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadBitmap)
	}
	if scale < 1 {
		return nil, fmt.Errorf("%w: scale %d", ErrBadBitmap, scale)
	}
	b := &Bitmap{cols: len(art[0]), rows: len(art), scale: scale}
	b.bits = make([]uint8, (b.cols*b.rows+7)/8)
	for y, row := range art {
		if len(row) != b.cols {
			return nil, fmt.Errorf("%w: row %d is %d wide, want %d", ErrBadBitmap, y, len(row), b.cols)
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case '#':
				i := y*b.cols + x
				b.bits[i/8] |= 1 << (i % 8)
			case '.', ' ':
			default:
				return nil, fmt.Errorf("%w: row %d: unexpected %q", ErrBadBitmap, y, row[x])
			}
		}
	}
	return b, nil
}

// MustParseBitmap is ParseBitmap for built-in art.
func MustParseBitmap(art []string, scale int) *Bitmap {
	b, err := ParseBitmap(art, scale)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Bitmap) Scale() int { return b.scale }

// Size is the drawn size in pixels.
func (b *Bitmap) Size() image.Point { return image.Pt(b.cols*b.scale, b.rows*b.scale) }

// Set reports whether the drawn pixel (x, y) is set.
func (b *Bitmap) Set(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	return b.bit(x/b.scale, y/b.scale)
}

func (b *Bitmap) bit(x, y int) bool {
	if x < 0 || y < 0 || x >= b.cols || y >= b.rows {
		return false
	}
	i := y*b.cols + x
	return b.bits[i/8]&(1<<(i%8)) != 0
}
