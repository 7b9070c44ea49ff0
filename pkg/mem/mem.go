// Package mem implements the flat byte-addressable memory and the RAM-window
// bus that every core in this module executes against.
package mem

// Width is the byte width of a memory access. Only 1, 2, 4, and 8 are valid;
// behavior for any other width is undefined and callers must not pass one.
type Width uint64

// The widths a load or store may use.
const (
	B8  Width = 1
	B16 Width = 2
	B32 Width = 4
	B64 Width = 8
)

// Mem is a contiguous byte buffer addressed 0-based.
type Mem struct {
	buf []byte
}

// New returns a Mem of the given size with image copied in starting at
// offset 0. image must not be longer than size.
func New(image []byte, size uint64) *Mem {
	buf := make([]byte, size)
	copy(buf, image)
	return &Mem{buf: buf}
}

// Size returns the number of addressable bytes.
func (m *Mem) Size() uint64 {
	return uint64(len(m.buf))
}

// Load reads width bytes starting at offset, little-endian, zero-extended
// into a uint64.
func (m *Mem) Load(offset uint64, width Width) uint64 {
	var v uint64
	for i := uint64(0); i < uint64(width); i++ {
		v |= uint64(m.buf[offset+i]) << (8 * i)
	}
	return v
}

// Store writes the low width bytes of value at offset, little-endian.
func (m *Mem) Store(offset uint64, width Width, value uint64) {
	for i := uint64(0); i < uint64(width); i++ {
		m.buf[offset+i] = byte(value >> (8 * i))
	}
}
