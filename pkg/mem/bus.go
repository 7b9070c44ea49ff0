package mem

import "github.com/bassosimone/rv64sim/pkg/exception"

// Memory map constants (§6 of the external interface contract).
const (
	RAMBase = 0x8000_0000
	RAMSize = 128 * 1024 * 1024
	RAMEnd  = RAMBase + RAMSize - 1
)

// Bus gates a single Mem behind the RAM address window. Any access outside
// [RAMBase, RAMBase+RAMSize) faults instead of reaching Mem.
type Bus struct {
	mem *Mem
}

// NewBus returns a Bus over a freshly allocated RAM-sized Mem, with image
// spliced in starting at offset 0.
func NewBus(image []byte) *Bus {
	return &Bus{mem: New(image, RAMSize)}
}

// Load reads width bytes at addr. Addresses outside the RAM window raise
// LoadAccessFault.
func (b *Bus) Load(addr uint64, width Width) (uint64, *exception.Exception) {
	if addr < RAMBase || addr > RAMEnd {
		return 0, exception.New(exception.LoadAccessFault, addr)
	}
	return b.mem.Load(addr-RAMBase, width), nil
}

// Store writes the low width bytes of value at addr. Addresses outside the
// RAM window raise StoreAMOAccessFault.
func (b *Bus) Store(addr uint64, width Width, value uint64) *exception.Exception {
	if addr < RAMBase || addr > RAMEnd {
		return exception.New(exception.StoreAMOAccessFault, addr)
	}
	b.mem.Store(addr-RAMBase, width, value)
	return nil
}
