// Package memory implements the byte-addressable, word-expanding memory
// region of a single call frame.
package memory

import (
	"math"

	"github.com/holiman/uint256"
)

// wordSize is the number of bytes in one expansion unit.
const wordSize = 32

// Memory is a byte buffer that only ever grows, in whole 32-byte words, for
// the lifetime of one call frame. Growth and its gas accounting are
// deliberately decoupled (spec.md §4.3/§4.4): Memory exposes plain byte
// sizing (SizeInWords, Len) so that package gas can price an expansion
// before Memory actually performs it via EnsureCapacity.
type Memory struct {
	store []byte
}

// New returns an empty Memory.
func New() *Memory {
	return &Memory{}
}

// Len returns the current byte length of the memory.
func (m *Memory) Len() uint64 {
	return uint64(len(m.store))
}

// SizeInWords returns the number of 32-byte words needed to hold size bytes.
func SizeInWords(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	words := (size + wordSize - 1) / wordSize
	return words
}

// sizeRoundedUp rounds size up to the next multiple of 32 bytes, saturating
// to math.MaxUint64 on overflow (spec.md §4.3/§4.4 "saturating to u64
// maximum").
func sizeRoundedUp(size uint64) uint64 {
	words := SizeInWords(size)
	rounded := words * wordSize
	if rounded/wordSize != words {
		return math.MaxUint64
	}
	return rounded
}

// EnsureCapacity grows the memory to cover offset+size, rounded up to a
// whole word, if it is not already that large. A zero size never expands
// memory, matching spec.md §4.3's explicit "zero-length accesses never
// expand memory" rule. The caller is responsible for having already priced
// the expansion via gas.Meter.MemoryExpansionCost/UpdateMemoryCost.
func (m *Memory) EnsureCapacity(offset, size uint64) {
	if size == 0 {
		return
	}
	needed := sizeRoundedUp(offset + size)
	if uint64(len(m.store)) >= needed {
		return
	}
	grown := make([]byte, needed)
	copy(grown, m.store)
	m.store = grown
}

// MStore writes a 32-byte big-endian word at offset. The caller must have
// already ensured capacity.
func (m *Memory) MStore(offset uint64, value [32]byte) {
	copy(m.store[offset:offset+32], value[:])
}

// MStoreWord is a convenience wrapper writing a *uint256.Int.
func (m *Memory) MStoreWord(offset uint64, value *uint256.Int) {
	bytes := value.Bytes32()
	m.MStore(offset, bytes)
}

// MStore8 writes a single byte at offset.
func (m *Memory) MStore8(offset uint64, value byte) {
	m.store[offset] = value
}

// MLoad reads a 32-byte big-endian word starting at offset. The caller must
// have already ensured capacity covering offset+32.
func (m *Memory) MLoad(offset uint64) [32]byte {
	var out [32]byte
	copy(out[:], m.store[offset:offset+32])
	return out
}

// GetSlice returns a read-only view of n bytes at offset. Returns nil for a
// zero-length request, per spec.md §4.3.
func (m *Memory) GetSlice(offset, n uint64) []byte {
	if n == 0 {
		return nil
	}
	if uint64(len(m.store)) < offset+n {
		return nil
	}
	return m.store[offset : offset+n]
}

// CopyIn copies src into the memory at offset. The caller must have already
// ensured capacity covering offset+len(src); an empty src is a no-op. Used by
// CALLDATACOPY/CODECOPY/EXTCODECOPY/RETURNDATACOPY-style handlers, which
// read from an external byte slice rather than from this Memory.
func (m *Memory) CopyIn(offset uint64, src []byte) {
	if len(src) == 0 {
		return
	}
	copy(m.store[offset:offset+uint64(len(src))], src)
}

// MCopy performs a possibly-overlapping copy of n bytes from src to dst
// within this Memory (EIP-5656), preserving observable byte values as if
// the source were read before the destination were written (spec.md
// §4.3). The caller must have already ensured capacity for both ranges.
func (m *Memory) MCopy(dst, src, n uint64) {
	if n == 0 {
		return
	}
	copy(m.store[dst:dst+n], m.store[src:src+n])
}
