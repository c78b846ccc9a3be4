package interpreter

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/opcodes"
)

func keccak256(data []byte) evmcore.Hash {
	return evmcore.Hash(crypto.Keccak256Hash(data))
}

// registerMemoryOps wires the byte-memory and calldata/code/returndata copy
// family plus KECCAK256 (spec.md §4.3/§4.7). Every handler here follows the
// two-phase protocol: Dynamic peeks the stack to price memory expansion and
// any per-word cost without mutating anything; Execute pops the same
// operands, grows memory (gas.Meter.UpdateMemoryCost records the new
// cumulative cost) and performs the actual read/write.
func registerMemoryOps(reg func(opcodes.OpCode, *Operation), spec *hardfork.Spec) {
	mload := newOp(opMLoad, 1, 0)
	mload.Dynamic = memExpansionGasPeek1(0)
	reg(opcodes.MLOAD, mload)

	mstore := newOp(opMStore, 2, -2)
	mstore.Dynamic = memExpansionGasPeek1(0)
	reg(opcodes.MSTORE, mstore)

	mstore8 := newOp(opMStore8, 2, -2)
	mstore8.Dynamic = memExpansionGasByte(0)
	reg(opcodes.MSTORE8, mstore8)

	reg(opcodes.MSIZE, newOp(opMSize, 0, 1))

	if spec.HasMCopy {
		mcopy := newOp(opMCopy, 3, -3)
		mcopy.Dynamic = mcopyDynamicGas(spec)
		reg(opcodes.MCOPY, mcopy)
	}

	sha3 := newOp(opSha3, 2, -1)
	sha3.Dynamic = sha3DynamicGas(spec)
	reg(opcodes.SHA3, sha3)

	calldatacopy := newOp(opCalldataCopy, 3, -3)
	calldatacopy.Dynamic = copyDynamicGas(spec)
	reg(opcodes.CALLDATACOPY, calldatacopy)

	codecopy := newOp(opCodeCopy, 3, -3)
	codecopy.Dynamic = copyDynamicGas(spec)
	reg(opcodes.CODECOPY, codecopy)

	returndatacopy := newOp(opReturnDataCopy, 3, -3)
	returndatacopy.Dynamic = copyDynamicGas(spec)
	reg(opcodes.RETURNDATACOPY, returndatacopy)
}

// memExpansionGasPeek1 returns a Dynamic that prices the single-word access
// at stack index offsetIdx (MLOAD/MSTORE: a 32-byte region).
func memExpansionGasPeek1(offsetIdx int) DynamicGas {
	return func(f *Frame) (evmcore.Gas, error) {
		offset, err := f.Stack.Peek(offsetIdx)
		if err != nil {
			return 0, err
		}
		return memExpansionCost(f, offset, 32)
	}
}

// memExpansionGasByte prices a single-byte access (MSTORE8).
func memExpansionGasByte(offsetIdx int) DynamicGas {
	return func(f *Frame) (evmcore.Gas, error) {
		offset, err := f.Stack.Peek(offsetIdx)
		if err != nil {
			return 0, err
		}
		return memExpansionCost(f, offset, 1)
	}
}

func memExpansionCost(f *Frame, offset *uint256.Int, size uint64) (evmcore.Gas, error) {
	off, ok := asMemoryOffset(offset)
	if !ok {
		return 0, evmcore.ErrGasUintOverflow
	}
	needed := off + size
	return f.Gas.MemoryExpansionCost(f.Mem.Len(), needed), nil
}

// asMemoryOffset rejects offsets that cannot plausibly fit in memory
// (anything beyond uint64 range is certain to exceed any real gas budget).
func asMemoryOffset(v *uint256.Int) (uint64, bool) {
	if !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

func opMLoad(f *Frame) error {
	offset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	off, ok := asMemoryOffset(&offset)
	if !ok {
		return evmcore.ErrGasUintOverflow
	}
	f.Mem.EnsureCapacity(off, 32)
	f.Gas.UpdateMemoryCost(f.Mem.Len())
	word := f.Mem.MLoad(off)
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetBytes32(word[:])
	return nil
}

func opMStore(f *Frame) error {
	offset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	value, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	off, ok := asMemoryOffset(&offset)
	if !ok {
		return evmcore.ErrGasUintOverflow
	}
	f.Mem.EnsureCapacity(off, 32)
	f.Gas.UpdateMemoryCost(f.Mem.Len())
	f.Mem.MStoreWord(off, &value)
	return nil
}

func opMStore8(f *Frame) error {
	offset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	value, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	off, ok := asMemoryOffset(&offset)
	if !ok {
		return evmcore.ErrGasUintOverflow
	}
	f.Mem.EnsureCapacity(off, 1)
	f.Gas.UpdateMemoryCost(f.Mem.Len())
	f.Mem.MStore8(off, byte(value.Uint64()))
	return nil
}

func opMSize(f *Frame) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(f.Mem.Len())
	return nil
}

func mcopyDynamicGas(spec *hardfork.Spec) DynamicGas {
	return func(f *Frame) (evmcore.Gas, error) {
		dst, err := f.Stack.Peek(0)
		if err != nil {
			return 0, err
		}
		src, err := f.Stack.Peek(1)
		if err != nil {
			return 0, err
		}
		size, err := f.Stack.Peek(2)
		if err != nil {
			return 0, err
		}
		if size.IsZero() {
			return 0, nil
		}
		n, ok := asMemoryOffset(size)
		if !ok {
			return 0, evmcore.ErrGasUintOverflow
		}
		dstOff, ok := asMemoryOffset(dst)
		if !ok {
			return 0, evmcore.ErrGasUintOverflow
		}
		srcOff, ok := asMemoryOffset(src)
		if !ok {
			return 0, evmcore.ErrGasUintOverflow
		}
		needed := dstOff + n
		if s := srcOff + n; s > needed {
			needed = s
		}
		expansion := f.Gas.MemoryExpansionCost(f.Mem.Len(), needed)
		words := (n + 31) / 32
		return expansion + evmcore.Gas(words)*spec.CopyWordCost, nil
	}
}

func opMCopy(f *Frame) error {
	dst, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	src, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	size, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	n, ok := asMemoryOffset(&size)
	if !ok {
		return evmcore.ErrGasUintOverflow
	}
	if n == 0 {
		return nil
	}
	dstOff, _ := asMemoryOffset(&dst)
	srcOff, _ := asMemoryOffset(&src)
	needed := dstOff + n
	if s := srcOff + n; s > needed {
		needed = s
	}
	f.Mem.EnsureCapacity(0, needed)
	f.Gas.UpdateMemoryCost(f.Mem.Len())
	f.Mem.MCopy(dstOff, srcOff, n)
	return nil
}

func sha3DynamicGas(spec *hardfork.Spec) DynamicGas {
	return func(f *Frame) (evmcore.Gas, error) {
		offset, err := f.Stack.Peek(0)
		if err != nil {
			return 0, err
		}
		size, err := f.Stack.Peek(1)
		if err != nil {
			return 0, err
		}
		if size.IsZero() {
			return 0, nil
		}
		n, ok := asMemoryOffset(size)
		if !ok {
			return 0, evmcore.ErrGasUintOverflow
		}
		cost, err := memExpansionCost(f, offset, n)
		if err != nil {
			return 0, err
		}
		words := (n + 31) / 32
		return cost + evmcore.Gas(words)*spec.Keccak256WordCost, nil
	}
}

func opSha3(f *Frame) error {
	offset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	size, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	n, ok := asMemoryOffset(&size)
	if !ok {
		return evmcore.ErrGasUintOverflow
	}
	off, _ := asMemoryOffset(&offset)
	f.Mem.EnsureCapacity(off, n)
	f.Gas.UpdateMemoryCost(f.Mem.Len())
	data := f.Mem.GetSlice(off, n)
	hash := keccak256(data)
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetBytes32(hash[:])
	return nil
}

// copyDynamicGas prices the common destOffset/offset/size copy shape shared
// by CALLDATACOPY, CODECOPY and RETURNDATACOPY: memory expansion plus
// CopyWordCost per 32-byte word copied (spec.md §4.7).
func copyDynamicGas(spec *hardfork.Spec) DynamicGas {
	return func(f *Frame) (evmcore.Gas, error) {
		destOffset, err := f.Stack.Peek(0)
		if err != nil {
			return 0, err
		}
		size, err := f.Stack.Peek(2)
		if err != nil {
			return 0, err
		}
		if size.IsZero() {
			return 0, nil
		}
		n, ok := asMemoryOffset(size)
		if !ok {
			return 0, evmcore.ErrGasUintOverflow
		}
		cost, err := memExpansionCost(f, destOffset, n)
		if err != nil {
			return 0, err
		}
		words := (n + 31) / 32
		return cost + evmcore.Gas(words)*spec.CopyWordCost, nil
	}
}

func opCalldataCopy(f *Frame) error {
	destOffset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	offset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	size, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	return copyBytesIn(f, &destOffset, []byte(f.Params.Input), &offset, &size)
}

func opCodeCopy(f *Frame) error {
	destOffset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	offset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	size, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	return copyBytesIn(f, &destOffset, []byte(f.Code.Code), &offset, &size)
}

func opReturnDataCopy(f *Frame) error {
	destOffset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	offset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	size, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	// RETURNDATACOPY alone rejects a request that runs past the end of the
	// buffer instead of zero-padding, per spec.md §4.7.
	n, ok := asMemoryOffset(&size)
	if !ok {
		return evmcore.ErrGasUintOverflow
	}
	off, ok := asMemoryOffset(&offset)
	if !ok {
		return evmcore.ErrGasUintOverflow
	}
	if off+n > uint64(len(f.ReturnData)) {
		f.Halt(evmcore.StatusInvalidPC, nil)
		return nil
	}
	return copyBytesIn(f, &destOffset, []byte(f.ReturnData), &offset, &size)
}

// copyBytesIn implements the CALLDATACOPY/CODECOPY/RETURNDATACOPY shape:
// copy size bytes of src starting at offset into memory at destOffset,
// zero-padding past the end of src.
func copyBytesIn(f *Frame, destOffset *uint256.Int, src []byte, offset, size *uint256.Int) error {
	n, ok := asMemoryOffset(size)
	if !ok {
		return evmcore.ErrGasUintOverflow
	}
	dest, ok := asMemoryOffset(destOffset)
	if !ok {
		return evmcore.ErrGasUintOverflow
	}
	f.Mem.EnsureCapacity(dest, n)
	f.Gas.UpdateMemoryCost(f.Mem.Len())
	if n == 0 {
		return nil
	}
	off, ok := asMemoryOffset(offset)
	if !ok || off >= uint64(len(src)) {
		return nil
	}
	end := off + n
	if end > uint64(len(src)) {
		end = uint64(len(src))
	}
	f.Mem.CopyIn(dest, src[off:end])
	return nil
}
