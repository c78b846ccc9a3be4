package interpreter

import (
	"github.com/holiman/uint256"

	"github.com/ferrolite/evmcore/accesslist"
	"github.com/ferrolite/evmcore/bytecode"
	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/gas"
	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/memory"
	"github.com/ferrolite/evmcore/stack"
)

// Frame is the mutable state of one running call frame: the analyzed code,
// program counter, operand stack, byte memory, gas meter and the
// accumulated output/return-data buffers. Grounded on
// interpreter/lfvm/interpreter.go's context struct, split along this
// module's package boundaries (stack/memory/gas are their own packages
// here, instead of fields embedded directly in context).
type Frame struct {
	Params evmcore.Parameters
	Spec   *hardfork.Spec

	Code  bytecode.Analyzed
	PC    uint64
	Stack *stack.Stack
	Mem   *memory.Memory
	Gas   *gas.Meter

	AccessList accesslist.WarmingTracker

	// ReturnData is the output of the most recently completed nested call,
	// readable via RETURNDATACOPY/RETURNDATASIZE until the next call.
	ReturnData evmcore.Data

	// Output is the frame's own RETURN/REVERT payload, set once the frame
	// halts.
	Output evmcore.Data

	Status  evmcore.ExecutionStatus
	halted  bool
	jumpSet bool
	jumpPC  uint64
}

// NewFrame constructs a fresh frame ready to execute from pc 0.
func NewFrame(params evmcore.Parameters, spec *hardfork.Spec, code bytecode.Analyzed, gasMeter *gas.Meter, al accesslist.WarmingTracker) *Frame {
	return &Frame{
		Params:     params,
		Spec:       spec,
		Code:       code,
		Stack:      stack.New(),
		Mem:        memory.New(),
		Gas:        gasMeter,
		AccessList: al,
	}
}

// Release returns the frame's pooled stack to its pool. Callers must not use
// the frame afterward.
func (f *Frame) Release() {
	stack.Release(f.Stack)
	f.Stack = nil
}

// Halted reports whether the frame has reached a terminal instruction.
func (f *Frame) Halted() bool {
	return f.halted
}

// Halt marks the frame as finished with the given status and output.
func (f *Frame) Halt(status evmcore.ExecutionStatus, output evmcore.Data) {
	f.Status = status
	f.Output = output
	f.halted = true
}

// SetPC redirects control flow to target instead of the standard
// fall-through advance, used by JUMP/JUMPI handlers.
func (f *Frame) SetPC(target uint64) {
	f.jumpPC = target
	f.jumpSet = true
}

// consumeJump reports and clears a pending jump set by SetPC.
func (f *Frame) consumeJump() (uint64, bool) {
	if !f.jumpSet {
		return 0, false
	}
	f.jumpSet = false
	return f.jumpPC, true
}

// CurrentOp returns the opcode byte at pc, or STOP (0x00) past the end of
// code — matching the EVM's "implicit STOP at end of code" rule.
func (f *Frame) CurrentOp() byte {
	if f.PC >= uint64(len(f.Code.Code)) {
		return 0x00
	}
	return f.Code.Code[f.PC]
}

// Immediate returns the n bytes immediately following the opcode at pc,
// zero-padded if the code ends early. Run halts with StatusInvalidPC before
// executing a PUSH whose immediate bytes run past the end of the code.
func (f *Frame) Immediate(n int) []byte {
	start := f.PC + 1
	buf := make([]byte, n)
	if start >= uint64(len(f.Code.Code)) {
		return buf
	}
	end := start + uint64(n)
	if end > uint64(len(f.Code.Code)) {
		end = uint64(len(f.Code.Code))
	}
	copy(buf, f.Code.Code[start:end])
	return buf
}

// pushU is a convenience wrapper used by handler files: push v, translating
// the stack package's overflow error into the frame halting with
// StatusStackOverflow is handled by the caller (interpreter.go), not here —
// handlers just propagate the error.
func (f *Frame) pushU(v *uint256.Int) error {
	return f.Stack.Push(v)
}
