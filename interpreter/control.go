package interpreter

import (
	"github.com/holiman/uint256"

	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/opcodes"
)

// registerControl wires STOP, the JUMP family, stack-shuffle opcodes
// (POP/PUSHn/DUPn/SWAPn), PC, GAS, JUMPDEST and INVALID (spec.md §4.7
// control-flow group). PUSH0 is only registered when spec.HasPush0 is set
// (spec.md §4.1 per-fork opcode availability).
func registerControl(reg func(opcodes.OpCode, *Operation), spec *hardfork.Spec) {
	stop := newOp(opStop, 0, 0)
	stop.Halts, stop.Jumps = true, true
	reg(opcodes.STOP, stop)

	jump := newOp(opJump, 1, -1)
	jump.Jumps = true
	reg(opcodes.JUMP, jump)

	jumpi := newOp(opJumpi, 2, -2)
	jumpi.Jumps = true
	reg(opcodes.JUMPI, jumpi)

	reg(opcodes.PC, newOp(opPC, 0, 1))
	reg(opcodes.GAS, newOp(opGas, 0, 1))
	reg(opcodes.JUMPDEST, newOp(opJumpdest, 0, 0))
	reg(opcodes.POP, newOp(opPop, 1, -1))

	invalid := newOp(opInvalid, 0, 0)
	invalid.Halts, invalid.Jumps = true, true
	reg(opcodes.INVALID, invalid)

	if spec.HasPush0 {
		reg(opcodes.PUSH0, newOp(opPush0, 0, 1))
	}
	for n := 1; n <= 32; n++ {
		reg(opcodes.PUSH1+opcodes.OpCode(n-1), newOp(makePush(n), 0, 1))
	}
	for n := 1; n <= 16; n++ {
		reg(opcodes.DUP1+opcodes.OpCode(n-1), newOp(makeDup(n), n, 1))
	}
	for n := 1; n <= 16; n++ {
		reg(opcodes.SWAP1+opcodes.OpCode(n-1), newOp(makeSwap(n), n+1, 0))
	}
}

func opStop(f *Frame) error {
	f.Halt(evmcore.StatusSuccess, nil)
	return nil
}

func opInvalid(f *Frame) error {
	f.Halt(evmcore.StatusInvalidOpcode, nil)
	return nil
}

func opJumpdest(f *Frame) error {
	return nil
}

func opJump(f *Frame) error {
	dest, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	return jumpTo(f, &dest)
}

func opJumpi(f *Frame) error {
	dest, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	cond, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	if cond.IsZero() {
		f.SetPC(f.PC + 1)
		return nil
	}
	return jumpTo(f, &dest)
}

// jumpTo validates dest against the code's JUMPDEST bitmap before
// redirecting control flow (spec.md §4.6/§4.8 "JUMP/JUMPI validity").
func jumpTo(f *Frame, dest *uint256.Int) error {
	if !dest.IsUint64() {
		f.Halt(evmcore.StatusInvalidJump, nil)
		return nil
	}
	pc := dest.Uint64()
	if !f.Code.JumpDests.IsJumpDest(pc) {
		f.Halt(evmcore.StatusInvalidJump, nil)
		return nil
	}
	f.SetPC(pc)
	return nil
}

func opPC(f *Frame) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(f.PC)
	return nil
}

func opGas(f *Frame) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(f.Gas.Remaining()))
	return nil
}

func opPop(f *Frame) error {
	_, err := f.Stack.Pop()
	return err
}

func opPush0(f *Frame) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.Clear()
	return nil
}

func makePush(n int) Execute {
	return func(f *Frame) error {
		v, err := f.Stack.PushUndefined()
		if err != nil {
			return err
		}
		v.SetBytes(f.Immediate(n))
		return nil
	}
}

func makeDup(n int) Execute {
	return func(f *Frame) error {
		return f.Stack.Dup(n)
	}
}

func makeSwap(n int) Execute {
	return func(f *Frame) error {
		return f.Stack.Swap(n)
	}
}
