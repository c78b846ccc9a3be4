package interpreter

import (
	"github.com/holiman/uint256"

	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/opcodes"
)

// registerBitwise wires 0x10-0x1D: comparison, boolean logic, BYTE and the
// shift family (spec.md §4.7 comparison/bitwise group). All fixed VeryLow
// cost.
func registerBitwise(reg func(opcodes.OpCode, *Operation), spec *hardfork.Spec) {
	reg(opcodes.LT, newOp(opLt, 2, -1))
	reg(opcodes.GT, newOp(opGt, 2, -1))
	reg(opcodes.SLT, newOp(opSlt, 2, -1))
	reg(opcodes.SGT, newOp(opSgt, 2, -1))
	reg(opcodes.EQ, newOp(opEq, 2, -1))
	reg(opcodes.ISZERO, newOp(opIsZero, 1, 0))
	reg(opcodes.AND, newOp(opAnd, 2, -1))
	reg(opcodes.OR, newOp(opOr, 2, -1))
	reg(opcodes.XOR, newOp(opXor, 2, -1))
	reg(opcodes.NOT, newOp(opNot, 1, 0))
	reg(opcodes.BYTE, newOp(opByte, 2, -1))
	reg(opcodes.SHL, newOp(opShl, 2, -1))
	reg(opcodes.SHR, newOp(opShr, 2, -1))
	reg(opcodes.SAR, newOp(opSar, 2, -1))
}

func boolWord(cond bool) uint256.Int {
	if cond {
		return *uint256.NewInt(1)
	}
	return uint256.Int{}
}

// Comparisons follow go-ethereum's pop-top/peek-second convention: x is the
// popped top operand (yellow paper μs[0]), y the peeked second operand
// (μs[1]) which becomes the boolean result slot.

func opLt(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	*y = boolWord(x.Lt(y))
	_, _ = f.Stack.Pop()
	return nil
}

func opGt(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	*y = boolWord(x.Gt(y))
	_, _ = f.Stack.Pop()
	return nil
}

func opSlt(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	*y = boolWord(x.Slt(y))
	_, _ = f.Stack.Pop()
	return nil
}

func opSgt(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	*y = boolWord(x.Sgt(y))
	_, _ = f.Stack.Pop()
	return nil
}

func opEq(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	*y = boolWord(x.Eq(y))
	_, _ = f.Stack.Pop()
	return nil
}

func opIsZero(f *Frame) error {
	a, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	*a = boolWord(a.IsZero())
	return nil
}

func opAnd(f *Frame) error {
	a, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	b, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	a.And(a, b)
	_, _ = f.Stack.Pop()
	return nil
}

func opOr(f *Frame) error {
	a, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	b, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	a.Or(a, b)
	_, _ = f.Stack.Pop()
	return nil
}

func opXor(f *Frame) error {
	a, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	b, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	a.Xor(a, b)
	_, _ = f.Stack.Pop()
	return nil
}

func opNot(f *Frame) error {
	a, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	a.Not(a)
	return nil
}

func opByte(f *Frame) error {
	index, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	value, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	value.Byte(index)
	_, _ = f.Stack.Pop()
	return nil
}

// The shift family pops shift (the top element) and overwrites value (the
// next element) in place, matching go-ethereum's opSHL/opSHR/opSAR pop/peek
// convention.

func opShl(f *Frame) error {
	shift, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	value, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	if shift.GtUint64(255) {
		value.Clear()
	} else {
		value.Lsh(value, uint(shift.Uint64()))
	}
	_, _ = f.Stack.Pop()
	return nil
}

func opShr(f *Frame) error {
	shift, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	value, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	if shift.GtUint64(255) {
		value.Clear()
	} else {
		value.Rsh(value, uint(shift.Uint64()))
	}
	_, _ = f.Stack.Pop()
	return nil
}

func opSar(f *Frame) error {
	shift, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	value, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	if shift.GtUint64(255) {
		if value.Bit(255) == 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
	} else {
		value.SRsh(value, uint(shift.Uint64()))
	}
	_, _ = f.Stack.Pop()
	return nil
}
