package interpreter

import (
	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/opcodes"
)

// registerArithmetic wires 0x01-0x0B: ADD through SIGNEXTEND (spec.md §4.7
// arithmetic group). Their static cost comes from the base-cost table built
// in hardfork; EXP is the only one that also registers a Dynamic callback,
// for its per-exponent-byte charge.
func registerArithmetic(reg func(opcodes.OpCode, *Operation), spec *hardfork.Spec) {
	reg(opcodes.ADD, newOp(opAdd, 2, -1))
	reg(opcodes.MUL, newOp(opMul, 2, -1))
	reg(opcodes.SUB, newOp(opSub, 2, -1))
	reg(opcodes.DIV, newOp(opDiv, 2, -1))
	reg(opcodes.SDIV, newOp(opSDiv, 2, -1))
	reg(opcodes.MOD, newOp(opMod, 2, -1))
	reg(opcodes.SMOD, newOp(opSMod, 2, -1))
	reg(opcodes.ADDMOD, newOp(opAddMod, 3, -2))
	reg(opcodes.MULMOD, newOp(opMulMod, 3, -2))
	expOp := newOp(opExp, 2, -1)
	expOp.Dynamic = expDynamicGas(spec)
	reg(opcodes.EXP, expOp)
	reg(opcodes.SIGNEXTEND, newOp(opSignExtend, 2, -1))
}

func opAdd(f *Frame) error {
	a, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	b, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	a.Add(a, b)
	_, _ = f.Stack.Pop()
	return nil
}

func opMul(f *Frame) error {
	a, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	b, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	a.Mul(a, b)
	_, _ = f.Stack.Pop()
	return nil
}

// Non-commutative binary ops follow go-ethereum's pop-top/peek-second
// convention: x is the popped top operand (yellow paper μs[0]), y is the
// peeked second operand (μs[1]) that doubles as the result slot.

func opSub(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	y.Sub(x, y)
	_, _ = f.Stack.Pop()
	return nil
}

func opDiv(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	y.Div(x, y)
	_, _ = f.Stack.Pop()
	return nil
}

func opSDiv(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	y.SDiv(x, y)
	_, _ = f.Stack.Pop()
	return nil
}

func opMod(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	y.Mod(x, y)
	_, _ = f.Stack.Pop()
	return nil
}

func opSMod(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	y.SMod(x, y)
	_, _ = f.Stack.Pop()
	return nil
}

func opAddMod(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	mod, err := f.Stack.Peek(2)
	if err != nil {
		return err
	}
	if mod.IsZero() {
		mod.Clear()
	} else {
		mod.AddMod(x, y, mod)
	}
	_, _ = f.Stack.Pop()
	_, _ = f.Stack.Pop()
	return nil
}

func opMulMod(f *Frame) error {
	x, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	y, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	mod, err := f.Stack.Peek(2)
	if err != nil {
		return err
	}
	if mod.IsZero() {
		mod.Clear()
	} else {
		mod.MulMod(x, y, mod)
	}
	_, _ = f.Stack.Pop()
	_, _ = f.Stack.Pop()
	return nil
}

func opExp(f *Frame) error {
	base, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	exponent, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	exponent.Exp(base, exponent)
	_, _ = f.Stack.Pop()
	return nil
}

// expDynamicGas charges ExpByteCost per significant byte of the exponent
// (μs[1], the second stack element), on top of the already-charged static
// High cost (spec.md §4.7 EXP dynamic rule), grounded on
// interpreter/lfvm/gas.go's exponent byte-length pricing.
func expDynamicGas(spec *hardfork.Spec) DynamicGas {
	return func(f *Frame) (evmcore.Gas, error) {
		exponent, err := f.Stack.Peek(1)
		if err != nil {
			return 0, err
		}
		byteLen := (exponent.BitLen() + 7) / 8
		return evmcore.Gas(byteLen) * spec.ExpByteCost, nil
	}
}

func opSignExtend(f *Frame) error {
	back, err := f.Stack.Peek(0)
	if err != nil {
		return err
	}
	num, err := f.Stack.Peek(1)
	if err != nil {
		return err
	}
	num.ExtendSign(num, back)
	_, _ = f.Stack.Pop()
	return nil
}
