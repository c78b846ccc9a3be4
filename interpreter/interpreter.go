package interpreter

import (
	"github.com/ferrolite/evmcore/accesslist"
	"github.com/ferrolite/evmcore/bytecode"
	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/gas"
	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/opcodes"
	"github.com/ferrolite/evmcore/stack"
)

// Run executes params against code from pc 0 until the frame halts or gas
// runs out, and returns the outcome as an evmcore.Result. Grounded on
// interpreter/lfvm/interpreter.go's steps() loop: charge the static cost,
// then the dynamic cost if the operation has one, then execute, then
// advance the program counter — restructured around the precomputed
// dispatch.Table instead of a per-instruction fork-branching switch, per
// spec.md §4.8's explicit "no runtime fork checks in the hot loop" note.
func Run(params evmcore.Parameters, spec *hardfork.Spec, code bytecode.Analyzed, gasMeter *gas.Meter, al accesslist.WarmingTracker) evmcore.Result {
	f := NewFrame(params, spec, code, gasMeter, al)
	defer f.Release()

	table := TableFor(spec)

	for !f.Halted() {
		op := f.CurrentOp()
		entry := table[op]
		if entry == nil {
			f.Halt(evmcore.StatusInvalidOpcode, nil)
			break
		}
		if width := uint64(opcodes.OpCode(op).Width()); width > 1 && f.PC+width > uint64(len(f.Code.Code)) {
			f.Halt(evmcore.StatusInvalidPC, nil)
			break
		}

		if entry.Writes && params.Static {
			f.Halt(evmcore.StatusRevert, nil)
			break
		}

		n := f.Stack.Len()
		if n < entry.MinStack {
			f.Halt(evmcore.StatusStackUnderflow, nil)
			break
		}
		if n > entry.MaxStack {
			f.Halt(evmcore.StatusStackOverflow, nil)
			break
		}

		if err := f.Gas.Consume(spec.GasCost(op)); err != nil {
			f.Halt(evmcore.StatusOutOfGas, nil)
			break
		}

		if entry.Dynamic != nil {
			dynamicCost, err := entry.Dynamic(f)
			if err != nil {
				f.Halt(statusForError(err), nil)
				break
			}
			if err := f.Gas.Consume(dynamicCost); err != nil {
				f.Halt(evmcore.StatusOutOfGas, nil)
				break
			}
		}

		if err := entry.Execute(f); err != nil {
			f.Halt(statusForError(err), nil)
			break
		}

		if f.Halted() {
			break
		}

		if entry.Jumps {
			if pc, ok := f.consumeJump(); ok {
				f.PC = pc
			} else {
				f.PC++
			}
		} else {
			f.PC += uint64(opcodes.OpCode(op).Width())
		}
	}

	gasLeft := f.Gas.Remaining()
	if f.Status.ConsumesAllGas() {
		gasLeft = 0
	}
	return evmcore.Result{
		Status:    f.Status,
		GasLeft:   gasLeft,
		GasRefund: f.Gas.FinalRefund(),
		Output:    f.Output,
	}
}

// statusForError maps a handler/meter/stack error into the closed
// ExecutionStatus taxonomy.
func statusForError(err error) evmcore.ExecutionStatus {
	switch err.(type) {
	case gas.ErrOutOfGas:
		return evmcore.StatusOutOfGas
	case stack.ErrOverflow:
		return evmcore.StatusStackOverflow
	case stack.ErrUnderflow:
		return evmcore.StatusStackUnderflow
	default:
		// evmcore.ErrGasUintOverflow (an offset/size that doesn't fit in
		// uint64) is treated as exhausting gas, matching go-ethereum: pricing
		// such an access would require more gas than any block could supply.
		if err == evmcore.ErrGasUintOverflow {
			return evmcore.StatusOutOfGas
		}
		return evmcore.StatusInvalidPC
	}
}
