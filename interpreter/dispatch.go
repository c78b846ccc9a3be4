// Package interpreter implements the fetch-decode-execute loop that runs
// one call frame's analyzed bytecode to completion against a Host and a
// CallExecutor for nested calls.
package interpreter

import (
	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/opcodes"
)

// Execute runs the instruction's effect against f: popping/pushing the
// stack, touching memory, mutating return data, or halting the frame.
type Execute func(f *Frame) error

// DynamicGas computes an opcode's data-dependent gas charge by peeking the
// stack and/or inspecting memory length, without mutating frame state
// (spec.md §4.7 step 5).
type DynamicGas func(f *Frame) (evmcore.Gas, error)

// Operation is one entry of the 256-slot dispatch table: the static shape
// spec.md §4.8 requires, grounded on the go-ethereum-lineage
// operation/JumpTable shape visible in the retrieved pack
// (IGSON2-berith_log/core/vm/interpreter.go's operation.execute/gasCost/
// minStack/maxStack/reverts/halts/jumps), adapted to this module's
// gas.Meter/memory.Memory split instead of a single inlined gasCost
// callback.
type Operation struct {
	Execute    Execute
	Dynamic    DynamicGas
	MinStack   int // minimum stack length required before executing
	MaxStack   int // maximum stack length allowed before executing (Capacity - net pushes)
	Writes     bool
	Halts      bool
	Jumps      bool // opcode sets pc itself instead of the standard advance
}

// Table is a 256-entry dispatch table for one hardfork. A nil entry means
// the opcode is undefined for that fork (spec.md §4.8 "empty slots cause
// InvalidOpcode at decode time").
type Table [256]*Operation

var tables [evmcore.NumRevisions]*Table

func init() {
	for r := evmcore.Frontier; int(r) < evmcore.NumRevisions; r++ {
		tables[r] = buildTable(hardfork.Get(r))
	}
}

// TableFor returns the dispatch table composed for spec's revision. The
// table lives for the process lifetime (spec.md §4.8); interpreters only
// ever borrow a reference.
func TableFor(spec *hardfork.Spec) *Table {
	return tables[spec.Revision]
}

func newOp(execute Execute, minStack, netPushes int) *Operation {
	return &Operation{
		Execute:  execute,
		MinStack: minStack,
		MaxStack: stackCapacity - netPushes,
	}
}

const stackCapacity = 1024

// buildTable composes the dispatch table for one fork by registering every
// opcode defined under spec, following spec.md §4.1's fold/inheritance
// model generalized to handler assignment (spec.md §4.1 "Handler
// assignment follows the same fold").
func buildTable(spec *hardfork.Spec) *Table {
	var t Table

	reg := func(op opcodes.OpCode, o *Operation) {
		t[op] = o
	}

	registerArithmetic(reg, spec)
	registerBitwise(reg, spec)
	registerControl(reg, spec)
	registerMemoryOps(reg, spec)
	registerEnvOps(reg, spec)
	registerLogOps(reg, spec)
	registerSystemOps(reg, spec)

	return &t
}
