package interpreter

import (
	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/opcodes"
)

// registerLogOps wires LOG0-LOG4 (spec.md §4.7/§4.9 logging). The static
// cost table already charges LogBaseCost + n*LogTopicCost (n = topic
// count); Dynamic adds the memory-expansion cost and LogDataCost per byte
// of the log's data payload.
func registerLogOps(reg func(opcodes.OpCode, *Operation), spec *hardfork.Spec) {
	for n := 0; n <= 4; n++ {
		op := opcodes.LOG0 + opcodes.OpCode(n)
		topics := n
		logOp := newOp(makeLog(topics), 2+topics, -(2 + topics))
		logOp.Writes = true
		logOp.Dynamic = logDynamicGas(spec)
		reg(op, logOp)
	}
}

func logDynamicGas(spec *hardfork.Spec) DynamicGas {
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
		return cost + evmcore.Gas(n)*spec.LogDataCost, nil
	}
}

func makeLog(topicCount int) Execute {
	return func(f *Frame) error {
		if f.Params.Static {
			f.Halt(evmcore.StatusRevert, nil)
			return nil
		}
		offset, err := f.Stack.Pop()
		if err != nil {
			return err
		}
		size, err := f.Stack.Pop()
		if err != nil {
			return err
		}
		topics := make([]evmcore.Hash, topicCount)
		for i := 0; i < topicCount; i++ {
			t, err := f.Stack.Pop()
			if err != nil {
				return err
			}
			topics[i] = evmcore.Hash(t.Bytes32())
		}
		n, ok := asMemoryOffset(&size)
		if !ok {
			return evmcore.ErrGasUintOverflow
		}
		off, _ := asMemoryOffset(&offset)
		f.Mem.EnsureCapacity(off, n)
		f.Gas.UpdateMemoryCost(f.Mem.Len())
		data := make(evmcore.Data, n)
		copy(data, f.Mem.GetSlice(off, n))
		f.Params.Host.EmitLog(evmcore.Log{
			Address: f.Params.Recipient,
			Topics:  topics,
			Data:    data,
		})
		return nil
	}
}
