package interpreter

import (
	"github.com/holiman/uint256"

	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/opcodes"
)

// registerSystemOps wires CREATE/CREATE2, the CALL family, RETURN/REVERT
// and SELFDESTRUCT (spec.md §4.7/§4.9). These are the only handlers that
// reach outside the frame, via Params.Calls (a CallExecutor implemented by
// package engine's *Evm) and Params.Host.
func registerSystemOps(reg func(opcodes.OpCode, *Operation), spec *hardfork.Spec) {
	create := newOp(makeCreate(false), 3, -2)
	create.Writes = true
	reg(opcodes.CREATE, create)

	create2 := newOp(makeCreate(true), 4, -3)
	create2.Writes = true
	reg(opcodes.CREATE2, create2)

	call := newOp(makeCall(evmcore.Call), 7, -6)
	call.Dynamic = callDynamicGas(evmcore.Call, spec)
	reg(opcodes.CALL, call)

	callcode := newOp(makeCall(evmcore.CallCode), 7, -6)
	callcode.Dynamic = callDynamicGas(evmcore.CallCode, spec)
	reg(opcodes.CALLCODE, callcode)

	delegatecall := newOp(makeCall(evmcore.DelegateCall), 6, -5)
	delegatecall.Dynamic = callDynamicGas(evmcore.DelegateCall, spec)
	reg(opcodes.DELEGATECALL, delegatecall)

	staticcall := newOp(makeCall(evmcore.StaticCall), 6, -5)
	staticcall.Dynamic = callDynamicGas(evmcore.StaticCall, spec)
	reg(opcodes.STATICCALL, staticcall)

	ret := newOp(opReturn, 2, -2)
	ret.Halts, ret.Jumps = true, true
	reg(opcodes.RETURN, ret)

	revert := newOp(opRevert, 2, -2)
	revert.Halts, revert.Jumps = true, true
	reg(opcodes.REVERT, revert)

	selfdestruct := newOp(opSelfDestruct(spec), 1, -1)
	selfdestruct.Writes, selfdestruct.Halts, selfdestruct.Jumps = true, true, true
	reg(opcodes.SELFDESTRUCT, selfdestruct)
}

func opReturn(f *Frame) error {
	output, err := popMemoryRegion(f)
	if err != nil {
		return err
	}
	f.Halt(evmcore.StatusSuccess, output)
	return nil
}

func opRevert(f *Frame) error {
	output, err := popMemoryRegion(f)
	if err != nil {
		return err
	}
	f.Halt(evmcore.StatusRevert, output)
	return nil
}

func popMemoryRegion(f *Frame) (evmcore.Data, error) {
	offset, err := f.Stack.Pop()
	if err != nil {
		return nil, err
	}
	size, err := f.Stack.Pop()
	if err != nil {
		return nil, err
	}
	n, ok := asMemoryOffset(&size)
	if !ok {
		return nil, evmcore.ErrGasUintOverflow
	}
	if n == 0 {
		return nil, nil
	}
	off, ok := asMemoryOffset(&offset)
	if !ok {
		return nil, evmcore.ErrGasUintOverflow
	}
	if err := f.Gas.Consume(f.Gas.MemoryExpansionCost(f.Mem.Len(), off+n)); err != nil {
		return nil, err
	}
	f.Mem.EnsureCapacity(off, n)
	f.Gas.UpdateMemoryCost(f.Mem.Len())
	out := make(evmcore.Data, n)
	copy(out, f.Mem.GetSlice(off, n))
	return out, nil
}

func opSelfDestruct(spec *hardfork.Spec) Execute {
	return func(f *Frame) error {
		if f.Params.Static {
			f.Halt(evmcore.StatusRevert, nil)
			return nil
		}
		beneficiaryWord, err := f.Stack.Pop()
		if err != nil {
			return err
		}
		beneficiary := addressFromWord(&beneficiaryWord)
		if spec.HasAccessLists {
			if f.AccessList.WarmAddress(beneficiary) {
				if err := f.Gas.Consume(spec.ColdAccountAccessCost); err != nil {
					return err
				}
			}
		}
		first := f.Params.Host.SelfDestruct(f.Params.Recipient, beneficiary)
		if first && !spec.HasSelfdestructNewScheme {
			f.Gas.Refund(spec.SelfdestructRefund)
		}
		f.Halt(evmcore.StatusSuccess, nil)
		return nil
	}
}

// makeCreate builds the CREATE/CREATE2 handler. Both pop value, offset,
// size (init code region); CREATE2 additionally pops salt. Address
// derivation (keccak(rlp) or keccak(0xff++sender++salt++codehash)) and
// EIP-3541 code-prefix rejection happen on the Calls.Call side in package
// engine, which is the component that actually creates the account.
func makeCreate(isCreate2 bool) Execute {
	return func(f *Frame) error {
		if f.Params.Static {
			f.Halt(evmcore.StatusRevert, nil)
			return nil
		}
		value, err := f.Stack.Pop()
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
		var salt uint256.Int
		if isCreate2 {
			salt, err = f.Stack.Pop()
			if err != nil {
				return err
			}
		}
		n, ok := asMemoryOffset(&size)
		if !ok {
			return evmcore.ErrGasUintOverflow
		}
		off, ok := asMemoryOffset(&offset)
		if !ok {
			return evmcore.ErrGasUintOverflow
		}
		if f.Spec.MaxInitcodeSize > 0 && n > uint64(f.Spec.MaxInitcodeSize) {
			v, err := f.Stack.PushUndefined()
			if err != nil {
				return err
			}
			v.Clear()
			return nil
		}
		if n > 0 {
			if err := f.Gas.Consume(f.Gas.MemoryExpansionCost(f.Mem.Len(), off+n)); err != nil {
				return err
			}
		}
		f.Mem.EnsureCapacity(off, n)
		f.Gas.UpdateMemoryCost(f.Mem.Len())
		initCode := make([]byte, n)
		copy(initCode, f.Mem.GetSlice(off, n))

		words := evmcore.Gas((n + 31) / 32)
		if err := f.Gas.Consume(words * f.Spec.InitcodeWordCost); err != nil {
			return err
		}
		if isCreate2 {
			hashWords := evmcore.Gas((n + 31) / 32)
			if err := f.Gas.Consume(hashWords * f.Spec.Keccak256WordCost); err != nil {
				return err
			}
		}

		kind := evmcore.Create
		var saltHash evmcore.Hash
		if isCreate2 {
			kind = evmcore.Create2
			saltHash = evmcore.Hash(salt.Bytes32())
		}

		childGas := f.Gas.Remaining() - f.Gas.Remaining()/64
		result, err := f.Params.Calls.Call(evmcore.CallInputs{
			Kind:          kind,
			Caller:        f.Params.Recipient,
			Value:         evmcore.Value(value.Bytes32()),
			Input:         initCode,
			GasLimit:      childGas,
			Salt:          saltHash,
			TransferValue: true,
		})
		if err != nil {
			return err
		}
		// The child only ever spends up to childGas; charge the parent for
		// what it actually used rather than reserving the whole forwarded
		// amount up front (Meter has no "give back" primitive, only Consume).
		if err := f.Gas.Consume(result.GasUsed); err != nil {
			return err
		}
		f.Gas.Refund(result.GasRefund)

		v, err := f.Stack.PushUndefined()
		if err != nil {
			return err
		}
		if result.Success() {
			v.SetBytes(result.CreatedAddress[:])
		} else {
			v.Clear()
			if result.Status == evmcore.StatusRevert {
				f.ReturnData = result.Output
			}
		}
		return nil
	}
}

// makeCall builds the CALL/CALLCODE/DELEGATECALL/STATICCALL handler. Stack
// layout follows the yellow paper: gas, address, [value], argsOffset,
// argsSize, retOffset, retSize (value only for CALL/CALLCODE).
func makeCall(kind evmcore.CallKind) Execute {
	hasValue := kind == evmcore.Call || kind == evmcore.CallCode
	return func(f *Frame) error {
		requestedGas, err := f.Stack.Pop()
		if err != nil {
			return err
		}
		addrWord, err := f.Stack.Pop()
		if err != nil {
			return err
		}
		var value uint256.Int
		if hasValue {
			value, err = f.Stack.Pop()
			if err != nil {
				return err
			}
		}
		argsOffset, err := f.Stack.Pop()
		if err != nil {
			return err
		}
		argsSize, err := f.Stack.Pop()
		if err != nil {
			return err
		}
		retOffset, err := f.Stack.Pop()
		if err != nil {
			return err
		}
		retSize, err := f.Stack.Pop()
		if err != nil {
			return err
		}

		if kind == evmcore.Call && !value.IsZero() && f.Params.Static {
			f.Halt(evmcore.StatusRevert, nil)
			return nil
		}

		target := addressFromWord(&addrWord)

		argsN, ok1 := asMemoryOffset(&argsSize)
		argsOff, ok2 := asMemoryOffset(&argsOffset)
		retN, ok3 := asMemoryOffset(&retSize)
		retOff, ok4 := asMemoryOffset(&retOffset)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return evmcore.ErrGasUintOverflow
		}
		var needed uint64
		if argsN > 0 {
			needed = argsOff + argsN
		}
		if retN > 0 {
			if r := retOff + retN; r > needed {
				needed = r
			}
		}
		f.Mem.EnsureCapacity(0, needed)
		f.Gas.UpdateMemoryCost(f.Mem.Len())
		input := make([]byte, argsN)
		copy(input, f.Mem.GetSlice(argsOff, argsN))

		// EIP-150 63/64 gas-forwarding rule, applied against what remains
		// after the dynamic access/transfer cost has already been charged.
		childGas := f.Gas.Remaining() - f.Gas.Remaining()/64
		if requestedGas.IsUint64() && evmcore.Gas(requestedGas.Uint64()) < childGas {
			childGas = evmcore.Gas(requestedGas.Uint64())
		}
		if hasValue && !value.IsZero() {
			childGas += f.Spec.CallStipend
		}

		// DELEGATECALL keeps the parent's own storage/balance context
		// (Recipient) and caller identity; CALLCODE keeps the parent's storage
		// context but attributes the call to this frame as caller. Static-ness
		// of the child frame (inherited, or forced by STATICCALL) is the
		// engine's concern when it builds the child Parameters.
		recipient := target
		codeAddr := target
		caller := f.Params.Recipient
		switch kind {
		case evmcore.DelegateCall:
			recipient = f.Params.Recipient
			caller = f.Params.Caller
		case evmcore.CallCode:
			recipient = f.Params.Recipient
		}

		result, err := f.Params.Calls.Call(evmcore.CallInputs{
			Kind:          kind,
			Target:        recipient,
			Caller:        caller,
			Value:         evmcore.Value(value.Bytes32()),
			Input:         input,
			GasLimit:      childGas,
			CodeAddr:      codeAddr,
			TransferValue: hasValue,
		})
		if err != nil {
			return err
		}

		if err := f.Gas.Consume(result.GasUsed); err != nil {
			return err
		}
		f.Gas.Refund(result.GasRefund)
		f.ReturnData = result.Output
		if retN > 0 {
			copyLen := uint64(len(result.Output))
			if copyLen > retN {
				copyLen = retN
			}
			f.Mem.CopyIn(retOff, result.Output[:copyLen])
		}

		v, err := f.Stack.PushUndefined()
		if err != nil {
			return err
		}
		if result.Success() {
			v.SetOne()
		} else {
			v.Clear()
		}
		return nil
	}
}

// callDynamicGas prices the EIP-2929 cold/warm address surcharge, the
// CALL/CALLCODE value-transfer surcharge, the CALL new-account surcharge
// and the memory expansion needed by the args/return regions (spec.md §4.7
// CALL dynamic rule), grounded on interpreter/lfvm/gas.go's callGas.
func callDynamicGas(kind evmcore.CallKind, spec *hardfork.Spec) DynamicGas {
	hasValue := kind == evmcore.Call || kind == evmcore.CallCode
	return func(f *Frame) (evmcore.Gas, error) {
		addrWord, err := f.Stack.Peek(1)
		if err != nil {
			return 0, err
		}
		var value *uint256.Int
		base := 2
		if hasValue {
			value, err = f.Stack.Peek(2)
			if err != nil {
				return 0, err
			}
			base = 3
		}
		argsOffset, err := f.Stack.Peek(base)
		if err != nil {
			return 0, err
		}
		argsSize, err := f.Stack.Peek(base + 1)
		if err != nil {
			return 0, err
		}
		retOffset, err := f.Stack.Peek(base + 2)
		if err != nil {
			return 0, err
		}
		retSize, err := f.Stack.Peek(base + 3)
		if err != nil {
			return 0, err
		}

		var cost evmcore.Gas
		if spec.HasAccessLists {
			addr := addressFromWord(addrWord)
			if f.AccessList.WarmAddress(addr) {
				cost += spec.ColdAccountAccessCost - spec.WarmStorageReadCost
			}
		}
		if hasValue && value != nil && !value.IsZero() {
			cost += spec.CallValueTransferCost
			if kind == evmcore.Call {
				addr := addressFromWord(addrWord)
				if !f.Params.Host.AccountExists(addr) {
					cost += spec.CallNewAccountCost
				}
			}
		}

		argsN, ok := asMemoryOffset(argsSize)
		if !ok {
			return 0, evmcore.ErrGasUintOverflow
		}
		retN, ok := asMemoryOffset(retSize)
		if !ok {
			return 0, evmcore.ErrGasUintOverflow
		}
		argsOff, ok := asMemoryOffset(argsOffset)
		if !ok {
			return 0, evmcore.ErrGasUintOverflow
		}
		retOff, ok := asMemoryOffset(retOffset)
		if !ok {
			return 0, evmcore.ErrGasUintOverflow
		}
		var needed uint64
		if argsN > 0 {
			needed = argsOff + argsN
		}
		if retN > 0 {
			if r := retOff + retN; r > needed {
				needed = r
			}
		}
		cost += f.Gas.MemoryExpansionCost(f.Mem.Len(), needed)
		return cost, nil
	}
}
