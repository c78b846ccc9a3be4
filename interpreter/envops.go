package interpreter

import (
	"github.com/holiman/uint256"

	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/gas"
	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/opcodes"
)

// registerEnvOps wires the account/environment/block-context readers and
// the persistent/transient storage opcodes (spec.md §4.7/§4.9/§4.10). Most
// of this group reads Params or Host and pushes a single word; the
// state-access family (BALANCE/EXTCODE*/SLOAD/SSTORE) additionally prices
// the EIP-2929 cold/warm delta via the frame's AccessList.
func registerEnvOps(reg func(opcodes.OpCode, *Operation), spec *hardfork.Spec) {
	reg(opcodes.ADDRESS, newOp(opAddress, 0, 1))
	reg(opcodes.ORIGIN, newOp(opOrigin, 0, 1))
	reg(opcodes.CALLER, newOp(opCaller, 0, 1))
	reg(opcodes.CALLVALUE, newOp(opCallValue, 0, 1))
	reg(opcodes.CALLDATALOAD, newOp(opCallDataLoad, 1, 0))
	reg(opcodes.CALLDATASIZE, newOp(opCallDataSize, 0, 1))
	reg(opcodes.CODESIZE, newOp(opCodeSize, 0, 1))
	reg(opcodes.GASPRICE, newOp(opGasPrice, 0, 1))
	reg(opcodes.RETURNDATASIZE, newOp(opReturnDataSize, 0, 1))

	balance := newOp(opBalance, 1, 0)
	balance.Dynamic = accountAccessDynamicGas(spec)
	reg(opcodes.BALANCE, balance)

	extcodesize := newOp(opExtCodeSize, 1, 0)
	extcodesize.Dynamic = accountAccessDynamicGas(spec)
	reg(opcodes.EXTCODESIZE, extcodesize)

	extcodehash := newOp(opExtCodeHash, 1, 0)
	extcodehash.Dynamic = accountAccessDynamicGas(spec)
	reg(opcodes.EXTCODEHASH, extcodehash)

	extcodecopy := newOp(opExtCodeCopy, 4, -4)
	extcodecopy.Dynamic = extCodeCopyDynamicGas(spec)
	reg(opcodes.EXTCODECOPY, extcodecopy)

	reg(opcodes.BLOCKHASH, newOp(opBlockHash, 1, 0))
	reg(opcodes.COINBASE, newOp(opCoinbase, 0, 1))
	reg(opcodes.TIMESTAMP, newOp(opTimestamp, 0, 1))
	reg(opcodes.NUMBER, newOp(opNumber, 0, 1))
	reg(opcodes.GASLIMIT, newOp(opGasLimit, 0, 1))
	reg(opcodes.CHAINID, newOp(opChainID, 0, 1))

	if spec.HasPrevRandao {
		reg(opcodes.PREVRANDAO, newOp(opPrevRandao, 0, 1))
	}
	if r := evmcore.Istanbul; spec.Revision >= r {
		reg(opcodes.SELFBALANCE, newOp(opSelfBalance, 0, 1))
	}
	if spec.HasBaseFee {
		reg(opcodes.BASEFEE, newOp(opBaseFee, 0, 1))
	}
	if spec.HasBlobGas {
		reg(opcodes.BLOBBASEFEE, newOp(opBlobBaseFee, 0, 1))
	}
	if spec.HasBlobOpcodes {
		reg(opcodes.BLOBHASH, newOp(opBlobHash, 1, 0))
	}

	sload := newOp(opSLoad, 1, 0)
	sload.Dynamic = sloadDynamicGas(spec)
	reg(opcodes.SLOAD, sload)

	sstore := newOp(opSStore, 2, -2)
	sstore.Writes = true
	reg(opcodes.SSTORE, sstore)

	if spec.HasTStore {
		reg(opcodes.TLOAD, newOp(opTLoad, 1, 0))
		tstore := newOp(opTStore, 2, -2)
		tstore.Writes = true
		reg(opcodes.TSTORE, tstore)
	}
}

func pushWord(f *Frame, w evmcore.Word) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetBytes32(w[:])
	return nil
}

func pushAddress(f *Frame, addr evmcore.Address) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetBytes(addr[:])
	return nil
}

func addressFromWord(v *uint256.Int) evmcore.Address {
	b := v.Bytes32()
	var a evmcore.Address
	copy(a[:], b[12:])
	return a
}

func opAddress(f *Frame) error   { return pushAddress(f, f.Params.Recipient) }
func opOrigin(f *Frame) error    { return pushAddress(f, f.Params.Tx.Origin) }
func opCaller(f *Frame) error    { return pushAddress(f, f.Params.Caller) }
func opCallValue(f *Frame) error { return pushWord(f, f.Params.Value) }

func opCallDataLoad(f *Frame) error {
	offset, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	var word [32]byte
	if offset.IsUint64() {
		off := offset.Uint64()
		if off < uint64(len(f.Params.Input)) {
			end := off + 32
			if end > uint64(len(f.Params.Input)) {
				end = uint64(len(f.Params.Input))
			}
			copy(word[:], f.Params.Input[off:end])
		}
	}
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetBytes32(word[:])
	return nil
}

func opCallDataSize(f *Frame) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(len(f.Params.Input)))
	return nil
}

func opCodeSize(f *Frame) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(len(f.Code.Code)))
	return nil
}

func opGasPrice(f *Frame) error { return pushWord(f, f.Params.Tx.GasPrice) }

func opReturnDataSize(f *Frame) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(len(f.ReturnData)))
	return nil
}

// accountAccessDynamicGas prices the EIP-2929 cold/warm delta for
// BALANCE/EXTCODESIZE/EXTCODEHASH: the static table already charges the
// warm rate (or the flat legacy rate pre-Berlin), so the dynamic component
// is only the extra cold-access surcharge, paid once per address per
// transaction.
func accountAccessDynamicGas(spec *hardfork.Spec) DynamicGas {
	return func(f *Frame) (evmcore.Gas, error) {
		if !spec.HasAccessLists {
			return 0, nil
		}
		addrWord, err := f.Stack.Peek(0)
		if err != nil {
			return 0, err
		}
		addr := addressFromWord(addrWord)
		if f.AccessList.WarmAddress(addr) {
			return spec.ColdAccountAccessCost - spec.WarmStorageReadCost, nil
		}
		return 0, nil
	}
}

func opBalance(f *Frame) error {
	addrWord, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	return pushWord(f, f.Params.Host.Balance(addressFromWord(&addrWord)))
}

func opExtCodeSize(f *Frame) error {
	addrWord, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(len(f.Params.Host.Code(addressFromWord(&addrWord)))))
	return nil
}

func opExtCodeHash(f *Frame) error {
	addrWord, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	addr := addressFromWord(&addrWord)
	if !f.Params.Host.AccountExists(addr) {
		v, err := f.Stack.PushUndefined()
		if err != nil {
			return err
		}
		v.Clear()
		return nil
	}
	hash := f.Params.Host.CodeHash(addr)
	return pushWord(f, evmcore.Word(hash))
}

func extCodeCopyDynamicGas(spec *hardfork.Spec) DynamicGas {
	return func(f *Frame) (evmcore.Gas, error) {
		addrWord, err := f.Stack.Peek(0)
		if err != nil {
			return 0, err
		}
		destOffset, err := f.Stack.Peek(1)
		if err != nil {
			return 0, err
		}
		size, err := f.Stack.Peek(3)
		if err != nil {
			return 0, err
		}
		cold := evmcore.Gas(0)
		if spec.HasAccessLists {
			addr := addressFromWord(addrWord)
			if f.AccessList.WarmAddress(addr) {
				cold = spec.ColdAccountAccessCost - spec.WarmStorageReadCost
			}
		}
		if size.IsZero() {
			return cold, nil
		}
		n, ok := asMemoryOffset(size)
		if !ok {
			return 0, evmcore.ErrGasUintOverflow
		}
		expansion, err := memExpansionCost(f, destOffset, n)
		if err != nil {
			return 0, err
		}
		words := (n + 31) / 32
		return cold + expansion + evmcore.Gas(words)*spec.CopyWordCost, nil
	}
}

func opExtCodeCopy(f *Frame) error {
	addrWord, err := f.Stack.Pop()
	if err != nil {
		return err
	}
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
	code := f.Params.Host.Code(addressFromWord(&addrWord))
	return copyBytesIn(f, &destOffset, code, &offset, &size)
}

func opBlockHash(f *Frame) error {
	number, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	var hash evmcore.Hash
	if number.IsUint64() {
		hash = f.Params.Host.BlockHash(int64(number.Uint64()))
	}
	return pushWord(f, evmcore.Word(hash))
}

func opCoinbase(f *Frame) error    { return pushAddress(f, f.Params.Block.Coinbase) }
func opTimestamp(f *Frame) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(f.Params.Block.Timestamp))
	return nil
}
func opNumber(f *Frame) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(f.Params.Block.Number))
	return nil
}
func opGasLimit(f *Frame) error {
	v, err := f.Stack.PushUndefined()
	if err != nil {
		return err
	}
	v.SetUint64(uint64(f.Params.Block.GasLimit))
	return nil
}
func opChainID(f *Frame) error      { return pushWord(f, f.Params.Block.ChainID) }
func opPrevRandao(f *Frame) error   { return pushWord(f, evmcore.Word(f.Params.Block.PrevRandao)) }
func opBaseFee(f *Frame) error      { return pushWord(f, f.Params.Block.BaseFee) }
func opBlobBaseFee(f *Frame) error  { return pushWord(f, f.Params.Block.BlobBaseFee) }

func opSelfBalance(f *Frame) error {
	return pushWord(f, f.Params.Host.Balance(f.Params.Recipient))
}

func opBlobHash(f *Frame) error {
	index, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	var hash evmcore.Hash
	if index.IsUint64() {
		i := index.Uint64()
		if i < uint64(len(f.Params.Tx.BlobHashes)) {
			hash = f.Params.Tx.BlobHashes[i]
		}
	}
	return pushWord(f, evmcore.Word(hash))
}

func sloadDynamicGas(spec *hardfork.Spec) DynamicGas {
	return func(f *Frame) (evmcore.Gas, error) {
		if !spec.HasAccessLists {
			return 0, nil
		}
		slotWord, err := f.Stack.Peek(0)
		if err != nil {
			return 0, err
		}
		slot := evmcore.Key(slotWord.Bytes32())
		if f.AccessList.WarmSlot(f.Params.Recipient, slot) {
			return spec.ColdSloadCost - spec.WarmStorageReadCost, nil
		}
		return 0, nil
	}
}

func opSLoad(f *Frame) error {
	slotWord, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	slot := evmcore.Key(slotWord.Bytes32())
	return pushWord(f, f.Params.Host.SLoad(f.Params.Recipient, slot))
}

// opSStore implements the full EIP-2200/2929/3529 net-gas-metering rule
// (spec.md §4.7 SSTORE). Unlike every other dynamic-gas opcode, SSTORE's
// cost cannot be priced before the store itself runs: it depends on the
// world state's classification of the transition, which only Host.SStore
// reports. So SSTORE registers no Dynamic callback and instead charges
// itself directly inside Execute, including the EIP-2200 gas-sentry check.
func opSStore(f *Frame) error {
	if f.Params.Static {
		f.Halt(evmcore.StatusRevert, nil)
		return nil
	}
	if f.Spec.HasNetSstoreMetering && f.Gas.Remaining() <= f.Spec.CallStipend {
		return gas.ErrOutOfGas{}
	}
	slotWord, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	valueWord, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	slot := evmcore.Key(slotWord.Bytes32())
	value := evmcore.Value(valueWord.Bytes32())

	wasCold := false
	if f.Spec.HasAccessLists {
		wasCold = f.AccessList.WarmSlot(f.Params.Recipient, slot)
	}

	status := f.Params.Host.SStore(f.Params.Recipient, slot, value)
	cost, refundDelta := sstoreCost(f.Spec, status, wasCold)
	if err := f.Gas.Consume(cost); err != nil {
		return err
	}
	if refundDelta > 0 {
		f.Gas.Refund(refundDelta)
	} else if refundDelta < 0 {
		f.Gas.Unrefund(-refundDelta)
	}
	return nil
}

// sstoreCost maps a storage transition classification to its gas charge and
// refund delta (positive: grant a refund; negative: reverse one), grounded
// on interpreter/lfvm/gas.go's gasSStoreEIP2200/gasSStoreEIP2929 tables.
func sstoreCost(spec *hardfork.Spec, status evmcore.StorageStatus, wasCold bool) (cost evmcore.Gas, refundDelta evmcore.Gas) {
	if !spec.HasNetSstoreMetering {
		switch status {
		case evmcore.StorageAdded:
			return spec.SstoreSetGas, 0
		case evmcore.StorageDeleted:
			return spec.SstoreResetGas, spec.SstoreClearsSchedule
		default:
			return spec.SstoreResetGas, 0
		}
	}

	var coldFee evmcore.Gas
	if spec.HasAccessLists && wasCold {
		coldFee = spec.ColdSloadCost
	}

	switch status {
	case evmcore.StorageUnchanged:
		return coldFee + spec.SloadGas, 0
	case evmcore.StorageAdded:
		return coldFee + spec.SstoreSetGas, 0
	case evmcore.StorageDeleted:
		return coldFee + spec.SstoreResetGas - spec.ColdSloadCost, spec.SstoreClearsSchedule
	case evmcore.StorageModified:
		return coldFee + spec.SstoreResetGas - spec.ColdSloadCost, 0
	case evmcore.StorageDeletedAdded:
		return coldFee + spec.SloadGas, -spec.SstoreClearsSchedule
	case evmcore.StorageModifiedDeleted:
		return coldFee + spec.SloadGas, spec.SstoreClearsSchedule
	case evmcore.StorageDeletedRestored:
		restore := spec.SstoreResetGas - spec.ColdSloadCost - spec.SloadGas
		return coldFee + spec.SloadGas, restore - spec.SstoreClearsSchedule
	case evmcore.StorageAddedDeleted:
		return coldFee + spec.SloadGas, spec.SstoreSetGas - spec.SloadGas
	case evmcore.StorageModifiedRestored:
		return coldFee + spec.SloadGas, spec.SstoreResetGas - spec.ColdSloadCost - spec.SloadGas
	default:
		return coldFee + spec.SloadGas, 0
	}
}

func opTLoad(f *Frame) error {
	slotWord, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	slot := evmcore.Key(slotWord.Bytes32())
	return pushWord(f, f.Params.Host.TLoad(f.Params.Recipient, slot))
}

func opTStore(f *Frame) error {
	if f.Params.Static {
		f.Halt(evmcore.StatusRevert, nil)
		return nil
	}
	slotWord, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	valueWord, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	slot := evmcore.Key(slotWord.Bytes32())
	value := evmcore.Value(valueWord.Bytes32())
	f.Params.Host.TStore(f.Params.Recipient, slot, value)
	return nil
}
