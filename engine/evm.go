// Package engine implements the call-frame manager: Evm.Call, spec.md
// §4.9's protocol for CALL/CALLCODE/DELEGATECALL/STATICCALL, extended here
// (per SPEC_FULL.md) with CREATE/CREATE2 address derivation, nonce bumping
// and code deposit.
package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ferrolite/evmcore/accesslist"
	"github.com/ferrolite/evmcore/bytecode"
	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/gas"
	"github.com/ferrolite/evmcore/hardfork"
	"github.com/ferrolite/evmcore/interpreter"
)

// Evm owns everything shared across the call frames of one transaction: the
// access list, the analyzed-bytecode cache, and the depth/static-context
// bookkeeping that mirrors the nesting of Call invocations. Grounded on
// processor/floria/run_context.go's runContext, but built around a pointer
// receiver with explicit save/restore of depth and is_static instead of the
// teacher's per-call value-receiver copy — the two are equivalent here
// because every nested Call runs synchronously to completion before its
// caller resumes (spec.md §5's single-threaded scheduling model), so a
// deferred restore on exit undoes exactly what the nested call changed.
type Evm struct {
	host       evmcore.Host
	spec       *hardfork.Spec
	block      evmcore.BlockEnv
	tx         evmcore.TxEnv
	accessList *accesslist.AccessList
	cache      *bytecode.Cache

	depth  int
	static bool

	// ReturnData is the process-wide return-data buffer (spec.md §4.9
	// "Return-data buffer lifecycle"), exposed for a driver to inspect after
	// the top-level call returns.
	ReturnData evmcore.Data
}

// NewEvm constructs an Evm ready to run a transaction's top-level call.
// The access list is expected to already carry InitForTx's pre-warming;
// callers build it with accesslist.New() and call InitForTx before the
// first Call.
func NewEvm(host evmcore.Host, spec *hardfork.Spec, block evmcore.BlockEnv, tx evmcore.TxEnv, al *accesslist.AccessList) *Evm {
	return &Evm{
		host:       host,
		spec:       spec,
		block:      block,
		tx:         tx,
		accessList: al,
		cache:      bytecode.NewCache(),
	}
}

var _ evmcore.CallExecutor = (*Evm)(nil)

// Call dispatches a nested call or contract creation (spec.md §4.9's
// 13-step protocol for CALL/CALLCODE/DELEGATECALL/STATICCALL; the
// CREATE/CREATE2 extension is grounded on run_context.go's additional
// address-derivation/nonce/code-deposit steps).
func (e *Evm) Call(inputs evmcore.CallInputs) (evmcore.CallResult, error) {
	// Step 1: depth limit, checked before any state is touched. Depth is
	// left unchanged on this path, matching runContext.Call's early return
	// before r.depth++.
	if e.depth >= e.spec.CallDepthLimit {
		return evmcore.CallResult{Status: evmcore.StatusCallDepthExceeded, GasUsed: inputs.GasLimit}, nil
	}

	// Step 2: increment depth, restore on every exit.
	e.depth++
	defer func() { e.depth-- }()

	// Step 3: static propagates to children and never turns back off within
	// this subtree.
	prevStatic := e.static
	if inputs.Kind == evmcore.StaticCall {
		e.static = true
	}
	defer func() { e.static = prevStatic }()

	if inputs.Kind.IsCreate() {
		return e.callCreate(inputs)
	}
	return e.callMessage(inputs)
}

// callMessage implements spec.md §4.9 steps 4-13 for the four canonical
// call kinds.
func (e *Evm) callMessage(inputs evmcore.CallInputs) (evmcore.CallResult, error) {
	// Step 4: snapshot before any mutation; reverted on any non-success exit.
	snapshot := e.host.Snapshot()

	// Step 5: value transfer, balance-checked first.
	if inputs.TransferValue && !isZeroValue(inputs.Value) {
		if !hasSufficientBalance(e.host.Balance(inputs.Caller), inputs.Value) {
			e.host.RevertToSnapshot(snapshot)
			return evmcore.CallResult{Status: evmcore.StatusRevert, GasUsed: inputs.GasLimit}, nil
		}
		e.host.Transfer(inputs.Caller, inputs.Target, inputs.Value)
	}

	// Step 6: load code, resolving one level of EIP-7702 delegation.
	codeAddr := inputs.CodeAddr
	code := e.host.Code(codeAddr)
	codeHash := e.host.CodeHash(codeAddr)
	if e.spec.HasEIP7702 {
		if delegate, ok := bytecode.ParseDelegation(code); ok {
			delegatedCode := e.host.Code(delegate)
			if _, nested := bytecode.ParseDelegation(delegatedCode); nested {
				e.host.RevertToSnapshot(snapshot)
				return evmcore.CallResult{}, evmcore.ErrNestedDelegation
			}
			code = delegatedCode
			codeHash = e.host.CodeHash(delegate)
		}
	}

	// Step 7: calling an account with no code is an immediate success.
	if len(code) == 0 {
		return evmcore.CallResult{Status: evmcore.StatusSuccess}, nil
	}

	// Step 9: analyzed-bytecode cache, keyed by content hash (Get
	// re-derives the hash itself from code, which is fine: codeHash here may
	// come from a delegation target, but Get's own Keccak256 over code is
	// always correct and this module's Cache has no alternate keyed-Get).
	analyzed := e.cache.Get(code)

	// Step 8 + 10: context address (recipient) is inputs.Target regardless
	// of kind — makeCall already resolved DELEGATECALL/CALLCODE's storage
	// context down to the parent's own Recipient before calling Evm.Call.
	params := evmcore.Parameters{
		Block:     e.block,
		Tx:        e.tx,
		Host:      e.host,
		Calls:     e,
		Revision:  e.spec.Revision,
		Kind:      inputs.Kind,
		Static:    e.static,
		Depth:     e.depth - 1, // depth already incremented by Call
		Gas:       inputs.GasLimit,
		Recipient: inputs.Target,
		Caller:    inputs.Caller,
		Target:    codeAddr,
		Value:     inputs.Value,
		Input:     inputs.Input,
		Code:      code,
		CodeHash:  codeHash,
	}
	meter := gas.New(inputs.GasLimit, e.spec)

	// Step 11: run to completion.
	result := interpreter.Run(params, e.spec, analyzed, meter, e.accessList)

	// Step 12: replace the return-data buffer unconditionally.
	e.ReturnData = result.Output

	// Step 13: revert on anything but success.
	if result.Status != evmcore.StatusSuccess {
		e.host.RevertToSnapshot(snapshot)
	}

	return toCallResult(inputs.GasLimit, result), nil
}

// callCreate implements CREATE/CREATE2 (SPEC_FULL.md extension), grounded
// on run_context.go's Create/Create2 branch: address derivation, nonce
// bump, then the same snapshot-transfer-run structure as callMessage, with
// code-deposit accounting layered on top of a successful run.
func (e *Evm) callCreate(inputs evmcore.CallInputs) (evmcore.CallResult, error) {
	senderNonce := e.host.GetNonce(inputs.Caller)
	createdAddress := createAddress(inputs.Kind, inputs.Caller, senderNonce, inputs.Salt, inputs.Input)

	e.host.SetNonce(inputs.Caller, senderNonce+1)
	e.host.SetNonce(createdAddress, 1)

	snapshot := e.host.Snapshot()

	if inputs.TransferValue && !isZeroValue(inputs.Value) {
		if !hasSufficientBalance(e.host.Balance(inputs.Caller), inputs.Value) {
			e.host.RevertToSnapshot(snapshot)
			return evmcore.CallResult{Status: evmcore.StatusRevert, GasUsed: inputs.GasLimit}, nil
		}
		e.host.Transfer(inputs.Caller, createdAddress, inputs.Value)
	}

	// Constructor bytecode is a one-off: it is analyzed directly rather than
	// through the shared Cache, since it will never be looked up again by
	// content hash once the contract's *returned* code is what gets
	// deposited (see DESIGN.md).
	analyzed := bytecode.Analyze(evmcore.Code(inputs.Input))

	params := evmcore.Parameters{
		Block:     e.block,
		Tx:        e.tx,
		Host:      e.host,
		Calls:     e,
		Revision:  e.spec.Revision,
		Kind:      inputs.Kind,
		Static:    e.static,
		Depth:     e.depth - 1,
		Gas:       inputs.GasLimit,
		Recipient: createdAddress,
		Caller:    inputs.Caller,
		Target:    createdAddress,
		Value:     inputs.Value,
		Input:     nil, // constructor calldata is the init code itself, not an input
		Code:      evmcore.Code(inputs.Input),
		CodeHash:  evmcore.Hash(crypto.Keccak256Hash(inputs.Input)),
	}
	meter := gas.New(inputs.GasLimit, e.spec)

	result := interpreter.Run(params, e.spec, analyzed, meter, e.accessList)
	e.ReturnData = result.Output

	if result.Status != evmcore.StatusSuccess {
		e.host.RevertToSnapshot(snapshot)
		return toCallResult(inputs.GasLimit, result), nil
	}

	if status, ok := e.depositCode(result.Output, &result); !ok {
		e.host.RevertToSnapshot(snapshot)
		result.Status = status
		return toCallResult(inputs.GasLimit, result), nil
	}

	e.host.SetCode(createdAddress, evmcore.Code(result.Output))

	callResult := toCallResult(inputs.GasLimit, result)
	callResult.CreatedAddress = createdAddress
	return callResult, nil
}

// depositCode applies EIP-3541's 0xEF-prefix rejection, MaxCodeSize, and
// the EIP-170 per-byte deposit charge to a successful constructor's output,
// spending from the same meter the constructor just ran under (its
// remaining gas is what result.GasLeft reports). Returns false with the
// failure status to report if the deposit is rejected.
func (e *Evm) depositCode(output evmcore.Data, result *evmcore.Result) (evmcore.ExecutionStatus, bool) {
	if e.spec.HasEIP3541 && len(output) > 0 && output[0] == 0xEF {
		return evmcore.StatusInvalidOpcode, false
	}
	if e.spec.MaxCodeSize > 0 && len(output) > e.spec.MaxCodeSize {
		return evmcore.StatusInvalidOpcode, false
	}
	cost := evmcore.Gas(len(output)) * e.spec.CodeDepositCost
	if cost > result.GasLeft {
		return evmcore.StatusOutOfGas, false
	}
	result.GasLeft -= cost
	return evmcore.StatusSuccess, true
}

// toCallResult maps a completed frame's Result into the CallResult
// reported to the parent, per the gas-accounting rule spelled out in
// spec.md §6's CallResult structure and §7's error taxonomy: hard failures
// and CallDepthExceeded forfeit the whole forwarded gas_limit, Revert
// reports actual consumption, Success reports actual consumption and its
// refund. Any non-success resets gas_refund to 0 (spec.md §7).
func toCallResult(gasLimit evmcore.Gas, result evmcore.Result) evmcore.CallResult {
	out := evmcore.CallResult{Status: result.Status, Output: result.Output}
	if result.Status.ConsumesAllGas() {
		out.GasUsed = gasLimit
		return out
	}
	out.GasUsed = gasLimit - result.GasLeft
	if result.Status == evmcore.StatusSuccess {
		out.GasRefund = result.GasRefund
	}
	return out
}

// createAddress derives the address of a newly created contract, grounded
// on run_context.go's createAddress helper.
func createAddress(kind evmcore.CallKind, sender evmcore.Address, nonce uint64, salt evmcore.Hash, initCode evmcore.Data) evmcore.Address {
	if kind == evmcore.Create {
		return evmcore.Address(crypto.CreateAddress(common.Address(sender), nonce))
	}
	initHash := crypto.Keccak256Hash(initCode)
	return evmcore.Address(crypto.CreateAddress2(common.Address(sender), common.Hash(salt), initHash[:]))
}

// isZeroValue reports whether v is the all-zero word, avoiding an
// unconditional Host.Transfer call for value-less messages.
func isZeroValue(v evmcore.Value) bool {
	return v == evmcore.Value{}
}

// hasSufficientBalance reports whether balance >= value, compared as
// 256-bit unsigned integers.
func hasSufficientBalance(balance, value evmcore.Word) bool {
	return balance.ToUint256().Cmp(value.ToUint256()) >= 0
}
