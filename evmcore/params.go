package evmcore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CallKind enumerates the recursive-call flavors the engine dispatches
// (spec.md §6).
type CallKind int

const (
	Call CallKind = iota
	CallCode
	DelegateCall
	StaticCall
	Create
	Create2
)

func (k CallKind) String() string {
	switch k {
	case Call:
		return "call"
	case CallCode:
		return "call_code"
	case DelegateCall:
		return "delegate_call"
	case StaticCall:
		return "static_call"
	case Create:
		return "create"
	case Create2:
		return "create2"
	default:
		return "unknown"
	}
}

func (k CallKind) MarshalJSON() ([]byte, error) {
	switch k {
	case Call, CallCode, DelegateCall, StaticCall, Create, Create2:
		return json.Marshal(k.String())
	default:
		return nil, fmt.Errorf("invalid call kind: %v", int(k))
	}
}

func (k *CallKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "call":
		*k = Call
	case "call_code":
		*k = CallCode
	case "delegate_call":
		*k = DelegateCall
	case "static_call":
		*k = StaticCall
	case "create":
		*k = Create
	case "create2":
		*k = Create2
	default:
		return fmt.Errorf("unknown call kind: %s", s)
	}
	return nil
}

// IsCreate reports whether the kind constructs a new contract.
func (k CallKind) IsCreate() bool {
	return k == Create || k == Create2
}

// TransfersValue reports whether the calling convention carries an
// independent value transfer (CALL, CREATE, CREATE2 do; CALLCODE transfers
// from the caller to itself; DELEGATECALL/STATICCALL never transfer).
func (k CallKind) TransfersValue() bool {
	switch k {
	case Call, CallCode, Create, Create2:
		return true
	default:
		return false
	}
}

// BlockEnv carries the properties of the block a transaction executes in.
type BlockEnv struct {
	Number      int64
	Coinbase    Address
	Timestamp   int64
	GasLimit    Gas
	BaseFee     Value // zero pre-London
	PrevRandao  Hash
	BlobBaseFee Value // zero pre-Cancun
	ChainID     Word
}

// TxEnv carries the properties of the enclosing transaction.
type TxEnv struct {
	Origin     Address
	GasPrice   Value
	BlobHashes []Hash
}

// CallInputs describes a requested nested call (spec.md §4.9/§6).
type CallInputs struct {
	Kind          CallKind
	Target        Address
	Caller        Address
	Value         Value
	Input         Data
	GasLimit      Gas
	Salt          Hash // only relevant for CREATE2
	CodeAddr      Address
	TransferValue bool
}

// CallResult is the outcome of a nested call dispatched through Evm.Call
// (spec.md §6).
type CallResult struct {
	Status         ExecutionStatus
	GasUsed        Gas
	GasRefund      Gas
	Output         Data
	CreatedAddress Address // meaningful only for CREATE/CREATE2
}

// Success reports whether the call completed without reverting or failing.
func (r CallResult) Success() bool {
	return r.Status.IsSuccess()
}

// Parameters is the full set of inputs required to run a single frame
// (spec.md §6's BlockEnv/TxEnv plus per-frame context).
type Parameters struct {
	Block   BlockEnv
	Tx      TxEnv
	Host    Host
	Calls   CallExecutor

	Revision  Revision
	Kind      CallKind
	Static    bool
	Depth     int
	Gas       Gas
	Recipient Address // storage/self context (differs from target for DELEGATECALL)
	Caller    Address
	Target    Address // account whose code is running
	Value     Value
	Input     Data
	Code      Code
	CodeHash  Hash
}

// CallExecutor is the capability handlers use to invoke nested calls
// without the interpreter holding a strong reference to the call-frame
// manager (spec.md §4.9/§9 "Avoiding reference cycles"). Package engine's
// *Evm implements it.
type CallExecutor interface {
	Call(inputs CallInputs) (CallResult, error)
}

// Result is the outcome of running a single frame to completion
// (spec.md §6).
type Result struct {
	Status    ExecutionStatus
	GasLeft   Gas
	GasRefund Gas
	Output    Data
}
