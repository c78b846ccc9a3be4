package evmcore

// constError is a string-backed error type that can be declared as an
// untyped constant, following interpreter/lfvm/errors.go in the teacher.
type constError string

func (e constError) Error() string { return string(e) }

// Errors returned by Host implementations or surfaced at the Evm/Interpreter
// boundary when the failure is a genuine programming/encoding error rather
// than a normal EVM execution outcome (which is reported via
// ExecutionStatus instead).
const (
	ErrNestedDelegation  = constError("nested EIP-7702 delegation")
	ErrInvalidDelegation = constError("malformed EIP-7702 delegation header")
	ErrGasUintOverflow   = constError("gas computation overflowed uint64")
)
