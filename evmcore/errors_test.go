package evmcore

import "testing"

func TestConstError_Error(t *testing.T) {
	if got := ErrNestedDelegation.Error(); got != "nested EIP-7702 delegation" {
		t.Errorf("ErrNestedDelegation.Error() = %q", got)
	}
}

func TestConstError_UsableAsError(t *testing.T) {
	var err error = ErrGasUintOverflow
	if err.Error() != string(ErrGasUintOverflow) {
		t.Error("constError should satisfy the error interface directly")
	}
}
