package hardfork

import (
	"testing"

	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/opcodes"
)

func TestStaticGasPrice_PushDupSwapComparisons(t *testing.T) {
	s := Get(evmcore.Frontier)
	for _, op := range []opcodes.OpCode{opcodes.PUSH1, opcodes.PUSH32, opcodes.DUP1, opcodes.DUP16, opcodes.SWAP1, opcodes.LT, opcodes.SAR} {
		if got := s.GasCost(byte(op)); got != VeryLow {
			t.Errorf("GasCost(%s) = %d, want VeryLow (%d)", op, got, VeryLow)
		}
	}
}

func TestStaticGasPrice_SloadAcrossForks(t *testing.T) {
	if got := Get(evmcore.Frontier).GasCost(byte(opcodes.SLOAD)); got != 50 {
		t.Errorf("Frontier SLOAD = %d, want 50", got)
	}
	if got := Get(evmcore.Istanbul).GasCost(byte(opcodes.SLOAD)); got != 800 {
		t.Errorf("Istanbul SLOAD = %d, want 800", got)
	}
	if got := Get(evmcore.Berlin).GasCost(byte(opcodes.SLOAD)); got != 100 {
		t.Errorf("Berlin SLOAD (warm, statically priced) = %d, want 100", got)
	}
}

func TestStaticGasPrice_SstoreIsZeroStatically(t *testing.T) {
	// SSTORE is priced entirely by the dynamic handler in every revision.
	for _, r := range []evmcore.Revision{evmcore.Frontier, evmcore.Istanbul, evmcore.London} {
		if got := Get(r).GasCost(byte(opcodes.SSTORE)); got != Zero {
			t.Errorf("Get(%s).GasCost(SSTORE) = %d, want 0", r, got)
		}
	}
}

func TestStaticGasPrice_CallCostDropsUnderAccessLists(t *testing.T) {
	if got := Get(evmcore.Frontier).GasCost(byte(opcodes.CALL)); got != 40 {
		t.Errorf("Frontier CALL = %d, want 40", got)
	}
	if got := Get(evmcore.TangerineWhistle).GasCost(byte(opcodes.CALL)); got != 700 {
		t.Errorf("TangerineWhistle CALL = %d, want 700", got)
	}
	if got := Get(evmcore.Berlin).GasCost(byte(opcodes.CALL)); got != 100 {
		t.Errorf("Berlin CALL = %d, want 100 (WarmStorageReadCost)", got)
	}
}

func TestStaticGasPrice_SelfdestructBaseCost(t *testing.T) {
	if got := Get(evmcore.Frontier).GasCost(byte(opcodes.SELFDESTRUCT)); got != 0 {
		t.Errorf("Frontier SELFDESTRUCT = %d, want 0", got)
	}
	if got := Get(evmcore.TangerineWhistle).GasCost(byte(opcodes.SELFDESTRUCT)); got != 5000 {
		t.Errorf("TangerineWhistle SELFDESTRUCT = %d, want 5000", got)
	}
}

func TestStaticGasPrice_PushZeroGatedByFlag(t *testing.T) {
	if got := Get(evmcore.London).GasCost(byte(opcodes.PUSH0)); got != 0 {
		t.Errorf("pre-Shanghai PUSH0 = %d, want 0 (undefined)", got)
	}
	if got := Get(evmcore.Shanghai).GasCost(byte(opcodes.PUSH0)); got != Base {
		t.Errorf("Shanghai PUSH0 = %d, want Base (%d)", got, Base)
	}
}

func TestStaticGasPrice_LogCostScalesWithTopics(t *testing.T) {
	s := Get(evmcore.Frontier)
	if got := s.GasCost(byte(opcodes.LOG0)); got != s.LogBaseCost {
		t.Errorf("LOG0 = %d, want %d", got, s.LogBaseCost)
	}
	want := s.LogBaseCost + 4*s.LogTopicCost
	if got := s.GasCost(byte(opcodes.LOG4)); got != want {
		t.Errorf("LOG4 = %d, want %d", got, want)
	}
}

func TestStaticGasPrice_CreateFlatCost(t *testing.T) {
	s := Get(evmcore.Frontier)
	if got := s.GasCost(byte(opcodes.CREATE)); got != 32000 {
		t.Errorf("CREATE = %d, want 32000", got)
	}
	if got := s.GasCost(byte(opcodes.CREATE2)); got != 32000 {
		t.Errorf("CREATE2 = %d, want 32000", got)
	}
}

func TestStaticGasPrice_UndefinedOpcodeIsZero(t *testing.T) {
	if got := Get(evmcore.Frontier).GasCost(0x0C); got != 0 {
		t.Errorf("undefined opcode 0x0C = %d, want 0", got)
	}
}
