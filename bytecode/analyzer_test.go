package bytecode

import (
	"testing"

	"github.com/ferrolite/evmcore/evmcore"
)

func TestAnalyze_PlainJumpDest(t *testing.T) {
	// PUSH1 0x00, JUMPDEST, STOP
	code := evmcore.Code{0x60, 0x00, 0x5B, 0x00}
	a := Analyze(code)

	if a.JumpDests.IsJumpDest(2) != true {
		t.Error("offset 2 (JUMPDEST) should be a valid jump target")
	}
	if a.JumpDests.IsJumpDest(0) {
		t.Error("offset 0 (PUSH1) should not be a valid jump target")
	}
	if a.JumpDests.IsJumpDest(1) {
		t.Error("offset 1 (PUSH1's immediate byte) should not be a valid jump target")
	}
}

func TestAnalyze_JumpDestInsidePushImmediateIsNotValid(t *testing.T) {
	// PUSH1 0x5B: the immediate byte happens to equal the JUMPDEST opcode.
	code := evmcore.Code{0x60, 0x5B}
	a := Analyze(code)

	if a.JumpDests.IsJumpDest(1) {
		t.Error("a JUMPDEST byte value inside a PUSH immediate must not be treated as a jump target")
	}
}

func TestAnalyze_Push32SkipsAllImmediateBytes(t *testing.T) {
	code := make(evmcore.Code, 34)
	code[0] = 0x7F // PUSH32
	code[32] = 0x5B
	a := Analyze(code)

	if a.JumpDests.IsJumpDest(32) {
		t.Error("PUSH32's 32nd immediate byte must not be treated as a jump target even if it equals JUMPDEST")
	}
}

func TestAnalyze_HashIsContentAddressed(t *testing.T) {
	code := evmcore.Code{0x00}
	a1 := Analyze(code)
	a2 := Analyze(evmcore.Code{0x00})
	if a1.Hash != a2.Hash {
		t.Error("identical code must analyze to the same hash")
	}

	other := Analyze(evmcore.Code{0x01})
	if a1.Hash == other.Hash {
		t.Error("different code must analyze to different hashes")
	}
}

func TestBitmap_IsJumpDestOutOfRange(t *testing.T) {
	code := evmcore.Code{0x00}
	a := Analyze(code)
	if a.JumpDests.IsJumpDest(100) {
		t.Error("an out-of-range pc must never be a valid jump target")
	}
}
