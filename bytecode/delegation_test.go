package bytecode

import (
	"testing"

	"github.com/ferrolite/evmcore/evmcore"
)

func TestParseDelegation_Valid(t *testing.T) {
	var target evmcore.Address
	target[0], target[19] = 0xAA, 0xBB

	code := append(evmcore.Code{0xEF, 0x01, 0x00}, target[:]...)
	got, ok := ParseDelegation(code)
	if !ok {
		t.Fatal("a well-formed delegation header should parse")
	}
	if got != target {
		t.Errorf("ParseDelegation target = %x, want %x", got, target)
	}
}

func TestParseDelegation_WrongPrefix(t *testing.T) {
	code := append(evmcore.Code{0xEF, 0x01, 0x01}, make([]byte, 20)...)
	if _, ok := ParseDelegation(code); ok {
		t.Error("a mismatched third prefix byte must not parse as a delegation")
	}
}

func TestParseDelegation_WrongLength(t *testing.T) {
	if _, ok := ParseDelegation(evmcore.Code{0xEF, 0x01, 0x00}); ok {
		t.Error("a too-short buffer must not parse as a delegation")
	}
	tooLong := append(evmcore.Code{0xEF, 0x01, 0x00}, make([]byte, 21)...)
	if _, ok := ParseDelegation(tooLong); ok {
		t.Error("a too-long buffer must not parse as a delegation")
	}
}

func TestParseDelegation_OrdinaryCode(t *testing.T) {
	if _, ok := ParseDelegation(evmcore.Code{0x60, 0x00, 0x60, 0x00}); ok {
		t.Error("ordinary bytecode must not parse as a delegation")
	}
}
