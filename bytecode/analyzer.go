// Package bytecode implements the one-pass JUMPDEST validity analysis and
// the EIP-7702 delegation-header parser consumed by the call-frame
// manager and interpreter.
package bytecode

import (
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/opcodes"
)

// Analyzed is the result of analyzing a piece of bytecode: the code itself,
// a JUMPDEST validity bitmap sized to len(code), and the code's content
// hash (used as the cache key and as the CodeHash Host exposes).
type Analyzed struct {
	Code      evmcore.Code
	JumpDests Bitmap
	Hash      evmcore.Hash
}

// Bitmap marks, for each byte offset, whether it is a valid JUMPDEST
// target: code[i] == JUMPDEST and i is not inside a preceding PUSHn's
// immediate bytes.
type Bitmap []bool

// IsJumpDest reports whether pc is a valid jump destination.
func (b Bitmap) IsJumpDest(pc uint64) bool {
	if pc >= uint64(len(b)) {
		return false
	}
	return b[pc]
}

// Analyze builds the JUMPDEST bitmap for code in one PUSH-aware pass,
// grounded on interpreter/lfvm/converter.go's single-pass PUSH-skipping
// loop (generalized here from instruction-stream rewriting down to a pure
// validity bitmap, per spec.md §4.6 — the teacher's superinstruction fusion
// is out of scope for this module, see DESIGN.md).
func Analyze(code evmcore.Code) Analyzed {
	bitmap := make(Bitmap, len(code))
	for i := 0; i < len(code); {
		op := opcodes.OpCode(code[i])
		if op == opcodes.JUMPDEST {
			bitmap[i] = true
			i++
			continue
		}
		i += 1 + op.PushImmediateSize()
	}
	return Analyzed{
		Code:      code,
		JumpDests: bitmap,
		Hash:      evmcore.Hash(crypto.Keccak256Hash(code)),
	}
}
