package bytecode

import "github.com/ferrolite/evmcore/evmcore"

// delegationPrefix is the 3-byte marker that identifies an EIP-7702
// delegation designator: 0xEF 0x01 0x00.
var delegationPrefix = [3]byte{0xEF, 0x01, 0x00}

const delegationLength = len(delegationPrefix) + 20 // prefix + 20-byte address

// ParseDelegation returns the target address of an EIP-7702 delegation
// designator if code is exactly one, or false otherwise (spec.md §4.6).
func ParseDelegation(code evmcore.Code) (target evmcore.Address, ok bool) {
	if len(code) != delegationLength {
		return target, false
	}
	if code[0] != delegationPrefix[0] || code[1] != delegationPrefix[1] || code[2] != delegationPrefix[2] {
		return target, false
	}
	copy(target[:], code[len(delegationPrefix):])
	return target, true
}
