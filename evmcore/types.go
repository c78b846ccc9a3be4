// Package evmcore defines the primitive types, Host contract and execution
// parameters shared by every other package in this module: the fixed-size
// value types exchanged across package boundaries, the CallKind/CallInputs/
// CallResult shapes used to drive nested calls, and the ExecutionStatus
// taxonomy returned by a completed run.
package evmcore

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Address is the 160-bit (20 byte) address of an account.
type Address [20]byte

// ZeroAddress is the all-zero address.
var ZeroAddress = Address{}

func (a Address) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) MarshalText() ([]byte, error) {
	return bytesToText(a[:])
}

func (a *Address) UnmarshalText(data []byte) error {
	return textToBytes(a[:], data)
}

// ParseAddress parses a hex string, with or without a "0x" prefix, into an
// Address.
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	data, err := hex.DecodeString(s)
	if err != nil {
		return a, err
	}
	if len(data) != len(a) {
		return a, fmt.Errorf("invalid address length: want %d bytes, got %d", len(a), len(data))
	}
	copy(a[:], data)
	return a, nil
}

// Hash (aka B256) is a 256-bit (32 byte) hash, used for code hashes, storage
// keys, block hashes and prev-randao.
type Hash [32]byte

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return bytesToText(h[:])
}

func (h *Hash) UnmarshalText(data []byte) error {
	return textToBytes(h[:], data)
}

// Key is an alias of Hash used where a value specifically identifies a
// storage slot.
type Key = Hash

// Word is an arbitrary 256-bit EVM word, exchanged at API boundaries as
// big-endian bytes. In-frame arithmetic is performed directly on
// *uint256.Int (see the stack package); Word is the wire representation used
// by Host, logs and calldata.
type Word [32]byte

func (w Word) String() string {
	return fmt.Sprintf("0x%x", w[:])
}

func (w Word) MarshalText() ([]byte, error) {
	return bytesToText(w[:])
}

func (w *Word) UnmarshalText(data []byte) error {
	return textToBytes(w[:], data)
}

// ToUint256 converts a Word to a *uint256.Int.
func (w Word) ToUint256() *uint256.Int {
	return new(uint256.Int).SetBytes(w[:])
}

// WordFromUint256 converts a *uint256.Int to a Word. A nil input yields the
// zero Word.
func WordFromUint256(v *uint256.Int) (result Word) {
	if v == nil {
		return result
	}
	return v.Bytes32()
}

// Value represents an amount of chain currency (wei), encoded the same way
// as Word.
type Value = Word

// NewValue builds a Value from up to 4 uint64 limbs, most-significant first,
// left-zero-padded. No arguments yields zero.
func NewValue(args ...uint64) (result Value) {
	if len(args) > 4 {
		panic("too many arguments to NewValue")
	}
	offset := 4 - len(args)
	for i := 0; i < len(args); i++ {
		start := (offset * 8) + i*8
		binary.BigEndian.PutUint64(result[start:start+8], args[i])
	}
	return
}

func (w Word) ToBig() *big.Int {
	return new(big.Int).SetBytes(w[:])
}

// Add returns a+b mod 2^256.
func Add(a, b Word) Word {
	x, y := a.ToUint256(), b.ToUint256()
	return WordFromUint256(new(uint256.Int).Add(x, y))
}

// Sub returns a-b mod 2^256.
func Sub(a, b Word) Word {
	x, y := a.ToUint256(), b.ToUint256()
	return WordFromUint256(new(uint256.Int).Sub(x, y))
}

// Code is the byte-code of a contract.
type Code []byte

// Data represents the input or output of a contract invocation.
type Data []byte

// Gas is the type used for every gas quantity in this module: budgets,
// consumption, refunds and costs.
type Gas int64

// Log is a single event emitted as a side effect of contract execution.
type Log struct {
	Address Address
	Topics  []Hash
	Data    Data
}

// Snapshot is an opaque marker of world state at a point in time, produced
// and consumed exclusively by a Host implementation.
type Snapshot int

// AccessStatus indicates whether an address or storage slot access was cold
// (first access this transaction) or warm (subsequent access), per
// EIP-2929.
type AccessStatus bool

const (
	ColdAccess AccessStatus = false
	WarmAccess AccessStatus = true
)

// StorageStatus classifies the effect of an SSTORE on a slot within the
// current transaction; used to price SSTORE under EIP-2200/3529 net
// metering.
type StorageStatus int

const (
	// StorageUnchanged: current == new (no-op store).
	StorageUnchanged StorageStatus = iota
	// StorageAdded: original == 0, current == 0, new != 0.
	StorageAdded
	// StorageDeleted: original != 0, current == original, new == 0.
	StorageDeleted
	// StorageModified: original != 0, current == original, new != 0, new != current.
	StorageModified
	// StorageDeletedAdded: current == 0, current != original, new != 0.
	StorageDeletedAdded
	// StorageModifiedDeleted: current != original, current != 0, new == 0.
	StorageModifiedDeleted
	// StorageDeletedRestored: current == 0, current != original, new == original.
	StorageDeletedRestored
	// StorageAddedDeleted: original == 0, current != original, new == 0.
	StorageAddedDeleted
	// StorageModifiedRestored: current != original, new == original, original != 0.
	StorageModifiedRestored
)

func (s StorageStatus) String() string {
	switch s {
	case StorageUnchanged:
		return "StorageUnchanged"
	case StorageAdded:
		return "StorageAdded"
	case StorageDeleted:
		return "StorageDeleted"
	case StorageModified:
		return "StorageModified"
	case StorageDeletedAdded:
		return "StorageDeletedAdded"
	case StorageModifiedDeleted:
		return "StorageModifiedDeleted"
	case StorageDeletedRestored:
		return "StorageDeletedRestored"
	case StorageAddedDeleted:
		return "StorageAddedDeleted"
	case StorageModifiedRestored:
		return "StorageModifiedRestored"
	default:
		return fmt.Sprintf("StorageStatus(%d)", int(s))
	}
}

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(dst []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	decoded, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(dst), len(decoded); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(dst, decoded)
	return nil
}
