package evmcore

//go:generate mockgen -source host.go -destination host_mock.go -package evmcore

// Host is the abstract world-state collaborator consumed by the interpreter
// and the call-frame manager (spec.md §4.10). It owns everything the
// interpreter and Evm never touch directly: accounts, storage, transient
// storage, logs, snapshots and block metadata. The access-list (warm/cold)
// tracker is deliberately NOT part of Host — it is its own component (see
// package accesslist) owned by the transaction/Evm layer, per spec.md's
// component split between E (Access List) and K (Host).
type Host interface {
	// Balance returns the wei balance of addr.
	Balance(addr Address) Word
	// Code returns the contract code stored at addr. The caller owns the
	// returned slice.
	Code(addr Address) Code
	// CodeHash returns the content hash of the code stored at addr.
	CodeHash(addr Address) Hash
	// AccountExists reports whether addr is "non-empty" per EIP-161: it has
	// a non-zero nonce, non-zero balance, or non-empty code.
	AccountExists(addr Address) bool

	// GetNonce returns addr's current nonce.
	GetNonce(addr Address) uint64
	// SetNonce sets addr's nonce.
	SetNonce(addr Address, nonce uint64)
	// SetCode installs code as addr's contract code, used by CREATE/CREATE2
	// to deposit the constructor's returned output.
	SetCode(addr Address, code Code)

	// SLoad returns the current value of a storage slot.
	SLoad(addr Address, key Key) Word
	// SStore writes a storage slot and reports the effect of the write on
	// the slot within the current transaction, for SSTORE gas accounting.
	SStore(addr Address, key Key, value Word) StorageStatus

	// TLoad returns the current value of a transient storage slot
	// (EIP-1153). Transient storage is cleared at the end of the
	// transaction.
	TLoad(addr Address, key Key) Word
	// TStore writes a transient storage slot.
	TStore(addr Address, key Key, value Word)

	// Transfer moves value wei from "from" to "to". The caller is
	// responsible for having already verified the sender's balance is
	// sufficient.
	Transfer(from, to Address, value Value)

	// EmitLog records a log emitted by the currently executing frame.
	EmitLog(log Log)

	// Snapshot captures the current world state and returns an opaque,
	// LIFO-discardable token.
	Snapshot() Snapshot
	// RevertToSnapshot restores the world state to the point snap was
	// taken, undoing every mutation performed since.
	RevertToSnapshot(snap Snapshot)

	// BlockHash returns the hash of the block with the given number,
	// applying the fork's block-hash history rule (zero if the number is
	// out of the retained history window).
	BlockHash(number int64) Hash

	// SelfDestruct schedules addr for deletion, transferring its balance to
	// beneficiary (created if necessary). Returns true the first time addr
	// is destructed within the current transaction.
	SelfDestruct(addr, beneficiary Address) bool
}
