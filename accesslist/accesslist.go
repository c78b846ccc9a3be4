// Package accesslist implements the EIP-2929 warm/cold address and storage
// slot tracker consumed by the gas meter's state-access pricing.
//
// The teacher folds this bookkeeping into its Host-like RunContext
// (AccessAccount/AccessStorage/IsAddressInAccessList/IsSlotInAccessList on
// vm.RunContext). spec.md §4.5 instead names Access List as its own
// component (E), separate from Host (K); this package follows spec.md's
// split and is owned by the transaction/Evm layer rather than by Host.
package accesslist

import "github.com/ferrolite/evmcore/evmcore"

type slotKey struct {
	addr evmcore.Address
	slot evmcore.Key
}

// AccessList tracks which addresses and storage slots have been touched
// within the current transaction.
type AccessList struct {
	addresses map[evmcore.Address]struct{}
	slots     map[slotKey]struct{}
}

// New returns an empty AccessList.
func New() *AccessList {
	return &AccessList{
		addresses: make(map[evmcore.Address]struct{}),
		slots:     make(map[slotKey]struct{}),
	}
}

// precompileCount is the number of reserved precompile addresses
// (0x01-0x09) pre-warmed by InitForTx, per spec.md §4.5.
const precompileCount = 9

// InitForTx pre-warms the sender, the recipient (if present), the
// coinbase (Shanghai+, per EIP-3651) and precompiles 0x01-0x09.
func (a *AccessList) InitForTx(sender evmcore.Address, recipient *evmcore.Address, coinbase evmcore.Address, warmCoinbase bool) {
	a.WarmAddress(sender)
	if recipient != nil {
		a.WarmAddress(*recipient)
	}
	if warmCoinbase {
		a.WarmAddress(coinbase)
	}
	for i := 1; i <= precompileCount; i++ {
		var addr evmcore.Address
		addr[19] = byte(i)
		a.WarmAddress(addr)
	}
}

// WarmAddress marks addr as accessed, reporting whether it was cold prior
// to this call.
func (a *AccessList) WarmAddress(addr evmcore.Address) (wasCold bool) {
	if _, ok := a.addresses[addr]; ok {
		return false
	}
	a.addresses[addr] = struct{}{}
	return true
}

// WarmSlot marks (addr, slot) as accessed, also ensuring addr itself is
// warm. Reports whether the slot (not the address) was cold prior to this
// call, per spec.md §4.5 ("does not report address novelty in the slot
// result").
func (a *AccessList) WarmSlot(addr evmcore.Address, slot evmcore.Key) (wasCold bool) {
	a.WarmAddress(addr)
	key := slotKey{addr, slot}
	if _, ok := a.slots[key]; ok {
		return false
	}
	a.slots[key] = struct{}{}
	return true
}

// IsAddressWarm is a pure predicate over prior WarmAddress/WarmSlot calls.
func (a *AccessList) IsAddressWarm(addr evmcore.Address) bool {
	_, ok := a.addresses[addr]
	return ok
}

// IsSlotWarm is a pure predicate over prior WarmSlot calls.
func (a *AccessList) IsSlotWarm(addr evmcore.Address, slot evmcore.Key) bool {
	_, ok := a.slots[slotKey{addr, slot}]
	return ok
}

// Clone produces an independent deep copy, used when a call frame takes a
// snapshot it may need to roll back to.
func (a *AccessList) Clone() *AccessList {
	clone := New()
	for addr := range a.addresses {
		clone.addresses[addr] = struct{}{}
	}
	for key := range a.slots {
		clone.slots[key] = struct{}{}
	}
	return clone
}

// Tracker is the read-only surface the dynamic-cost helpers depend on,
// satisfied by *AccessList; the warming operations are on WarmingTracker. Pre-Berlin specs never call into it:
// every dynamic-gas helper that touches a Tracker is itself gated behind
// spec.HasAccessLists (interpreter/envops.go, interpreter/systemops.go), so
// the fork-agnostic "always cold/warm" accessor spec.md §4.5/§9 describes
// has no call site to wire into and is not implemented here.
type Tracker interface {
	IsAddressWarm(evmcore.Address) bool
	IsSlotWarm(evmcore.Address, evmcore.Key) bool
}

// WarmingTracker extends Tracker with the mutating warm-on-access
// operations a live *AccessList supports.
type WarmingTracker interface {
	Tracker
	WarmAddress(evmcore.Address) bool
	WarmSlot(evmcore.Address, evmcore.Key) bool
}

var (
	_ Tracker        = (*AccessList)(nil)
	_ WarmingTracker = (*AccessList)(nil)
)
