// Package gas implements the per-frame gas budget: consumption, refund
// accounting and memory-expansion pricing.
package gas

import (
	"math"

	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/hardfork"
)

// ErrOutOfGas is returned by Consume when the charge would exceed the
// remaining budget.
type ErrOutOfGas struct{}

func (ErrOutOfGas) Error() string { return "out of gas" }

// Meter tracks gas consumption and refunds for a single call frame,
// grounded on interpreter/lfvm's inlined gas bookkeeping (c.gas, c.refund)
// but extracted into its own component per spec.md §4.4.
type Meter struct {
	limit          evmcore.Gas
	used           evmcore.Gas
	refunded       evmcore.Gas
	lastMemoryCost evmcore.Gas
	spec           *hardfork.Spec
}

// New initializes a Meter with the given limit under spec (spec.md §4.4
// init).
func New(limit evmcore.Gas, spec *hardfork.Spec) *Meter {
	return &Meter{limit: limit, spec: spec}
}

// Consume charges n gas, failing with ErrOutOfGas if that would exceed the
// limit. No partial charge is applied on failure.
func (m *Meter) Consume(n evmcore.Gas) error {
	if n < 0 {
		panic("gas: negative charge")
	}
	if m.used+n > m.limit {
		return ErrOutOfGas{}
	}
	m.used += n
	return nil
}

// Refund adds n to the refund counter (uncapped at this point; the cap is
// applied by FinalRefund).
func (m *Meter) Refund(n evmcore.Gas) {
	m.refunded += n
}

// Unrefund subtracts n from the refund counter, used when an SSTORE
// reverses an earlier refund-eligible state transition within the same
// frame (spec.md §4.7 SSTORE rule).
func (m *Meter) Unrefund(n evmcore.Gas) {
	m.refunded -= n
}

// Used returns the total gas consumed so far.
func (m *Meter) Used() evmcore.Gas {
	return m.used
}

// Remaining returns the unconsumed portion of the limit.
func (m *Meter) Remaining() evmcore.Gas {
	return m.limit - m.used
}

// FinalRefund returns min(refunded, used / spec.MaxRefundQuotient), the
// amount actually returned to the caller at the end of a transaction
// (spec.md §4.4).
func (m *Meter) FinalRefund() evmcore.Gas {
	quota := m.used / evmcore.Gas(m.spec.MaxRefundQuotient)
	if m.refunded < quota {
		return m.refunded
	}
	return quota
}

// RemainingWithRefund returns Remaining() + FinalRefund().
func (m *Meter) RemainingWithRefund() evmcore.Gas {
	return m.Remaining() + m.FinalRefund()
}

// MemoryCost returns the cost of a memory region of the given byte size:
// 0 for 0, else w^2/512 + VERYLOW*w with w = ceil(bytes/32) (spec.md §4.4),
// grounded on interpreter/lfvm/memory.go:getExpansionCosts's formula, moved
// here since spec.md places memory pricing under the Gas component.
func (m *Meter) MemoryCost(bytes uint64) evmcore.Gas {
	if bytes == 0 {
		return 0
	}
	words := (bytes + 31) / 32
	return saturatingCost(words)
}

func saturatingCost(words uint64) evmcore.Gas {
	// words is derived from a byte length that is itself bounded well below
	// 2^32 in any real execution (max_code_size/max_initcode_size, or a
	// memory region actually affordable at today's block gas limits), so
	// words*words cannot overflow uint64; guard the final cast only.
	quad := words * words / 512
	linear := 3 * words
	total := quad + linear
	if total > uint64(math.MaxInt64) {
		return evmcore.Gas(math.MaxInt64)
	}
	return evmcore.Gas(total)
}

// MemoryExpansionCost returns the marginal cost of growing memory from old
// to new byte length: MemoryCost(new) - lastMemoryCost if new > old, else
// 0. It does not mutate the meter; the caller must call UpdateMemoryCost
// after actually performing (and charging for) the expansion.
func (m *Meter) MemoryExpansionCost(old, new uint64) evmcore.Gas {
	if new <= old {
		return 0
	}
	cost := m.MemoryCost(new)
	delta := cost - m.lastMemoryCost
	if delta < 0 {
		return 0
	}
	return delta
}

// UpdateMemoryCost records the new cumulative memory cost after the caller
// has expanded memory to newLen and charged the delta returned by
// MemoryExpansionCost.
func (m *Meter) UpdateMemoryCost(newLen uint64) {
	cost := m.MemoryCost(newLen)
	if cost > m.lastMemoryCost {
		m.lastMemoryCost = cost
	}
}
