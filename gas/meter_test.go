package gas

import (
	"testing"

	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/hardfork"
)

func testSpec() *hardfork.Spec {
	return hardfork.Get(evmcore.London)
}

func TestMeter_ConsumeWithinLimit(t *testing.T) {
	m := New(100, testSpec())
	if err := m.Consume(40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Used() != 40 {
		t.Errorf("Used() = %d, want 40", m.Used())
	}
	if m.Remaining() != 60 {
		t.Errorf("Remaining() = %d, want 60", m.Remaining())
	}
}

func TestMeter_ConsumeExceedingLimitFails(t *testing.T) {
	m := New(10, testSpec())
	if err := m.Consume(11); err == nil {
		t.Fatal("want ErrOutOfGas, got nil")
	} else if _, ok := err.(ErrOutOfGas); !ok {
		t.Errorf("want ErrOutOfGas, got %T", err)
	}
	if m.Used() != 0 {
		t.Errorf("a failed Consume must not partially charge, got Used() = %d", m.Used())
	}
}

func TestMeter_ConsumeNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Consume(-1) should panic")
		}
	}()
	m := New(10, testSpec())
	_ = m.Consume(-1)
}

func TestMeter_RefundAndFinalRefund(t *testing.T) {
	spec := testSpec() // MaxRefundQuotient = 5, post-London
	m := New(1000, spec)
	_ = m.Consume(100)
	m.Refund(30)

	// quota = used / 5 = 20, refunded = 30 -> capped at 20.
	if got := m.FinalRefund(); got != 20 {
		t.Errorf("FinalRefund() = %d, want 20", got)
	}
}

func TestMeter_FinalRefundBelowQuota(t *testing.T) {
	spec := testSpec()
	m := New(1000, spec)
	_ = m.Consume(100)
	m.Refund(5)

	if got := m.FinalRefund(); got != 5 {
		t.Errorf("FinalRefund() = %d, want 5 (below quota)", got)
	}
}

func TestMeter_Unrefund(t *testing.T) {
	spec := testSpec()
	m := New(1000, spec)
	_ = m.Consume(100)
	m.Refund(30)
	m.Unrefund(10)

	if got := m.FinalRefund(); got != 20 {
		t.Errorf("FinalRefund() after Unrefund(10) = %d, want 20", got)
	}
}

func TestMeter_RemainingWithRefund(t *testing.T) {
	spec := testSpec()
	m := New(1000, spec)
	_ = m.Consume(100)
	m.Refund(5)

	if got := m.RemainingWithRefund(); got != 905 {
		t.Errorf("RemainingWithRefund() = %d, want 905", got)
	}
}

func TestMeter_MemoryCost(t *testing.T) {
	m := New(1_000_000, testSpec())
	tests := []struct {
		bytes uint64
		want  evmcore.Gas
	}{
		{0, 0},
		{1, 3},
		{32, 3},
		{33, 6},
		{22 * 32, 3 * 22},
		{23 * 32, (23*23)/512 + 3*23},
	}
	for _, test := range tests {
		if got := m.MemoryCost(test.bytes); got != test.want {
			t.Errorf("MemoryCost(%d) = %d, want %d", test.bytes, got, test.want)
		}
	}
}

func TestMeter_MemoryExpansionCostAndUpdate(t *testing.T) {
	m := New(1_000_000, testSpec())

	if cost := m.MemoryExpansionCost(0, 32); cost != 3 {
		t.Fatalf("MemoryExpansionCost(0, 32) = %d, want 3", cost)
	}
	m.UpdateMemoryCost(32)

	// Growing to the same size again costs nothing more.
	if cost := m.MemoryExpansionCost(32, 32); cost != 0 {
		t.Errorf("MemoryExpansionCost(32, 32) = %d, want 0", cost)
	}

	// Growing further charges only the marginal cost.
	if cost := m.MemoryExpansionCost(32, 64); cost != 3 {
		t.Errorf("MemoryExpansionCost(32, 64) = %d, want 3 (6 total - 3 already paid)", cost)
	}
}

func TestMeter_MemoryExpansionCostDoesNotMutate(t *testing.T) {
	m := New(1_000_000, testSpec())
	m.MemoryExpansionCost(0, 64)
	// Without UpdateMemoryCost, lastMemoryCost is still 0: a second call
	// over the same range must return the same (non-marginal) cost.
	if cost := m.MemoryExpansionCost(0, 64); cost != 6 {
		t.Errorf("MemoryExpansionCost must be idempotent without UpdateMemoryCost, got %d, want 6", cost)
	}
}
