package interpreter

import (
	"testing"

	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/hardfork"
)

// Values per EIP-2929/EIP-2200, cross-checked against
// interpreter/lfvm/gas.go:gasSStoreEIP2929 in the teacher repository.
func TestSstoreCost_Berlin(t *testing.T) {
	spec := hardfork.Get(evmcore.Berlin)

	cases := []struct {
		name       string
		status     evmcore.StorageStatus
		wasCold    bool
		wantCost   evmcore.Gas
		wantRefund evmcore.Gas
	}{
		{"clean write warm", evmcore.StorageDeleted, false, 2900, 15000},
		{"clean write cold", evmcore.StorageDeleted, true, 5000, 15000},
		{"clean write (no clear) warm", evmcore.StorageModified, false, 2900, 0},
		{"clean write (no clear) cold", evmcore.StorageModified, true, 5000, 0},
		{"restore to original warm", evmcore.StorageModifiedRestored, false, 100, 2800},
		{"restore to original cold", evmcore.StorageModifiedRestored, true, 2200, 2800},
		{"no-op warm", evmcore.StorageUnchanged, false, 100, 0},
		{"no-op cold", evmcore.StorageUnchanged, true, 2200, 0},
		{"fresh set warm", evmcore.StorageAdded, false, 20000, 0},
		{"fresh set cold", evmcore.StorageAdded, true, 22100, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cost, refund := sstoreCost(spec, c.status, c.wasCold)
			if cost != c.wantCost {
				t.Errorf("cost = %d, want %d", cost, c.wantCost)
			}
			if refund != c.wantRefund {
				t.Errorf("refund = %d, want %d", refund, c.wantRefund)
			}
		})
	}
}
