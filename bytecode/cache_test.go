package bytecode

import (
	"testing"

	"github.com/ferrolite/evmcore/evmcore"
)

func TestCache_GetAnalyzesAndCaches(t *testing.T) {
	c := NewCache()
	code := evmcore.Code{0x60, 0x00, 0x5B, 0x00}

	first := c.Get(code)
	second := c.Get(code)

	if first.Hash != second.Hash {
		t.Error("repeated Get of identical code should return the same analysis")
	}
	if !first.JumpDests.IsJumpDest(2) {
		t.Error("cached analysis should still report the correct jump destinations")
	}
}

func TestCache_EmptyCodeNotCached(t *testing.T) {
	c := NewCache()
	a := c.Get(evmcore.Code{})
	if a.Hash != (evmcore.Hash{}) {
		t.Error("empty code should analyze to a zero-value Hash (never hashed/cached)")
	}
	if len(a.JumpDests) != 0 {
		t.Error("empty code should have an empty jump-destination bitmap")
	}
}

func TestCache_DistinctCodeDistinctEntries(t *testing.T) {
	c := NewCache()
	a := c.Get(evmcore.Code{0x00})
	b := c.Get(evmcore.Code{0x01})
	if a.Hash == b.Hash {
		t.Error("distinct code must produce distinct cache entries")
	}
}
