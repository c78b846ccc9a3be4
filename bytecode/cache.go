package bytecode

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ferrolite/evmcore/evmcore"
)

// cacheCapacity bounds the number of distinct analyzed contracts retained,
// grounded on interpreter/lfvm/converter.go's codeCacheCapacity sizing
// rationale (bounded by max contract size so memory use stays predictable).
const cacheCapacity = 50_000

// Cache is a content-hash-keyed cache of Analyzed bytecode, shared across
// all frames of one Evm instance (spec.md §5 "analyzed-bytecode cache is
// shared within an Evm instance; entries are immutable after insertion").
// Grounded directly on interpreter/lfvm/converter.go's use of the same
// library.
type Cache struct {
	lru *lru.Cache[evmcore.Hash, Analyzed]
}

// NewCache constructs a Cache with the default capacity.
func NewCache() *Cache {
	c, err := lru.New[evmcore.Hash, Analyzed](cacheCapacity)
	if err != nil {
		panic(fmt.Errorf("bytecode: failed to create cache: %v", err))
	}
	return &Cache{lru: c}
}

// Get returns the Analyzed bytecode for code, analyzing and inserting it on
// a cache miss. Empty code is never cached, per spec.md §4.6 — callers are
// expected to special-case empty code as an immediate-success frame (spec.md
// §4.9 step 7) before reaching here, but Get remains correct either way.
func (c *Cache) Get(code evmcore.Code) Analyzed {
	if len(code) == 0 {
		return Analyzed{Code: code}
	}
	hash := evmcore.Hash(crypto.Keccak256Hash(code))
	if cached, ok := c.lru.Get(hash); ok {
		return cached
	}
	analyzed := Analyze(code)
	c.lru.Add(hash, analyzed)
	return analyzed
}
