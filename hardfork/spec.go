// Package hardfork provides the fork-parameterised configuration record
// consumed by the gas meter, interpreter and call-frame manager: cost
// knobs, limits, feature flags and the composed per-opcode base-cost table.
//
// A Spec is never mutated after construction. The full chain from Frontier
// to the latest revision is composed once, in init(), by folding each
// fork's overrides onto its base fork's Spec — not per instruction, per
// spec.md §4.1's explicit performance note.
package hardfork

import "github.com/ferrolite/evmcore/evmcore"

// Gas cost tiers (spec.md §4.1).
const (
	Zero    evmcore.Gas = 0
	Jumpdest evmcore.Gas = 1
	Base    evmcore.Gas = 2
	VeryLow evmcore.Gas = 3
	Low     evmcore.Gas = 5
	Mid     evmcore.Gas = 8
	High    evmcore.Gas = 10
)

// Spec is the full parameterisation of one hardfork.
type Spec struct {
	Revision evmcore.Revision

	// Cost knobs.
	MaxRefundQuotient     int64
	SstoreClearsSchedule  evmcore.Gas
	SelfdestructRefund    evmcore.Gas
	ColdSloadCost         evmcore.Gas
	ColdAccountAccessCost evmcore.Gas
	WarmStorageReadCost   evmcore.Gas
	SloadGas              evmcore.Gas
	InitcodeWordCost      evmcore.Gas
	Keccak256WordCost     evmcore.Gas
	CopyWordCost          evmcore.Gas
	SstoreSetGas          evmcore.Gas
	SstoreResetGas        evmcore.Gas
	LogBaseCost           evmcore.Gas
	LogTopicCost          evmcore.Gas
	LogDataCost           evmcore.Gas
	CalldataZeroCost      evmcore.Gas
	CalldataNonZeroCost   evmcore.Gas
	CallValueTransferCost evmcore.Gas
	CallNewAccountCost    evmcore.Gas
	CallStipend           evmcore.Gas
	ExpByteCost           evmcore.Gas
	CodeDepositCost       evmcore.Gas // EIP-170: gas per byte of deployed contract code

	// Limits.
	StackLimit        int
	CallDepthLimit    int
	BlockHashHistory  int64
	MaxCodeSize       int
	MaxInitcodeSize   int // 0 means "no limit" (pre-Shanghai)

	// Blob parameters (EIP-4844/7516), zero pre-Cancun.
	TargetBlobsPerBlock int
	MaxBlobsPerBlock    int

	// Feature flags.
	HasPush0                bool
	HasBaseFee              bool
	HasPrevRandao           bool
	HasSelfdestructNewScheme bool // EIP-6780: self-destruct only within creation tx
	HasTStore               bool
	HasMCopy                bool
	HasBlobOpcodes          bool
	HasBlobGas              bool
	HasEIP7702              bool
	HasBLSPrecompiles       bool
	HasHistoricalBlockHashes bool
	HasAccessLists          bool // EIP-2929, Berlin+
	HasNetSstoreMetering    bool // EIP-2200, Istanbul+
	HasEIP3541              bool // reject 0xEF-prefixed deploy code, London+

	// BaseCosts[opcode] is the static per-instruction cost, composed once
	// per revision by the fold in init(). 0 for undefined opcodes (callers
	// must consult the dispatch table to distinguish "free" from
	// "unsupported").
	BaseCosts [256]evmcore.Gas
}

// GasCost returns the static base cost of op under this Spec (spec.md §4.1
// gas_cost operation).
func (s *Spec) GasCost(op byte) evmcore.Gas {
	return s.BaseCosts[op]
}

// HasEIP reports whether a numbered EIP's behavior is active under this
// Spec. Only the EIPs listed in the switch are recognized, each derived from
// a feature flag, a cost knob or the revision itself; any other number
// reports false.
func (s *Spec) HasEIP(number int) bool {
	switch number {
	case 150:
		return s.Revision >= evmcore.TangerineWhistle
	case 161:
		return s.Revision >= evmcore.SpuriousDragon
	case 1559:
		return s.HasBaseFee
	case 2200:
		return s.HasNetSstoreMetering
	case 2929:
		return s.HasAccessLists
	case 2930:
		return s.HasAccessLists
	case 3198:
		return s.HasBaseFee
	case 3529:
		return s.MaxRefundQuotient == 5
	case 3541:
		return s.HasEIP3541
	case 3651:
		return s.Revision >= evmcore.Shanghai
	case 3855:
		return s.HasPush0
	case 3860:
		return s.MaxInitcodeSize > 0
	case 4399:
		return s.HasPrevRandao
	case 4844:
		return s.HasBlobOpcodes
	case 5656:
		return s.HasMCopy
	case 6780:
		return s.HasSelfdestructNewScheme
	case 7516:
		return s.HasBlobGas
	case 7702:
		return s.HasEIP7702
	case 2935:
		return s.HasHistoricalBlockHashes
	default:
		return false
	}
}

var specs [evmcore.NumRevisions]*Spec

// Get returns the composed Spec for r. Panics if r is not a known revision
// (the caller is expected to validate user-supplied revisions earlier).
func Get(r evmcore.Revision) *Spec {
	if !r.IsValid() {
		panic("hardfork: unknown revision")
	}
	return specs[r]
}

// forkDef describes one entry in the Frontier->latest fold chain: the fork
// it builds on, and the mutation it applies on top of that base's
// already-composed Spec.
type forkDef struct {
	base  evmcore.Revision
	apply func(*Spec)
}

var forkChain = map[evmcore.Revision]forkDef{
	evmcore.Frontier:         {base: evmcore.Frontier, apply: applyFrontier},
	evmcore.Homestead:        {base: evmcore.Frontier, apply: func(*Spec) {}},
	evmcore.TangerineWhistle: {base: evmcore.Homestead, apply: applyTangerineWhistle},
	evmcore.SpuriousDragon:   {base: evmcore.TangerineWhistle, apply: applySpuriousDragon},
	evmcore.Byzantium:        {base: evmcore.SpuriousDragon, apply: func(*Spec) {}},
	evmcore.Constantinople:   {base: evmcore.Byzantium, apply: applyConstantinople},
	evmcore.Petersburg:       {base: evmcore.Constantinople, apply: func(*Spec) {}},
	evmcore.Istanbul:         {base: evmcore.Petersburg, apply: applyIstanbul},
	evmcore.MuirGlacier:      {base: evmcore.Istanbul, apply: func(*Spec) {}},
	evmcore.Berlin:           {base: evmcore.MuirGlacier, apply: applyBerlin},
	evmcore.London:           {base: evmcore.Berlin, apply: applyLondon},
	evmcore.ArrowGlacier:     {base: evmcore.London, apply: func(*Spec) {}},
	evmcore.GrayGlacier:      {base: evmcore.ArrowGlacier, apply: func(*Spec) {}},
	evmcore.Paris:            {base: evmcore.GrayGlacier, apply: applyParis},
	evmcore.Shanghai:         {base: evmcore.Paris, apply: applyShanghai},
	evmcore.Cancun:           {base: evmcore.Shanghai, apply: applyCancun},
	evmcore.Prague:           {base: evmcore.Cancun, apply: applyPrague},
	evmcore.Osaka:            {base: evmcore.Prague, apply: func(*Spec) {}}, // alias of Prague, see DESIGN.md
}

func init() {
	for r := evmcore.Frontier; int(r) < evmcore.NumRevisions; r++ {
		specs[r] = compose(r)
	}
}

// compose builds the Spec for r by folding the chain from Frontier to r.
// Each revision already appears in specs by the time a later revision's
// build reaches it, since init() walks revisions in ascending order and
// every base_fork precedes its dependent.
func compose(r evmcore.Revision) *Spec {
	def := forkChain[r]
	var s Spec
	if r == evmcore.Frontier {
		s = Spec{Revision: r}
	} else {
		s = *specs[def.base]
		s.Revision = r
	}
	def.apply(&s)
	composeBaseCosts(&s, r)
	return &s
}
