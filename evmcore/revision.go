package evmcore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Revision identifies a hardfork. It is declared in evmcore (rather than in
// package hardfork, which consumes it) so that evmcore.Parameters can carry
// a Revision field without evmcore importing hardfork — hardfork.Spec data
// is keyed by this type instead. This keeps the dependency one-way:
// hardfork -> evmcore, never the reverse.
type Revision int

const (
	Frontier Revision = iota
	Homestead
	TangerineWhistle
	SpuriousDragon
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	MuirGlacier
	Berlin
	London
	ArrowGlacier
	GrayGlacier
	Paris
	Shanghai
	Cancun
	Prague
	Osaka
)

// NumRevisions is the number of defined revisions, usable for sizing
// per-revision tables.
const NumRevisions = int(Osaka) + 1

var revisionNames = [...]string{
	Frontier:         "Frontier",
	Homestead:        "Homestead",
	TangerineWhistle: "TangerineWhistle",
	SpuriousDragon:   "SpuriousDragon",
	Byzantium:        "Byzantium",
	Constantinople:   "Constantinople",
	Petersburg:       "Petersburg",
	Istanbul:         "Istanbul",
	MuirGlacier:      "MuirGlacier",
	Berlin:           "Berlin",
	London:           "London",
	ArrowGlacier:     "ArrowGlacier",
	GrayGlacier:      "GrayGlacier",
	Paris:            "Paris",
	Shanghai:         "Shanghai",
	Cancun:           "Cancun",
	Prague:           "Prague",
	Osaka:            "Osaka",
}

func (r Revision) String() string {
	if r < 0 || int(r) >= len(revisionNames) {
		return fmt.Sprintf("Revision(%d)", int(r))
	}
	return revisionNames[r]
}

// IsValid reports whether r is a known revision.
func (r Revision) IsValid() bool {
	return r >= Frontier && int(r) < len(revisionNames)
}

// IsAtLeast reports whether r is the same as or later than other, in
// chronological fork order.
func (r Revision) IsAtLeast(other Revision) bool {
	return r >= other
}

func (r Revision) MarshalJSON() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid revision: %d", int(r))
	}
	return json.Marshal(r.String())
}

func (r *Revision) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range revisionNames {
		if strings.EqualFold(name, s) {
			*r = Revision(i)
			return nil
		}
	}
	return fmt.Errorf("unknown revision: %s", s)
}
