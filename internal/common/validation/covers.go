// internal/common/validation/covers.go
package validation

// Optional cover lines the intake form accepts. Amounts outside the
// allowed range are clamped, unknown cover names are dropped.
const (
	CoverAccidentalDamage = "accidental-damage"
	CoverPowerSurge       = "power-surge"
	CoverSubsidence       = "subsidence"
)

// CoverRange holds the allowed amount range for one optional cover.
type CoverRange struct {
	Min float64
	Max float64
}

var coverRanges = map[string]CoverRange{
	CoverAccidentalDamage: {Min: 0, Max: 50000},
	CoverPowerSurge:       {Min: 0, Max: 30000},
	CoverSubsidence:       {Min: 0, Max: 100000},
}

// IsKnownCover reports whether the cover name is one of the supported
// optional cover lines.
func IsKnownCover(name string) bool {
	_, ok := coverRanges[name]
	return ok
}

// ClampCoverAmount clamps the requested amount into the allowed range for
// the named cover. Unknown covers return (0, false).
func ClampCoverAmount(name string, amount float64) (float64, bool) {
	r, ok := coverRanges[name]
	if !ok {
		return 0, false
	}
	if amount < r.Min {
		return r.Min, true
	}
	if amount > r.Max {
		return r.Max, true
	}
	return amount, true
}

// NormalizeOptionalCovers sanitizes a map of optional cover selections,
// clamping each amount and dropping unknown covers.
func NormalizeOptionalCovers(covers map[string]float64) map[string]float64 {
	normalized := make(map[string]float64, len(covers))
	for name, amount := range covers {
		if clamped, ok := ClampCoverAmount(name, amount); ok {
			normalized[name] = clamped
		}
	}
	return normalized
}
