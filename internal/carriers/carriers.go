// Package carriers maps states to the carrier panel shown on a quick quote.
package carriers

import (
	"strings"

	"go.uber.org/zap"
)

// stateCarrierMap lists exactly three carriers per state, in display order.
type panel [3]string

var stateCarrierMap = map[string]panel{
	"CA": {"Orion Indemnity", "Mercury Auto Insurance", "Progressive Insurance"},
	"TX": {"Mercury Auto Insurance", "Progressive Insurance", "State Farm"},
	"FL": {"Progressive Insurance", "Mercury Auto Insurance", "State Farm"},
	"NY": {"Mercury Auto Insurance", "State Farm", "Progressive Insurance"},
	"IL": {"State Farm", "Mercury Auto Insurance", "Progressive Insurance"},
	"PA": {"Mercury Auto Insurance", "Progressive Insurance", "State Farm"},
	"OH": {"State Farm", "Progressive Insurance", "Mercury Auto Insurance"},
	"GA": {"Progressive Insurance", "State Farm", "Mercury Auto Insurance"},
	"NC": {"Mercury Auto Insurance", "State Farm", "Progressive Insurance"},
	"MI": {"Progressive Insurance", "Mercury Auto Insurance", "State Farm"},
}

// defaultPanel covers states without an explicit mapping.
var defaultPanel = panel{"Mercury Auto Insurance", "Progressive Insurance", "State Farm"}

// ForState returns the three carriers quoted in a state, by abbreviation.
// Unknown states get the default panel; the result is never empty.
func ForState(abbr string) []string {
	if p, ok := stateCarrierMap[abbr]; ok {
		return p[:]
	}
	zap.L().Debug("carriers: no panel for state, using defaults", zap.String("state", abbr))
	return defaultPanel[:]
}

// DisplayName canonicalizes a carrier name from any of its common spellings.
// Unrecognized names pass through unchanged.
func DisplayName(carrier string) string {
	lower := strings.ToLower(carrier)
	switch {
	case strings.Contains(lower, "orion"):
		return "Orion Indemnity"
	case strings.Contains(lower, "mercury"):
		return "Mercury Auto Insurance"
	case strings.Contains(lower, "progressive"):
		return "Progressive Insurance"
	case strings.Contains(lower, "state farm"), strings.Contains(lower, "statefarm"):
		return "State Farm"
	}
	return carrier
}
