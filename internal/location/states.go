// Package location turns a ZIP code into a normalized (city, state) pair and
// decides whether the state can be quoted online.
package location

import "strings"

// stateAbbrByName maps long state names to USPS abbreviations.
var stateAbbrByName = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
}

var validAbbrs = func() map[string]bool {
	m := make(map[string]bool, len(stateAbbrByName))
	for _, abbr := range stateAbbrByName {
		m[abbr] = true
	}
	return m
}()

// NormalizeState converts a state name or abbreviation to a USPS
// abbreviation. Unrecognized input yields "".
func NormalizeState(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	upper := strings.ToUpper(s)
	if len(upper) == 2 && validAbbrs[upper] {
		return upper
	}
	if abbr, ok := stateAbbrByName[strings.ToLower(s)]; ok {
		return abbr
	}
	return ""
}

// phoneOnlyStates cannot be quoted online. Regulatory filing requirements in
// these states route callers to a licensed agent instead.
var phoneOnlyStates = map[string]bool{
	"AK": true,
	"HI": true,
	"MA": true,
}

// IsPhoneOnly reports whether online quoting is unavailable for the state
// abbreviation. The empty abbreviation (unresolved location) is phone-only.
func IsPhoneOnly(abbr string) bool {
	if abbr == "" {
		return true
	}
	return phoneOnlyStates[abbr]
}
