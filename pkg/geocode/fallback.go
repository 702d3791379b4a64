package geocode

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// metroEntry is one ZIP-prefix row of the static metro table.
type metroEntry struct {
	city  string
	state string
}

// metroByPrefix maps 3-digit ZIP prefixes to well-known metros. It covers the
// areas the rating tables price explicitly, so quoting works without a
// geocoding key. Coarse on purpose: a prefix maps to its dominant city.
var metroByPrefix = map[string]metroEntry{
	// California
	"900": {"los angeles", "California"},
	"901": {"los angeles", "California"},
	"902": {"beverly hills", "California"},
	"903": {"inglewood", "California"},
	"904": {"santa monica", "California"},
	"905": {"torrance", "California"},
	"906": {"long beach", "California"},
	"910": {"pasadena", "California"},
	"917": {"glendale", "California"},
	"941": {"san francisco", "California"},
	"943": {"palo alto", "California"},
	"944": {"san mateo", "California"},
	"945": {"oakland", "California"},
	"946": {"oakland", "California"},
	"947": {"berkeley", "California"},
	"948": {"richmond", "California"},

	// Florida
	"330": {"miami", "Florida"},
	"331": {"miami", "Florida"},
	"332": {"miami beach", "Florida"},
	"333": {"fort lauderdale", "Florida"},
	"334": {"west palm beach", "Florida"},

	// New York
	"100": {"new york", "New York"},
	"101": {"new york", "New York"},
	"102": {"new york", "New York"},
	"103": {"staten island", "New York"},
	"104": {"bronx", "New York"},
	"112": {"brooklyn", "New York"},
	"113": {"flushing", "New York"},

	// Illinois
	"606": {"chicago", "Illinois"},
	"607": {"chicago", "Illinois"},
	"608": {"chicago", "Illinois"},

	// Texas
	"750": {"dallas", "Texas"},
	"770": {"houston", "Texas"},
	"787": {"austin", "Texas"},

	// Michigan
	"482": {"detroit", "Michigan"},
	"483": {"warren", "Michigan"},

	// Nevada
	"891": {"las vegas", "Nevada"},

	// Massachusetts
	"021": {"boston", "Massachusetts"},
	"022": {"boston", "Massachusetts"},

	// Iowa
	"500": {"des moines", "Iowa"},
	"503": {"des moines", "Iowa"},

	// Georgia
	"303": {"atlanta", "Georgia"},

	// Arizona
	"850": {"phoenix", "Arizona"},

	// Colorado
	"802": {"denver", "Colorado"},

	// Washington
	"981": {"seattle", "Washington"},

	// Alaska and Hawaii, so phone-only routing still names the state
	"995": {"anchorage", "Alaska"},
	"968": {"honolulu", "Hawaii"},
}

var cityTitleCaser = cases.Title(language.AmericanEnglish)

// staticLookup resolves a ZIP against the metro table, or nil when the prefix
// is not covered.
func staticLookup(zip string) *Result {
	if len(zip) < 3 {
		return nil
	}
	entry, ok := metroByPrefix[zip[:3]]
	if !ok {
		return nil
	}
	return &Result{
		City:      cityTitleCaser.String(entry.city),
		StateName: entry.state,
		Source:    "static",
		Matched:   true,
	}
}
