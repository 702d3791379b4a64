// Package rating implements the premium estimation model: factor tables,
// factor functions, risk scoring, confidence bands, and the carrier estimator.
package rating

import (
	"math"

	"github.com/rotisserie/eris"
)

// stateBaseAnnual maps state abbreviation to the annual full-coverage premium
// baseline, before any multipliers. "DEFAULT" covers unlisted states and DC.
var stateBaseAnnual = map[string]int{
	// High-cost states (dense population, high claims, litigation)
	"CA": 2800,
	"FL": 2900,
	"MI": 3200,
	"LA": 2850,
	"NY": 2700,
	"NJ": 2650,
	"NV": 2300,
	"MD": 2200,
	"DE": 2200,

	// Mid-cost states
	"TX": 2400,
	"IL": 2300,
	"GA": 2200,
	"AZ": 2100,
	"CO": 2000,
	"WA": 2100,
	"OR": 1950,
	"PA": 2150,
	"CT": 2400,
	"RI": 2350,
	"MA": 2300,

	// Lower-cost states (rural, less dense, lower claims)
	"ME": 1600,
	"VT": 1650,
	"NH": 1700,
	"IA": 1700,
	"OH": 1900,
	"WI": 1850,
	"MN": 1900,
	"SD": 1550,
	"ND": 1550,
	"ID": 1650,
	"MT": 1600,
	"WY": 1550,
	"KS": 1750,
	"NE": 1700,
	"MO": 1900,
	"OK": 1850,
	"AR": 1800,
	"MS": 1850,
	"AL": 1900,
	"TN": 1950,
	"KY": 1800,
	"WV": 1750,
	"VA": 2000,
	"NC": 1950,
	"SC": 1900,
	"IN": 1850,
	"UT": 1800,
	"NM": 1850,
	"AK": 1900,
	"HI": 2200,

	"DEFAULT": 2000,
}

// ageCurve is one inclusive age bucket of the age factor curve.
type ageCurve struct {
	minAge, maxAge int
	mult           float64
	desc           string
}

var ageCurves = []ageCurve{
	{16, 17, 2.40, "Under 18 - highest risk category, new driver"},
	{18, 20, 2.00, "Age 18-20 - very high risk, minimal experience"},
	{21, 24, 1.45, "Age 21-24 - young driver, still elevated risk"},
	{25, 29, 1.15, "Age 25-29 - transitioning to standard rates"},
	{30, 45, 0.95, "Age 30-45 - prime age, lowest rates"},
	{46, 65, 0.90, "Age 46-65 - experienced driver, stable rates"},
	{66, 75, 1.05, "Age 66-75 - senior rates, slight increase"},
	{76, 120, 1.20, "Age 76+ - elevated senior rates"},
}

// factorEntry pairs a multiplier with its human-readable description.
type factorEntry struct {
	mult float64
	desc string
}

// maritalFactors is checked by substring, so order matters for tests only;
// the "default" entry is the fallback for unrecognized statuses.
var maritalFactors = map[string]factorEntry{
	"married":  {0.94, "Married status - statistically lower risk"},
	"single":   {1.00, "Single status - standard baseline rates"},
	"divorced": {1.02, "Divorced status - slightly elevated rates"},
	"widowed":  {1.02, "Widowed status - slightly elevated rates"},
	"default":  {1.00, "Standard marital status rates"},
}

// Luxury brands carry higher repair costs and theft risk.
var luxuryMakes = []string{
	"BMW", "MERCEDES", "MERCEDES-BENZ", "AUDI", "LEXUS", "PORSCHE",
	"TESLA", "JAGUAR", "LAND ROVER", "RANGE ROVER", "MASERATI",
	"BENTLEY", "ROLLS-ROYCE", "CADILLAC", "LINCOLN", "ACURA", "INFINITI",
}

var performanceModels = []string{
	"MUSTANG", "CAMARO", "CHARGER", "CHALLENGER", "CORVETTE",
	"WRX", "STI", "M3", "M5", "AMG", "TYPE R", "GT-R",
	"911", "HELLCAT", "DEMON", "SUPRA", "370Z", "Z06",
}

var economyModels = []string{
	"CIVIC", "COROLLA", "ACCORD", "CAMRY", "SENTRA", "ELANTRA",
	"JETTA", "FORTE", "IMPREZA", "LEGACY", "MAZDA3", "MAZDA6",
	"OPTIMA", "SONATA", "MALIBU", "FUSION", "ALTIMA", "PRIUS",
}

// vehicleAgeCurve buckets vehicle age (years) by maximum age, first match wins.
type vehicleAgeCurve struct {
	maxAge int
	mult   float64
	desc   string
}

var vehicleAgeCurves = []vehicleAgeCurve{
	{2, 1.15, "Very new vehicle (0-2 years) - higher replacement/repair costs"},
	{5, 1.08, "New vehicle (3-5 years) - elevated repair costs"},
	{9, 1.00, "Standard age vehicle (6-9 years) - baseline rates"},
	{999, 0.93, "Older vehicle (10+ years) - lower replacement value"},
}

var vehicleTypeFactors = map[string]factorEntry{
	"luxury":      {1.25, "Luxury vehicle - expensive parts and repairs"},
	"performance": {1.35, "Performance vehicle - higher risk and repair costs"},
	"economy":     {0.95, "Economy vehicle - affordable, reliable repairs"},
	"standard":    {1.00, "Standard vehicle type - baseline rates"},
}

// zipBucketMultipliers maps 3-digit (then 2-digit) ZIP prefixes to cost
// multipliers reflecting urban density, theft, accident rates, and repair
// costs. The named buckets cover unlisted ZIPs.
var zipBucketMultipliers = map[string]float64{
	// California high-cost metros
	"900": 1.35, // LA
	"901": 1.35,
	"902": 1.40, // Beverly Hills, Santa Monica, Malibu
	"903": 1.30,
	"904": 1.30,
	"905": 1.25,
	"906": 1.25, // Long Beach
	"910": 1.30, // Pasadena
	"917": 1.25, // Glendale, Burbank
	"941": 1.35, // San Francisco
	"943": 1.30, // Palo Alto, Mountain View
	"944": 1.32, // San Mateo
	"945": 1.28, // Oakland, Berkeley
	"946": 1.25,
	"947": 1.20,
	"948": 1.18, // Richmond

	// Florida high-cost (fraud hotspots)
	"330": 1.45, // Miami metro
	"331": 1.40,
	"332": 1.35,
	"333": 1.38, // Fort Lauderdale
	"334": 1.35, // West Palm Beach

	// New York high-cost
	"100": 1.50, // Manhattan
	"101": 1.48,
	"102": 1.45,
	"112": 1.38, // Brooklyn
	"113": 1.35, // Flushing, Queens
	"104": 1.30, // Bronx
	"103": 1.32, // Staten Island

	// Illinois - Chicago
	"606": 1.30,
	"607": 1.28,
	"608": 1.25,

	// Texas - major metros
	"750": 1.22, // Dallas
	"770": 1.25, // Houston
	"787": 1.20, // Austin

	// Michigan - Detroit area
	"482": 1.40, // Detroit (no-fault)
	"483": 1.35,

	// Nevada - Las Vegas
	"891": 1.25,

	// Default bucket categories (for unlisted ZIPs)
	"METRO_HIGH":   1.25,
	"METRO_MEDIUM": 1.10,
	"SUBURBAN":     1.00,
	"RURAL":        0.85,
}

var coverageFactors = map[string]factorEntry{
	"liability":     {0.60, "Liability-only coverage - no collision/comprehensive"},
	"minimum":       {0.60, "Minimum coverage - state minimums only"},
	"full":          {1.00, "Full coverage - includes collision and comprehensive"},
	"comprehensive": {1.00, "Comprehensive coverage - full protection"},
	"default":       {1.00, "Standard coverage level"},
}

// carrierBand is a carrier's pricing posture: the multiplier interpolated
// between Low and High by the risk score.
type carrierBand struct {
	Low  float64
	High float64
}

// defaultCarrierBand is used for carriers absent from the table.
var defaultCarrierBand = carrierBand{1.00, 1.15}

var carrierBands = map[string]carrierBand{
	"Geico":                      {0.88, 1.05},
	"Progressive Insurance":      {0.88, 1.08},
	"Safeco Insurance":           {1.00, 1.18},
	"Mercury Auto Insurance":     {0.90, 1.15},
	"National General":           {1.10, 1.35},
	"Foremost Insurance Group":   {1.08, 1.25},
	"Dairyland Insurance":        {1.10, 1.35},
	"Root":                       {0.85, 1.08},
	"Clearcover":                 {0.90, 1.10},
	"Assurance America":          {1.05, 1.25},
	"Gainsco":                    {1.08, 1.30},
	"Infinity Insurance Company": {1.10, 1.32},
}

// carrierStateAdjustments fine-tunes a carrier's multiplier per state.
var carrierStateAdjustments = map[string]map[string]float64{
	"Mercury Auto Insurance": {
		"CA": -0.15,
		"NV": -0.05,
		"AZ": -0.05,
	},
	"Geico": {
		"FL": 0.05,
	},
	"Progressive Insurance": {
		"CA": 0.10,
	},
}

// riskWeights weight each channel's contribution to the overall risk score.
// They sum to 1.0.
var riskWeights = map[string]float64{
	"age":         0.40,
	"marital":     0.10,
	"vehicle_age": 0.15,
	"zip_cost":    0.15,
	"coverage":    0.10,
	"violations":  0.10,
}

// confidenceTier maps an input-completeness score to an uncertainty band.
type confidenceTier struct {
	minScore   int
	band       float64
	confidence string
}

// confidenceTiers is ordered from most to least complete; first match wins.
var confidenceTiers = []confidenceTier{
	{8, 0.20, "high"},
	{5, 0.30, "medium"},
	{0, 0.40, "low"},
}

// monthlyMinimumByState bounds quote ranges from below; prevents
// unrealistically low estimates in expensive states.
var monthlyMinimumByState = map[string]int{
	"CA":      120,
	"FL":      150,
	"MI":      180,
	"NY":      130,
	"NJ":      125,
	"LA":      140,
	"TX":      100,
	"DEFAULT": 100,
}

// monthlyMaximum is a soft ceiling on monthly estimates.
var monthlyMaximum = 800

var zipCostDescriptions = map[string]string{
	"high":        "high-cost urban area with heavy traffic and elevated claim rates",
	"medium_high": "moderate-cost metropolitan area",
	"medium":      "average-cost area",
	"low":         "low-cost rural area with lower claim rates",
}

var carrierPricingDescriptions = map[string]string{
	"competitive": "%s - Competitive pricing for your risk profile",
	"standard":    "%s - Standard market pricing",
	"elevated":    "%s - Higher rates but broader coverage options",
}

// ValidateTables checks that every table multiplier is finite and positive
// and that every fallback row exists. Run at startup and in tests.
func ValidateTables() error {
	if _, ok := stateBaseAnnual["DEFAULT"]; !ok {
		return eris.New("rating: state base rates missing DEFAULT row")
	}
	for state, rate := range stateBaseAnnual {
		if rate <= 0 {
			return eris.Errorf("rating: non-positive base rate for %s", state)
		}
	}
	for _, c := range ageCurves {
		if !validMult(c.mult) {
			return eris.Errorf("rating: invalid age curve multiplier for ages %d-%d", c.minAge, c.maxAge)
		}
	}
	for key, e := range maritalFactors {
		if !validMult(e.mult) {
			return eris.Errorf("rating: invalid marital factor for %q", key)
		}
	}
	if _, ok := maritalFactors["default"]; !ok {
		return eris.New("rating: marital factors missing default row")
	}
	for _, c := range vehicleAgeCurves {
		if !validMult(c.mult) {
			return eris.Errorf("rating: invalid vehicle age multiplier for max age %d", c.maxAge)
		}
	}
	for key, e := range vehicleTypeFactors {
		if !validMult(e.mult) {
			return eris.Errorf("rating: invalid vehicle type factor for %q", key)
		}
	}
	for prefix, m := range zipBucketMultipliers {
		if !validMult(m) {
			return eris.Errorf("rating: invalid ZIP multiplier for %q", prefix)
		}
	}
	if _, ok := zipBucketMultipliers["SUBURBAN"]; !ok {
		return eris.New("rating: ZIP multipliers missing SUBURBAN default")
	}
	for key, e := range coverageFactors {
		if !validMult(e.mult) {
			return eris.Errorf("rating: invalid coverage factor for %q", key)
		}
	}
	if _, ok := coverageFactors["default"]; !ok {
		return eris.New("rating: coverage factors missing default row")
	}
	for carrier, band := range carrierBands {
		if !validMult(band.Low) || !validMult(band.High) || band.Low > band.High {
			return eris.Errorf("rating: invalid band for carrier %q", carrier)
		}
	}
	if _, ok := monthlyMinimumByState["DEFAULT"]; !ok {
		return eris.New("rating: monthly minimums missing DEFAULT row")
	}
	if monthlyMaximum <= 0 {
		return eris.New("rating: non-positive monthly maximum")
	}
	var sum float64
	for _, w := range riskWeights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return eris.Errorf("rating: risk weights sum to %.3f, want 1.0", sum)
	}
	return nil
}

// validMult reports whether m is a sane factor multiplier.
func validMult(m float64) bool {
	return !math.IsNaN(m) && !math.IsInf(m, 0) && m > 0 && m < 10
}

// StateBaseRate returns the annual full-coverage baseline for a state,
// falling back to the DEFAULT row for unknown states.
func StateBaseRate(state string) int {
	if rate, ok := stateBaseAnnual[state]; ok {
		return rate
	}
	return stateBaseAnnual["DEFAULT"]
}

// MonthlyMinimum returns the monthly floor for a state.
func MonthlyMinimum(state string) int {
	if min, ok := monthlyMinimumByState[state]; ok {
		return min
	}
	return monthlyMinimumByState["DEFAULT"]
}

// MonthlyMaximum returns the global monthly ceiling.
func MonthlyMaximum() int { return monthlyMaximum }

// BandForCarrier returns the (low, high) multiplier band for a carrier,
// falling back to the default band for unknown carriers.
func BandForCarrier(carrier string) (float64, float64) {
	if band, ok := carrierBands[carrier]; ok {
		return band.Low, band.High
	}
	return defaultCarrierBand.Low, defaultCarrierBand.High
}

// StateAdjustment returns the carrier's signed multiplier adjustment for a
// state, or zero when none is configured.
func StateAdjustment(carrier, state string) float64 {
	return carrierStateAdjustments[carrier][state]
}
