package rating

import "strings"

// RiskInputs carries the signals consumed by the risk scorer.
type RiskInputs struct {
	Age           int
	MaritalStatus string
	VehicleAge    int
	ZipCode       string
	CoverageType  string
	Accidents     int
	Tickets       int
}

// RiskScore computes the overall risk score in [0.0, 1.0], used to
// interpolate each carrier's multiplier between its low and high band.
// Each channel's signed contribution is scaled by its weight divided by the
// channel's nominal magnitude, so the weights compose meaningfully.
func RiskScore(in RiskInputs) float64 {
	score := 0.5 // middle baseline

	var ageContribution float64
	switch {
	case in.Age < 21:
		ageContribution = 0.50
	case in.Age < 25:
		ageContribution = 0.30
	case in.Age < 30:
		ageContribution = 0.15
	case in.Age <= 65:
		ageContribution = -0.15
	default:
		ageContribution = 0.10
	}
	score += ageContribution * riskWeights["age"] / 0.50

	maritalLower := strings.ToLower(in.MaritalStatus)
	var maritalContribution float64
	if strings.Contains(maritalLower, "married") {
		maritalContribution = -0.10
	} else if strings.Contains(maritalLower, "single") {
		maritalContribution = 0.05
	}
	score += maritalContribution * riskWeights["marital"] / 0.10

	var vehicleContribution float64
	if in.VehicleAge <= 2 {
		vehicleContribution = 0.15
	} else if in.VehicleAge >= 10 {
		vehicleContribution = -0.10
	}
	score += vehicleContribution * riskWeights["vehicle_age"] / 0.15

	zipMult := ZipMultiplier(in.ZipCode)
	var zipContribution float64
	switch {
	case zipMult > 1.30:
		zipContribution = 0.20
	case zipMult > 1.10:
		zipContribution = 0.10
	case zipMult < 0.90:
		zipContribution = -0.15
	}
	score += zipContribution * riskWeights["zip_cost"] / 0.20

	var coverageContribution float64
	if strings.Contains(strings.ToLower(in.CoverageType), "liability") {
		coverageContribution = -0.10
	}
	score += coverageContribution * riskWeights["coverage"] / 0.10

	if in.Accidents > 0 || in.Tickets > 0 {
		violations := minF(float64(in.Accidents)*0.20, 0.30) + minF(float64(in.Tickets)*0.10, 0.20)
		score += violations * riskWeights["violations"] / 0.50
	}

	return clamp01(score)
}

// CompletenessInputs describes which signals the caller was able to collect.
// Core signals are always gathered by the pipeline; optional signals tighten
// the confidence band when present.
type CompletenessInputs struct {
	HasAge           bool
	HasZip           bool
	HasVehicle       bool
	HasCoverage      bool
	HasMarital       bool
	HasAccidents     bool
	HasTickets       bool
	HasAnnualMileage bool
	HasCreditTier    bool
	HasContinuous    bool
}

// AssessCompleteness counts present signals and returns the uncertainty band
// and confidence label for that completeness level.
func AssessCompleteness(in CompletenessInputs) (float64, string) {
	score := 0
	for _, present := range []bool{
		in.HasAge, in.HasZip, in.HasVehicle, in.HasCoverage, in.HasMarital,
		in.HasAccidents, in.HasTickets, in.HasAnnualMileage, in.HasCreditTier, in.HasContinuous,
	} {
		if present {
			score++
		}
	}

	for _, tier := range confidenceTiers {
		if score >= tier.minScore {
			return tier.band, tier.confidence
		}
	}
	return 0.40, "low"
}

// ComputeRange applies the uncertainty band to a monthly point estimate and
// clamps the result to sanity bounds: the state monthly minimum from below
// and the global monthly maximum from above. If clamping inverts the range,
// the range is re-spread by 20%: downward when the ceiling caused the
// inversion, upward otherwise, so the bounds keep holding.
func ComputeRange(pointMonthly, band float64, state string) (int, int) {
	low := pointMonthly * (1 - band)
	high := pointMonthly * (1 + band)

	min := float64(MonthlyMinimum(state))
	max := float64(MonthlyMaximum())
	if low < min {
		low = min
	}
	if high > max {
		high = max
	}

	if low >= high {
		if high >= max {
			low = high / 1.20
		} else {
			high = low * 1.20
		}
	}

	// Truncation can collapse a sub-dollar spread to equal bounds.
	lo, hi := int(low), int(high)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
