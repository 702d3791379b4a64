package rating

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Vehicle identifies a vehicle to rate.
type Vehicle struct {
	Year  int    `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

// Baseline is the neutral-carrier premium for a risk profile, before any
// carrier-specific adjustment.
type Baseline struct {
	Annual     int     `json:"annual"`
	Monthly    int     `json:"monthly"`
	Band       float64 `json:"band"`
	Confidence string  `json:"confidence"`
}

// CarrierQuote is one carrier's estimate with its uncertainty range.
type CarrierQuote struct {
	Carrier      string   `json:"carrier"`
	Annual       int      `json:"annual"`
	Monthly      int      `json:"monthly"`
	RangeMonthly [2]int   `json:"range_monthly"`
	RangeAnnual  [2]int   `json:"range_annual"`
	Confidence   string   `json:"confidence"`
	Explanations []string `json:"explanations"`
}

// Estimate is the estimator output: the baseline plus per-carrier quotes
// sorted ascending by monthly premium.
type Estimate struct {
	Baseline Baseline       `json:"baseline"`
	Quotes   []CarrierQuote `json:"quotes"`
}

// Trace records the intermediate values of one estimation for auditing.
type Trace struct {
	State         string
	ZipCode       string
	Age           int
	MaritalStatus string
	Vehicle       Vehicle
	CoverageType  string
	Accidents     int
	Tickets       int

	BaseAnnual     int
	AgeFactor      Factor
	MaritalFactor  Factor
	VehicleFactor  Factor
	ZipMult        float64
	ZipExplanation string
	CoverageFactor Factor
	RiskScore      float64

	Baseline Baseline
	Quotes   []CarrierQuote
}

// EstimateInput collects everything the estimator needs for one request.
type EstimateInput struct {
	State         string
	ZipCode       string
	Age           int
	MaritalStatus string
	Vehicle       Vehicle
	CoverageType  string
	Carriers      []string

	// Optional signals; tighten confidence when present.
	Accidents     *int
	Tickets       *int
	AnnualMileage *int
	CreditTier    string
	Continuous    *bool
}

// EstimateQuotes generates per-carrier quote estimates with uncertainty
// ranges from state rates, demographic factors, vehicle info, and carrier
// pricing posture. It is total over validated inputs.
func EstimateQuotes(in EstimateInput) (*Estimate, *Trace) {
	// 1. State base rate: state is the dominant driver of premium level.
	baseAnnual := StateBaseRate(in.State)

	// 2. Demographic and vehicle factors.
	ageFactor := AgeFactor(in.Age)
	maritalFactor := MaritalFactor(in.MaritalStatus)
	vehicleFactor := VehicleFactor(in.Vehicle.Year, in.Vehicle.Make, in.Vehicle.Model)
	zipMult := ZipMultiplier(in.ZipCode)
	zipExplanation := fmt.Sprintf("ZIP %s - %s", in.ZipCode, ZipDescription(zipMult))
	coverageFactor := CoverageFactor(in.CoverageType)

	// 3. Baseline: a neutral carrier at this risk profile.
	baselineAnnual := float64(baseAnnual) *
		ageFactor.Mult *
		maritalFactor.Mult *
		vehicleFactor.Mult *
		zipMult *
		coverageFactor.Mult

	// 4. Risk score for carrier band interpolation.
	accidents, tickets := 0, 0
	if in.Accidents != nil {
		accidents = *in.Accidents
	}
	if in.Tickets != nil {
		tickets = *in.Tickets
	}
	riskScore := RiskScore(RiskInputs{
		Age:           in.Age,
		MaritalStatus: in.MaritalStatus,
		VehicleAge:    currentModelYear - in.Vehicle.Year,
		ZipCode:       in.ZipCode,
		CoverageType:  in.CoverageType,
		Accidents:     accidents,
		Tickets:       tickets,
	})

	// 5. Confidence band from input completeness.
	band, confidence := AssessCompleteness(CompletenessInputs{
		HasAge:           true,
		HasZip:           in.ZipCode != "",
		HasVehicle:       true,
		HasCoverage:      in.CoverageType != "",
		HasMarital:       in.MaritalStatus != "",
		HasAccidents:     in.Accidents != nil,
		HasTickets:       in.Tickets != nil,
		HasAnnualMileage: in.AnnualMileage != nil,
		HasCreditTier:    in.CreditTier != "",
		HasContinuous:    in.Continuous != nil,
	})

	baseline := Baseline{
		Annual:     int(baselineAnnual),
		Monthly:    int(baselineAnnual / 12),
		Band:       band,
		Confidence: confidence,
	}

	// 6. Carrier-specific quotes.
	quotes := make([]CarrierQuote, 0, len(in.Carriers))
	for _, carrier := range in.Carriers {
		annual, positioning := estimateCarrier(carrier, baselineAnnual, riskScore, in.State)
		monthly := annual / 12

		rangeLow, rangeHigh := ComputeRange(monthly, band, in.State)

		quotes = append(quotes, CarrierQuote{
			Carrier:      carrier,
			Annual:       int(annual),
			Monthly:      int(monthly),
			RangeMonthly: [2]int{rangeLow, rangeHigh},
			RangeAnnual:  [2]int{rangeLow * 12, rangeHigh * 12},
			Confidence:   confidence,
			Explanations: []string{
				ageFactor.Explanation,
				maritalFactor.Explanation,
				vehicleFactor.Explanation,
				zipExplanation,
				coverageFactor.Explanation,
				positioning,
			},
		})
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Monthly < quotes[j].Monthly
	})

	zap.L().Debug("rating: quotes estimated",
		zap.String("state", in.State),
		zap.String("zip", in.ZipCode),
		zap.Int("carriers", len(quotes)),
		zap.Int("baseline_annual", baseline.Annual),
		zap.Float64("risk_score", riskScore),
		zap.String("confidence", confidence),
	)

	trace := &Trace{
		State:          in.State,
		ZipCode:        in.ZipCode,
		Age:            in.Age,
		MaritalStatus:  in.MaritalStatus,
		Vehicle:        in.Vehicle,
		CoverageType:   in.CoverageType,
		Accidents:      accidents,
		Tickets:        tickets,
		BaseAnnual:     baseAnnual,
		AgeFactor:      ageFactor,
		MaritalFactor:  maritalFactor,
		VehicleFactor:  vehicleFactor,
		ZipMult:        zipMult,
		ZipExplanation: zipExplanation,
		CoverageFactor: coverageFactor,
		RiskScore:      riskScore,
		Baseline:       baseline,
		Quotes:         quotes,
	}

	return &Estimate{Baseline: baseline, Quotes: quotes}, trace
}

// estimateCarrier interpolates a carrier's multiplier band by the risk score,
// applies its state adjustment, and returns the annual premium with the
// carrier positioning line.
func estimateCarrier(carrier string, baselineAnnual, riskScore float64, state string) (float64, string) {
	lowMult, highMult := BandForCarrier(carrier)

	// Low risk interpolates toward the carrier's best rate.
	carrierMult := lowMult + (highMult-lowMult)*riskScore
	carrierMult += StateAdjustment(carrier, state)

	annual := baselineAnnual * carrierMult

	var positioning string
	switch {
	case carrierMult < 0.95:
		positioning = fmt.Sprintf(carrierPricingDescriptions["competitive"], carrier)
	case carrierMult > 1.15:
		positioning = fmt.Sprintf(carrierPricingDescriptions["elevated"], carrier)
	default:
		positioning = fmt.Sprintf(carrierPricingDescriptions["standard"], carrier)
	}

	return annual, positioning
}

// CarrierMultiplier reports the final multiplier a carrier would use for the
// given risk score and state. Exposed for the audit trace.
func CarrierMultiplier(carrier string, riskScore float64, state string) (low, high, final float64) {
	low, high = BandForCarrier(carrier)
	final = low + (high-low)*riskScore + StateAdjustment(carrier, state)
	return low, high, final
}
