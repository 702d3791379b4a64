package rating

import (
	"fmt"
	"strings"
)

// Factor is a premium multiplier paired with its explanation.
type Factor struct {
	Mult        float64
	Explanation string
}

// AgeFactor returns the age-based premium multiplier.
func AgeFactor(age int) Factor {
	for _, c := range ageCurves {
		if age >= c.minAge && age <= c.maxAge {
			return Factor{c.mult, c.desc}
		}
	}
	return Factor{1.00, fmt.Sprintf("Age %d - standard rates", age)}
}

// MaritalFactor returns the marital status premium multiplier. Matching is
// case-insensitive and substring-tolerant so "Married" and "married (2yr)"
// both resolve.
func MaritalFactor(status string) Factor {
	statusLower := strings.ToLower(strings.TrimSpace(status))
	for keyword, e := range maritalFactors {
		if keyword == "default" {
			continue
		}
		if strings.Contains(statusLower, keyword) {
			return Factor{e.mult, e.desc}
		}
	}
	def := maritalFactors["default"]
	return Factor{def.mult, def.desc}
}

// currentModelYear anchors vehicle age calculations.
const currentModelYear = 2026

// VehicleFactor returns the combined vehicle age and type multiplier.
func VehicleFactor(year int, make, model string) Factor {
	vehicleAge := currentModelYear - year
	makeUpper := strings.ToUpper(strings.TrimSpace(make))
	modelUpper := strings.ToUpper(strings.TrimSpace(model))

	ageMult := 1.00
	ageDesc := "Standard age vehicle"
	for _, c := range vehicleAgeCurves {
		if vehicleAge <= c.maxAge {
			ageMult = c.mult
			ageDesc = c.desc
			break
		}
	}

	typeMult := 1.00
	typeDesc := "Standard vehicle type"
	switch {
	case matchesAny(makeUpper, luxuryMakes):
		e := vehicleTypeFactors["luxury"]
		typeMult, typeDesc = e.mult, e.desc
	case matchesAny(modelUpper, performanceModels):
		e := vehicleTypeFactors["performance"]
		typeMult, typeDesc = e.mult, e.desc
	case matchesAny(modelUpper, economyModels):
		e := vehicleTypeFactors["economy"]
		typeMult, typeDesc = e.mult, e.desc
	}

	return Factor{
		Mult:        ageMult * typeMult,
		Explanation: fmt.Sprintf("%d %s %s: %s; %s", year, make, model, ageDesc, typeDesc),
	}
}

// matchesAny reports whether s contains any of the keywords.
func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// ZipMultiplier returns the cost multiplier for a ZIP code, trying the
// 3-digit prefix, then the 2-digit prefix, then the suburban default.
func ZipMultiplier(zip string) float64 {
	if len(zip) < 3 {
		return 1.0
	}
	if m, ok := zipBucketMultipliers[zip[:3]]; ok {
		return m
	}
	if m, ok := zipBucketMultipliers[zip[:2]]; ok {
		return m
	}
	return zipBucketMultipliers["SUBURBAN"]
}

// ZipDescription maps a ZIP multiplier to a qualitative cost description.
func ZipDescription(mult float64) string {
	switch {
	case mult >= 1.30:
		return zipCostDescriptions["high"]
	case mult >= 1.10:
		return zipCostDescriptions["medium_high"]
	case mult <= 0.90:
		return zipCostDescriptions["low"]
	default:
		return zipCostDescriptions["medium"]
	}
}

// CoverageFactor returns the coverage type premium multiplier. Matching is
// substring-tolerant: "full_coverage" hits "full", "liability_only" hits
// "liability".
func CoverageFactor(coverageType string) Factor {
	coverageLower := strings.ToLower(strings.TrimSpace(coverageType))
	for keyword, e := range coverageFactors {
		if keyword == "default" {
			continue
		}
		if strings.Contains(coverageLower, keyword) {
			return Factor{e.mult, e.desc}
		}
	}
	def := coverageFactors["default"]
	return Factor{def.mult, def.desc}
}
