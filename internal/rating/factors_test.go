package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgeFactor(t *testing.T) {
	tests := []struct {
		age  int
		mult float64
	}{
		{16, 2.40},
		{19, 2.00},
		{22, 1.45},
		{27, 1.15},
		{35, 0.95},
		{50, 0.90},
		{70, 1.05},
		{80, 1.20},
	}
	for _, tt := range tests {
		f := AgeFactor(tt.age)
		assert.Equal(t, tt.mult, f.Mult, "age %d", tt.age)
		assert.NotEmpty(t, f.Explanation)
	}
}

func TestAgeFactorFallback(t *testing.T) {
	f := AgeFactor(150)
	assert.Equal(t, 1.00, f.Mult)
	assert.Contains(t, f.Explanation, "150")
}

func TestMaritalFactor(t *testing.T) {
	assert.Equal(t, 0.94, MaritalFactor("married").Mult)
	assert.Equal(t, 0.94, MaritalFactor("Married").Mult)
	assert.Equal(t, 0.94, MaritalFactor("  married (2 years)  ").Mult)
	assert.Equal(t, 1.00, MaritalFactor("single").Mult)
	assert.Equal(t, 1.02, MaritalFactor("divorced").Mult)
	assert.Equal(t, 1.02, MaritalFactor("widowed").Mult)
	assert.Equal(t, 1.00, MaritalFactor("unknown").Mult)
}

func TestVehicleFactorAgeBuckets(t *testing.T) {
	// Plain sedan, no type multiplier: isolates the age curve.
	assert.Equal(t, 1.15, VehicleFactor(2025, "Dodge", "Caravan").Mult)
	assert.Equal(t, 1.08, VehicleFactor(2022, "Dodge", "Caravan").Mult)
	assert.Equal(t, 1.00, VehicleFactor(2018, "Dodge", "Caravan").Mult)
	assert.Equal(t, 0.93, VehicleFactor(2010, "Dodge", "Caravan").Mult)
}

func TestVehicleFactorTypes(t *testing.T) {
	// Luxury make wins even when the model is a performance trim.
	f := VehicleFactor(2018, "BMW", "M3")
	assert.InDelta(t, 1.00*1.25, f.Mult, 1e-9)

	f = VehicleFactor(2018, "Ford", "Mustang")
	assert.InDelta(t, 1.00*1.35, f.Mult, 1e-9)

	f = VehicleFactor(2018, "Honda", "Civic")
	assert.InDelta(t, 1.00*0.95, f.Mult, 1e-9)

	f = VehicleFactor(2018, "Dodge", "Caravan")
	assert.InDelta(t, 1.00, f.Mult, 1e-9)
}

func TestVehicleFactorExplanation(t *testing.T) {
	f := VehicleFactor(2020, "Honda", "Civic")
	assert.Contains(t, f.Explanation, "2020 Honda Civic:")
	assert.Contains(t, f.Explanation, "Economy vehicle")
}

func TestVehicleFactorCaseInsensitive(t *testing.T) {
	assert.Equal(t, VehicleFactor(2020, "bmw", "m3").Mult, VehicleFactor(2020, "BMW", "M3").Mult)
}

func TestZipMultiplier(t *testing.T) {
	assert.Equal(t, 1.40, ZipMultiplier("90210"))
	assert.Equal(t, 1.50, ZipMultiplier("10001"))
	assert.Equal(t, 1.45, ZipMultiplier("33012"))
	assert.Equal(t, 1.30, ZipMultiplier("60601"))
	assert.Equal(t, 1.00, ZipMultiplier("50001"))
	assert.Equal(t, 1.0, ZipMultiplier("99"))
	assert.Equal(t, 1.0, ZipMultiplier(""))
}

func TestZipDescription(t *testing.T) {
	assert.Equal(t, zipCostDescriptions["high"], ZipDescription(1.40))
	assert.Equal(t, zipCostDescriptions["medium_high"], ZipDescription(1.20))
	assert.Equal(t, zipCostDescriptions["medium"], ZipDescription(1.00))
	assert.Equal(t, zipCostDescriptions["low"], ZipDescription(0.85))
}

func TestCoverageFactor(t *testing.T) {
	assert.Equal(t, 1.00, CoverageFactor("full_coverage").Mult)
	assert.Equal(t, 1.00, CoverageFactor("comprehensive").Mult)
	assert.Equal(t, 0.60, CoverageFactor("liability_only").Mult)
	assert.Equal(t, 0.60, CoverageFactor("state minimum").Mult)
	assert.Equal(t, 1.00, CoverageFactor("something else").Mult)
}
