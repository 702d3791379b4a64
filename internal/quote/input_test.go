package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArgs() map[string]any {
	return map[string]any{
		"zip_code":           "90210",
		"number_of_vehicles": float64(1),
		"vehicles": []any{
			map[string]any{"year": float64(2020), "make": "Honda", "model": "Accord"},
		},
		"number_of_drivers": float64(1),
		"drivers": []any{
			map[string]any{"age": float64(30), "marital_status": "married"},
		},
		"coverage_type": "full_coverage",
	}
}

func TestParseInputValid(t *testing.T) {
	in, missing, err := ParseInput(validArgs())
	require.NoError(t, err)
	require.Empty(t, missing)
	assert.Equal(t, "90210", in.Zip)
	assert.Equal(t, 1, in.NumberOfVehicles)
	assert.Equal(t, "Honda", in.PrimaryVehicle().Make)
	assert.Equal(t, 30, in.PrimaryDriver().Age)
	assert.Equal(t, "full_coverage", in.CoverageType)
}

func TestParseInputZipOnly(t *testing.T) {
	_, missing, err := ParseInput(map[string]any{"zip_code": "90210"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"number_of_vehicles", "vehicles", "number_of_drivers", "drivers", "coverage_type",
	}, missing)
}

func TestParseInputUnknownKey(t *testing.T) {
	args := validArgs()
	args["favorite_color"] = "blue"
	_, _, err := ParseInput(args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "favorite_color")
}

func TestParseInputBadZip(t *testing.T) {
	for _, zip := range []string{"9021", "902100", "9021a", ""} {
		args := validArgs()
		args["zip_code"] = zip
		_, missing, err := ParseInput(args)
		require.NoError(t, err)
		assert.Contains(t, missing, "zip_code", "zip %q", zip)
	}
}

func TestParseInputCountMismatch(t *testing.T) {
	args := validArgs()
	args["number_of_vehicles"] = float64(2)
	_, missing, err := ParseInput(args)
	require.NoError(t, err)
	assert.Contains(t, missing, "vehicles")
}

func TestParseInputBadDriverAge(t *testing.T) {
	args := validArgs()
	args["drivers"] = []any{map[string]any{"age": float64(15), "marital_status": "single"}}
	_, missing, err := ParseInput(args)
	require.NoError(t, err)
	assert.Contains(t, missing, "drivers")
}

func TestParseInputBadMaritalStatus(t *testing.T) {
	args := validArgs()
	args["drivers"] = []any{map[string]any{"age": float64(30), "marital_status": "complicated"}}
	_, missing, err := ParseInput(args)
	require.NoError(t, err)
	assert.Contains(t, missing, "drivers")
}

func TestParseInputBadCoverage(t *testing.T) {
	args := validArgs()
	args["coverage_type"] = "platinum"
	_, missing, err := ParseInput(args)
	require.NoError(t, err)
	assert.Contains(t, missing, "coverage_type")
}

func TestParseInputBadVehicleYear(t *testing.T) {
	args := validArgs()
	args["vehicles"] = []any{map[string]any{"year": float64(1880), "make": "Ford", "model": "T"}}
	_, missing, err := ParseInput(args)
	require.NoError(t, err)
	assert.Contains(t, missing, "vehicles")
}

func TestParseInputOptionalSignals(t *testing.T) {
	args := validArgs()
	args["accidents"] = float64(1)
	args["tickets"] = float64(2)
	args["annual_mileage"] = float64(12000)
	args["credit_tier"] = "good"
	args["continuous_insurance"] = true

	in, missing, err := ParseInput(args)
	require.NoError(t, err)
	require.Empty(t, missing)
	require.NotNil(t, in.Accidents)
	assert.Equal(t, 1, *in.Accidents)
	require.NotNil(t, in.Tickets)
	assert.Equal(t, 2, *in.Tickets)
	assert.Equal(t, "good", in.CreditTier)
	require.NotNil(t, in.ContinuousInsurance)
	assert.True(t, *in.ContinuousInsurance)
}

func TestSummaryEchoesInputs(t *testing.T) {
	in, _, err := ParseInput(validArgs())
	require.NoError(t, err)
	summary := in.Summary()
	assert.Equal(t, "90210", summary["zip_code"])
	assert.Equal(t, "full_coverage", summary["coverage_type"])
	assert.Len(t, summary["vehicles"], 1)
	assert.Len(t, summary["drivers"], 1)
}
