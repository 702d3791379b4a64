// Package quote orchestrates a quick quote request: validation, duplicate
// detection, location resolution, estimation, and audit.
package quote

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/quickquote/internal/rating"
)

// DriverInput is one driver on the request.
type DriverInput struct {
	Age           int    `json:"age"`
	MaritalStatus string `json:"marital_status"`
}

// QuoteInput is the validated request payload. The first vehicle and driver
// drive the estimate.
type QuoteInput struct {
	Zip              string
	NumberOfVehicles int
	Vehicles         []rating.Vehicle
	NumberOfDrivers  int
	Drivers          []DriverInput
	CoverageType     string

	// Optional signals.
	Accidents           *int
	Tickets             *int
	AnnualMileage       *int
	CreditTier          string
	ContinuousInsurance *bool
}

// knownArgs enumerates every accepted argument key. Anything else is
// rejected outright so typos never silently degrade a quote.
var knownArgs = map[string]bool{
	"zip_code":             true,
	"number_of_vehicles":   true,
	"vehicles":             true,
	"number_of_drivers":    true,
	"drivers":              true,
	"coverage_type":        true,
	"accidents":            true,
	"tickets":              true,
	"annual_mileage":       true,
	"credit_tier":          true,
	"continuous_insurance": true,
}

var validMarital = map[string]bool{
	"single": true, "married": true, "divorced": true, "widowed": true,
}

var validCoverage = map[string]bool{
	"full_coverage": true, "liability_only": true,
}

// ParseInput coerces raw tool arguments into a QuoteInput. The second return
// lists missing or invalid fields; a non-nil error means the arguments are
// structurally unusable (unknown keys, wrong types).
func ParseInput(args map[string]any) (*QuoteInput, []string, error) {
	for key := range args {
		if !knownArgs[key] {
			return nil, nil, fmt.Errorf("unexpected argument %q", key)
		}
	}

	var missing []string
	in := &QuoteInput{}

	if zip, ok := stringArg(args, "zip_code"); ok && len(zip) == 5 && isDigits(zip) {
		in.Zip = zip
	} else {
		missing = append(missing, "zip_code")
	}

	if n, ok := intArg(args, "number_of_vehicles"); ok && n >= 1 && n <= 2 {
		in.NumberOfVehicles = n
	} else {
		missing = append(missing, "number_of_vehicles")
	}

	vehicles, vehiclesOK := vehiclesArg(args)
	if vehiclesOK && len(vehicles) >= 1 && len(vehicles) <= 2 {
		in.Vehicles = vehicles
	} else {
		missing = append(missing, "vehicles")
	}
	if in.NumberOfVehicles > 0 && len(in.Vehicles) > 0 && in.NumberOfVehicles != len(in.Vehicles) {
		missing = append(missing, "vehicles")
	}

	if n, ok := intArg(args, "number_of_drivers"); ok && n >= 1 && n <= 2 {
		in.NumberOfDrivers = n
	} else {
		missing = append(missing, "number_of_drivers")
	}

	drivers, driversOK := driversArg(args)
	if driversOK && len(drivers) >= 1 && len(drivers) <= 2 {
		in.Drivers = drivers
	} else {
		missing = append(missing, "drivers")
	}
	if in.NumberOfDrivers > 0 && len(in.Drivers) > 0 && in.NumberOfDrivers != len(in.Drivers) {
		missing = append(missing, "drivers")
	}

	if cov, ok := stringArg(args, "coverage_type"); ok && validCoverage[strings.ToLower(strings.TrimSpace(cov))] {
		in.CoverageType = strings.ToLower(strings.TrimSpace(cov))
	} else {
		missing = append(missing, "coverage_type")
	}

	if v, ok := intArg(args, "accidents"); ok {
		in.Accidents = &v
	}
	if v, ok := intArg(args, "tickets"); ok {
		in.Tickets = &v
	}
	if v, ok := intArg(args, "annual_mileage"); ok {
		in.AnnualMileage = &v
	}
	if v, ok := stringArg(args, "credit_tier"); ok {
		in.CreditTier = v
	}
	if v, ok := args["continuous_insurance"].(bool); ok {
		in.ContinuousInsurance = &v
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, dedupStrings(missing), nil
	}
	return in, nil, nil
}

// PrimaryVehicle is the vehicle the estimate is built on.
func (in *QuoteInput) PrimaryVehicle() rating.Vehicle { return in.Vehicles[0] }

// PrimaryDriver is the driver the estimate is built on.
func (in *QuoteInput) PrimaryDriver() DriverInput { return in.Drivers[0] }

// Summary echoes the input back in result payloads.
func (in *QuoteInput) Summary() map[string]any {
	vehicles := make([]map[string]any, len(in.Vehicles))
	for i, v := range in.Vehicles {
		vehicles[i] = map[string]any{"year": v.Year, "make": v.Make, "model": v.Model}
	}
	drivers := make([]map[string]any, len(in.Drivers))
	for i, d := range in.Drivers {
		drivers[i] = map[string]any{"age": d.Age, "marital_status": d.MaritalStatus}
	}
	return map[string]any{
		"zip_code":           in.Zip,
		"number_of_vehicles": in.NumberOfVehicles,
		"vehicles":           vehicles,
		"number_of_drivers":  in.NumberOfDrivers,
		"drivers":            drivers,
		"coverage_type":      in.CoverageType,
	}
}

func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// intArg accepts both int and float64; JSON numbers decode as float64.
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

func vehiclesArg(args map[string]any) ([]rating.Vehicle, bool) {
	raw, ok := args["vehicles"].([]any)
	if !ok {
		return nil, false
	}
	vehicles := make([]rating.Vehicle, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		year, yearOK := intArg(m, "year")
		make_, makeOK := stringArg(m, "make")
		model, modelOK := stringArg(m, "model")
		if !yearOK || year < 1900 || year > 2030 || !makeOK || !modelOK {
			return nil, false
		}
		vehicles = append(vehicles, rating.Vehicle{Year: year, Make: make_, Model: model})
	}
	return vehicles, true
}

func driversArg(args map[string]any) ([]DriverInput, bool) {
	raw, ok := args["drivers"].([]any)
	if !ok {
		return nil, false
	}
	drivers := make([]DriverInput, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		age, ageOK := intArg(m, "age")
		status, statusOK := stringArg(m, "marital_status")
		if !ageOK || age < 16 || age > 100 || !statusOK || !validMarital[strings.ToLower(status)] {
			return nil, false
		}
		drivers = append(drivers, DriverInput{Age: age, MaritalStatus: strings.ToLower(status)})
	}
	return drivers, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func dedupStrings(in []string) []string {
	out := in[:0]
	var prev string
	for i, s := range in {
		if i == 0 || s != prev {
			out = append(out, s)
		}
		prev = s
	}
	return out
}
