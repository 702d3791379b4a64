package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// googleGeocodeResponse is the JSON response from the Google Geocoding API.
type googleGeocodeResponse struct {
	Results []googleResult `json:"results"`
	Status  string         `json:"status"`
}

type googleResult struct {
	AddressComponents   []googleAddressComponent `json:"address_components"`
	PostcodeLocalities  []string                 `json:"postcode_localities"`
	FormattedAddress    string                   `json:"formatted_address"`
}

type googleAddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// resolveGoogle resolves a ZIP via the Google Geocoding API, restricted to US
// results. API-level failures return an error so the caller can fall back.
func (g *resolver) resolveGoogle(ctx context.Context, zip string) (*Result, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: google rate limit")
	}

	params := url.Values{
		"address":    {zip},
		"components": {"country:US"},
		"key":        {g.apiKey},
	}

	reqURL := g.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: google returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google read body")
	}

	var googleResp googleGeocodeResponse
	if err := json.Unmarshal(body, &googleResp); err != nil {
		return nil, eris.Wrap(err, "geocode: google parse response")
	}

	if googleResp.Status != "OK" || len(googleResp.Results) == 0 {
		zap.L().Debug("geocode: google no match",
			zap.String("zip", zip),
			zap.String("status", googleResp.Status),
		)
		return &Result{Matched: false, Source: "google"}, nil
	}

	city, state := parseCityState(googleResp.Results[0])
	if city == "" || state == "" {
		return &Result{Matched: false, Source: "google"}, nil
	}

	return &Result{
		City:      city,
		StateName: state,
		Source:    "google",
		Matched:   true,
	}, nil
}

// parseCityState extracts the city and state name from a geocode result.
// City preference order: the locality component, then the first entry of
// postcode_localities (ZIPs spanning several towns list the primary one
// first), then the neighborhood component. This matters for multi-city ZIPs
// like 02141, where the locality is absent and neighborhood alone would name
// the wrong place.
func parseCityState(r googleResult) (city, state string) {
	var neighborhood string
	for _, comp := range r.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "locality":
				if city == "" {
					city = comp.LongName
				}
			case "neighborhood":
				neighborhood = comp.LongName
			case "administrative_area_level_1":
				state = comp.LongName
			}
		}
	}

	if city == "" && len(r.PostcodeLocalities) > 0 {
		city = r.PostcodeLocalities[0]
	}
	if city == "" {
		city = neighborhood
	}
	return city, state
}
