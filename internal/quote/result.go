package quote

import (
	"encoding/json"
	"fmt"

	"github.com/sells-group/quickquote/internal/rating"
)

// Kind discriminates the result union.
type Kind int

const (
	// KindPriced carries a baseline and carrier quotes.
	KindPriced Kind = iota
	// KindPhoneOnly routes the caller to phone support; no pricing.
	KindPhoneOnly
	// KindRefusal rejects the request for incomplete or invalid input.
	KindRefusal
	// KindDuplicate rejects a repeat of a recent identical request.
	KindDuplicate
)

// Priced is the pricing payload of a successful quote.
type Priced struct {
	City          string
	State         string
	StateName     string
	Baseline      rating.Baseline
	Quotes        []rating.CarrierQuote
	ServerBaseURL string
}

// PhoneOnly is the non-pricing payload for phone-only states and unresolved
// ZIPs.
type PhoneOnly struct {
	City         string
	State        string
	StateName    string
	LookupFailed bool
}

// Result is the pipeline's return value: exactly one variant is populated
// according to Kind.
type Result struct {
	Kind          Kind
	CorrelationID string
	Inputs        map[string]any

	Priced    *Priced
	PhoneOnly *PhoneOnly

	// Refusal and duplicate fields.
	MissingFields []string
	Message       string
}

// phoneSupportNumber is shown whenever pricing cannot be displayed.
const phoneSupportNumber = "1-800-555-QUOTE"

// MarshalJSON encodes the union with the wire flags clients dispatch on:
// quote_generated for priced results, phone_only plus lookup_failed for the
// phone path, and success=false with missing_fields for refusals.
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindPriced:
		payload := map[string]any{
			"quote_generated": true,
			"phone_only":      false,
			"correlation_id":  r.CorrelationID,
			"zip_code":        r.Inputs["zip_code"],
			"city":            r.Priced.City,
			"state":           r.Priced.State,
			"state_name":      r.Priced.StateName,
			"baseline":        r.Priced.Baseline,
			"carriers":        r.Priced.Quotes,
			"inputs":          r.Inputs,
		}
		if r.Priced.ServerBaseURL != "" {
			payload["server_base_url"] = r.Priced.ServerBaseURL
		}
		return json.Marshal(payload)

	case KindPhoneOnly:
		payload := map[string]any{
			"phone_only":     true,
			"lookup_failed":  r.PhoneOnly.LookupFailed,
			"correlation_id": r.CorrelationID,
			"zip_code":       r.Inputs["zip_code"],
			"phone_number":   phoneSupportNumber,
			"inputs":         r.Inputs,
			"message":        r.Message,
		}
		if r.PhoneOnly.State != "" {
			payload["state"] = r.PhoneOnly.State
			payload["state_name"] = r.PhoneOnly.StateName
			payload["city"] = r.PhoneOnly.City
		}
		return json.Marshal(payload)

	case KindDuplicate:
		return json.Marshal(map[string]any{
			"success":        false,
			"duplicate":      true,
			"correlation_id": r.CorrelationID,
			"message":        r.Message,
		})

	default:
		return json.Marshal(map[string]any{
			"success":        false,
			"correlation_id": r.CorrelationID,
			"missing_fields": r.MissingFields,
			"message":        r.Message,
		})
	}
}

// Text renders a short human-readable summary for conversational display.
func (r Result) Text() string {
	switch r.Kind {
	case KindPriced:
		// A priced result always carries at least one quote.
		best := r.Priced.Quotes[0]
		return fmt.Sprintf(
			"Found %d estimates for %s, %s. Best: %s at $%d/month ($%d-$%d range, %s confidence).",
			len(r.Priced.Quotes), r.Priced.City, r.Priced.State,
			best.Carrier, best.Monthly, best.RangeMonthly[0], best.RangeMonthly[1], best.Confidence)
	case KindPhoneOnly:
		if r.PhoneOnly.LookupFailed {
			return fmt.Sprintf("We couldn't verify that ZIP code. Please call %s for a quote.", phoneSupportNumber)
		}
		return fmt.Sprintf("Online quotes aren't available in %s. Please call %s.",
			r.PhoneOnly.StateName, phoneSupportNumber)
	case KindDuplicate:
		return r.Message
	default:
		return r.Message
	}
}
