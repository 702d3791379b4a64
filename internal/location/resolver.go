package location

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/quickquote/pkg/geocode"
)

// Resolution is the outcome of a ZIP lookup.
type Resolution struct {
	City      string
	StateName string
	StateAbbr string
	Resolved  bool
}

// PhoneOnly reports whether this resolution routes the caller to phone
// support: either the state forbids online quoting or the ZIP could not be
// resolved at all.
func (r Resolution) PhoneOnly() bool {
	return IsPhoneOnly(r.StateAbbr)
}

// Resolver resolves ZIP codes through a geocoding client. It never returns
// an error; any failure degrades to an unresolved Resolution.
type Resolver struct {
	client geocode.Client
}

// NewResolver wraps a geocoding client.
func NewResolver(client geocode.Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve looks up a ZIP code and normalizes the state.
func (r *Resolver) Resolve(ctx context.Context, zip string) Resolution {
	result, err := r.client.ResolveZip(ctx, zip)
	if err != nil || !result.Matched {
		if err != nil {
			zap.L().Warn("location: zip lookup failed", zap.String("zip", zip), zap.Error(err))
		}
		return Resolution{}
	}

	abbr := NormalizeState(result.StateName)
	if abbr == "" {
		zap.L().Warn("location: unrecognized state from geocoder",
			zap.String("zip", zip),
			zap.String("state", result.StateName),
		)
		return Resolution{}
	}

	return Resolution{
		City:      result.City,
		StateName: result.StateName,
		StateAbbr: abbr,
		Resolved:  true,
	}
}
