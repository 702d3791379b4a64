package quote

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/quickquote/internal/audit"
	"github.com/sells-group/quickquote/internal/carriers"
	"github.com/sells-group/quickquote/internal/dupe"
	"github.com/sells-group/quickquote/internal/location"
	"github.com/sells-group/quickquote/internal/rating"
)

// ToolName is the MCP tool this pipeline serves.
const ToolName = "get_quick_quote"

// Pipeline runs one quote request end to end. It holds no per-request state
// and is safe for concurrent use.
type Pipeline struct {
	resolver *location.Resolver
	guard    *dupe.Guard
	auditor  *audit.Writer
	baseURL  string
}

// NewPipeline wires the pipeline's collaborators. The audit writer may be
// nil; auditing is best effort either way.
func NewPipeline(resolver *location.Resolver, guard *dupe.Guard, auditor *audit.Writer, baseURL string) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		guard:    guard,
		auditor:  auditor,
		baseURL:  baseURL,
	}
}

// Run validates the raw arguments and produces exactly one Result variant.
// It never returns an error and never panics: validation failures refuse,
// duplicates refuse, and anything unexpected past validation degrades to the
// phone-only path.
func (p *Pipeline) Run(ctx context.Context, args map[string]any) Result {
	corrID := uuid.NewString()
	logToolCall(corrID, ToolName, len(args))

	// 1. Parse and validate. No partial pricing.
	in, missing, err := ParseInput(args)
	if err != nil {
		logValidationError(corrID, nil)
		return Result{
			Kind:          KindRefusal,
			CorrelationID: corrID,
			Message:       fmt.Sprintf("Invalid request: %v.", err),
		}
	}
	if len(missing) > 0 {
		logValidationError(corrID, missing)
		return Result{
			Kind:          KindRefusal,
			CorrelationID: corrID,
			MissingFields: missing,
			Message:       fmt.Sprintf("Cannot generate a quote; missing or invalid fields: %v.", missing),
		}
	}
	logQuoteRequest(corrID, in.Zip)

	// 2. Duplicate check.
	if dup, age := p.guard.CheckAndRecord(ToolName, args); dup {
		logDuplicateCall(corrID, ToolName, age)
		return Result{
			Kind:          KindDuplicate,
			CorrelationID: corrID,
			Message: fmt.Sprintf(
				"An identical quote request was received %d seconds ago. Showing new quotes for the same inputs would be confusing; please adjust the inputs or wait.",
				int(age.Seconds())),
		}
	}

	return p.price(ctx, corrID, in)
}

// price runs steps 3 through 8. A panic anywhere in here degrades to a
// phone-only result rather than crashing the request.
func (p *Pipeline) price(ctx context.Context, corrID string, in *QuoteInput) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("quote: pipeline panic recovered",
				zap.String("correlation_id", corrID),
				zap.Any("panic", r),
			)
			logPhoneOnlyState(corrID, in.Zip, "", true)
			result = Result{
				Kind:          KindPhoneOnly,
				CorrelationID: corrID,
				Inputs:        in.Summary(),
				PhoneOnly:     &PhoneOnly{LookupFailed: true},
				Message:       "We hit a problem generating your quote. Please call for assistance.",
			}
		}
	}()

	// 3. Resolve location.
	resolution := p.resolver.Resolve(ctx, in.Zip)

	// 4. Phone-only branch.
	if resolution.PhoneOnly() {
		lookupFailed := !resolution.Resolved
		logPhoneOnlyState(corrID, in.Zip, resolution.StateAbbr, lookupFailed)
		msg := "Online quoting is not available for your location. Please call for a quote."
		if lookupFailed {
			msg = "We could not verify your ZIP code. Please call for a quote."
		}
		return Result{
			Kind:          KindPhoneOnly,
			CorrelationID: corrID,
			Inputs:        in.Summary(),
			PhoneOnly: &PhoneOnly{
				City:         resolution.City,
				State:        resolution.StateAbbr,
				StateName:    resolution.StateName,
				LookupFailed: lookupFailed,
			},
			Message: msg,
		}
	}

	// 5. Carrier panel for the state. ForState never returns an empty
	// panel, so the estimate always carries at least one quote.
	panel := carriers.ForState(resolution.StateAbbr)
	logCarrierEstimation(corrID, in.Zip, resolution.StateAbbr, panel)

	// 6. Estimate.
	driver := in.PrimaryDriver()
	estimate, trace := rating.EstimateQuotes(rating.EstimateInput{
		State:         resolution.StateAbbr,
		ZipCode:       in.Zip,
		Age:           driver.Age,
		MaritalStatus: driver.MaritalStatus,
		Vehicle:       in.PrimaryVehicle(),
		CoverageType:  in.CoverageType,
		Carriers:      panel,
		Accidents:     in.Accidents,
		Tickets:       in.Tickets,
		AnnualMileage: in.AnnualMileage,
		CreditTier:    in.CreditTier,
		Continuous:    in.ContinuousInsurance,
	})

	// 7. Audit, best effort.
	if p.auditor != nil {
		if _, err := p.auditor.WriteTrace(trace); err != nil {
			zap.L().Warn("quote: audit write failed",
				zap.String("correlation_id", corrID),
				zap.Error(err),
			)
		}
	}

	// 8. Priced result.
	logQuoteGenerated(corrID, in.Zip, resolution.StateAbbr,
		len(estimate.Quotes), estimate.Quotes[0].Monthly)
	return Result{
		Kind:          KindPriced,
		CorrelationID: corrID,
		Inputs:        in.Summary(),
		Priced: &Priced{
			City:          resolution.City,
			State:         resolution.StateAbbr,
			StateName:     resolution.StateName,
			Baseline:      estimate.Baseline,
			Quotes:        estimate.Quotes,
			ServerBaseURL: p.baseURL,
		},
	}
}
