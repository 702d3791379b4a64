package quote

import (
	"time"

	"go.uber.org/zap"
)

// Structured event emitters. Every pipeline decision logs one event with a
// stable "event" field so log pipelines can aggregate by name.

func logToolCall(corrID, tool string, argCount int) {
	zap.L().Info("tool call received",
		zap.String("event", "tool_call"),
		zap.String("correlation_id", corrID),
		zap.String("tool", tool),
		zap.Int("arg_count", argCount),
	)
}

func logQuoteRequest(corrID, zip string) {
	zap.L().Info("quote requested",
		zap.String("event", "quote_request"),
		zap.String("correlation_id", corrID),
		zap.String("zip", zip),
	)
}

func logValidationError(corrID string, missing []string) {
	zap.L().Warn("quote input incomplete",
		zap.String("event", "validation_error"),
		zap.String("correlation_id", corrID),
		zap.Strings("missing_fields", missing),
	)
}

func logDuplicateCall(corrID, tool string, age time.Duration) {
	zap.L().Warn("duplicate tool call",
		zap.String("event", "duplicate_call"),
		zap.String("correlation_id", corrID),
		zap.String("tool", tool),
		zap.Duration("age", age),
	)
}

func logPhoneOnlyState(corrID, zip, state string, lookupFailed bool) {
	zap.L().Info("phone-only routing",
		zap.String("event", "phone_only_state"),
		zap.String("correlation_id", corrID),
		zap.String("zip", zip),
		zap.String("state", state),
		zap.Bool("lookup_failed", lookupFailed),
	)
}

func logCarrierEstimation(corrID, zip, state string, carriers []string) {
	zap.L().Info("estimating carrier quotes",
		zap.String("event", "carrier_estimation"),
		zap.String("correlation_id", corrID),
		zap.String("zip", zip),
		zap.String("state", state),
		zap.Strings("carriers", carriers),
	)
}

func logQuoteGenerated(corrID, zip, state string, quotes int, bestMonthly int) {
	zap.L().Info("quote generated",
		zap.String("event", "quote_generated"),
		zap.String("correlation_id", corrID),
		zap.String("zip", zip),
		zap.String("state", state),
		zap.Int("quotes", quotes),
		zap.Int("best_monthly", bestMonthly),
	)
}
