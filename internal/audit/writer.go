// Package audit writes per-quote markdown traces showing every intermediate
// of a premium calculation, for compliance review and debugging.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/quickquote/internal/rating"
)

// Writer writes quote calculation breakdowns to a directory.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a Writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "audit: create directory")
	}
	return &Writer{dir: dir, now: time.Now}, nil
}

// WriteTrace renders the calculation trace to a markdown file named
// quick_quote_{STATE}_{ZIP}_{timestamp}.md and returns its path.
func (w *Writer) WriteTrace(tr *rating.Trace) (string, error) {
	if len(tr.Quotes) == 0 {
		return "", eris.New("audit: trace has no quotes")
	}

	now := w.now()
	filename := fmt.Sprintf("quick_quote_%s_%s_%s.md",
		tr.State, tr.ZipCode, now.Format("20060102_150405"))
	path := filepath.Join(w.dir, filename)

	var b strings.Builder
	b.WriteString("# Quick Quote Calculation Breakdown\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", now.Format("2006-01-02 15:04:05"))

	b.WriteString("## Quote Summary\n\n")
	b.WriteString("| Carrier | Monthly Premium | Annual Premium |\n")
	b.WriteString("|---------|-----------------|----------------|\n")
	for _, q := range tr.Quotes {
		fmt.Fprintf(&b, "| %s | $%d | $%d |\n", q.Carrier, q.Monthly, q.Annual)
	}
	best := tr.Quotes[0]
	fmt.Fprintf(&b, "\n**Best Quote:** %s at **$%d/month** ($%d/year)\n",
		best.Carrier, best.Monthly, best.Annual)
	fmt.Fprintf(&b, "\n**Confidence Level:** %s (±%.0f%%)\n\n",
		tr.Baseline.Confidence, tr.Baseline.Band*100)
	b.WriteString("---\n\n")

	b.WriteString("## Input Summary\n\n")
	fmt.Fprintf(&b, "- **State:** %s\n", tr.State)
	fmt.Fprintf(&b, "- **ZIP Code:** %s\n", tr.ZipCode)
	fmt.Fprintf(&b, "- **Driver Age:** %d\n", tr.Age)
	fmt.Fprintf(&b, "- **Marital Status:** %s\n", tr.MaritalStatus)
	fmt.Fprintf(&b, "- **Vehicle:** %d %s %s\n", tr.Vehicle.Year, tr.Vehicle.Make, tr.Vehicle.Model)
	fmt.Fprintf(&b, "- **Coverage Type:** %s\n", tr.CoverageType)
	if tr.Accidents > 0 || tr.Tickets > 0 {
		b.WriteString("\n**Additional Inputs:**\n")
		fmt.Fprintf(&b, "- **accidents:** %d\n", tr.Accidents)
		fmt.Fprintf(&b, "- **tickets:** %d\n", tr.Tickets)
	}
	b.WriteString("\n---\n\n")

	b.WriteString("## Calculation Steps\n\n")

	b.WriteString("### 1. State Base Rate\n\n")
	fmt.Fprintf(&b, "- **Base Annual Premium for %s:** $%d\n", tr.State, tr.BaseAnnual)
	b.WriteString("- This is the average full coverage rate for the state\n\n")

	b.WriteString("### 2. Risk Factors\n\n")
	fmt.Fprintf(&b, "#### Age Factor: **%.2fx**\n- %s\n\n", tr.AgeFactor.Mult, tr.AgeFactor.Explanation)
	fmt.Fprintf(&b, "#### Marital Status Factor: **%.2fx**\n- %s\n\n", tr.MaritalFactor.Mult, tr.MaritalFactor.Explanation)
	fmt.Fprintf(&b, "#### Vehicle Factor: **%.2fx**\n- %s\n\n", tr.VehicleFactor.Mult, tr.VehicleFactor.Explanation)
	fmt.Fprintf(&b, "#### ZIP Code Factor: **%.2fx**\n- %s\n\n", tr.ZipMult, tr.ZipExplanation)
	fmt.Fprintf(&b, "#### Coverage Factor: **%.2fx**\n- %s\n\n", tr.CoverageFactor.Mult, tr.CoverageFactor.Explanation)

	b.WriteString("### 3. Baseline Premium Calculation\n\n")
	b.WriteString("```\n")
	b.WriteString("Baseline Annual = Base Rate x Age x Marital x Vehicle x ZIP x Coverage\n")
	fmt.Fprintf(&b, "                = $%d x %.2f x %.2f x %.2f x %.2f x %.2f\n",
		tr.BaseAnnual, tr.AgeFactor.Mult, tr.MaritalFactor.Mult,
		tr.VehicleFactor.Mult, tr.ZipMult, tr.CoverageFactor.Mult)
	fmt.Fprintf(&b, "                = $%d\n", tr.Baseline.Annual)
	b.WriteString("```\n\n")
	fmt.Fprintf(&b, "**Baseline Monthly:** $%d\n\n", tr.Baseline.Monthly)

	b.WriteString("### 4. Overall Risk Score\n\n")
	fmt.Fprintf(&b, "- **Risk Score:** %.3f (scale: 0.0 = lowest risk, 1.0 = highest risk)\n", tr.RiskScore)
	b.WriteString("- This score is used to interpolate carrier-specific multipliers\n")
	b.WriteString("- Lower risk profiles get better rates from each carrier\n\n")

	b.WriteString("### 5. Confidence Band\n\n")
	fmt.Fprintf(&b, "- **Confidence Level:** %s\n", tr.Baseline.Confidence)
	fmt.Fprintf(&b, "- **Band:** ±%.0f%%\n", tr.Baseline.Band*100)
	b.WriteString("- Based on completeness of provided information\n\n")

	b.WriteString("### 6. Carrier-Specific Quotes\n\n")
	for i, q := range tr.Quotes {
		fmt.Fprintf(&b, "#### %d. %s\n\n", i+1, q.Carrier)

		low, high, final := rating.CarrierMultiplier(q.Carrier, tr.RiskScore, tr.State)
		stateAdj := rating.StateAdjustment(q.Carrier, tr.State)
		interpolated := low + (high-low)*tr.RiskScore

		b.WriteString("**Carrier Multiplier Calculation:**\n")
		b.WriteString("```\n")
		fmt.Fprintf(&b, "Base Range: %.2fx to %.2fx\n", low, high)
		fmt.Fprintf(&b, "Risk Interpolation: %.2f + (%.2f - %.2f) x %.3f = %.3fx\n",
			low, high, low, tr.RiskScore, interpolated)
		if stateAdj != 0 {
			fmt.Fprintf(&b, "State Adjustment (%s): %+.3fx\n", tr.State, stateAdj)
		}
		fmt.Fprintf(&b, "Final Multiplier: %.3fx\n", final)
		b.WriteString("```\n\n")

		b.WriteString("**Premium Calculation:**\n")
		b.WriteString("```\n")
		b.WriteString("Carrier Annual = Baseline x Carrier Multiplier\n")
		fmt.Fprintf(&b, "               = $%d x %.3f\n", tr.Baseline.Annual, final)
		fmt.Fprintf(&b, "               = $%d\n", q.Annual)
		fmt.Fprintf(&b, "Carrier Monthly = $%d\n", q.Monthly)
		b.WriteString("```\n\n")

		b.WriteString("**Estimated Range:**\n")
		fmt.Fprintf(&b, "- Monthly: $%d - $%d\n", q.RangeMonthly[0], q.RangeMonthly[1])
		fmt.Fprintf(&b, "- Annual: $%d - $%d\n\n", q.RangeAnnual[0], q.RangeAnnual[1])

		if len(q.Explanations) > 0 {
			fmt.Fprintf(&b, "**Explanation:** %s\n\n", q.Explanations[len(q.Explanations)-1])
		}
	}

	b.WriteString("---\n\n")
	b.WriteString("## Notes\n\n")
	b.WriteString("All calculations are estimates based on typical market rates and risk factors. ")
	b.WriteString("Actual rates from carriers may vary based on additional underwriting criteria.\n\n")
	last := tr.Quotes[len(tr.Quotes)-1]
	fmt.Fprintf(&b, "**Price Spread:** $%d/month ", last.Monthly-best.Monthly)
	b.WriteString("(difference between highest and lowest quote)\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", eris.Wrap(err, "audit: write trace")
	}

	zap.L().Info("audit: quote explanation written", zap.String("path", path))
	return path, nil
}

// Prune deletes trace files older than the retention period and returns the
// number removed.
func (w *Writer) Prune(retention time.Duration) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, eris.Wrap(err, "audit: read directory")
	}

	cutoff := w.now().Add(-retention)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(w.dir, entry.Name())); err == nil {
				deleted++
			}
		}
	}

	if deleted > 0 {
		zap.L().Info("audit: pruned old explanations", zap.Int("deleted", deleted))
	}
	return deleted, nil
}
