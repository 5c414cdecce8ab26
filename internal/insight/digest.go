package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/sadopc/drivelog/internal/report"
)

// BuildDigest renders report output as the plain-text lines the prompt
// consumes. It contains every number the model is allowed to mention.
func BuildDigest(summaries []report.BucketSummary, stats report.PeriodStats, costPerKm float64, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Vehicle cost per km: %s%.2f\n", currency, costPerKm)
	fmt.Fprintf(&b, "Entries in period: %d\n", stats.EntryCount)
	fmt.Fprintf(&b, "Total net profit: %s%.2f\n", currency, stats.TotalProfit)
	fmt.Fprintf(&b, "Average profit per entry: %s%.2f\n", currency, stats.AverageProfitPerEntry)

	if len(summaries) > 0 {
		b.WriteString("\nPer period:\n")
		for _, s := range summaries {
			fmt.Fprintf(&b, "- %s: profit %s%.2f over %d entries, %.1f km, %.1f h\n",
				s.Label, currency, s.TotalProfit, s.EntryCount, s.TotalKm, s.TotalHours)
		}
	}
	return b.String()
}

// Summarize runs the digest through the generator with the standard system
// prompt.
func Summarize(ctx context.Context, g Generator, digest string) (string, error) {
	resp, err := g.Generate(ctx, Request{Prompt: digest, System: systemPrompt})
	if err != nil {
		return "", fmt.Errorf("generate insight: %w", err)
	}
	return resp.Text, nil
}
