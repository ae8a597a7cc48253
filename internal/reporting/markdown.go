package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# EUA 2 Futures Series Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Series summary
	sb.WriteString("## Series Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Records | %d |\n", r.Stats.Records))
	sb.WriteString(fmt.Sprintf("| Date Range | %s to %s |\n", r.Stats.FirstDate, r.Stats.LastDate))
	sb.WriteString(fmt.Sprintf("| Min Price | %.2f (%s) |\n", r.Stats.MinPrice, r.Stats.MinDate))
	sb.WriteString(fmt.Sprintf("| Max Price | %.2f (%s) |\n", r.Stats.MaxPrice, r.Stats.MaxDate))
	sb.WriteString(fmt.Sprintf("| Average Price | %.2f |\n", r.Stats.AvgPrice))
	sb.WriteString(fmt.Sprintf("| Last Price | %.2f |\n", r.Stats.LastPrice))
	sb.WriteString("\n")

	// Monthly averages
	sb.WriteString("## Monthly Averages\n\n")
	if len(r.Monthly) > 0 {
		sb.WriteString("| Month | Average | Min | Max | Days |\n")
		sb.WriteString("|-------|---------|-----|-----|------|\n")
		for _, m := range r.Monthly {
			sb.WriteString(fmt.Sprintf("| %04d-%02d | %.2f | %.2f | %.2f | %d |\n",
				m.Year, m.Month, m.Average, m.Min, m.Max, m.Count))
		}
	} else {
		sb.WriteString("No monthly data available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
