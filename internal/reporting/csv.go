package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders monthly averages as CSV string.
func RenderCSV(rows []MonthlyRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("month,average,min,max,days\n")

	// Rows
	for _, m := range rows {
		sb.WriteString(fmt.Sprintf("%04d-%02d,%.2f,%.2f,%.2f,%d\n",
			m.Year,
			m.Month,
			m.Average,
			m.Min,
			m.Max,
			m.Count,
		))
	}

	return sb.String()
}
