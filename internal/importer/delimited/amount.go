package delimited

import (
	"strings"
	"time"
)

// normalizeAmount rewrites a decimal-comma number such as "1.234,56" as
// "1234.56". Other input is returned trimmed.
func normalizeAmount(s string, decimalComma bool) string {
	clean := strings.TrimSpace(s)
	if !decimalComma || !strings.Contains(clean, ",") {
		return clean
	}

	clean = strings.ReplaceAll(clean, ".", "")

	return strings.ReplaceAll(clean, ",", ".")
}

var dayFirstLayouts = []string{"02-01-2006", "02/01/2006", "2/1/2006", "02.01.2006"}

// normalizeDate turns day-first dates into YYYY-MM-DD so they take part in
// the weekly report. ISO dates and anything unrecognised are kept verbatim.
func normalizeDate(s string) string {
	clean := strings.TrimSpace(s)

	if _, err := time.Parse("2006-1-2", clean); err == nil {
		return clean
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t.Format(time.DateOnly)
		}
	}

	return clean
}
