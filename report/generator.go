package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/prosthetix/reports-platform/identity"
)

const (
	// ProsthesisType is fixed for the current device fleet.
	ProsthesisType = "arm_prosthesis"
	// NominalUsageHours is the nominal daily usage attached to every line.
	NominalUsageHours = 24.0
)

// Header is the fixed artifact header. Column order and text are part of
// the external contract — do not reorder.
var Header = []string{
	"User ID", "User Name", "Email", "Prosthesis Type",
	"Signal Type", "Signal Value", "Timestamp",
	"Usage Hours", "Battery Level", "Created Date",
}

// Generate expands each aggregate row into one line per signal (five per
// row) and renders the delimited artifact. Timestamps are ISO-8601: the
// aggregate date at midnight for Timestamp, the bare date for Created Date.
func Generate(id identity.Identity, records []Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write artifact header: %w", err)
	}

	userName := id.DisplayName()
	email := id.EmailOrDefault()

	for _, rec := range records {
		for _, sig := range rec.signals() {
			line := []string{
				rec.ScopeKey,
				userName,
				email,
				ProsthesisType,
				sig.Type,
				formatValue(sig.Value),
				rec.Date.Format("2006-01-02T15:04:05"),
				formatValue(NominalUsageHours),
				formatValue(rec.AvgBattery),
				rec.Date.Format("2006-01-02"),
			}
			if err := w.Write(line); err != nil {
				return nil, fmt.Errorf("failed to write artifact line: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush artifact: %w", err)
	}

	return buf.Bytes(), nil
}

// formatValue renders a float with at least one decimal place, so whole
// numbers read "90.0" rather than "90" in the artifact.
func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
