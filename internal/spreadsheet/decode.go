package spreadsheet

import (
	"math"
	"strconv"
	"strings"
)

// Cell returns the normalized text of the cell at col, or "" when the cell is
// missing or blank. Integer-valued numerics lose their decimal point
// ("150.0" becomes "150"); everything else is returned trimmed. Decoding never
// fails: a cell this function cannot make sense of is simply empty.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	value := strings.TrimSpace(row[col])
	if value == "" {
		return ""
	}

	// Only touch values that actually carry a decimal point, so identifiers
	// with leading zeros pass through untouched.
	if strings.Contains(value, ".") && !strings.ContainsAny(value, "eE") {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f == math.Trunc(f) {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return value
}

// NumericCell extracts an integer score from the cell at col. All characters
// other than digits and dots are stripped before parsing, and the remainder is
// rounded to the nearest integer. Returns nil (never zero) for empty or
// unparseable cells.
func NumericCell(row []string, col int) *int {
	value := Cell(row, col)
	if value == "" {
		return nil
	}

	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	n := int(math.Round(f))
	return &n
}

// IsBlank reports whether every cell in the row decodes to empty
func IsBlank(row []string) bool {
	for col := range row {
		if Cell(row, col) != "" {
			return false
		}
	}
	return true
}

// IsVoided reports whether the row's score column carries the voided marker
func IsVoided(row []string) bool {
	return strings.EqualFold(Cell(row, ColGlobalScore), VoidedMarker)
}
