package spreadsheet

import "testing"

func TestCell(t *testing.T) {
	tests := []struct {
		name     string
		row      []string
		col      int
		expected string
	}{
		{
			name:     "plain text trimmed",
			row:      []string{"", "  1098765  "},
			col:      1,
			expected: "1098765",
		},
		{
			name:     "integer-valued float loses decimal point",
			row:      []string{"150.0"},
			col:      0,
			expected: "150",
		},
		{
			name:     "non-integer float keeps precision",
			row:      []string{"150.5"},
			col:      0,
			expected: "150.5",
		},
		{
			name:     "leading zeros survive",
			row:      []string{"00123"},
			col:      0,
			expected: "00123",
		},
		{
			name:     "column beyond row width",
			row:      []string{"a", "b"},
			col:      9,
			expected: "",
		},
		{
			name:     "negative column",
			row:      []string{"a"},
			col:      -1,
			expected: "",
		},
		{
			name:     "blank cell",
			row:      []string{"   "},
			col:      0,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Cell(tt.row, tt.col)
			if result != tt.expected {
				t.Errorf("Cell(%v, %d) = %q, want %q", tt.row, tt.col, result, tt.expected)
			}
		})
	}
}

func TestNumericCell(t *testing.T) {
	tests := []struct {
		name     string
		row      []string
		col      int
		expected *int
	}{
		{
			name:     "plain integer",
			row:      []string{"187"},
			col:      0,
			expected: intPtr(187),
		},
		{
			name:     "locale noise stripped",
			row:      []string{" 187 pts "},
			col:      0,
			expected: intPtr(187),
		},
		{
			name:     "fraction rounds to nearest",
			row:      []string{"149.6"},
			col:      0,
			expected: intPtr(150),
		},
		{
			name:     "empty cell is nil not zero",
			row:      []string{""},
			col:      0,
			expected: nil,
		},
		{
			name:     "pure text is nil",
			row:      []string{"VOIDED"},
			col:      0,
			expected: nil,
		},
		{
			name:     "missing column is nil",
			row:      []string{"1"},
			col:      5,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NumericCell(tt.row, tt.col)
			if (result == nil) != (tt.expected == nil) {
				t.Fatalf("NumericCell(%v, %d) = %v, want %v", tt.row, tt.col, result, tt.expected)
			}
			if result != nil && *result != *tt.expected {
				t.Errorf("NumericCell(%v, %d) = %d, want %d", tt.row, tt.col, *result, *tt.expected)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank([]string{"", "  ", ""}) {
		t.Error("row of empty cells should be blank")
	}
	if !IsBlank(nil) {
		t.Error("nil row should be blank")
	}
	if IsBlank([]string{"", "x"}) {
		t.Error("row with one non-empty cell should not be blank")
	}
}

func TestIsVoided(t *testing.T) {
	row := make([]string, 10)
	row[ColGlobalScore] = "voided"
	if !IsVoided(row) {
		t.Error("lowercase marker should void the row")
	}

	row[ColGlobalScore] = "187"
	if IsVoided(row) {
		t.Error("numeric score should not void the row")
	}

	if IsVoided([]string{"short"}) {
		t.Error("row without a score column should not be voided")
	}
}

func intPtr(n int) *int {
	return &n
}
