package workbook

import "testing"

func TestIsBuiltInDateID(t *testing.T) {
	dates := []int{14, 22, 27, 36, 45, 47, 50, 58}
	for _, id := range dates {
		if !isBuiltInDateID(id) {
			t.Errorf("expected numFmtId %d to be a date format", id)
		}
	}

	others := []int{0, 1, 9, 13, 23, 37, 44, 49, 59}
	for _, id := range others {
		if isBuiltInDateID(id) {
			t.Errorf("expected numFmtId %d not to be a date format", id)
		}
	}
}

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		format   string
		expected bool
	}{
		{"yyyy-mm-dd", true},
		{"dd/mm/yyyy hh:mm", true},
		{"[h]:mm:ss", true},
		{"0.00", false},
		{"#,##0", false},
		{"General", false},
		{"@", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isDateFormat(tt.format); got != tt.expected {
			t.Errorf("isDateFormat(%q) = %v, expected %v", tt.format, got, tt.expected)
		}
	}
}
