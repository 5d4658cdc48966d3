// workbook/numfmt.go
package workbook

import (
	"github.com/xuri/nfp"
)

// isBuiltInDateID reports whether a built-in numFmtId renders a date or time.
//
//	14-22   date and time formats
//	27-36   locale-specific CJK date formats
//	45-47   elapsed-time / seconds formats
//	50-58   locale-specific CJK date formats (variant set)
func isBuiltInDateID(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormat reports whether a custom number format string formats its
// value as a date or time. Only the first (positive) section is inspected.
func isDateFormat(format string) bool {
	if format == "" || format == "General" || format == "@" {
		return false
	}

	ps := nfp.NumberFormatParser()
	sections := ps.Parse(format)
	if len(sections) == 0 {
		return false
	}
	for _, tok := range sections[0].Items {
		switch tok.TType {
		case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
			return true
		}
	}
	return false
}
