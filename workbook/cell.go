// workbook/cell.go
package workbook

import (
	"math"
	"strconv"
	"time"
)

// CellKind는 셀 값의 종류를 나타냅니다
type CellKind int

const (
	KindBlank CellKind = iota
	KindError
	KindUnknown
	KindFormula
	KindString
	KindNumeric
	KindBoolean
	KindDate
)

var cellKindNames = map[CellKind]string{
	KindBlank:   "blank",
	KindError:   "error",
	KindUnknown: "unknown",
	KindFormula: "formula",
	KindString:  "string",
	KindNumeric: "numeric",
	KindBoolean: "boolean",
	KindDate:    "date",
}

func (k CellKind) String() string {
	if name, ok := cellKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Separator reports whether a row starting with a cell of this kind is
// treated as a separator/comment row and left out of the table.
func (k CellKind) Separator() bool {
	return k == KindBlank || k == KindUnknown || k == KindError
}

// Cell is a single resolved cell value.
//
// Only the payload field matching Kind is meaningful: Text for String,
// Unknown, Error and Formula (the recalculated result), Number for Numeric,
// Bool for Boolean and Time for Date.
type Cell struct {
	Kind    CellKind
	Text    string
	Number  float64
	Bool    bool
	Time    time.Time
	Formula string // 수식 원문 (Formula인 경우)
}

// 생성 헬퍼
func BlankCell() Cell { return Cell{Kind: KindBlank} }
func StringCell(s string) Cell { return Cell{Kind: KindString, Text: s} }
func NumericCell(v float64) Cell { return Cell{Kind: KindNumeric, Number: v} }
func BoolCell(v bool) Cell { return Cell{Kind: KindBoolean, Bool: v} }
func DateCell(t time.Time) Cell { return Cell{Kind: KindDate, Time: t} }
func ErrorCell(code string) Cell { return Cell{Kind: KindError, Text: code} }
func UnknownCell(raw string) Cell { return Cell{Kind: KindUnknown, Text: raw} }
func FormulaCell(expr, result string) Cell {
	return Cell{Kind: KindFormula, Formula: expr, Text: result}
}

// String renders the cell the way the table stores it.
func (c Cell) String() string {
	switch c.Kind {
	case KindBlank:
		return ""
	case KindNumeric:
		return FormatNumber(c.Number)
	case KindBoolean:
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	case KindDate:
		return FormatDate(c.Time)
	default:
		return c.Text
	}
}

const (
	exponentUpper = 1e15
	exponentLower = 1e-4
)

// FormatNumber renders a numeric cell value.
// Integral values print without a fraction; very large or very small
// magnitudes switch to exponent notation (1E+20).
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= exponentUpper || abs < exponentLower {
		return strconv.FormatFloat(v, 'E', -1, 64)
	}
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDate renders a date cell value: day-month-year, with the clock
// appended only when the value carries a time of day.
func FormatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("02-Jan-2006")
	}
	return t.Format("02-Jan-2006 15:04:05")
}
