// workbook/xls.go
package workbook

import (
	"bytes"
	"fmt"
	"os"

	"github.com/extrame/xls"
	"github.com/samber/oops"
)

const xlsCharset = "utf-8"

// Excel 오류 리터럴
var xlsErrorLiterals = map[string]bool{
	"#NULL!":  true,
	"#DIV/0!": true,
	"#VALUE!": true,
	"#REF!":   true,
	"#NAME?":  true,
	"#NUM!":   true,
	"#N/A":    true,
}

// xlsWorkbook holds every sheet of a BIFF8 workbook in memory. The file is
// read in one go and released before OpenXLS returns.
type xlsWorkbook struct {
	path   string
	sheets []Sheet
	closed bool
}

// OpenXLS opens a legacy binary (Excel 97-2003) workbook.
func OpenXLS(path string) (wb Workbook, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, openError(errdomain.XLS, path, err)
	}

	// extrame/xls는 손상된 레코드에서 panic을 낼 수 있음
	defer func() {
		if r := recover(); r != nil {
			wb = nil
			err = openError(errdomain.XLS, path, fmt.Errorf("%v", r))
		}
	}()

	book, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, openError(errdomain.XLS, path, err)
	}

	stream, err := readWorkbookStream(data)
	if err != nil {
		return nil, openError(errdomain.XLS, path, err)
	}
	merged, err := scanMergedCells(stream)
	if err != nil {
		return nil, openError(errdomain.XLS, path, err)
	}

	w := &xlsWorkbook{path: path}
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}
		w.sheets = append(w.sheets, newXLSSheet(ws, merged[ws.Name]))
	}
	return w, nil
}

func (w *xlsWorkbook) Sheets() ([]Sheet, error) {
	if w.closed {
		return nil, oops.In(errdomain.XLS).With("file", w.path).Errorf("workbook is closed")
	}
	return w.sheets, nil
}

func (w *xlsWorkbook) Close() error {
	w.sheets = nil
	w.closed = true
	return nil
}

// xlsSheet is a materialised copy of an extrame/xls worksheet. Values are
// the library's own text rendering; kinds are inferred from that text.
type xlsSheet struct {
	name    string
	rows    map[int][]string
	lastRow int
	merged  []MergedRegion
}

func newXLSSheet(ws *xls.WorkSheet, merged []MergedRegion) *xlsSheet {
	s := &xlsSheet{
		name:    ws.Name,
		rows:    make(map[int][]string),
		lastRow: -1,
		merged:  merged,
	}

	for r := 0; r <= int(ws.MaxRow); r++ {
		row, ok := xlsRow(ws, r)
		if !ok {
			continue
		}
		cells := make([]string, row.LastCol())
		for c := range cells {
			cells[c] = row.Col(c)
		}
		s.rows[r] = cells
		s.lastRow = r
	}
	return s
}

// xlsRow fetches one row. WorkSheet.Row dereferences the row without a nil
// check, so a row with no records panics instead of returning nil.
func xlsRow(ws *xls.WorkSheet, r int) (row *xls.Row, ok bool) {
	defer func() {
		if recover() != nil {
			row, ok = nil, false
		}
	}()
	row = ws.Row(r)
	return row, row != nil
}

func (s *xlsSheet) Name() string { return s.name }

func (s *xlsSheet) LastRow() int { return s.lastRow }

func (s *xlsSheet) Row(row int) (int, bool) {
	cells, ok := s.rows[row]
	if !ok {
		return 0, false
	}
	return len(cells), true
}

func (s *xlsSheet) Cell(row, col int) (Cell, bool) {
	cells, ok := s.rows[row]
	if !ok || col < 0 || col >= len(cells) {
		return Cell{}, false
	}

	text := cells[col]
	switch {
	case text == "":
		return BlankCell(), true
	case xlsErrorLiterals[text]:
		return ErrorCell(text), true
	default:
		return StringCell(text), true
	}
}

func (s *xlsSheet) MergedRegions() []MergedRegion {
	return s.merged
}
