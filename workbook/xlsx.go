// workbook/xlsx.go
package workbook

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/xuri/excelize/v2"
)

// xlsxWorkbook wraps an excelize file.
type xlsxWorkbook struct {
	path     string
	f        *excelize.File
	date1904 bool
}

// OpenXLSX opens an Office Open XML workbook with excelize.
func OpenXLSX(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, openError(errdomain.XLSX, path, err)
	}

	wb := &xlsxWorkbook{path: path, f: f}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb, nil
}

func (w *xlsxWorkbook) Sheets() ([]Sheet, error) {
	errBuilder := oops.In(errdomain.XLSX).With("file", w.path)

	var sheets []Sheet
	for _, name := range w.f.GetSheetList() {
		// 수식은 캐시된 값이 아니라 CalcCellValue로 다시 계산하므로 raw 값으로 읽는다
		rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errBuilder.With("sheet", name).
				Wrapf(fmt.Errorf("%w: %w", ErrMalformed, err), "failed to read rows")
		}

		merged, err := w.mergedRegions(name)
		if err != nil {
			return nil, errBuilder.With("sheet", name).
				Wrapf(fmt.Errorf("%w: %w", ErrMalformed, err), "failed to read merged cells")
		}

		sheets = append(sheets, &xlsxSheet{
			wb:     w,
			name:   name,
			rows:   rows,
			merged: merged,
			styles: make(map[int]bool),
		})
	}
	return sheets, nil
}

func (w *xlsxWorkbook) mergedRegions(sheet string) ([]MergedRegion, error) {
	cells, err := w.f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}

	regions := make([]MergedRegion, 0, len(cells))
	for _, mc := range cells {
		region, err := ParseRange(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	return regions, nil
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}

// xlsxSheet keeps the raw grid of one worksheet; typing, date detection and
// formula evaluation happen on demand per cell.
type xlsxSheet struct {
	wb     *xlsxWorkbook
	name   string
	rows   [][]string
	merged []MergedRegion
	styles map[int]bool // style id -> 날짜 포맷 여부
}

func (s *xlsxSheet) Name() string { return s.name }

func (s *xlsxSheet) LastRow() int { return len(s.rows) - 1 }

func (s *xlsxSheet) Row(row int) (int, bool) {
	if row < 0 || row >= len(s.rows) || len(s.rows[row]) == 0 {
		return 0, false
	}
	return len(s.rows[row]), true
}

func (s *xlsxSheet) MergedRegions() []MergedRegion {
	return s.merged
}

func (s *xlsxSheet) Cell(row, col int) (Cell, bool) {
	if row < 0 || row >= len(s.rows) || col < 0 {
		return Cell{}, false
	}

	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return Cell{}, false
	}

	// GetRows는 행 끝의 빈 값을 잘라내므로, 그 뒤의 좌표는 결과가 아직 없는 수식만 확인한다
	inRow := col < len(s.rows[row])
	raw := ""
	if inRow {
		raw = s.rows[row][col]
	}

	// excelize는 병합 영역 안의 좌표를 왼쪽 위 셀로 바꿔 조회하므로, 값이 없는 나머지 칸은 여기서 없는 셀로 처리
	if raw == "" && s.coveredByMerge(row, col) {
		return Cell{}, false
	}

	if formula, err := s.wb.f.GetCellFormula(s.name, ref); err == nil && formula != "" {
		result, err := s.wb.f.CalcCellValue(s.name, ref, excelize.Options{RawCellValue: true})
		if err != nil {
			// 계산할 수 없는 수식은 파일에 저장된 마지막 결과를 사용
			result = raw
		}
		return FormulaCell(formula, result), true
	}
	if !inRow {
		return Cell{}, false
	}

	typ, err := s.wb.f.GetCellType(s.name, ref)
	if err != nil {
		return UnknownCell(raw), true
	}

	switch typ {
	case excelize.CellTypeBool:
		return BoolCell(raw == "1" || strings.EqualFold(raw, "true")), true
	case excelize.CellTypeError:
		return ErrorCell(raw), true
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return StringCell(raw), true
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return DateCell(t), true
		}
		return StringCell(raw), true
	}

	// 숫자 셀 (t 속성 없음 포함)
	if raw == "" {
		return BlankCell(), true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return UnknownCell(raw), true
	}
	if s.isDateStyle(ref) {
		if t, err := excelize.ExcelDateToTime(v, s.wb.date1904); err == nil {
			return DateCell(t), true
		}
	}
	return NumericCell(v), true
}

// coveredByMerge reports whether (row, col) lies in a merged region without
// being its top-left cell.
func (s *xlsxSheet) coveredByMerge(row, col int) bool {
	region, ok := FindRegion(s.merged, row, col)
	return ok && (region.FirstRow != row || region.FirstColumn != col)
}

func (s *xlsxSheet) isDateStyle(ref string) bool {
	styleID, err := s.wb.f.GetCellStyle(s.name, ref)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := s.styles[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := s.wb.f.GetStyle(styleID); err == nil && style != nil {
		isDate = isBuiltInDateID(style.NumFmt) ||
			style.CustomNumFmt != nil && isDateFormat(*style.CustomNumFmt)
	}
	s.styles[styleID] = isDate
	return isDate
}

var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISODate(raw string) (time.Time, bool) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// openError keeps filesystem failures as they are and marks everything else
// as a malformed container.
func openError(domain, path string, err error) error {
	errBuilder := oops.In(domain).With("file", path)

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return errBuilder.Wrapf(err, "failed to open workbook")
	}
	return errBuilder.Wrapf(fmt.Errorf("%w: %w", ErrMalformed, err), "failed to open workbook")
}
