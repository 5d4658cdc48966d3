// Package extract turns workbook sheets into rectangular string tables.
//
// A table keeps the width of the sheet's first row. Rows whose first cell is
// empty or unreadable act as separators and are left out, and every
// coordinate covered by a merged region takes the value of the region's
// top-left cell.
package extract

import (
	"errors"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"excelarray/workbook"
)

// Table is the extracted content of one sheet. Every row is as wide as the
// sheet's first row.
type Table [][]string

// ErrNoFirstRow is returned for a sheet without row 0, whose width defines
// the table's column count.
var ErrNoFirstRow = errors.New("sheet has no first row")

const errDomain = "extract"

// Extractor reads sheets into tables and reports irregular rows to its
// logger.
type Extractor struct {
	log logrus.FieldLogger
}

// NewExtractor returns an extractor logging to log, or to the standard
// logrus logger when log is nil.
func NewExtractor(log logrus.FieldLogger) *Extractor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Extractor{log: log}
}

// Extract reads every row of sheet up to its last row.
func (e *Extractor) Extract(sheet workbook.Sheet) (Table, error) {
	name := sheet.Name()
	width, ok := sheet.Row(0)
	if !ok {
		return nil, oops.In(errDomain).With("sheet", name).Wrapf(ErrNoFirstRow, "failed to read column count")
	}

	regions := sheet.MergedRegions()
	lastRow := sheet.LastRow()
	table := make(Table, 0, lastRow+1)

	for r := 0; r <= lastRow; r++ {
		if _, ok := sheet.Row(r); !ok {
			e.log.WithFields(logrus.Fields{
				"sheet":   name,
				"row":     r,
				"lastRow": lastRow,
			}).Warn("row is missing, emitting an empty row")
			table = append(table, make([]string, width))
			continue
		}

		// 첫 칸이 비어 있거나 읽을 수 없는 행은 구분선으로 보고 건너뜀
		first, ok := sheet.Cell(r, 0)
		if !ok || first.Kind.Separator() {
			e.log.WithFields(logrus.Fields{"sheet": name, "row": r}).Debug("skipping separator row")
			continue
		}

		row := make([]string, width)
		for c := range row {
			row[c] = resolve(sheet, regions, r, c)
		}
		table = append(table, row)
	}
	return table, nil
}

// resolve returns the text at (row, col), reading merged coordinates from the
// top-left cell of their region.
func resolve(sheet workbook.Sheet, regions []workbook.MergedRegion, row, col int) string {
	if region, ok := workbook.FindRegion(regions, row, col); ok {
		row, col = region.FirstRow, region.FirstColumn
	}
	cell, ok := sheet.Cell(row, col)
	if !ok {
		return ""
	}
	return cell.String()
}
