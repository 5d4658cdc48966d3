// Package workbook opens spreadsheet containers and exposes their sheets
// through a format-neutral model: sheets of tagged cells plus merged regions.
package workbook

import (
	"errors"
)

type ErrorDomain = string

var errdomain = struct {
	Workbook ErrorDomain
	XLSX     ErrorDomain
	XLS      ErrorDomain
}{
	Workbook: ErrorDomain("workbook"),
	XLSX:     ErrorDomain("xlsx"),
	XLS:      ErrorDomain("xls"),
}

var (
	// ErrUnsupportedFormat is returned when no opener is registered for a
	// file's extension.
	ErrUnsupportedFormat = errors.New("unsupported workbook format")

	// ErrMalformed marks a container that could not be parsed.
	ErrMalformed = errors.New("malformed workbook")
)

// Sheet is a read-only view over one worksheet.
type Sheet interface {
	// Name는 시트 이름을 반환합니다
	Name() string

	// LastRow returns the index of the last row, or -1 for an empty sheet.
	LastRow() int

	// Row reports whether the row exists and how many cells it spans
	// (index of its last cell + 1).
	Row(row int) (width int, ok bool)

	// Cell returns the cell at (row, col); ok is false when no cell exists.
	// Formula cells carry their recalculated result.
	Cell(row, col int) (Cell, bool)

	// MergedRegions는 시트의 병합 영역 목록을 반환합니다
	MergedRegions() []MergedRegion
}

// Workbook is an opened spreadsheet container.
type Workbook interface {
	// Sheets returns the worksheets in workbook order.
	Sheets() ([]Sheet, error)

	// Close releases the underlying file.
	Close() error
}

// OpenFunc opens the workbook stored at path.
type OpenFunc func(path string) (Workbook, error)
