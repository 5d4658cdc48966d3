// workbook/region.go
package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MergedRegion은 병합된 셀 범위를 나타냅니다 (0부터 시작, 양 끝 포함)
type MergedRegion struct {
	FirstRow    int
	LastRow     int
	FirstColumn int
	LastColumn  int
}

// Contains reports whether (row, col) lies inside the region.
func (r MergedRegion) Contains(row, col int) bool {
	return row >= r.FirstRow && row <= r.LastRow &&
		col >= r.FirstColumn && col <= r.LastColumn
}

// A1 returns the region in A1 notation, e.g. "B2:D2".
func (r MergedRegion) A1() string {
	start, err := excelize.CoordinatesToCellName(r.FirstColumn+1, r.FirstRow+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", r.FirstRow, r.FirstColumn, r.LastRow, r.LastColumn)
	}
	end, err := excelize.CoordinatesToCellName(r.LastColumn+1, r.LastRow+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", r.FirstRow, r.FirstColumn, r.LastRow, r.LastColumn)
	}
	return start + ":" + end
}

// FindRegion returns the first region in regions containing (row, col).
// Regions are expected not to overlap; when they do, list order decides.
func FindRegion(regions []MergedRegion, row, col int) (MergedRegion, bool) {
	for _, region := range regions {
		if region.Contains(row, col) {
			return region, true
		}
	}
	return MergedRegion{}, false
}

// ParseRange converts an A1 range such as "A2:C2" into a zero-based region.
// A single cell reference yields a one-cell region.
func ParseRange(ref string) (MergedRegion, error) {
	startRef, endRef, ok := strings.Cut(strings.ReplaceAll(ref, "$", ""), ":")
	if !ok {
		endRef = startRef
	}

	c1, r1, err := excelize.CellNameToCoordinates(startRef)
	if err != nil {
		return MergedRegion{}, err
	}
	c2, r2, err := excelize.CellNameToCoordinates(endRef)
	if err != nil {
		return MergedRegion{}, err
	}

	region := MergedRegion{
		FirstRow:    min(r1, r2) - 1,
		LastRow:     max(r1, r2) - 1,
		FirstColumn: min(c1, c2) - 1,
		LastColumn:  max(c1, c2) - 1,
	}
	return region, nil
}
