// Package sample writes the reference workbooks used by tests and by the
// example/sampler program.
package sample

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	SheetItems = "Items"
	SheetNotes = "Notes"
)

// ItemsDate is the value stored in the date cell of the Items sheet.
var ItemsDate = time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

// NewItemsFile builds a workbook with one Items-style sheet named sheet:
//
//	row 0  ID | Name | Price          (header, defines 3 columns)
//	row 1  Header merged over A2:C2
//	row 2  (blank) | comment          (separator row)
//	row 3  c0 | c1 | c2
//	row 4  1 | Sword | =A5*150
//	row 5  (absent)
//	row 6  2 | TRUE | 2024-01-05
func NewItemsFile(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := writeItems(f, sheet); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeItems(f *excelize.File, sheet string) error {
	values := []struct {
		cell  string
		value interface{}
	}{
		{"A1", "ID"}, {"B1", "Name"}, {"C1", "Price"},
		{"A2", "Header"},
		{"B3", "comment"},
		{"A4", "c0"}, {"B4", "c1"}, {"C4", "c2"},
		{"A5", 1}, {"B5", "Sword"},
		{"A7", 2}, {"B7", true}, {"C7", ItemsDate},
	}
	for _, v := range values {
		if err := f.SetCellValue(sheet, v.cell, v.value); err != nil {
			return fmt.Errorf("failed to write %s: %v", v.cell, err)
		}
	}

	if err := f.MergeCell(sheet, "A2", "C2"); err != nil {
		return fmt.Errorf("failed to merge header: %v", err)
	}
	if err := f.SetCellFormula(sheet, "C5", "A5*150"); err != nil {
		return fmt.Errorf("failed to write formula: %v", err)
	}
	return nil
}

// WriteItems saves the Items workbook to path.
func WriteItems(path, sheet string) error {
	f, err := NewItemsFile(sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

// WriteItemsAndNotes saves a workbook holding the Items sheet plus a Notes
// sheet with a vertically merged first column.
//
//	row 0  Key | Value
//	row 1  group (merged A2:A3) | alpha
//	row 2  (merged) | beta
func WriteItemsAndNotes(path string) error {
	f, err := NewItemsFile(SheetItems)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.NewSheet(SheetNotes); err != nil {
		return err
	}
	for cell, value := range map[string]string{
		"A1": "Key", "B1": "Value",
		"A2": "group", "B2": "alpha",
		"B3": "beta",
	} {
		if err := f.SetCellValue(SheetNotes, cell, value); err != nil {
			return err
		}
	}
	if err := f.MergeCell(SheetNotes, "A2", "A3"); err != nil {
		return err
	}

	return f.SaveAs(path)
}
