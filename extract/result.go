package extract

import (
	"github.com/sirupsen/logrus"

	"excelarray/workbook"
)

// SheetInfo is one registered sheet.
type SheetInfo struct {
	Name   string
	Source string // 시트를 읽어 온 파일 경로
	Table  Table
	Merged []workbook.MergedRegion
}

// Result maps unique sheet names to their extracted content. A Result is
// never modified after Build; every accessor hands out copies.
type Result struct {
	names  []string
	sheets map[string]SheetInfo
	log    logrus.FieldLogger
}

// Builder collects sheets for a Result. The first sheet registered under a
// name wins.
type Builder struct {
	result *Result
}

func NewBuilder(log logrus.FieldLogger) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{result: &Result{
		sheets: make(map[string]SheetInfo),
		log:    log,
	}}
}

// Add registers info and reports whether it was accepted. A duplicate name is
// logged as an error and dropped.
func (b *Builder) Add(info SheetInfo) bool {
	r := b.result
	if prev, exists := r.sheets[info.Name]; exists {
		r.log.WithFields(logrus.Fields{
			"sheet": info.Name,
			"file":  info.Source,
			"first": prev.Source,
		}).Error("duplicate sheet name, keeping the first one")
		return false
	}

	r.names = append(r.names, info.Name)
	r.sheets[info.Name] = info
	return true
}

// Build returns the collected sheets. The builder must not be used afterwards.
func (b *Builder) Build() *Result {
	r := b.result
	b.result = nil
	return r
}

// Len returns the number of registered sheets.
func (r *Result) Len() int {
	return len(r.names)
}

// SheetNames returns the sheet names in registration order.
func (r *Result) SheetNames() []string {
	return append([]string(nil), r.names...)
}

// Lookup returns a copy of the named sheet.
func (r *Result) Lookup(name string) (SheetInfo, bool) {
	info, ok := r.sheets[name]
	if !ok {
		return SheetInfo{}, false
	}
	info.Table = info.Table.clone()
	info.Merged = append([]workbook.MergedRegion{}, info.Merged...)
	return info, true
}

// Sheet returns a copy of the named table, or an empty table when the sheet
// is unknown.
func (r *Result) Sheet(name string) Table {
	info, ok := r.sheets[name]
	if !ok {
		return Table{}
	}
	return info.Table.clone()
}

// MergedRegions returns the merged regions of the named sheet.
func (r *Result) MergedRegions(name string) []workbook.MergedRegion {
	return append([]workbook.MergedRegion{}, r.sheets[name].Merged...)
}

// Cell returns the value at (row, col) of the named sheet. An unknown sheet
// yields "" silently; a coordinate outside the table yields "" and an error
// diagnostic.
func (r *Result) Cell(sheet string, row, col int) string {
	info, ok := r.sheets[sheet]
	if !ok {
		return ""
	}

	t := info.Table
	if row < 0 || row >= len(t) || col < 0 || col >= len(t[row]) {
		r.log.WithFields(logrus.Fields{
			"sheet": sheet,
			"row":   row,
			"col":   col,
		}).Error("cell is out of range")
		return ""
	}
	return t[row][col]
}

func (t Table) clone() Table {
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = append([]string(nil), row...)
	}
	return out
}
