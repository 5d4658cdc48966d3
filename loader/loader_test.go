package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/xuri/excelize/v2"

	"excelarray/extract"
	"excelarray/internal/sample"
	"excelarray/workbook"
)

type failingProgress struct{ calls int }

func (p *failingProgress) ChangeMax(int) {}

func (p *failingProgress) Add(int) error {
	p.calls++
	return errors.New("terminal closed")
}

type countingProgress struct {
	max, added int
}

func (p *countingProgress) ChangeMax(max int) { p.max = max }

func (p *countingProgress) Add(num int) error {
	p.added += num
	return nil
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultDir(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/game/Assets", "/game/Excel"},
		{"Assets", "Excel"},
		{"/Assets/sub/Assets", "/Excel/sub/Excel"},
		{"/no/match", "/no/match"},
	}
	for _, tt := range tests {
		if got := DefaultDir(tt.input); got != tt.expected {
			t.Errorf("DefaultDir(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestExportItems(t *testing.T) {
	dir := t.TempDir()
	if err := sample.WriteItems(filepath.Join(dir, "items.xlsx"), sample.SheetItems); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "readme.txt"), "not a workbook")
	writeFile(t, filepath.Join(dir, "~$items.xlsx"), "office lock file")
	if err := os.Mkdir(filepath.Join(dir, "nested.xlsx"), 0o755); err != nil {
		t.Fatal(err)
	}

	log, hook := test.NewNullLogger()
	progress := &countingProgress{}
	result, err := Export(Options{Dir: dir, Logger: log, Progress: progress})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if got := result.SheetNames(); !reflect.DeepEqual(got, []string{sample.SheetItems}) {
		t.Fatalf("SheetNames = %v", got)
	}

	expected := extract.Table{
		{"ID", "Name", "Price"},
		{"Header", "Header", "Header"},
		{"c0", "c1", "c2"},
		{"1", "Sword", "150"},
		{"", "", ""},
		{"2", "TRUE", "05-Jan-2024"},
	}
	if got := result.Sheet(sample.SheetItems); !reflect.DeepEqual(got, expected) {
		t.Errorf("Sheet(Items) = %v, expected %v", got, expected)
	}

	regions := result.MergedRegions(sample.SheetItems)
	if len(regions) != 1 || regions[0].A1() != "A2:C2" {
		t.Errorf("MergedRegions = %v", regions)
	}

	if progress.max != 1 || progress.added != 1 {
		t.Errorf("progress = %+v, expected max 1 and 1 added", progress)
	}

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 1 {
		t.Errorf("expected 1 missing-row warning, got %d", warnings)
	}

	hook.Reset()
	if got := result.Cell(sample.SheetItems, 99, 0); got != "" {
		t.Errorf("Cell(Items,99,0) = %q, expected \"\"", got)
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel {
		t.Errorf("expected an out-of-range diagnostic, got %+v", e)
	}
}

func TestExportSkipsSeparatorInMergedColumn(t *testing.T) {
	dir := t.TempDir()
	if err := sample.WriteItemsAndNotes(filepath.Join(dir, "book.xlsx")); err != nil {
		t.Fatal(err)
	}

	log, _ := test.NewNullLogger()
	result, err := Export(Options{Dir: dir, Logger: log})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if got := result.SheetNames(); !reflect.DeepEqual(got, []string{sample.SheetItems, sample.SheetNotes}) {
		t.Fatalf("SheetNames = %v", got)
	}

	// 병합 영역 안의 빈 첫 칸도 구분선으로 취급된다
	expected := extract.Table{
		{"Key", "Value"},
		{"group", "alpha"},
	}
	if got := result.Sheet(sample.SheetNotes); !reflect.DeepEqual(got, expected) {
		t.Errorf("Sheet(Notes) = %v, expected %v", got, expected)
	}
}

func TestExportDuplicateSheetFirstWins(t *testing.T) {
	dir := t.TempDir()
	if err := sample.WriteItems(filepath.Join(dir, "a.xlsx"), sample.SheetItems); err != nil {
		t.Fatal(err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sample.SheetItems); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(sample.SheetItems, "A1", "other"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(filepath.Join(dir, "b.xlsx")); err != nil {
		t.Fatal(err)
	}
	f.Close()

	log, hook := test.NewNullLogger()
	result, err := Export(Options{Dir: dir, Logger: log})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if result.Len() != 1 {
		t.Errorf("expected 1 sheet, got %d", result.Len())
	}
	if got := result.Cell(sample.SheetItems, 0, 0); got != "ID" {
		t.Errorf("expected the sheet from a.xlsx to win, got %q", got)
	}

	var duplicate *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			duplicate = e
		}
	}
	if duplicate == nil || duplicate.Data["file"] != filepath.Join(dir, "b.xlsx") {
		t.Errorf("expected a duplicate diagnostic for b.xlsx, got %+v", duplicate)
	}
}

func TestExportMissingDirectory(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := Export(Options{Dir: filepath.Join(t.TempDir(), "missing"), Logger: log})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestExportMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := sample.WriteItems(filepath.Join(dir, "b.xlsx"), sample.SheetItems); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "a.xlsx"), "corrupt")

	log, _ := test.NewNullLogger()
	_, err := Export(Options{Dir: dir, Logger: log})
	if !errors.Is(err, workbook.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}

	log, hook := test.NewNullLogger()
	progress := &countingProgress{}
	result, err := Export(Options{Dir: dir, Logger: log, SkipMalformed: true, Progress: progress})
	if err != nil {
		t.Fatalf("Export with SkipMalformed failed: %v", err)
	}
	if result.Len() != 1 {
		t.Errorf("expected the valid workbook to load, got %d sheets", result.Len())
	}
	if progress.added != 2 {
		t.Errorf("expected progress for both files, got %d", progress.added)
	}

	skipped := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && e.Data["file"] == filepath.Join(dir, "a.xlsx") {
			skipped = true
		}
	}
	if !skipped {
		t.Error("expected the malformed workbook to be logged")
	}
}

func TestExportEmptySheet(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	if err := f.SaveAs(filepath.Join(dir, "empty.xlsx")); err != nil {
		t.Fatal(err)
	}
	f.Close()

	log, _ := test.NewNullLogger()
	_, err := Export(Options{Dir: dir, Logger: log})
	if !errors.Is(err, extract.ErrNoFirstRow) {
		t.Fatalf("expected ErrNoFirstRow, got %v", err)
	}

	result, err := Export(Options{Dir: dir, Logger: log, SkipMalformed: true})
	if err != nil {
		t.Fatalf("Export with SkipMalformed failed: %v", err)
	}
	if result.Len() != 0 {
		t.Errorf("expected no sheets, got %v", result.SheetNames())
	}
}

func TestExportFreshResult(t *testing.T) {
	dir := t.TempDir()
	if err := sample.WriteItems(filepath.Join(dir, "items.xlsx"), sample.SheetItems); err != nil {
		t.Fatal(err)
	}

	log, _ := test.NewNullLogger()
	l := New(Options{Logger: log})
	first, err := l.Export(dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.Export(dir)
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Error("expected a new Result per export")
	}
	if first.Len() != 1 || second.Len() != 1 {
		t.Errorf("expected 1 sheet per export, got %d and %d", first.Len(), second.Len())
	}
}

func TestExportXLS(t *testing.T) {
	dir := t.TempDir()
	copyFile(t, filepath.Join("..", "workbook", "testdata", "items.xls"), filepath.Join(dir, "Items.XLS"))

	log, hook := test.NewNullLogger()
	result, err := Export(Options{Dir: dir, Logger: log})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	expected := extract.Table{
		{"ID", "Name", "Price"},
		{"Header", "Header", "Header"},
		{"", "", ""},
		{"1", "Sword", "150"},
		{"2", "Shield", "2.5"},
	}
	if got := result.Sheet("Items"); !reflect.DeepEqual(got, expected) {
		t.Errorf("Sheet(Items) = %v, expected %v", got, expected)
	}

	regions := result.MergedRegions("Items")
	if len(regions) != 1 || regions[0].A1() != "A2:C2" {
		t.Errorf("MergedRegions = %v", regions)
	}

	e := hook.LastEntry()
	if e == nil || e.Level != logrus.WarnLevel || e.Data["row"] != 2 {
		t.Errorf("expected a missing-row warning for row 2, got %+v", e)
	}
}

func TestExportProgressErrorIsLogged(t *testing.T) {
	dir := t.TempDir()
	if err := sample.WriteItems(filepath.Join(dir, "items.xlsx"), sample.SheetItems); err != nil {
		t.Fatal(err)
	}

	log, hook := test.NewNullLogger()
	progress := &failingProgress{}
	result, err := Export(Options{Dir: dir, Logger: log, Progress: progress})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.Len() != 1 || progress.calls != 1 {
		t.Errorf("expected 1 sheet and 1 progress call, got %d and %d", result.Len(), progress.calls)
	}

	e := hook.LastEntry()
	if e == nil || e.Message != "failed to update progress" || e.Data[logrus.ErrorKey] == nil {
		t.Errorf("expected the progress error to be logged, got %+v", e)
	}
}
