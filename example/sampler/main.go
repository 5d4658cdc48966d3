package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"excelarray/internal/sample"
)

// go run ./example/sampler -output=./Excel
func main() {
	outputDir := flag.String("output", "Excel", "Directory to write the sample workbooks to")
	flag.Parse()

	logrus.Info("Starting Excel file generation...")

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logrus.WithError(err).Fatal("Failed to create output directory")
	}

	files := []struct {
		name  string
		write func(path string) error
	}{
		{"items.xlsx", func(path string) error { return sample.WriteItems(path, sample.SheetItems) }},
		// 같은 시트 이름을 다시 쓰므로 로드 시 중복 진단이 나온다
		{"items_and_notes.xlsx", sample.WriteItemsAndNotes},
	}

	for _, file := range files {
		path := filepath.Join(*outputDir, file.name)
		if err := file.write(path); err != nil {
			logrus.WithError(err).WithField("file", path).Fatal("Failed to write sample workbook")
		}
		logrus.WithField("file", path).Info("Sample workbook saved")
	}

	logrus.Info("Sample generation completed")
}
