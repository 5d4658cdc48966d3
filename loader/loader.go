// Package loader exports every spreadsheet of a directory into an
// extract.Result.
package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"excelarray/extract"
	"excelarray/workbook"
)

const errDomain = "loader"

// DefaultAssetsPath is used when Options.AssetsPath is empty.
const DefaultAssetsPath = "Assets"

// Progress is advanced once per workbook. *progressbar.ProgressBar satisfies it.
type Progress interface {
	ChangeMax(max int)
	Add(num int) error
}

type nopProgress struct{}

func (nopProgress) ChangeMax(int) {}
func (nopProgress) Add(int) error { return nil }

// Options configures a Loader. Zero values are replaced by defaults in New.
type Options struct {
	Dir           string             // 비어 있으면 DefaultDir(AssetsPath)
	AssetsPath    string             // 호스트 애플리케이션의 Assets 경로
	SkipMalformed bool               // 손상된 파일이나 시트를 건너뛰고 계속 진행
	Formats       *workbook.Registry // 기본값: workbook.DefaultRegistry
	Logger        logrus.FieldLogger
	Progress      Progress
}

// Loader reads workbooks one at a time and registers their sheets.
type Loader struct {
	opts      Options
	extractor *extract.Extractor
}

// DefaultDir derives the spreadsheet folder from the application's asset
// path by replacing every "Assets" with "Excel".
func DefaultDir(assetsPath string) string {
	return strings.ReplaceAll(assetsPath, "Assets", "Excel")
}

func New(opts Options) *Loader {
	if opts.AssetsPath == "" {
		opts.AssetsPath = DefaultAssetsPath
	}
	if opts.Formats == nil {
		opts.Formats = workbook.DefaultRegistry
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Progress == nil {
		opts.Progress = nopProgress{}
	}
	return &Loader{
		opts:      opts,
		extractor: extract.NewExtractor(opts.Logger),
	}
}

// Export loads every supported workbook directly inside dir. An empty dir
// falls back to Options.Dir and then to DefaultDir(Options.AssetsPath).
// Each call returns a fresh Result.
func (l *Loader) Export(dir string) (*extract.Result, error) {
	if dir == "" {
		dir = l.opts.Dir
	}
	if dir == "" {
		dir = DefaultDir(l.opts.AssetsPath)
	}

	files, err := l.collectFiles(dir)
	if err != nil {
		return nil, err
	}

	l.opts.Progress.ChangeMax(len(files))
	builder := extract.NewBuilder(l.opts.Logger)

	for _, path := range files {
		if err := l.loadFile(path, builder); err != nil {
			if l.opts.SkipMalformed && errors.Is(err, workbook.ErrMalformed) {
				l.opts.Logger.WithError(err).WithField("file", path).Error("skipping malformed workbook")
			} else {
				return nil, err
			}
		}
		if err := l.opts.Progress.Add(1); err != nil {
			l.opts.Logger.WithError(err).WithField("file", path).Warn("failed to update progress")
		}
	}

	return builder.Build(), nil
}

// Export is shorthand for New(opts).Export(opts.Dir).
func Export(opts Options) (*extract.Result, error) {
	return New(opts).Export(opts.Dir)
}

// collectFiles lists the supported workbooks in dir, sorted by name.
func (l *Loader) collectFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, oops.In(errDomain).With("dir", dir).Wrapf(err, "failed to read directory")
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		// ~$로 시작하는 Office 잠금 파일은 무시
		if strings.HasPrefix(name, "~$") {
			continue
		}

		path := filepath.Join(dir, name)
		if !l.opts.Formats.Supports(path) {
			l.opts.Logger.WithField("file", path).Debug("skipping unsupported file")
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// loadFile extracts every sheet of one workbook into builder. The workbook is
// closed before loadFile returns.
func (l *Loader) loadFile(path string, builder *extract.Builder) (err error) {
	errBuilder := oops.In(errDomain).With("file", path)

	wb, err := l.opts.Formats.Open(path)
	if err != nil {
		return errBuilder.Wrapf(err, "failed to open workbook")
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil && err == nil {
			err = errBuilder.Wrapf(cerr, "failed to close workbook")
		}
	}()

	sheets, err := wb.Sheets()
	if err != nil {
		return errBuilder.Wrapf(err, "failed to read sheets")
	}

	for _, sheet := range sheets {
		table, err := l.extractor.Extract(sheet)
		if err != nil {
			if l.opts.SkipMalformed && errors.Is(err, extract.ErrNoFirstRow) {
				l.opts.Logger.WithError(err).WithFields(logrus.Fields{
					"file":  path,
					"sheet": sheet.Name(),
				}).Error("skipping sheet without a first row")
				continue
			}
			return errBuilder.With("sheet", sheet.Name()).Wrapf(err, "failed to extract sheet")
		}

		builder.Add(extract.SheetInfo{
			Name:   sheet.Name(),
			Source: path,
			Table:  table,
			Merged: append([]workbook.MergedRegion{}, sheet.MergedRegions()...),
		})
	}
	return nil
}
