package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"excelarray/extract"
	"excelarray/loader"
)

// go run . --dir=../../Excel sheets
var (
	inputDir      string
	assetsPath    string
	skipMalformed bool
	verbose       bool
	showProgress  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "excelarray",
		Short: "Load Excel sheets into string tables",
		Long: `excelarray reads every .xlsx and .xls workbook in a directory and turns
each sheet into a table of strings, resolving merged cells and skipping
separator rows.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(os.Stderr)
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
				printBanner()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&inputDir, "dir", "", "Directory containing Excel files (default: derived from --assets)")
	flags.StringVar(&assetsPath, "assets", loader.DefaultAssetsPath, "Application asset path; \"Assets\" is replaced with \"Excel\"")
	flags.BoolVar(&skipMalformed, "skip-malformed", false, "Log and skip unreadable workbooks instead of failing")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&showProgress, "progress", false, "Show a progress bar while loading")

	rootCmd.AddCommand(newSheetsCmd(), newShowCmd(), newCellCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// load runs one export with the flag configuration.
func load() (*extract.Result, error) {
	opts := loader.Options{
		Dir:           inputDir,
		AssetsPath:    assetsPath,
		SkipMalformed: skipMalformed,
		Logger:        logrus.StandardLogger(),
	}

	if showProgress {
		bar := progressbar.NewOptions(0,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("loading workbooks"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		opts.Progress = bar
	}

	result, err := loader.Export(opts)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}
	return result, nil
}

func printBanner() {
	banner := `
    ███████╗██╗  ██╗ ██████╗███████╗██╗
    ██╔════╝╚██╗██╔╝██╔════╝██╔════╝██║
    █████╗   ╚███╔╝ ██║     █████╗  ██║
    ██╔══╝   ██╔██╗ ██║     ██╔══╝  ██║
    ███████╗██╔╝ ██╗╚██████╗███████╗███████╗
    ╚══════╝╚═╝  ╚═╝ ╚═════╝╚══════╝╚══════╝
                                   v1.0.0
    Excel sheets to string arrays
    `
	fmt.Fprintln(os.Stderr, banner)
}
