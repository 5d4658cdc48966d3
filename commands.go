package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List the loaded sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range result.SheetNames() {
				info, _ := result.Lookup(name)
				cols := 0
				if len(info.Table) > 0 {
					cols = len(info.Table[0])
				}
				fmt.Fprintf(out, "%s\t%dx%d\tmerged=%d\t%s\n",
					name, len(info.Table), cols, len(info.Merged), info.Source)
			}
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show SHEET",
		Short: "Print a sheet as tab-separated rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := load()
			if err != nil {
				return err
			}

			name := args[0]
			if _, ok := result.Lookup(name); !ok {
				return fmt.Errorf("sheet not found: %s", name)
			}

			out := cmd.OutOrStdout()
			for _, row := range result.Sheet(name) {
				fmt.Fprintln(out, strings.Join(row, "\t"))
			}

			regions := result.MergedRegions(name)
			if len(regions) > 0 {
				refs := make([]string, len(regions))
				for i, r := range regions {
					refs[i] = r.A1()
				}
				fmt.Fprintf(out, "\nmerged: %s\n", strings.Join(refs, ", "))
			}
			return nil
		},
	}
}

func newCellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cell SHEET ROW COL",
		Short: "Print a single value (zero-based row and column)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid row %q: %w", args[1], err)
			}
			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid column %q: %w", args[2], err)
			}

			result, err := load()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Cell(args[0], row, col))
			return nil
		},
	}
}
