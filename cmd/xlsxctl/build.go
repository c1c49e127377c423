package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sheetkit/pkg/xlsx"
)

var buildConfigPath string

func init() {
	cmd := newBuildCmd()
	cmd.Flags().StringVarP(&buildConfigPath, "config", "c", "", "YAML build file")
	_ = cmd.MarkFlagRequired("config")
	rootCmd.AddCommand(cmd)
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build --config <build.yaml> <out.xlsx>",
		Short: "Write a workbook from a YAML description",
		Long: `The build command writes a workbook from a YAML file declaring sheets,
their column schema (names, value types and styles) and rows. The output is
replaced atomically.

Example:
  xlsxctl build --config report.yaml report.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args)
		},
	}
}

func runBuild(args []string) error {
	cfg, err := loadBuildConfig(buildConfigPath)
	if err != nil {
		return err
	}

	b := xlsx.NewBuilder(&xlsx.BuilderOptions{Date1904: cfg.Date1904})
	total := 0
	for _, sc := range cfg.Sheets {
		cols, err := sc.columns()
		if err != nil {
			return fmt.Errorf("sheet %q: %w", sc.Name, err)
		}
		s, err := b.AddSheet(sc.Name, cols...)
		if err != nil {
			return fmt.Errorf("sheet %q: %w", sc.Name, err)
		}
		for r, row := range sc.Rows {
			vals := make([]any, len(row))
			for i, v := range row {
				if vals[i], err = sc.cellValue(v, i); err != nil {
					return fmt.Errorf("sheet %q row %d column %d: %w", sc.Name, r+1, i+1, err)
				}
			}
			if err := s.AddRow(vals...); err != nil {
				return fmt.Errorf("sheet %q row %d: %w", sc.Name, r+1, err)
			}
		}
		total += len(sc.Rows)
		logger.Debug("sheet built", "name", sc.Name, "rows", len(sc.Rows), "columns", len(cols))
	}

	if err := b.Save(args[0]); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	_, _, _, _, xfs := b.Styles().Counts()
	logger.Info("workbook written", "path", args[0], "sheets", len(cfg.Sheets), "rows", total,
		"strings", b.Strings().Len(), "cellFormats", xfs)

	if jsonOut {
		return printJSON(map[string]any{
			"file":   args[0],
			"sheets": len(cfg.Sheets),
			"rows":   total,
		})
	}
	printInfo("wrote %d sheet(s), %d row(s) to %s\n", len(cfg.Sheets), total, args[0])
	return nil
}
