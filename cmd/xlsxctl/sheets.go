package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSheetsCmd())
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <file>",
		Short: "List the worksheets of a workbook",
		Long: `The sheets command lists every worksheet with its position, name,
sheet id and part name.

Example:
  xlsxctl sheets report.xlsx
  xlsxctl sheets report.xlsx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSheets(args)
		},
	}
}

func runSheets(args []string) error {
	wb, err := openWorkbook(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if jsonOut {
		return printJSON(map[string]any{
			"file":     args[0],
			"date1904": wb.Date1904(),
			"sheets":   sheets,
			"count":    len(sheets),
		})
	}

	for i, s := range sheets {
		hidden := ""
		if s.Hidden {
			hidden = " (hidden)"
		}
		printInfo("%d\t%s\tid=%d\t%s%s\n", i, s.Name, s.ID, s.Part, hidden)
	}
	return nil
}
