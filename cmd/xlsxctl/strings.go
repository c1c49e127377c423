package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sheetkit/pkg/types"
)

var (
	stringsFrom  int
	stringsCount int
)

func init() {
	cmd := newStringsCmd()
	cmd.Flags().IntVar(&stringsFrom, "from", 0, "First shared string index")
	cmd.Flags().IntVar(&stringsCount, "count", 20, "Number of entries to print (0 = all)")
	rootCmd.AddCommand(cmd)
}

func newStringsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strings <file>",
		Short: "Page through the shared string table",
		Long: `The strings command prints entries of the shared string table by index.

Example:
  xlsxctl strings report.xlsx
  xlsxctl strings report.xlsx --from 1000 --count 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrings(args)
		},
	}
}

type stringEntry struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func runStrings(args []string) error {
	if stringsFrom < 0 {
		return fmt.Errorf("--from must not be negative")
	}
	wb, err := openWorkbook(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	var entries []stringEntry
	if tbl := wb.Strings(); tbl != nil {
		for i := stringsFrom; stringsCount == 0 || i < stringsFrom+stringsCount; i++ {
			s, err := tbl.Get(i)
			if errors.Is(err, types.ErrBounds) {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read shared string %d: %w", i, err)
			}
			entries = append(entries, stringEntry{Index: i, Text: s})
		}
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":    args[0],
			"strings": entries,
			"count":   len(entries),
		})
	}
	for _, e := range entries {
		printInfo("%d\t%q\n", e.Index, e.Text)
	}
	return nil
}
