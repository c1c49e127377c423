package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sheetkit/xlsx/styles"
)

func init() {
	rootCmd.AddCommand(newIsDateCmd())
}

func newIsDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "isdate <code>...",
		Short: "Classify number format codes as date or not",
		Long: `The isdate command runs the date classifier on each argument. An integer
argument is taken as a built-in number format id.

Example:
  xlsxctl isdate "yyyy-mm-dd" "0.00" "[h]:mm:ss"
  xlsxctl isdate 14 22 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIsDate(args)
		},
	}
}

type dateVerdict struct {
	Input string `json:"input"`
	Code  string `json:"code"`
	Date  bool   `json:"date"`
}

func runIsDate(args []string) error {
	builtins := styles.NewBuiltins()
	verdicts := make([]dateVerdict, 0, len(args))
	for _, arg := range args {
		id, code := -1, arg
		if n, err := strconv.Atoi(arg); err == nil && builtins.IsReserved(n) {
			id = n
			code, _ = builtins.Code(n)
		}
		verdicts = append(verdicts, dateVerdict{Input: arg, Code: code, Date: styles.IsDateFormat(id, code)})
	}

	if jsonOut {
		return printJSON(verdicts)
	}
	for _, v := range verdicts {
		printInfo("%t\t%s\n", v.Date, v.Input)
	}
	return nil
}
