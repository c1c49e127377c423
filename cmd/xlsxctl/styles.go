package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStylesCmd())
}

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles <file>",
		Short: "List cell formats",
		Long: `The styles command lists every cell format with its facet ids, its
number format code and whether it renders dates.

Example:
  xlsxctl styles report.xlsx
  xlsxctl styles report.xlsx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStyles(args)
		},
	}
}

type cellFormat struct {
	Index      int    `json:"index"`
	NumFmtID   int    `json:"numFmtId"`
	NumFmt     string `json:"numFmt"`
	FontID     int    `json:"fontId"`
	FillID     int    `json:"fillId"`
	BorderID   int    `json:"borderId"`
	Vertical   string `json:"vertical,omitempty"`
	Horizontal string `json:"horizontal,omitempty"`
	Date       bool   `json:"date"`
}

func runStyles(args []string) error {
	wb, err := openWorkbook(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	st := wb.Styles()
	_, _, _, _, n := st.Counts()
	formats := make([]cellFormat, 0, n)
	for i := range n {
		xf, err := st.XF(i)
		if err != nil {
			return err
		}
		isDate, err := st.IsDate(i)
		if err != nil {
			return err
		}
		code, _ := st.NumFmtCode(xf.NumFmtID)
		cf := cellFormat{
			Index:    i,
			NumFmtID: xf.NumFmtID,
			NumFmt:   code,
			FontID:   xf.FontID,
			FillID:   xf.FillID,
			BorderID: xf.BorderID,
			Date:     isDate,
		}
		if xf.Vertical != 0 {
			cf.Vertical = xf.Vertical.String()
		}
		if xf.Horizontal != 0 {
			cf.Horizontal = xf.Horizontal.String()
		}
		formats = append(formats, cf)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":    args[0],
			"formats": formats,
			"count":   len(formats),
		})
	}
	for _, cf := range formats {
		printInfo("%d\tnumFmt=%d %q\tfont=%d fill=%d border=%d\tdate=%t\n",
			cf.Index, cf.NumFmtID, cf.NumFmt, cf.FontID, cf.FillID, cf.BorderID, cf.Date)
	}
	return nil
}
