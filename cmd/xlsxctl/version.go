package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set by the release build through -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// libraryVersion reports the sheetkit module version compiled into the binary.
func libraryVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == "github.com/joshuapare/sheetkit" {
			if dep.Replace != nil {
				return dep.Version + " (local)"
			}
			return dep.Version
		}
	}
	return "unknown"
}

func runVersion() error {
	lib := libraryVersion()
	if jsonOut {
		return printJSON(map[string]string{
			"version":  version,
			"commit":   commit,
			"built":    date,
			"sheetkit": lib,
		})
	}
	fmt.Printf("xlsxctl %s\n", version)
	fmt.Printf("  commit:   %s\n", commit)
	fmt.Printf("  built:    %s\n", date)
	fmt.Printf("  sheetkit: %s\n", lib)
	return nil
}
