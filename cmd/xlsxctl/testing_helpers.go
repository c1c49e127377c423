package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureConfig = `date1904: false
sheets:
  - name: People
    columns:
      - name: Name
        font: {bold: true, color: red}
      - name: Born
        type: date
        format: yyyy-mm-dd
        border: thin black
      - name: Score
        type: number
        format: "0.00"
        align: right
    rows:
      - [Ada, 1985-12-10, 9.5]
      - [Grace, {value: 1906-12-09, fill: yellow}, "7.25"]
      - ["Tab\there", null, 3]
  - name: Empty
`

// resetFlags restores every global flag to its default.
func resetFlags() {
	quiet, verbose, jsonOut = false, false, false
	logLevel = "warn"
	dumpSheet, dumpSheetName, dumpLimit, dumpDateLayout = 0, "", 0, "2006-01-02"
	stringsFrom, stringsCount = 0, 20
	buildConfigPath = ""
}

// buildFixture writes the fixture workbook and returns its path.
func buildFixture(t *testing.T) string {
	t.Helper()
	resetFlags()
	dir := t.TempDir()
	buildConfigPath = filepath.Join(dir, "build.yaml")
	require.NoError(t, os.WriteFile(buildConfigPath, []byte(fixtureConfig), 0o644))

	out := filepath.Join(dir, "fixture.xlsx")
	_, err := captureOutput(t, func() error { return runBuild([]string{out}) })
	require.NoError(t, err)
	resetFlags()
	return out
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}
