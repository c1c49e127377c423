// Command benchmark_parser turns `go test -bench . -benchmem ./...` output
// into a markdown report grouped by package.
//
//	go test -run '^$' -bench . -benchmem ./... | go run ./scripts -output bench.md
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Package     string
	Name        string
	Procs       int
	Iterations  int
	NsPerOp     float64
	MBPerSec    float64
	BytesPerOp  int64
	AllocsPerOp int64
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

// BenchmarkSheetReader-8   100   1234567 ns/op   45.67 MB/s   4096 B/op   8 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^(Benchmark\S+?)(?:-(\d+))?\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+MB/s)?(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`,
)

func main() {
	flag.Parse()

	in := io.Reader(os.Stdin)
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	results := parseBenchmarks(bufio.NewScanner(in))
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	report := generateMarkdownReport(results, time.Now())
	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var (
		results []BenchmarkResult
		pkg     string
	)
	for scanner.Scan() {
		line := scanner.Text()

		// go test -json wraps each output line in an event.
		var event struct {
			Package string
			Output  string
		}
		if err := json.Unmarshal([]byte(line), &event); err == nil && event.Output != "" {
			line = event.Output
			if event.Package != "" {
				pkg = event.Package
			}
		}
		line = strings.TrimSpace(line)

		if rest, ok := strings.CutPrefix(line, "pkg:"); ok {
			pkg = strings.TrimSpace(rest)
			continue
		}
		m := benchmarkRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		r := BenchmarkResult{Package: pkg, Name: strings.TrimPrefix(m[1], "Benchmark")}
		r.Procs, _ = strconv.Atoi(m[2])
		r.Iterations, _ = strconv.Atoi(m[3])
		r.NsPerOp, _ = strconv.ParseFloat(m[4], 64)
		if m[5] != "" {
			r.MBPerSec, _ = strconv.ParseFloat(m[5], 64)
		}
		if m[6] != "" {
			r.BytesPerOp, _ = strconv.ParseInt(m[6], 10, 64)
		}
		if m[7] != "" {
			r.AllocsPerOp, _ = strconv.ParseInt(m[7], 10, 64)
		}
		results = append(results, r)
	}
	return results
}

func generateMarkdownReport(results []BenchmarkResult, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("# Benchmark Report\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	byPkg := make(map[string][]BenchmarkResult)
	var pkgs []string
	for _, r := range results {
		if _, ok := byPkg[r.Package]; !ok {
			pkgs = append(pkgs, r.Package)
		}
		byPkg[r.Package] = append(byPkg[r.Package], r)
	}
	sort.Strings(pkgs)

	for _, pkg := range pkgs {
		name := pkg
		if name == "" {
			name = "(unknown package)"
		}
		fmt.Fprintf(&sb, "## %s\n\n", name)
		sb.WriteString("| Benchmark | ns/op | MB/s | Memory (B/op) | Allocs |\n")
		sb.WriteString("|-----------|-------|------|---------------|--------|\n")
		rs := byPkg[pkg]
		sort.Slice(rs, func(i, j int) bool { return rs[i].Name < rs[j].Name })
		for _, r := range rs {
			mbs := "-"
			if r.MBPerSec > 0 {
				mbs = fmt.Sprintf("%.2f", r.MBPerSec)
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				r.Name, formatNumber(r.NsPerOp), mbs, formatBytes(r.BytesPerOp), formatNumber(float64(r.AllocsPerOp)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatNumber(n float64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.2fG", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.2fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.2fK", n/1e3)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
