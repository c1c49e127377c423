package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/sheetkit/pkg/xlsx"
	"github.com/joshuapare/sheetkit/xlsx/styles"
)

// buildConfig is the YAML description of a workbook:
//
//	date1904: false
//	sheets:
//	  - name: People
//	    columns:
//	      - name: Name
//	        font: {bold: true}
//	      - name: Born
//	        type: date
//	        format: yyyy-mm-dd
//	        border: thin black
//	        align: center
//	    rows:
//	      - [Ada, 1985-12-10]
//	      - [Grace, {value: 1906-12-09, fill: yellow}]
type buildConfig struct {
	Date1904 bool          `yaml:"date1904"`
	Sheets   []sheetConfig `yaml:"sheets"`
}

type sheetConfig struct {
	Name    string         `yaml:"name"`
	Columns []columnConfig `yaml:"columns"`
	Rows    [][]any        `yaml:"rows"`
}

type columnConfig struct {
	Name string `yaml:"name"`
	// Type converts row values: auto (default), string, number, date or bool.
	Type        string `yaml:"type"`
	styleConfig `yaml:",inline"`
}

type styleConfig struct {
	Format string      `yaml:"format"`
	Font   *fontConfig `yaml:"font"`
	Fill   string      `yaml:"fill"`
	Border string      `yaml:"border"`
	Align  string      `yaml:"align"`
}

type fontConfig struct {
	Name      string  `yaml:"name"`
	Size      float64 `yaml:"size"`
	Bold      bool    `yaml:"bold"`
	Italic    bool    `yaml:"italic"`
	Underline bool    `yaml:"underline"`
	Strike    bool    `yaml:"strike"`
	Color     string  `yaml:"color"`
}

// cellConfig is a row entry written as a mapping: a value with a style
// override.
type cellConfig struct {
	Value       any `yaml:"value"`
	styleConfig `yaml:",inline"`
}

// loadBuildConfig reads and validates a build file.
func loadBuildConfig(path string) (*buildConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	var cfg buildConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if len(cfg.Sheets) == 0 {
		return nil, fmt.Errorf("config %s declares no sheets", path)
	}
	for i, s := range cfg.Sheets {
		for j, c := range s.Columns {
			switch c.Type {
			case "", "auto", "string", "number", "date", "bool":
			default:
				return nil, fmt.Errorf("sheet %d column %d: unknown type %q", i+1, j+1, c.Type)
			}
		}
	}
	return &cfg, nil
}

func (sc styleConfig) style() (styles.Style, error) {
	st := styles.Style{NumFmt: sc.Format}
	if f := sc.Font; f != nil {
		st.Font = styles.Font{
			Name:      f.Name,
			Size:      f.Size,
			Bold:      f.Bold,
			Italic:    f.Italic,
			Underline: f.Underline,
			Strike:    f.Strike,
		}
		if f.Color != "" {
			c, err := styles.ParseColor(f.Color)
			if err != nil {
				return st, err
			}
			st.Font.Color = c
		}
	}
	if sc.Fill != "" {
		c, err := styles.ParseColor(sc.Fill)
		if err != nil {
			return st, err
		}
		st.Fill = styles.SolidFill(c)
	}
	if sc.Border != "" {
		b, err := styles.ParseBorder(sc.Border)
		if err != nil {
			return st, err
		}
		st.Border = b
	}
	if sc.Align != "" {
		v, h, err := styles.ParseAlign(sc.Align)
		if err != nil {
			return st, err
		}
		st.Vertical, st.Horizontal = v, h
	}
	return st, nil
}

func (sc styleConfig) isZero() bool {
	return sc.Format == "" && sc.Font == nil && sc.Fill == "" && sc.Border == "" && sc.Align == ""
}

// columns converts the schema of s.
func (s sheetConfig) columns() ([]xlsx.Column, error) {
	cols := make([]xlsx.Column, len(s.Columns))
	for i, c := range s.Columns {
		st, err := c.style()
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		cols[i] = xlsx.Column{Name: c.Name, Style: st}
	}
	return cols, nil
}

// cellValue converts one YAML row entry for column col.
func (s sheetConfig) cellValue(v any, col int) (any, error) {
	typ := ""
	if col < len(s.Columns) {
		typ = s.Columns[col].Type
	}

	if m, ok := v.(map[string]any); ok {
		raw, err := yaml.Marshal(m)
		if err != nil {
			return nil, err
		}
		var cc cellConfig
		if err := yaml.Unmarshal(raw, &cc); err != nil {
			return nil, err
		}
		val, err := convertValue(cc.Value, typ)
		if err != nil || cc.styleConfig.isZero() {
			return val, err
		}
		st, err := cc.style()
		if err != nil {
			return nil, err
		}
		return xlsx.Styled{Value: val, Style: st}, nil
	}
	return convertValue(v, typ)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func convertValue(v any, typ string) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch typ {
	case "string":
		return fmt.Sprint(v), nil
	case "number":
		switch x := v.(type) {
		case int, int64, float64:
			return x, nil
		case string:
			return strconv.ParseFloat(strings.TrimSpace(x), 64)
		}
	case "bool":
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			return strconv.ParseBool(strings.TrimSpace(x))
		}
	case "date":
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, x); err == nil {
					return t, nil
				}
			}
			return nil, fmt.Errorf("cannot parse %q as a date", x)
		}
	default:
		return v, nil
	}
	return nil, fmt.Errorf("cannot convert %v (%T) to %s", v, v, typ)
}
