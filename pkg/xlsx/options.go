package xlsx

import (
	"log/slog"

	"github.com/joshuapare/sheetkit/xlsx/sheet"
	"github.com/joshuapare/sheetkit/xlsx/sst"
	"github.com/joshuapare/sheetkit/xlsx/styles"
)

// Options controls how a workbook is read.
type Options struct {
	// StringPageSize is the number of shared strings kept decoded at once.
	// Default: 1024.
	StringPageSize int

	// BufferSize is the initial scan buffer for sheet and string parts.
	// Default: 64 KiB.
	BufferSize int

	// MaxBufferSize caps scan buffer growth; one row or string entry larger
	// than this is a structural error.
	// Default: 64 MiB.
	MaxBufferSize int

	// Logger receives debug events from every layer. Default: discard.
	Logger *slog.Logger
}

// DefaultOptions returns the default read options.
func DefaultOptions() *Options {
	return &Options{
		StringPageSize: 1024,
		BufferSize:     64 << 10,
		MaxBufferSize:  64 << 20,
	}
}

func (o *Options) withDefaults() Options {
	d := *DefaultOptions()
	if o != nil {
		if o.StringPageSize > 0 {
			d.StringPageSize = o.StringPageSize
		}
		if o.BufferSize > 0 {
			d.BufferSize = o.BufferSize
		}
		if o.MaxBufferSize > 0 {
			d.MaxBufferSize = o.MaxBufferSize
		}
		d.Logger = o.Logger
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	return d
}

func (o Options) stringOptions() *sst.Options {
	return &sst.Options{
		PageSize:      o.StringPageSize,
		BufferSize:    o.BufferSize,
		MaxBufferSize: o.MaxBufferSize,
		Logger:        o.Logger,
	}
}

func (o Options) sheetOptions(date1904 bool) *sheet.Options {
	return &sheet.Options{
		BufferSize:    o.BufferSize,
		MaxBufferSize: o.MaxBufferSize,
		Date1904:      date1904,
		Logger:        o.Logger,
	}
}

// BuilderOptions controls how a workbook is written.
type BuilderOptions struct {
	// Date1904 writes dates in the 1904 date system.
	Date1904 bool

	// Builtins is the built-in number format table. Default:
	// styles.NewBuiltins().
	Builtins *styles.Builtins

	// StringCapacity pre-sizes the shared string table. Default: 256.
	StringCapacity int

	// FullSync requests F_FULLFSYNC on darwin when saving.
	FullSync bool
}
