package sheet

import "log/slog"

// Options configures Reader and Writer.
type Options struct {
	// BufferSize is the initial scan buffer size in bytes.
	// Default: 64 KiB.
	BufferSize int

	// MaxBufferSize caps buffer growth. A single row larger than this is a
	// structural error.
	// Default: 64 MiB.
	MaxBufferSize int

	// DefaultCells pre-sizes the cell slice of rows without a spans attribute.
	// Default: 16.
	DefaultCells int

	// Date1904 selects the 1904 date system for Writer time values.
	Date1904 bool

	// Logger receives debug events for buffer growth. Default: discard.
	Logger *slog.Logger
}

// DefaultOptions returns the default options.
func DefaultOptions() *Options {
	return &Options{
		BufferSize:    64 << 10,
		MaxBufferSize: 64 << 20,
		DefaultCells:  16,
	}
}

func (o *Options) withDefaults() Options {
	d := *DefaultOptions()
	if o != nil {
		d.Date1904 = o.Date1904
		d.Logger = o.Logger
		if o.BufferSize > 0 {
			d.BufferSize = o.BufferSize
		}
		if o.MaxBufferSize > 0 {
			d.MaxBufferSize = o.MaxBufferSize
		}
		if o.DefaultCells > 0 {
			d.DefaultCells = o.DefaultCells
		}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	return d
}
