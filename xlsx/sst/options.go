package sst

import "log/slog"

// Options controls the paged Reader.
type Options struct {
	// PageSize is the number of entries held in memory at once.
	// Default: 1024.
	PageSize int

	// BufferSize is the initial scan buffer size in bytes.
	// Default: 64 KiB.
	BufferSize int

	// MaxBufferSize caps buffer growth; a single <si> entry larger than this
	// is a structural error.
	// Default: 16 MiB.
	MaxBufferSize int

	// Logger receives debug events for page reloads. Default: discard.
	Logger *slog.Logger
}

// DefaultOptions returns the default reader options.
func DefaultOptions() *Options {
	return &Options{
		PageSize:      1024,
		BufferSize:    64 << 10,
		MaxBufferSize: 16 << 20,
	}
}

func (o *Options) withDefaults() Options {
	d := DefaultOptions()
	if o == nil {
		d.Logger = slog.New(slog.DiscardHandler)
		return *d
	}
	out := *o
	if out.PageSize <= 0 {
		out.PageSize = d.PageSize
	}
	if out.BufferSize <= 0 {
		out.BufferSize = d.BufferSize
	}
	if out.MaxBufferSize <= 0 {
		out.MaxBufferSize = d.MaxBufferSize
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.DiscardHandler)
	}
	return out
}
