package recordio

import (
	"encoding/json"
	"fmt"
	"os"
)

// Appender writes one record per line to an output file. With streaming
// enabled (the default) every append is synced to disk before returning,
// so a crash after Append leaves a complete line and a crash during
// Append leaves none visible to a subsequent reader.
type Appender[T any] struct {
	f      *os.File
	path   string
	stream bool
}

type AppenderOption func(*appenderOptions)

type appenderOptions struct {
	appendMode bool
	stream     bool
}

// WithAppend opens the file in append mode instead of truncating,
// preserving records from a previous interrupted run.
func WithAppend() AppenderOption {
	return func(o *appenderOptions) { o.appendMode = true }
}

// WithBuffered disables the per-record sync; records are only guaranteed
// durable after Close.
func WithBuffered() AppenderOption {
	return func(o *appenderOptions) { o.stream = false }
}

func OpenAppender[T any](path string, opts ...AppenderOption) (*Appender[T], error) {
	o := appenderOptions{stream: true}
	for _, opt := range opts {
		opt(&o)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if o.appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	return &Appender[T]{f: f, path: path, stream: o.stream}, nil
}

// Append serializes exactly one record per line. The line is written in a
// single Write call so concurrent readers never observe a partial record.
func (a *Appender[T]) Append(rec T) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if _, err := a.f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append to %s: %w", a.path, err)
	}
	if a.stream {
		if err := a.f.Sync(); err != nil {
			return fmt.Errorf("sync %s: %w", a.path, err)
		}
	}
	return nil
}

func (a *Appender[T]) Close() error {
	if err := a.f.Sync(); err != nil {
		a.f.Close()
		return fmt.Errorf("sync %s: %w", a.path, err)
	}
	if err := a.f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", a.path, err)
	}
	return nil
}
