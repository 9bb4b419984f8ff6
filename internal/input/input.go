// Package input resolves the content sources given on the command line.
// A source is either a local file path or "-" for standard input.
package input

import (
	"fmt"
	"io"
	"os"
)

// MaxInputSizeBytes caps how much data a single source may provide, to
// prevent memory overload on unbounded input.
const MaxInputSizeBytes = 512 * 1024 * 1024

// limitedReadCloser wraps an io.ReadCloser to enforce the size limit.
type limitedReadCloser struct {
	io.ReadCloser
	n      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.n <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.n {
		p = p[0:l.n]
	}
	n, err = l.ReadCloser.Read(p)
	l.n -= int64(n)
	return
}

// Open returns a reader for the given source. The caller closes it.
func Open(source string) (io.ReadCloser, error) {
	if source == "-" {
		return &limitedReadCloser{
			ReadCloser: os.Stdin,
			n:          MaxInputSizeBytes,
			source:     "stdin",
		}, nil
	}
	return openFile(source)
}

// openFile opens a local file for reading with better error messages.
func openFile(path string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if info.Size() > MaxInputSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, info.Size(), MaxInputSizeBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	return f, nil
}
