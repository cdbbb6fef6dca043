package schema

import (
	"errors"
	"io"
)

// Options bounds the documents a loader accepts. Zero values disable a limit.
type Options struct {
	MaxDepth int
	MaxBytes int64
}

// LimitError reports a document that exceeded Options. Code is "too_deep" or
// "truncated".
type LimitError struct {
	Code    string
	Message string
}

func (e *LimitError) Error() string { return e.Message }

// IsLimit reports whether err is a *LimitError.
func IsLimit(err error) (*LimitError, bool) {
	var le *LimitError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

func depthError() error {
	return &LimitError{Code: "too_deep", Message: "max depth exceeded"}
}

// limitedReader fails once more than max bytes have been read.
type limitedReader struct {
	r   io.Reader
	max int64
	n   int64
}

func newLimitedReader(r io.Reader, max int64) io.Reader {
	if max <= 0 {
		return r
	}
	return &limitedReader{r: r, max: max}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n += int64(n)
	if l.n > l.max {
		return n, &LimitError{Code: "truncated", Message: "max bytes exceeded"}
	}
	return n, err
}
