package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultPrefix names exported reports when the schema does not override it.
const DefaultPrefix = "Questionnaire"

const stampLayout = "2006-01-02T15-04-05"

// Filename derives the export name from prefix and t, using the UTC timestamp
// with ':' and '.' replaced by '-' and the fractional seconds and zone dropped,
// e.g. Questionnaire_2026-10-16T08-30-00.txt.
func Filename(prefix string, t time.Time) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "_" + t.UTC().Format(stampLayout) + ".txt"
}

// Sink delivers a rendered report. It returns where the body ended up.
type Sink interface {
	Export(ctx context.Context, name string, body string) (string, error)
}

// DirSink writes reports as files under Dir, creating it when missing.
type DirSink struct {
	Dir string
}

// NewDirSink returns a sink writing into dir. An empty dir means the working
// directory.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

func (s *DirSink) Export(ctx context.Context, name string, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Fault{Name: name, Err: err}
	}
	if strings.TrimSpace(name) == "" || filepath.Base(name) != name {
		return "", &Fault{Name: name, Err: errors.New("invalid file name")}
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Fault{Name: name, Err: err}
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", &Fault{Name: name, Err: err}
	}
	return path, nil
}

// WriterSink streams the report to an io.Writer such as stdout.
type WriterSink struct {
	mu  sync.Mutex
	Out io.Writer
}

// NewWriterSink returns a sink writing to out.
func NewWriterSink(out io.Writer) *WriterSink {
	return &WriterSink{Out: out}
}

func (s *WriterSink) Export(ctx context.Context, name string, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Fault{Name: name, Err: err}
	}
	if s.Out == nil {
		return "", &Fault{Name: name, Err: errors.New("no writer configured")}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.Out, body); err != nil {
		return "", &Fault{Name: name, Err: err}
	}
	return name, nil
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, name string, body string) (string, error)

func (fn SinkFunc) Export(ctx context.Context, name string, body string) (string, error) {
	return fn(ctx, name, body)
}
