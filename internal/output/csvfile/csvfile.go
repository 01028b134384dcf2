package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/crimson-sun/ddexport/internal/model"
	"github.com/crimson-sun/ddexport/internal/output"
)

const (
	defaultBufSize = 64 * 1024 // 64KB
	dateLayout     = "2006-01-02"
)

// Option configures a csv Writer.
type Option func(*Writer)

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(w *Writer) { w.bufSize = bytes }
}

// Writer writes rows as comma-separated lines to a file, truncating any
// previous contents.
type Writer struct {
	f       *os.File
	buf     *bufio.Writer
	csv     *csv.Writer
	mu      sync.Mutex
	path    string
	bufSize int
}

// DestName returns base_YYYY-MM-DD.csv for the local date of now.
func DestName(base string, now time.Time) string {
	return base + "_" + now.Local().Format(dateLayout) + ".csv"
}

// New creates (or truncates) the file at path.
func New(path string, opts ...Option) (*Writer, error) {
	w := &Writer{
		path:    path,
		bufSize: defaultBufSize,
	}
	for _, opt := range opts {
		opt(w)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("csv output: open %s: %w", path, err)
	}
	w.f = f
	w.buf = bufio.NewWriterSize(f, w.bufSize)
	w.csv = csv.NewWriter(w.buf)
	return w, nil
}

// Path returns the file being written.
func (w *Writer) Path() string {
	return w.path
}

// Write appends row as one line. An empty row is written as an empty line.
func (w *Writer) Write(_ context.Context, row model.Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("csv output: write: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.f.Close()
		return fmt.Errorf("csv output: flush: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return fmt.Errorf("csv output: flush: %w", err)
	}
	return w.f.Close()
}

// WriteRows writes rows to DestName(base, time.Now()) and returns the path.
func WriteRows(ctx context.Context, rows []model.Row, base string) (string, error) {
	return writeRowsAt(ctx, rows, DestName(base, time.Now()))
}

func writeRowsAt(ctx context.Context, rows []model.Row, path string) (_ string, err error) {
	w, err := New(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for _, row := range rows {
		if err := w.Write(ctx, row); err != nil {
			return "", err
		}
	}
	return path, nil
}

var _ output.Output = (*Writer)(nil)
