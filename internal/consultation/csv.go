package consultation

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

// CSVRecorder appends one row per consultation to a flat file. Writers in
// the same process are serialised; other processes appending to the same
// file are not coordinated with.
type CSVRecorder struct {
	path string
	mu   sync.Mutex
}

func NewCSVRecorder(path string) *CSVRecorder {
	return &CSVRecorder{path: path}
}

func (r *CSVRecorder) Path() string { return r.path }

func (r *CSVRecorder) Record(_ context.Context, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open consultation log: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(e.Row()); err != nil {
		f.Close()
		return fmt.Errorf("write consultation row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush consultation row: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close consultation log: %w", err)
	}
	return nil
}
