// Package record loads evaluation records and field thresholds for a report.
package record

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/kailas-cloud/evalview/internal/domain"
	domrec "github.com/kailas-cloud/evalview/internal/domain/record"
)

const maxLineBytes = 16 << 20

// ReadJSONL reads one record per line. Blank lines are skipped; lines that are not
// valid records are logged and skipped.
func ReadJSONL(r io.Reader, logger *zap.Logger) ([]domrec.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []domrec.Record
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		rec, err := domrec.New(raw)
		if err != nil {
			logger.Warn("skipping record", zap.Error(domain.NewRecordError(line, err)))
			continue
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return out, nil
}

// FileSource loads records from a JSONL file.
type FileSource struct {
	path   string
	logger *zap.Logger
}

// NewFileSource creates a file-backed record source.
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// Load reads the whole file.
func (s *FileSource) Load(_ context.Context) ([]domrec.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open records %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	recs, err := ReadJSONL(f, s.logger)
	if err != nil {
		return nil, err
	}
	s.logger.Info("records loaded", zap.String("path", s.path), zap.Int("count", len(recs)))
	return recs, nil
}
