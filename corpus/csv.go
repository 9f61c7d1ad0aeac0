package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"fakenews-detector/models"
)

var ErrMissingColumn = errors.New("corpus: required column missing")

// CSVSource reads a headed CSV with at least "title" and "text" columns. Every
// row gets the source's label.
type CSVSource struct {
	Path  string
	Label models.Label
}

func NewCSVSource(path string, label models.Label) *CSVSource {
	return &CSVSource{Path: path, Label: label}
}

func (s *CSVSource) Load(ctx context.Context) ([]Document, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	docs, err := ReadCSV(f, s.Label)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	log.Printf("[CORPUS] ✓ %s: %d %s documents", s.Path, len(docs), s.Label)
	return docs, nil
}

func ReadCSV(r io.Reader, label models.Label) ([]Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	titleIdx, textIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "title":
			titleIdx = i
		case "text":
			textIdx = i
		}
	}
	if titleIdx == -1 {
		return nil, fmt.Errorf("%w: title", ErrMissingColumn)
	}
	if textIdx == -1 {
		return nil, fmt.Errorf("%w: text", ErrMissingColumn)
	}

	var docs []Document
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		docs = append(docs, NewDocument(field(record, titleIdx), field(record, textIdx), label))
	}
	return docs, nil
}

func field(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}
