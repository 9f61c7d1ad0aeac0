package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"fakenews-detector/models"
)

var (
	ErrEmptyInput        = errors.New("please provide text or upload a file")
	ErrUnsupportedUpload = errors.New("only .txt and .csv files are supported")
	ErrInvalidEncoding   = errors.New("uploaded file is not valid UTF-8")
	ErrEmptyCSV          = errors.New("uploaded CSV has no data rows")
)

const previewRows = 5

// Upload is an uploaded file that can produce the single document to analyze.
type Upload interface {
	Name() string
	PrimaryText() (string, error)
}

// PlainTextUpload uses the whole decoded file as one document.
type PlainTextUpload struct {
	Filename string
	Content  []byte
}

func (u *PlainTextUpload) Name() string { return u.Filename }

func (u *PlainTextUpload) PrimaryText() (string, error) {
	if !utf8.Valid(u.Content) {
		return "", ErrInvalidEncoding
	}
	return string(u.Content), nil
}

// TabularUpload uses the first column of the first data row; the header row
// is skipped and every other cell is only shown in the preview.
type TabularUpload struct {
	Filename string
	Content  []byte
}

func (u *TabularUpload) Name() string { return u.Filename }

func (u *TabularUpload) PrimaryText() (string, error) {
	records, err := u.read(1)
	if err != nil {
		return "", err
	}
	if len(records) < 2 {
		return "", ErrEmptyCSV
	}
	if len(records[1]) == 0 {
		return "", nil
	}
	return records[1][0], nil
}

// Preview returns the header and up to five data rows.
func (u *TabularUpload) Preview() (*models.TablePreview, error) {
	records, err := u.read(previewRows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &models.TablePreview{}, nil
	}
	return &models.TablePreview{Header: records[0], Rows: records[1:]}, nil
}

// read returns the header plus at most rows data records.
func (u *TabularUpload) read(rows int) ([][]string, error) {
	if !utf8.Valid(u.Content) {
		return nil, ErrInvalidEncoding
	}
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(u.Content, []byte("\ufeff"))))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var records [][]string
	for len(records) <= rows {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// NewUpload picks the upload variant from the file extension.
func NewUpload(filename string, content []byte) (Upload, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return &PlainTextUpload{Filename: filename, Content: content}, nil
	case ".csv":
		return &TabularUpload{Filename: filename, Content: content}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedUpload, filename)
}

// ResolveInput decides which text gets analyzed. An upload always wins over
// typed text, even when both are present.
func ResolveInput(typed string, upload Upload) (string, error) {
	text := typed
	if upload != nil {
		var err error
		text, err = upload.PrimaryText()
		if err != nil {
			return "", fmt.Errorf("%s: %w", upload.Name(), err)
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	return text, nil
}
