package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// ErrFileRead marks a backing file that is missing, unreadable, or not
// decodable in any attempted encoding.
var ErrFileRead = errors.New("read data file")

// Table is a decoded CSV file: normalized headers plus the data rows.
type Table struct {
	Headers []string
	Records []Record
}

// decodings is the ordered probe list: portal exports are UTF-8 today but
// legacy files in the data repository are Shift_JIS.
var decodings = []struct {
	name   string
	decode func([]byte) ([]byte, error)
}{
	{"utf-8", decodeUTF8},
	{"shift_jis", decodeShiftJIS},
}

// ReadCSV loads path, negotiating the encoding via the two-attempt probe,
// and returns rows keyed by normalized header.
func ReadCSV(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}

	decoded, err := decodeBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}

	table, err := parseCSV(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}
	return table, nil
}

func decodeBytes(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	var lastErr error
	for _, attempt := range decodings {
		decoded, err := attempt.decode(raw)
		if err != nil {
			lastErr = fmt.Errorf("decode as %s: %w", attempt.name, err)
			continue
		}
		return decoded, nil
	}
	return nil, lastErr
}

func decodeUTF8(raw []byte) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, errors.New("invalid byte sequence")
	}
	return raw, nil
}

func decodeShiftJIS(raw []byte) ([]byte, error) {
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, err
	}
	// The decoder substitutes U+FFFD instead of failing on bad input.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return nil, errors.New("invalid byte sequence")
	}
	return decoded, nil
}

func parseCSV(decoded []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeHeader(header)
	}

	records := make([]Record, 0, 256)
	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNumber+1, err)
		}

		values := make(map[string]string, len(normalizedHeaders))
		for i := range normalizedHeaders {
			if i < len(row) {
				values[normalizedHeaders[i]] = row[i]
			} else {
				values[normalizedHeaders[i]] = ""
			}
		}

		records = append(records, Record{RowNumber: rowNumber + 1, Values: values})
		rowNumber++
	}

	return &Table{Headers: normalizedHeaders, Records: records}, nil
}

// ReadRows loads path through the encoding probe and returns the raw rows
// with the original (unnormalized) header row first. Ingestion uses this to
// carry unknown columns through a merge untouched.
func ReadRows(path string) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}

	decoded, err := decodeBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}
	return rows, nil
}

// NormalizeHeader exposes the header normalization for column matching
// outside the package.
func NormalizeHeader(input string) string {
	return normalizeHeader(input)
}
