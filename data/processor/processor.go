package processor

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/crux82/ganbert/data/dataset"
)

// Processor reads the splits of one dataset layout and owns the label
// vocabulary of its task.
type Processor interface {
	// ReadLabeled returns the training examples; every one carries a label.
	ReadLabeled(dataDir string) ([]dataset.LabeledExample, error)
	// ReadUnlabeled returns the unlabeled pool. Only the texts are guaranteed.
	ReadUnlabeled(dataDir string) ([]dataset.LabeledExample, error)
	// ReadTest returns examples for prediction; labels are never set.
	ReadTest(dataDir string) ([]dataset.LabeledExample, error)
	// Labels is pure and returns the same vocabulary on every call.
	Labels() *dataset.LabelVocabulary
}

// maxLineBytes bounds a single record line.
var maxLineBytes = 16 * 1024 * 1024

func openSplit(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", dataset.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// readLines returns every line of path without line terminators.
func readLines(path string) ([]string, error) {
	f, err := openSplit(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, min(bufio.MaxScanTokenSize, maxLineBytes)), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); errors.Is(err, bufio.ErrTooLong) {
		return nil, fmt.Errorf("%s:%d: %w: line longer than %d bytes", path, len(lines)+1, dataset.ErrDataFormat, maxLineBytes)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// ReadDelimited reads delimiter separated rows. quote '"' enables full
// RFC 4180 quoting, including fields spanning lines; 0 disables quoting; any
// other rune quotes fields within a single line, doubled to escape itself.
// Empty lines produce no row.
func ReadDelimited(path string, delimiter, quote rune) ([][]string, error) {
	if quote == '"' {
		return readCSV(path, delimiter)
	}
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		fields, err := splitQuoted(line, delimiter, quote)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		rows = append(rows, fields)
	}
	return rows, nil
}

func readCSV(path string, delimiter rune) ([][]string, error) {
	f, err := openSplit(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, dataset.ErrDataFormat, err)
	}
	return rows, nil
}

func splitQuoted(line string, delimiter, quote rune) ([]string, error) {
	if quote == 0 {
		return strings.Split(line, string(delimiter)), nil
	}
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
		atStart  = true
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes && r == quote:
			if i+1 < len(runes) && runes[i+1] == quote {
				field.WriteRune(quote)
				i++
			} else {
				inQuotes = false
			}
		case inQuotes:
			field.WriteRune(r)
		case r == delimiter:
			fields = append(fields, field.String())
			field.Reset()
			atStart = true
			continue
		case r == quote && atStart:
			inQuotes = true
		default:
			field.WriteRune(r)
		}
		atStart = false
	}
	if inQuotes {
		return nil, fmt.Errorf("%w: unterminated quoted field", dataset.ErrDataFormat)
	}
	return append(fields, field.String()), nil
}
