package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

var delimiterNames = map[rune]string{
	',':  "comma",
	';':  "semicolon",
	'\t': "tab",
	'|':  "pipe",
}

// DetectCSVDelimiter guesses the field separator of delimited text. Each
// candidate is scored by how many of the first lines split into the same
// number of fields (at least two) as the first line. Ties go to the comma.
func DetectCSVDelimiter(data []byte) rune {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}

	best, bestScore := ',', 0
	for _, d := range []rune{',', ';', '\t', '|'} {
		rows, err := readCSV(strings.NewReader(strings.Join(lines, "\n")), d)
		if err != nil || len(rows) == 0 || len(rows[0]) < 2 {
			continue
		}
		width := len(rows[0])
		score := 0
		for _, r := range rows {
			if len(r) == width {
				score += width
			}
		}
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// ImportCSV imports a delimited text file, detecting the separator.
func ImportCSV(path string) ImportResult {
	var result ImportResult

	data, err := os.ReadFile(path)
	if err != nil {
		result.errorf("Cannot open file: %v", err)
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.errorf("File is empty")
		return result
	}

	d := DetectCSVDelimiter(data)
	if d != ',' {
		result.warnf("Detected %s delimiter", delimiterNames[d])
	}
	rows, err := readCSV(bytes.NewReader(data), d)
	if err != nil {
		result.errorf("Cannot read CSV: %v", err)
		return result
	}
	return importRows(rows, "Line", result)
}

// ImportCSVFromReader imports delimited text with a known separator.
func ImportCSVFromReader(r io.Reader, delimiter rune) ImportResult {
	rows, err := readCSV(r, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importRows(rows, "Line", ImportResult{})
}
