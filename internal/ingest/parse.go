package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/ppiankov/questionbank/internal/model"
)

// Record is one usable CSV row before text normalization
type Record struct {
	ID       int
	Question string
	Subject  string
}

// ParseFunc turns a CSV body into records
type ParseFunc func(data []byte) ([]Record, error)

// Strategy is a named parse mode
type Strategy struct {
	Name  string
	Parse ParseFunc
}

// DefaultStrategies tries a header row first, then falls back to positional columns
var DefaultStrategies = []Strategy{
	{Name: "header", Parse: ParseWithHeader},
	{Name: "headerless", Parse: ParseHeaderless},
}

// Parse runs strategies in order and returns the first non-empty result
// along with the name of the strategy that produced it. If every strategy
// yields zero rows the result is empty, not an error. An error from any
// strategy fails with ErrParseFailure.
func Parse(data []byte, strategies ...Strategy) ([]Record, string, error) {
	if len(strategies) == 0 {
		strategies = DefaultStrategies
	}

	for _, s := range strategies {
		records, err := s.Parse(data)
		if err != nil {
			return nil, s.Name, fmt.Errorf("%w: %s: %w", ErrParseFailure, s.Name, err)
		}
		if len(records) > 0 {
			return records, s.Name, nil
		}
	}
	return []Record{}, "", nil
}

// ParseWithHeader treats the first row as column names. Columns are matched
// by exact, case-sensitive name: `id` (optional), `question`, `subject`.
// Rows missing question or subject text are skipped. The id comes from the
// `id` column when it starts with an integer, else it is the row's 1-based
// position among accepted rows.
func ParseWithHeader(data []byte) ([]Record, error) {
	rows, err := readRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Record{}, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	questionCol, hasQuestion := columns["question"]
	subjectCol, hasSubject := columns["subject"]
	if !hasQuestion || !hasSubject {
		return []Record{}, nil
	}
	idCol, hasID := columns["id"]

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		question := field(row, questionCol)
		subject := field(row, subjectCol)
		if question == "" || subject == "" {
			continue
		}

		id := len(records) + 1
		if hasID {
			if parsed, ok := leadingInt(field(row, idCol)); ok {
				id = parsed
			}
		}

		records = append(records, Record{ID: id, Question: question, Subject: subject})
	}

	return records, nil
}

// ParseHeaderless reads every row as [question, subject]. A missing or empty
// subject becomes model.UnknownSubject. Ids are sequential from 1.
func ParseHeaderless(data []byte) ([]Record, error) {
	rows, err := readRows(data)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		subject := field(row, 1)
		if subject == "" {
			subject = model.UnknownSubject
		}
		records = append(records, Record{
			ID:       len(records) + 1,
			Question: field(row, 0),
			Subject:  subject,
		})
	}

	return records, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readRows tokenizes data, tolerating ragged rows, stray quotes and blank
// lines. A bare `"` inside a field is kept as a literal character.
func readRows(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(row) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(row []string) bool {
	return len(row) == 1 && row[0] == ""
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// leadingInt parses an optional sign and the digits that follow leading
// whitespace, ignoring any trailing text ("12abc" -> 12).
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
