package csv

import (
	"errors"
	"io"

	"github.com/shapestone/shape-csvrow/internal/parser"
)

// Scanner reads CSV records one at a time from an io.Reader.
// Only the current record is held in memory.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	scanner := csv.NewScanner(file).SetDelimiter(';')
//	for scanner.Scan() {
//	    fmt.Println(scanner.Record())
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	reader io.Reader
	opts   ReaderOptions
	p      *parser.Parser
	record Record
	line   int
	err    error
	done   bool
}

// NewScanner creates a new Scanner that reads comma-separated CSV from
// the given io.Reader.
func NewScanner(reader io.Reader) *Scanner {
	return &Scanner{
		reader: reader,
		opts:   DefaultReaderOptions(),
	}
}

// SetDelimiter sets the field delimiter. It must be called before the
// first call to Scan. Returns the Scanner for method chaining.
func (s *Scanner) SetDelimiter(delim rune) *Scanner {
	s.opts.Comma = delim
	return s
}

// SetWarningHandler sets the handler for recovered malformed rows.
// Returns the Scanner for method chaining.
func (s *Scanner) SetWarningHandler(h WarningHandler) *Scanner {
	s.opts.WarningCallback = h
	return s
}

// Scan advances the scanner to the next record.
// It returns false when there are no more records or an error occurs.
// After Scan returns false, the Err method will return any error that occurred.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	if s.p == nil {
		if err := s.opts.Validate(); err != nil {
			return s.fail(err)
		}
		s.p = parser.NewParserFromReader(s.reader, s.opts.parserOptions())
	}

	row, err := s.p.Next()
	if errors.Is(err, io.EOF) {
		s.done = true
		s.record = Record{}
		return false
	}
	if err != nil {
		return s.fail(wrapReadError(err))
	}

	s.record = Record{fields: row.Fields}
	s.line = row.Line
	return true
}

func (s *Scanner) fail(err error) bool {
	s.err = err
	s.done = true
	s.record = Record{}
	return false
}

// Record returns the current record.
// This should only be called after Scan() returns true.
func (s *Scanner) Record() Record {
	return s.record
}

// Line returns the 1-indexed line on which the current record started.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil at the normal end of input.
func (s *Scanner) Err() error {
	return s.err
}
