// Package csv parses delimited text into records of string fields.
//
// Parsing is driven by a character-at-a-time row state machine that
// handles quoted fields, delimiters and newlines embedded in quotes,
// doubled quotes and CRLF line endings. Malformed input is never
// rejected: a quoted field left open at end of input is flushed as-is.
//
// Every input byte is one character. Field bytes are returned exactly as
// they appear in the input, so UTF-8 and single-byte encodings such as
// Latin-1 both pass through unchanged. The delimiter is a single ASCII
// character.
//
// Results are available as a shape-core AST (Parse, ParseReader), as a
// Document (ParseDocument, ParseFile) or one record at a time (Scanner).
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each function call creates its own tokenizer with no shared mutable state.
//
// # Example usage with ParseFile:
//
//	doc, err := csv.ParseFile("data.csv", ',')
//	if err != nil {
//	    var ioErr *csv.IOError
//	    if errors.As(err, &ioErr) {
//	        // file missing or unreadable
//	    }
//	}
//	for _, rec := range doc.Records() {
//	    fmt.Println(csv.FormatRow(rec.Fields()))
//	}
package csv

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-csvrow/internal/parser"
	"github.com/shapestone/shape-csvrow/internal/tokenizer"
)

// Parse parses CSV format into an AST from a string.
//
// Returns an ast.ArrayDataNode representing the parsed CSV:
//   - *ast.ArrayDataNode for the file (array of records)
//   - Each record is an *ast.ArrayDataNode of fields
//   - Each field is an *ast.LiteralNode containing a string value
//
// Example:
//
//	node, err := csv.Parse("name,age\nAlice,30\nBob,25")
//	records := node.(*ast.ArrayDataNode).Elements()
func Parse(input string) (ast.SchemaNode, error) {
	return ParseWithOptions(input, DefaultReaderOptions())
}

// ParseReader parses CSV format into an AST from an io.Reader.
//
// The reader is consumed incrementally through a buffered byte stream.
// A read failure is returned as *IOError.
func ParseReader(reader io.Reader) (ast.SchemaNode, error) {
	return ParseReaderWithOptions(reader, DefaultReaderOptions())
}

// ParseFile opens the named file and parses it into a Document using
// delimiter as the field separator. The file is closed before ParseFile
// returns on every path.
//
// If the file cannot be opened or read, ParseFile returns an empty
// Document and an *IOError.
func ParseFile(path string, delimiter rune) (*Document, error) {
	opts := DefaultReaderOptions()
	opts.Comma = delimiter
	return ParseFileWithOptions(path, opts)
}

// ParseFileWithOptions is ParseFile with custom reader options.
// Invalid options are reported as *OptionsError with an empty Document.
func ParseFileWithOptions(path string, opts ReaderOptions) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return NewDocument(), err
	}

	f, err := os.Open(path)
	if err != nil {
		return NewDocument(), &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	records, err := parser.NewParserFromReader(f, opts.parserOptions()).Records()
	if err != nil {
		return NewDocument(), &IOError{Op: "read", Path: path, Err: err}
	}

	return newDocumentFromRecords(records), nil
}

// ReadRow reads a single record from r. It consumes characters until an
// unquoted newline or the end of input and returns io.EOF if r is
// already exhausted.
//
// ReadRow may buffer beyond the end of the row; use a Scanner to read
// successive records from the same reader. A read failure is returned
// as *IOError.
func ReadRow(r io.Reader, delimiter rune) ([]string, error) {
	if !validDelim(delimiter) {
		return nil, &OptionsError{Field: "Comma", Message: "invalid delimiter"}
	}

	stream := tokenizer.NewByteStreamFromReader(r)
	fields, err := tokenizer.ReadRow(stream, delimiter)
	if serr := stream.Err(); serr != nil {
		return nil, &IOError{Op: "read", Err: serr}
	}
	return fields, err
}

// ReadRowString reads the first record of s.
func ReadRowString(s string, delimiter rune) ([]string, error) {
	if !validDelim(delimiter) {
		return nil, &OptionsError{Field: "Comma", Message: "invalid delimiter"}
	}
	return tokenizer.ReadRow(tokenizer.NewByteStream(s), delimiter)
}

// FormatRow formats a record for display as "[field1]\t[field2]\t...".
func FormatRow(fields []string) string {
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteByte('[')
		sb.WriteString(f)
		sb.WriteString("]\t")
	}
	return sb.String()
}

// Format returns the format identifier for this parser.
// Returns "CSV" to identify this as the CSV data format parser.
func Format() string {
	return "CSV"
}

// wrapReadError converts a parser read failure into an *IOError.
func wrapReadError(err error) error {
	var ioErr *IOError
	if err == nil || errors.As(err, &ioErr) {
		return err
	}
	return &IOError{Op: "read", Err: err}
}
