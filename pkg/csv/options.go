package csv

import (
	"io"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-csvrow/internal/parser"
)

// ReaderOptions configures CSV parsing behavior.
type ReaderOptions struct {
	// Comma is the field delimiter.
	// It must be a single ASCII character other than 0, '"', \r or \n.
	// Default: ','
	Comma rune

	// WarningCallback is invoked when a row had to be recovered from
	// malformed input, e.g. a quoted field still open at end of input.
	// The row is kept either way. Default: nil
	WarningCallback WarningHandler
}

// WarningHandler is a callback function for logging warnings.
type WarningHandler func(line int, message string)

// DefaultReaderOptions returns the default reader configuration.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		Comma: ',',
	}
}

func (o ReaderOptions) parserOptions() parser.Options {
	return parser.Options{
		Comma:           o.Comma,
		WarningCallback: o.WarningCallback,
	}
}

// WriterOptions configures CSV writing behavior.
type WriterOptions struct {
	// Comma is the field delimiter.
	// Default: ','
	Comma rune

	// UseCRLF controls whether to use \r\n (true) or \n (false) as the line terminator.
	// Default: false (use \n)
	UseCRLF bool
}

// DefaultWriterOptions returns the default writer configuration.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		Comma:   ',',
		UseCRLF: false,
	}
}

func (o WriterOptions) lineEnding() string {
	if o.UseCRLF {
		return "\r\n"
	}
	return "\n"
}

// ParseWithOptions parses CSV format into an AST from a string with custom options.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Comma = '\t'  // Tab-separated
//	node, err := csv.ParseWithOptions("name\tage\nAlice\t30", opts)
func ParseWithOptions(input string, opts ReaderOptions) (ast.SchemaNode, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return parser.NewParserWithOptions(input, opts.parserOptions()).Parse()
}

// ParseReaderWithOptions parses CSV format into an AST from an io.Reader with custom options.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Comma = ';'
//	node, err := csv.ParseReaderWithOptions(file, opts)
func ParseReaderWithOptions(reader io.Reader, opts ReaderOptions) (ast.SchemaNode, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	node, err := parser.NewParserFromReader(reader, opts.parserOptions()).Parse()
	if err != nil {
		return nil, wrapReadError(err)
	}
	return node, nil
}

// RenderWithOptions converts an AST node to CSV bytes with custom options.
//
// Example:
//
//	opts := csv.DefaultWriterOptions()
//	opts.Comma = '\t'
//	opts.UseCRLF = true
//	bytes, err := csv.RenderWithOptions(node, opts)
func RenderWithOptions(node ast.SchemaNode, opts WriterOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return renderWithOptions(node, opts)
}

// validDelim reports whether r is a valid field delimiter: a single
// ASCII byte with no structural meaning.
func validDelim(r rune) bool {
	return r > 0 && r < utf8.RuneSelf && r != '"' && r != '\r' && r != '\n'
}

// Validate checks if the reader options are valid.
func (o ReaderOptions) Validate() error {
	if !validDelim(o.Comma) {
		return &OptionsError{Field: "Comma", Message: "invalid delimiter"}
	}
	return nil
}

// Validate checks if the writer options are valid.
func (o WriterOptions) Validate() error {
	if !validDelim(o.Comma) {
		return &OptionsError{Field: "Comma", Message: "invalid delimiter"}
	}
	return nil
}
