// Package parser collects CSV rows into a document.
// It drives the row tokenizer until the stream is exhausted and builds
// a shape-core AST: an array of records, each an array of string literals.
package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-csvrow/internal/tokenizer"
)

// Options configures the parser behavior.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune
	// WarningCallback is invoked for rows that were recovered from
	// malformed input, such as a quoted field left open at end of input.
	WarningCallback func(line int, message string)
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		Comma: tokenizer.DefaultDelimiter,
	}
}

// Parser collects rows produced by a RowTokenizer.
type Parser struct {
	rows   *tokenizer.RowTokenizer
	source *tokenizer.ByteStream // nil unless reading from an io.Reader
	opts   Options
}

// NewParser creates a new CSV parser for the given input string.
// For parsing from io.Reader, use NewParserFromReader instead.
func NewParser(input string) *Parser {
	return NewParserWithOptions(input, DefaultOptions())
}

// NewParserWithOptions creates a new CSV parser with custom options.
func NewParserWithOptions(input string, opts Options) *Parser {
	return NewParserFromStreamWithOptions(tokenizer.NewByteStream(input), opts)
}

// NewParserFromStream creates a new CSV parser using a pre-configured stream.
func NewParserFromStream(stream shapetokenizer.Stream) *Parser {
	return NewParserFromStreamWithOptions(stream, DefaultOptions())
}

// NewParserFromStreamWithOptions creates a new CSV parser from a stream with custom options.
func NewParserFromStreamWithOptions(stream shapetokenizer.Stream, opts Options) *Parser {
	return &Parser{
		rows: tokenizer.NewRowTokenizer(stream, opts.Comma),
		opts: opts,
	}
}

// NewParserFromReader creates a parser reading from r one byte per
// character. Read failures other than io.EOF stop parsing and are
// returned by Parse, Records and Next.
func NewParserFromReader(r io.Reader, opts Options) *Parser {
	stream := tokenizer.NewByteStreamFromReader(r)
	p := NewParserFromStreamWithOptions(stream, opts)
	p.source = stream
	return p
}

// Parse reads every remaining row and returns an AST for the document.
//
// Returns *ast.ArrayDataNode - an array of records, where each record is an
// ArrayDataNode of *ast.LiteralNode fields holding string values. Rows with
// zero fields are discarded.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	records := make([]ast.SchemaNode, 0, 16)

	err := p.each(func(row tokenizer.Row) {
		pos := ast.NewPosition(row.Offset, row.Line, row.Column)
		fields := make([]ast.SchemaNode, len(row.Fields))
		for i, f := range row.Fields {
			fields[i] = ast.NewLiteralNode(f, pos)
		}
		records = append(records, ast.NewArrayDataNode(fields, pos))
	})
	if err != nil {
		return nil, err
	}

	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

// Records reads every remaining row and returns the fields of each.
// Rows with zero fields are discarded.
func (p *Parser) Records() ([][]string, error) {
	records := make([][]string, 0, 16)

	err := p.each(func(row tokenizer.Row) {
		records = append(records, row.Fields)
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Next returns the next non-empty row. It returns io.EOF once the input
// is exhausted.
func (p *Parser) Next() (tokenizer.Row, error) {
	for {
		row, err := p.rows.ReadRow()
		if rerr := p.readErr(); rerr != nil {
			return tokenizer.Row{}, rerr
		}
		if err != nil {
			return tokenizer.Row{}, err
		}
		if len(row.Fields) == 0 {
			continue
		}
		if row.Unterminated {
			p.warn(row.Line, "quoted field not terminated before end of input")
		}
		return row, nil
	}
}

// each calls fn for every remaining non-empty row.
func (p *Parser) each(fn func(tokenizer.Row)) error {
	for {
		row, err := p.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fn(row)
	}
}

// Line returns the 1-indexed line of the next unread character.
func (p *Parser) Line() int {
	return p.rows.Line()
}

// readErr returns the first read failure of the underlying reader.
func (p *Parser) readErr() error {
	if p.source == nil || p.source.Err() == nil {
		return nil
	}
	return fmt.Errorf("read failed near line %d: %w", p.rows.Line(), p.source.Err())
}

func (p *Parser) warn(line int, message string) {
	if p.opts.WarningCallback != nil {
		p.opts.WarningCallback(line, message)
	}
}
