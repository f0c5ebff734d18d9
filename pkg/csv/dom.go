package csv

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-csvrow/internal/parser"
)

// Document is the ordered sequence of records read from one input.
// All setter methods return *Document to enable method chaining.
//
//	doc := csv.NewDocument().
//		AddRecord([]string{"Alice", "30"}).
//		AddRecord([]string{"Bob", "25"})
type Document struct {
	records [][]string
}

// Record is a single row. Field counts may differ between records.
type Record struct {
	fields []string
}

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	return &Document{
		records: make([][]string, 0),
	}
}

func newDocumentFromRecords(records [][]string) *Document {
	if records == nil {
		records = make([][]string, 0)
	}
	return &Document{records: records}
}

// ParseDocument parses a CSV string into a Document.
//
// Example:
//
//	doc, _ := csv.ParseDocument("name,age\nAlice,30\nBob,25")
//	doc.RecordCount() // 3
func ParseDocument(input string) (*Document, error) {
	return ParseDocumentWithOptions(input, DefaultReaderOptions())
}

// ParseDocumentWithOptions parses a CSV string into a Document with custom options.
func ParseDocumentWithOptions(input string, opts ReaderOptions) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	records, err := parser.NewParserWithOptions(input, opts.parserOptions()).Records()
	if err != nil {
		return nil, err
	}
	return newDocumentFromRecords(records), nil
}

// ParseDocumentReader parses CSV from an io.Reader into a Document.
// A read failure is returned as *IOError with a nil Document.
func ParseDocumentReader(reader io.Reader, opts ReaderOptions) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	records, err := parser.NewParserFromReader(reader, opts.parserOptions()).Records()
	if err != nil {
		return nil, wrapReadError(err)
	}
	return newDocumentFromRecords(records), nil
}

// AddRecord adds a record (row) to the document.
// Returns the Document for method chaining.
func (d *Document) AddRecord(fields []string) *Document {
	d.records = append(d.records, fields)
	return d
}

// Records returns all records as Record objects.
func (d *Document) Records() []Record {
	records := make([]Record, len(d.records))
	for i, fields := range d.records {
		records[i] = Record{fields: fields}
	}
	return records
}

// Rows returns the records as plain string slices.
// The returned slices are shared with the Document.
func (d *Document) Rows() [][]string {
	return d.records
}

// RecordCount returns the number of records in the document.
func (d *Document) RecordCount() int {
	return len(d.records)
}

// GetRecord returns the record at the specified index.
// Returns (Record, false) if the index is out of bounds.
func (d *Document) GetRecord(index int) (Record, bool) {
	if index < 0 || index >= len(d.records) {
		return Record{}, false
	}
	return Record{fields: d.records[index]}, true
}

// CSV renders the Document back to a CSV string using comma and LF.
// Records with no fields are omitted.
//
// Example:
//
//	doc := csv.NewDocument().AddRecord([]string{"a", "b,c"})
//	csvStr, _ := doc.CSV()
//	// Output: a,"b,c"\n
func (d *Document) CSV() (string, error) {
	out, err := d.Render(DefaultWriterOptions())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Render renders the Document with custom writer options.
func (d *Document) Render(opts WriterOptions) ([]byte, error) {
	return RenderRecords(d.records, opts)
}

// WriteTo writes the Document in CSV form to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	out, err := d.Render(DefaultWriterOptions())
	if err != nil {
		return 0, err
	}
	n, err := w.Write(out)
	return int64(n), err
}

// Get gets the field value at the specified index.
// Returns (value, false) if the index is out of bounds.
func (r Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// Fields returns a copy of the field values in the record.
func (r Record) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.fields)
}

// String formats the record as "[field1]\t[field2]\t...".
func (r Record) String() string {
	return FormatRow(r.fields)
}

// ToAST converts the Document to an AST ArrayDataNode.
func (d *Document) ToAST() (*ast.ArrayDataNode, error) {
	allRecords := make([]ast.SchemaNode, 0, len(d.records))

	for _, record := range d.records {
		fieldNodes := make([]ast.SchemaNode, len(record))
		for i, f := range record {
			fieldNodes[i] = ast.NewLiteralNode(f, ast.ZeroPosition())
		}
		allRecords = append(allRecords, ast.NewArrayDataNode(fieldNodes, ast.ZeroPosition()))
	}

	return ast.NewArrayDataNode(allRecords, ast.ZeroPosition()), nil
}

// FromAST creates a Document from an AST ArrayDataNode as produced by Parse.
func FromAST(node ast.SchemaNode) (*Document, error) {
	arrayNode, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	doc := NewDocument()
	for _, elem := range arrayNode.Elements() {
		recordNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("expected record to be *ast.ArrayDataNode, got %T", elem)
		}

		fields := make([]string, 0, recordNode.Len())
		for _, fieldNode := range recordNode.Elements() {
			literalNode, ok := fieldNode.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("expected field to be *ast.LiteralNode, got %T", fieldNode)
			}

			value, ok := literalNode.Value().(string)
			if !ok {
				return nil, fmt.Errorf("expected field value to be string, got %T", literalNode.Value())
			}
			fields = append(fields, value)
		}

		doc.AddRecord(fields)
	}

	return doc, nil
}
