package csv

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node to CSV bytes.
//
// The node should be the result of Parse() or ParseReader().
//
// Rendering handles:
//   - Quoting of fields containing the delimiter, quotes, CR or LF
//   - Escaping of quotes by doubling them
//   - Preservation of empty fields
//   - LF line endings
//
// Records with no fields are skipped, since no CSV text parses to an
// empty record. Parsing the output reproduces every other record.
//
// Example:
//
//	node, _ := csv.Parse("name,age\nAlice,30\nBob,25\n")
//	bytes, _ := csv.Render(node)
//	// bytes: name,age\nAlice,30\nBob,25\n
func Render(node ast.SchemaNode) ([]byte, error) {
	return renderWithOptions(node, DefaultWriterOptions())
}

// RenderRecords converts plain records to CSV bytes.
func RenderRecords(records [][]string, opts WriterOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, record := range records {
		writeRecord(&buf, record, opts.Comma, opts.lineEnding())
	}
	return buf.Bytes(), nil
}

// renderWithOptions converts an AST node to CSV bytes with custom options.
func renderWithOptions(node ast.SchemaNode, opts WriterOptions) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	if err := renderNode(node, &buf, opts.Comma, opts.lineEnding()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderNode recursively renders an AST node with custom delimiter and line ending.
func renderNode(node ast.SchemaNode, buf *bytes.Buffer, delim rune, lineEnding string) error {
	switch n := node.(type) {
	case *ast.ArrayDataNode:
		return renderArrayData(n, buf, delim, lineEnding)
	case *ast.LiteralNode:
		writeField(buf, literalString(n), delim)
		return nil
	default:
		return fmt.Errorf("unsupported node type for CSV rendering: %T", node)
	}
}

// renderArrayData renders an ArrayDataNode.
// This handles both the file level (array of records) and record level (array of fields).
func renderArrayData(node *ast.ArrayDataNode, buf *bytes.Buffer, delim rune, lineEnding string) error {
	elements := node.Elements()
	if len(elements) == 0 {
		return nil
	}

	switch elements[0].(type) {
	case *ast.ArrayDataNode:
		// File level - every record is terminated
		for _, elem := range elements {
			if rec, ok := elem.(*ast.ArrayDataNode); ok && rec.Len() == 0 {
				continue
			}
			if err := renderNode(elem, buf, delim, lineEnding); err != nil {
				return err
			}
			buf.WriteString(lineEnding)
		}
		return nil

	case *ast.LiteralNode:
		for i, elem := range elements {
			if i > 0 {
				buf.WriteRune(delim)
			}
			if err := renderNode(elem, buf, delim, lineEnding); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unexpected element type in array: %T", elements[0])
	}
}

// literalString returns the string value of a field node.
func literalString(node *ast.LiteralNode) string {
	switch v := node.Value().(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeRecord writes one record followed by lineEnding. A record with
// no fields writes nothing.
func writeRecord(buf *bytes.Buffer, fields []string, delim rune, lineEnding string) {
	if len(fields) == 0 {
		return
	}
	for i, field := range fields {
		if i > 0 {
			buf.WriteRune(delim)
		}
		writeField(buf, field, delim)
	}
	buf.WriteString(lineEnding)
}

// needsQuoting reports whether value must be quoted to survive a re-parse.
func needsQuoting(value string, delim rune) bool {
	return strings.ContainsRune(value, delim) || strings.ContainsAny(value, "\"\r\n")
}

// writeField writes a CSV field, quoting it when needed and doubling quotes.
func writeField(buf *bytes.Buffer, value string, delim rune) {
	if !needsQuoting(value, delim) {
		buf.WriteString(value)
		return
	}

	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(value, `"`, `""`))
	buf.WriteByte('"')
}
