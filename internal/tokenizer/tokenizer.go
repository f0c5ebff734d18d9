package tokenizer

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Row is one record produced by the row state machine.
type Row struct {
	// Fields holds the field values in column order.
	Fields []string
	// Line is the 1-indexed line on which the row started.
	Line int
	// Column is the 1-indexed column on which the row started.
	Column int
	// Offset is the byte offset at which the row started.
	Offset int
	// Unterminated reports that the stream ended inside a quoted span.
	// The accumulated text was still flushed as the last field.
	Unterminated bool
}

// RowTokenizer reads CSV rows one at a time from a shape-core stream.
//
// The only state kept between calls is the stream cursor and the
// position counters. Quote state and the field buffer are local to
// each ReadRow call.
type RowTokenizer struct {
	stream   tokenizer.Stream
	delim    rune
	bytewise bool // stream is a *ByteStream: one character per byte

	offset int
	line   int
	column int
}

// NewRowTokenizer creates a row tokenizer reading from stream.
// A zero delimiter selects DefaultDelimiter.
//
// When stream is a *ByteStream every byte is one character and fields
// hold the input bytes unchanged; the delimiter must then be a single
// byte. Any other shape-core stream is read rune by rune.
func NewRowTokenizer(stream tokenizer.Stream, delim rune) *RowTokenizer {
	if delim == 0 {
		delim = DefaultDelimiter
	}
	_, bytewise := stream.(*ByteStream)
	return &RowTokenizer{
		stream:   stream,
		delim:    delim,
		bytewise: bytewise,
		line:     1,
		column:   1,
	}
}

// NewRowTokenizerFromString creates a row tokenizer over an in-memory string.
func NewRowTokenizerFromString(input string, delim rune) *RowTokenizer {
	return NewRowTokenizer(NewByteStream(input), delim)
}

// NewRowTokenizerFromReader creates a row tokenizer over an io.Reader.
// The reader is consumed in chunks as rows are requested.
func NewRowTokenizerFromReader(r io.Reader, delim rune) *RowTokenizer {
	return NewRowTokenizer(NewByteStreamFromReader(r), delim)
}

// Delimiter returns the field delimiter in use.
func (t *RowTokenizer) Delimiter() rune {
	return t.delim
}

// Line returns the 1-indexed line of the next unread character.
func (t *RowTokenizer) Line() int {
	return t.line
}

// Offset returns the number of bytes consumed so far.
func (t *RowTokenizer) Offset() int {
	return t.offset
}

// ReadRow consumes characters until an unquoted newline or the end of
// the stream and returns the accumulated row.
//
// State machine:
//
//	unquoted + '"'       -> quoted (quote dropped)
//	quoted   + '""'      -> literal '"', stay quoted
//	quoted   + '"'       -> unquoted (quote dropped)
//	unquoted + delimiter -> flush field
//	unquoted + '\r'      -> dropped
//	unquoted + '\n'      -> flush field, end of row
//	otherwise            -> append to field
//
// A quote toggles quoting at any position within a field, not only at
// its start. If the stream ends after at least one character was read,
// the buffer is flushed as the final field and err is nil. If nothing
// could be read, ReadRow returns an empty Row and io.EOF.
func (t *RowTokenizer) ReadRow() (Row, error) {
	row := Row{Line: t.line, Column: t.column, Offset: t.offset}

	var field strings.Builder
	state := unquoted
	consumed := false

	for {
		c, ok := t.next()
		if !ok {
			break
		}
		consumed = true

		switch {
		case state == unquoted && c == Quote:
			state = quoted
		case state == quoted && c == Quote:
			if r, ok := t.stream.PeekChar(); ok && r == Quote {
				t.next()
				field.WriteByte(Quote)
			} else {
				state = unquoted
			}
		case state == unquoted && c == t.delim:
			row.Fields = append(row.Fields, field.String())
			field.Reset()
		case state == unquoted && c == CarriageReturn:
			// CRLF normalization
		case state == unquoted && c == Newline:
			row.Fields = append(row.Fields, field.String())
			return row, nil
		case t.bytewise:
			field.WriteByte(byte(c))
		default:
			field.WriteRune(c)
		}
	}

	if !consumed {
		return row, io.EOF
	}

	row.Fields = append(row.Fields, field.String())
	row.Unterminated = state == quoted
	return row, nil
}

// next consumes one character and advances the position counters.
func (t *RowTokenizer) next() (rune, bool) {
	r, ok := t.stream.PeekChar()
	if !ok {
		return 0, false
	}
	t.stream.NextChar()

	switch n := utf8.RuneLen(r); {
	case t.bytewise, n < 0:
		t.offset++
	default:
		t.offset += n
	}
	if r == Newline {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return r, true
}

// ReadRow reads a single row from stream using delim as the field
// separator. It returns io.EOF when the stream is already exhausted.
func ReadRow(stream tokenizer.Stream, delim rune) ([]string, error) {
	row, err := NewRowTokenizer(stream, delim).ReadRow()
	return row.Fields, err
}
