// Package tokenizer splits a shape-core character stream into CSV rows.
package tokenizer

// Characters with structural meaning to the row state machine.
// The delimiter is configurable and therefore not listed here.
const (
	Quote          = '"'
	Newline        = '\n'
	CarriageReturn = '\r'

	// DefaultDelimiter is the field separator used when none is given.
	DefaultDelimiter = ','
)

// quoteState is the state of the row state machine.
type quoteState int

const (
	unquoted quoteState = iota
	quoted
)

// String returns the state name.
func (s quoteState) String() string {
	if s == quoted {
		return "quoted"
	}
	return "unquoted"
}
