package tokenizer

import (
	"errors"
	"io"
	"slices"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

const (
	// readChunkSize is the free space offered to each Read call.
	readChunkSize = 8 * 1024

	// keepBehind is the number of bytes before the read position that stay
	// buffered when the window slides. Clones further behind lose access.
	keepBehind = 4 * 1024

	// maxEmptyReads bounds consecutive reads returning (0, nil).
	maxEmptyReads = 100
)

var errNotRewindable = errors.New("tokenizer: stream start discarded and reader does not implement io.Seeker")

// ByteStream is a tokenizer.Stream that yields one character per input
// byte. Bytes are never decoded: 0x80-0xFF come back as runes of the
// same value, so UTF-8 sequences and single-byte encodings both pass
// through a row unchanged.
//
// A reader-backed ByteStream reads in chunks and keeps a sliding window,
// so memory stays bounded regardless of input size. Short reads and
// reads that end mid-sequence are handled like any other chunk.
type ByteStream struct {
	src *byteSource
	loc location
}

// location is a position within the stream.
type location struct {
	offset int
	row    int
	column int
}

var startLocation = location{row: 1, column: 1}

// byteSource is the buffer shared by a stream and its clones.
type byteSource struct {
	r    io.Reader // nil for in-memory input
	buf  []byte
	base int // stream offset of buf[0]
	eof  bool
	err  error // first read failure other than io.EOF
}

var _ tokenizer.Stream = (*ByteStream)(nil)

// NewByteStream creates a stream over an in-memory string.
func NewByteStream(input string) *ByteStream {
	return &ByteStream{
		src: &byteSource{buf: []byte(input), eof: true},
		loc: startLocation,
	}
}

// NewByteStreamFromReader creates a stream that reads r on demand.
// Read failures end the stream; they are available from Err.
func NewByteStreamFromReader(r io.Reader) *ByteStream {
	return &ByteStream{
		src: &byteSource{r: r},
		loc: startLocation,
	}
}

// Err returns the first read failure of the underlying reader, or nil
// if the stream ended normally or has not ended yet.
func (s *ByteStream) Err() error {
	return s.src.err
}

// Clone returns a stream sharing the same input at the current position.
func (s *ByteStream) Clone() tokenizer.Stream {
	return &ByteStream{src: s.src, loc: s.loc}
}

// Match moves s to the position of cs, which must be a clone of s.
func (s *ByteStream) Match(cs tokenizer.Stream) {
	other, ok := cs.(*ByteStream)
	if !ok || other.src != s.src {
		panic("tokenizer: Match called with a stream of a different source")
	}
	s.loc = other.loc
}

// PeekChar returns the next byte as a rune without consuming it.
func (s *ByteStream) PeekChar() (rune, bool) {
	b, ok := s.src.at(s.loc.offset)
	return rune(b), ok
}

// NextChar consumes and returns the next byte as a rune.
func (s *ByteStream) NextChar() (rune, bool) {
	b, ok := s.src.at(s.loc.offset)
	if !ok {
		return 0, false
	}
	s.loc.offset++
	if b == Newline {
		s.loc.row++
		s.loc.column = 1
	} else {
		s.loc.column++
	}
	return rune(b), true
}

// MatchChars consumes match if the stream continues with it. Otherwise
// the position is left unchanged.
func (s *ByteStream) MatchChars(match []rune) bool {
	saved := s.loc
	for _, want := range match {
		got, ok := s.NextChar()
		if !ok || got != want {
			s.loc = saved
			return false
		}
	}
	return true
}

// IsEos reports whether the stream is exhausted. It may block on a read.
func (s *ByteStream) IsEos() bool {
	_, ok := s.src.at(s.loc.offset)
	return !ok
}

// GetRow returns the 1-indexed line of the next byte.
func (s *ByteStream) GetRow() int {
	return s.loc.row
}

// GetOffset returns the number of bytes consumed.
func (s *ByteStream) GetOffset() int {
	return s.loc.offset
}

// GetColumn returns the 1-indexed byte column of the next byte.
func (s *ByteStream) GetColumn() int {
	return s.loc.column
}

// Reset rewinds to the start of the input. Once the window has slid past
// the start, the reader must implement io.Seeker; if it does not, the
// stream ends and Err reports why.
func (s *ByteStream) Reset() {
	s.loc = startLocation
	if s.src.base == 0 {
		return
	}

	seeker, ok := s.src.r.(io.Seeker)
	if !ok {
		s.src.fail(errNotRewindable)
		return
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		s.src.fail(err)
		return
	}
	s.src.buf = s.src.buf[:0]
	s.src.base = 0
	s.src.eof = false
	s.src.err = nil
}

// at returns the byte at stream offset off, reading more input as needed.
func (s *byteSource) at(off int) (byte, bool) {
	for off-s.base >= len(s.buf) {
		if s.eof {
			return 0, false
		}
		s.fill(off)
	}
	if off < s.base {
		return 0, false
	}
	return s.buf[off-s.base], true
}

// fill slides the window up to keepBehind bytes before off and appends
// the next chunk from the reader.
func (s *byteSource) fill(off int) {
	if drop := min(off-keepBehind-s.base, len(s.buf)); drop > 0 {
		s.buf = s.buf[:copy(s.buf, s.buf[drop:])]
		s.base += drop
	}
	s.buf = slices.Grow(s.buf, readChunkSize)

	for range maxEmptyReads {
		n, err := s.r.Read(s.buf[len(s.buf):cap(s.buf)])
		if n > 0 {
			s.buf = s.buf[:len(s.buf)+n]
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.eof = true
			} else {
				s.fail(err)
			}
			return
		}
		if n > 0 {
			return
		}
	}
	s.fail(io.ErrNoProgress)
}

func (s *byteSource) fail(err error) {
	s.eof = true
	if s.err == nil {
		s.err = err
	}
}
