package csv

import (
	"testing"
)

func TestDefaultReaderOptions(t *testing.T) {
	opts := DefaultReaderOptions()

	if opts.Comma != ',' {
		t.Errorf("Comma = %q, want ','", opts.Comma)
	}
	if opts.WarningCallback != nil {
		t.Error("WarningCallback should be nil")
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDefaultWriterOptions(t *testing.T) {
	opts := DefaultWriterOptions()

	if opts.Comma != ',' || opts.UseCRLF {
		t.Errorf("DefaultWriterOptions() = %+v", opts)
	}
	if opts.lineEnding() != "\n" {
		t.Errorf("lineEnding() = %q", opts.lineEnding())
	}
	opts.UseCRLF = true
	if opts.lineEnding() != "\r\n" {
		t.Errorf("lineEnding() with CRLF = %q", opts.lineEnding())
	}
}

func TestValidDelim(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{',', true},
		{';', true},
		{'\t', true},
		{'|', true},
		{'é', false},
		{0x80, false},
		{'~', true},
		{0, false},
		{'"', false},
		{'\r', false},
		{'\n', false},
		{0xFFFD, false},
		{-1, false},
	}

	for _, tt := range tests {
		if got := validDelim(tt.r); got != tt.want {
			t.Errorf("validDelim(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestParserOptions(t *testing.T) {
	called := false
	opts := ReaderOptions{
		Comma:           ';',
		WarningCallback: func(int, string) { called = true },
	}

	popts := opts.parserOptions()
	if popts.Comma != ';' {
		t.Errorf("Comma = %q, want ';'", popts.Comma)
	}
	popts.WarningCallback(1, "x")
	if !called {
		t.Error("WarningCallback not forwarded")
	}
}
