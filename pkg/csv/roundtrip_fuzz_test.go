//go:build go1.18
// +build go1.18

package csv_test

import (
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/shapestone/shape-csvrow/pkg/csv"
)

// FuzzRoundTrip checks that rendering parsed records and parsing again
// yields the same records.
// Run with: go test -fuzz=FuzzRoundTrip -fuzztime=30s ./pkg/csv
func FuzzRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"a,b,c\n",
		"\"a,b\",c\n",
		"\"a\"\"b\",c\n",
		"a,b\r\n",
		"\"x\ny\"",
		"a\"b\"c",
		"\"open",
		"\n\n",
		"caf\xe9,\"\xff\"\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		first, err := csv.ParseDocument(input)
		if err != nil {
			t.Fatalf("ParseDocument() error: %v", err)
		}

		out, err := first.CSV()
		if err != nil {
			t.Fatalf("CSV() error: %v", err)
		}

		second, err := csv.ParseDocument(out)
		if err != nil {
			t.Fatalf("re-parse error: %v", err)
		}
		if !reflect.DeepEqual(first.Rows(), second.Rows()) {
			t.Fatalf("round trip mismatch:\n first  %q\n second %q\n csv    %q", first.Rows(), second.Rows(), out)
		}
	})
}

// FuzzParseReader checks that ParseReader over a reader returning small
// chunks produces the same records as Parse over the same input.
// Run with: go test -fuzz=FuzzParseReader -fuzztime=30s ./pkg/csv
func FuzzParseReader(f *testing.F) {
	seeds := []string{
		"a,b,c\n",
		"\"x\ny\",z\r\n",
		"\xc3\xa9,\xe9\n",
		"\"open,",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		want, err := csv.Parse(input)
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		got, err := csv.ParseReader(iotest.OneByteReader(strings.NewReader(input)))
		if err != nil {
			t.Fatalf("ParseReader() error: %v", err)
		}
		if w, g := nodeRecords(t, want), nodeRecords(t, got); !reflect.DeepEqual(g, w) {
			t.Fatalf("ParseReader() = %q, Parse() = %q", g, w)
		}
	})
}
