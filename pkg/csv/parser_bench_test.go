package csv_test

import (
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	shapecsv "github.com/shapestone/shape-csvrow/pkg/csv"
)

// benchmarkInput builds rows of mixed quoted and unquoted fields.
func benchmarkInput(rows int) string {
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "%d,name-%d,\"Street %d, Apt %d\",\"said \"\"hi\"\"\"\r\n", i, i, i, i%10)
	}
	return sb.String()
}

func BenchmarkParseDocument_1K(b *testing.B) {
	data := benchmarkInput(1000)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := shapecsv.ParseDocument(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScanner_1K(b *testing.B) {
	data := benchmarkInput(1000)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scanner := shapecsv.NewScanner(strings.NewReader(data))
		for scanner.Scan() {
		}
		if err := scanner.Err(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEncodingCSV_1K is the stdlib baseline for the benchmarks above.
func BenchmarkEncodingCSV_1K(b *testing.B) {
	data := benchmarkInput(1000)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := csv.NewReader(strings.NewReader(data)).ReadAll(); err != nil {
			b.Fatal(err)
		}
	}
}
