package testutil

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jszwec/csvutil"
)

// DecodeCSV decodes a CSV document with a header row into rows of T.
// An empty document yields no rows.
func DecodeCSV[T any](t *testing.T, body string) []T {
	t.Helper()

	rows := []T{}
	dec, err := csvutil.NewDecoder(csv.NewReader(strings.NewReader(body)))
	if errors.Is(err, io.EOF) {
		return rows
	}
	if err != nil {
		t.Fatalf("Failed to read CSV header: %v", err)
	}
	if err := dec.Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("Failed to decode CSV rows: %v", err)
	}
	return rows
}
