// Package extract pulls bracketed integer tokens out of log messages.
package extract

import (
	"fmt"
	"regexp"

	"github.com/crimson-sun/ddexport/internal/model"
)

// tokenPattern matches one or more ASCII digits between square brackets.
var tokenPattern = regexp.MustCompile(`\[([0-9]+)\]`)

// Tokens returns the digit strings of every bracketed integer in message,
// left to right. A message without tokens yields an empty slice.
func Tokens(message string) []string {
	matches := tokenPattern.FindAllStringSubmatch(message, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}
	return tokens
}

// Rows extracts one row per record. It stops at the first record whose
// message cannot be read.
func Rows(records []model.LogRecord) ([]model.Row, error) {
	rows := make([]model.Row, 0, len(records))
	for i, rec := range records {
		msg, err := rec.Message()
		if err != nil {
			return nil, fmt.Errorf("extract: record %d: %w", i, err)
		}
		rows = append(rows, Tokens(msg))
	}
	return rows, nil
}
