package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateParser_Parse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		valid   bool
		expects time.Time
	}{
		{
			name:    "RFC3339 UTC",
			input:   "2026-01-15T10:30:00Z",
			valid:   true,
			expects: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "fractional seconds",
			input:   "2026-01-15T10:30:00.123456789Z",
			valid:   true,
			expects: time.Date(2026, 1, 15, 10, 30, 0, 123456789, time.UTC),
		},
		{
			name:    "date only",
			input:   "2026-01-15",
			valid:   true,
			expects: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "surrounding whitespace",
			input:   "  2026-01-15T10:30:00Z  ",
			valid:   true,
			expects: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "epoch milliseconds",
			input:   "1768473000123",
			valid:   true,
			expects: time.UnixMilli(1768473000123).UTC(),
		},
		{name: "empty string", input: "", valid: false},
		{name: "garbage", input: "not a date", valid: false},
		{name: "partial date", input: "2026-01", valid: false},
	}

	parser := NewDateParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.Parse(tt.input)
			assert.Equal(t, tt.valid, result.IsValid)
			if tt.valid {
				assert.True(t, tt.expects.Equal(result.ParsedTime))
			}
		})
	}
}

func TestParseDate_BadInputIsZeroTime(t *testing.T) {
	assert.True(t, ParseDate("nope").IsZero())
	assert.True(t, ParseDate("").IsZero())
}
