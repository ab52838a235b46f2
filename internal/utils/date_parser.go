package utils

import (
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601     DateFormat = "2006-01-02T15:04:05Z07:00"
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatRFC3339     DateFormat = "2006-01-02T15:04:05Z"
	FormatRFC3339Nano DateFormat = "2006-01-02T15:04:05.999999999Z07:00"
	FormatUnixMilli   DateFormat = "unix-milli"
)

// DateParser normalizes the timestamp strings the backend emits. The backend
// is not consistent about fractional seconds, so every supported layout is
// tried in order.
type DateParser struct {
	supportedFormats []DateFormat
}

func NewDateParser() *DateParser {
	return &DateParser{
		supportedFormats: []DateFormat{
			FormatRFC3339Nano,
			FormatISO8601,
			FormatRFC3339,
			FormatISO8601Date,
			FormatUnixMilli,
		},
	}
}

type ParseResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
}

func (dp *DateParser) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return ParseResult{}
	}

	for _, format := range dp.supportedFormats {
		if format == FormatUnixMilli {
			if millis, err := strconv.ParseInt(input, 10, 64); err == nil {
				return ParseResult{IsValid: true, DetectedFormat: format, ParsedTime: time.UnixMilli(millis).UTC()}
			}
			continue
		}
		if t, err := time.Parse(string(format), input); err == nil {
			return ParseResult{IsValid: true, DetectedFormat: format, ParsedTime: t}
		}
	}

	return ParseResult{}
}

// ParseDate is the package-level shortcut used by the serializers. A bad or
// empty input yields the zero time rather than an error; record timestamps
// are display-only.
func ParseDate(input string) time.Time {
	return NewDateParser().Parse(input).ParsedTime
}
