package header

import "strings"

// isoFormat renders times the way the consumer tooling expects: ISO-8601
// with microseconds, fractional part omitted when zero.
const isoFormat = "2006-01-02T15:04:05.999999"

// SanitizeName maps a header field name to an identifier the output format
// accepts: the micro sign becomes a plain "u".
func SanitizeName(name string) string {
	return strings.ReplaceAll(name, "µ", "u")
}

// SanitizeValue converts a value for serialization: timestamps become
// ISO-8601 text and absent values become the empty string. All other kinds
// pass through unchanged.
func SanitizeValue(v Value) Value {
	switch v.Kind() {
	case KindTime:
		return String(v.Time().Format(isoFormat))
	case KindAbsent:
		return String("")
	default:
		return v
	}
}
