// Package header models per-channel header fields and reconciles the
// headers of all channels of a recording into one manifest: fields constant
// across every channel are emitted once, fields that differ per channel are
// emitted as one value per channel.
package header

import "time"

// Kind identifies the scalar type held by a Value.
type Kind uint8

const (
	// KindAbsent marks a field that a header does not carry.
	KindAbsent Kind = iota
	// KindString is a free-form text value.
	KindString
	// KindInt is a signed integer value.
	KindInt
	// KindFloat is a floating-point value.
	KindFloat
	// KindBool is a boolean value.
	KindBool
	// KindTime is a timestamp value.
	KindTime
)

// Value is a closed union over the scalar types a header field can hold.
// The zero Value is absent.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

// Absent returns the absent Value.
func Absent() Value { return Value{} }

// String returns a text Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a timestamp Value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Str returns the text payload; empty unless Kind is KindString.
func (v Value) Str() string { return v.str }

// Int returns the integer payload; zero unless Kind is KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the floating-point payload; zero unless Kind is KindFloat.
func (v Value) Float() float64 { return v.f }

// Bool returns the boolean payload; false unless Kind is KindBool.
func (v Value) Bool() bool { return v.b }

// Time returns the timestamp payload; zero unless Kind is KindTime.
func (v Value) Time() time.Time { return v.t }

// Equal reports whether two values have the same kind and payload. Two
// absent values are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindAbsent:
		return true
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return false
	}
}
