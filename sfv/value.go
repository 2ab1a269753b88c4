// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in errors.go.

package sfv

// Kind identifies which of the RFC 8941 bare-item variants a BareItem
// holds.
type Kind int

const (
	KindInteger Kind = iota
	KindDecimal
	KindString
	KindToken
	KindByteSequence
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindDecimal:
		return "Decimal"
	case KindString:
		return "String"
	case KindToken:
		return "Token"
	case KindByteSequence:
		return "ByteSequence"
	case KindBoolean:
		return "Boolean"
	default:
		return "Unknown"
	}
}

const (
	minInteger int64 = -999_999_999_999_999 // -(10^15 - 1)
	maxInteger int64 = 999_999_999_999_999  // 10^15 - 1
)

// BareItem is one of the six RFC 8941 scalar kinds. It is the
// immutable payload of an Item or of one element of an Inner List.
type BareItem struct {
	kind  Kind
	i     int64
	dec   Decimal
	str   string
	bytes []byte
	b     bool
}

// Kind reports which scalar variant is stored.
func (v BareItem) Kind() Kind { return v.kind }

// NewInteger constructs an Integer bare item, rejecting values outside
// -10^15 < v < 10^15.
func NewInteger(v int64) (BareItem, error) {
	if v < minInteger || v > maxInteger {
		return BareItem{}, newErr(CodeWrongNumber, "integer %d out of range", v)
	}
	return BareItem{kind: KindInteger, i: v}, nil
}

// MustInteger panics if v is out of range; for use with compile-time
// constants in tests and fixtures.
func MustInteger(v int64) BareItem {
	bi, err := NewInteger(v)
	if err != nil {
		panic(err)
	}
	return bi
}

// NewDecimalItem constructs a Decimal bare item.
func NewDecimalItem(d Decimal) BareItem {
	return BareItem{kind: KindDecimal, dec: d}
}

// NewString constructs a String bare item. The content must be
// printable ASCII (0x20-0x7E); '"' and '\' are accepted, since BareItem
// stores the logical string and the serializer escapes them.
func NewString(s string) (BareItem, error) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c > 0x7E {
			return BareItem{}, newErr(CodeUnexpectedCharacter, "string contains non-printable-ASCII byte 0x%02x", c)
		}
	}
	return BareItem{kind: KindString, str: s}, nil
}

// NewToken constructs a Token bare item, validating the sf-token
// grammar: first character a letter or '*', remainder drawn from
// letters, digits, and ":/!#$%&'*+-.^_`|~".
func NewToken(s string) (BareItem, error) {
	if s == "" {
		return BareItem{}, newErr(CodeUnexpectedCharacter, "token must not be empty")
	}
	if !isTokenLead(s[0]) {
		return BareItem{}, newErr(CodeUnexpectedCharacter, "token %q must start with a letter or '*'", s)
	}
	for i := 1; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return BareItem{}, newErr(CodeUnexpectedCharacter, "token %q contains invalid character %q", s, s[i])
		}
	}
	return BareItem{kind: KindToken, str: s}, nil
}

// NewByteSequence constructs a Byte Sequence bare item from raw octets.
func NewByteSequence(b []byte) BareItem {
	cp := make([]byte, len(b))
	copy(cp, b)
	return BareItem{kind: KindByteSequence, bytes: cp}
}

// NewBoolean constructs a Boolean bare item.
func NewBoolean(b bool) BareItem {
	return BareItem{kind: KindBoolean, b: b}
}

// Integer returns the stored value, or WRONG_ITEM_CLASS if this is not
// an Integer.
func (v BareItem) Integer() (int64, error) {
	if v.kind != KindInteger {
		return 0, wrongClass(KindInteger, v.kind)
	}
	return v.i, nil
}

// Decimal returns the stored value, or WRONG_ITEM_CLASS if this is not
// a Decimal.
func (v BareItem) Decimal() (Decimal, error) {
	if v.kind != KindDecimal {
		return Decimal{}, wrongClass(KindDecimal, v.kind)
	}
	return v.dec, nil
}

// String returns the stored value, or WRONG_ITEM_CLASS if this is not
// a String.
func (v BareItem) String() (string, error) {
	if v.kind != KindString {
		return "", wrongClass(KindString, v.kind)
	}
	return v.str, nil
}

// Token returns the stored value, or WRONG_ITEM_CLASS if this is not a
// Token.
func (v BareItem) Token() (string, error) {
	if v.kind != KindToken {
		return "", wrongClass(KindToken, v.kind)
	}
	return v.str, nil
}

// ByteSequence returns a copy of the stored octets, or WRONG_ITEM_CLASS
// if this is not a Byte Sequence.
func (v BareItem) ByteSequence() ([]byte, error) {
	if v.kind != KindByteSequence {
		return nil, wrongClass(KindByteSequence, v.kind)
	}
	cp := make([]byte, len(v.bytes))
	copy(cp, v.bytes)
	return cp, nil
}

// Boolean returns the stored value, or WRONG_ITEM_CLASS if this is not
// a Boolean.
func (v BareItem) Boolean() (bool, error) {
	if v.kind != KindBoolean {
		return false, wrongClass(KindBoolean, v.kind)
	}
	return v.b, nil
}

func wrongClass(want, got Kind) error {
	return newErr(CodeWrongItemClass, "expected %s, got %s", want, got)
}

func isTokenLead(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '*'
}

func isTokenChar(c byte) bool {
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
		return true
	}
	switch c {
	case ':', '/', '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
