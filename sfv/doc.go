// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in errors.go.

// Package sfv is a bit-exact codec for RFC 8941 Structured Field
// Values: Items, Inner Lists, Lists, Dictionaries, and Parameters over
// the six scalar kinds (Integer, Decimal, String, Token, Byte
// Sequence, Boolean).
//
// # Parsing
//
//	dict, err := sfv.ParseDictionary(`a=?0, b, c;foo=bar`)
//	b, _ := dict.Get("b")
//	item, _ := b.Item()
//	v, _ := item.Value.Boolean() // true
//
// # Serializing
//
// Every parse result round-trips through Serialize* back to the
// canonical wire form: redundant whitespace is removed, numbers are
// stripped of leading zeros, and `a=?0, b, c;foo=bar` serializes
// identically to how it parsed.
//
//	sfv.SerializeDictionary(dict) // "a=?0, b, c;foo=bar"
//
// # Errors
//
// Every failure is an *Error carrying one of the Code constants
// (EMPTY_INPUT, UNEXPECTED_CHARACTER, MISSING_CHARACTER, WRONG_NUMBER,
// INVALID_BYTES, WRONG_ITEM_CLASS, INVALID_KEY), retrievable with
// errors.As.
package sfv
