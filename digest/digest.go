// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package digest

import (
	"crypto/subtle"
	"sort"

	"github.com/sage-x-project/go-httpsig/sfv"
)

// Calculate computes content's digest under alg and renders it as a
// one-entry Content-Digest/Repr-Digest Structured Dictionary, ready to
// use as a header value.
func Calculate(content []byte, alg Algorithm) (string, error) {
	sum, err := sum(alg, content)
	if err != nil {
		return "", err
	}
	d := sfv.NewDictionary()
	if err := d.Set(string(alg), sfv.NewItemMember(sfv.NewItem(sfv.NewByteSequence(sum)))); err != nil {
		return "", wrapErr(CodeInvalidHeader, err, "building digest dictionary")
	}
	return sfv.SerializeDictionary(d), nil
}

// CalculateFromWant parses wantHeaderValue (a Want-Content-Digest or
// Want-Repr-Digest value: a Dictionary of Integer weights), picks the
// highest-weight supported algorithm with a stable tie-break on input
// order, and computes its digest header.
func CalculateFromWant(content []byte, wantHeaderValue string) (string, error) {
	want, err := sfv.ParseDictionary(wantHeaderValue)
	if err != nil {
		return "", wrapErr(CodeInvalidHeader, err, "parsing want-digest header")
	}
	keys := want.Keys()
	if len(keys) == 0 {
		return "", newErr(CodeInvalidHeader, "want-digest header is empty")
	}

	type candidate struct {
		alg    Algorithm
		weight int64
		order  int
	}
	var candidates []candidate
	for i, k := range keys {
		m, _ := want.Get(k)
		item, err := m.Item()
		if err != nil {
			return "", wrapErr(CodeInvalidHeader, err, "want-digest entry %q is not an Item", k)
		}
		weight, err := item.Value.Integer()
		if err != nil {
			return "", wrapErr(CodeInvalidHeader, err, "want-digest entry %q is not an Integer", k)
		}
		if weight == 0 {
			continue
		}
		candidates = append(candidates, candidate{alg: Algorithm(k), weight: weight, order: i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})

	for _, c := range candidates {
		if Supported(c.alg) {
			return Calculate(content, c.alg)
		}
	}
	return "", newErr(CodeUnsupportedAlgorithm, "no supported algorithm in want-digest header %q", wantHeaderValue)
}

// Verify parses digestHeaderValue as a Content-Digest/Repr-Digest
// Structured Dictionary of Byte Sequences and reports whether content
// matches any supported entry, comparing digest bytes in constant time.
func Verify(digestHeaderValue string, content []byte) error {
	d, err := sfv.ParseDictionary(digestHeaderValue)
	if err != nil {
		return wrapErr(CodeInvalidHeader, err, "parsing digest header")
	}
	keys := d.Keys()
	if len(keys) == 0 {
		return newErr(CodeInvalidHeader, "digest header is empty")
	}

	sawSupported := false
	for _, k := range keys {
		alg := Algorithm(k)
		if !Supported(alg) {
			continue
		}
		sawSupported = true
		m, _ := d.Get(k)
		item, err := m.Item()
		if err != nil {
			return wrapErr(CodeInvalidHeader, err, "digest entry %q is not an Item", k)
		}
		want, err := item.Value.ByteSequence()
		if err != nil {
			return wrapErr(CodeInvalidHeader, err, "digest entry %q is not a Byte Sequence", k)
		}
		got, err := sum(alg, content)
		if err != nil {
			return err
		}
		if len(want) == len(got) && subtle.ConstantTimeCompare(want, got) == 1 {
			return nil
		}
	}
	if !sawSupported {
		return newErr(CodeUnsupportedAlgorithm, "no supported algorithm in digest header %q", digestHeaderValue)
	}
	return newErr(CodeIncorrectDigest, "no digest entry in %q matched the computed digest", digestHeaderValue)
}
