// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// Algorithm identifies a supported digest hash function by its
// Content-Digest/Repr-Digest dictionary key.
type Algorithm string

const (
	SHA256 Algorithm = "sha-256"
	SHA512 Algorithm = "sha-512"
)

var hashers = map[Algorithm]func() hash.Hash{
	SHA256: sha256.New,
	SHA512: sha512.New,
}

// Supported reports whether alg is one of the algorithms this package
// can compute and verify.
func Supported(alg Algorithm) bool {
	_, ok := hashers[alg]
	return ok
}

func sum(alg Algorithm, content []byte) ([]byte, error) {
	newHash, ok := hashers[alg]
	if !ok {
		return nil, newErr(CodeUnsupportedAlgorithm, "algorithm %q is not supported", alg)
	}
	h := newHash()
	h.Write(content)
	return h.Sum(nil), nil
}
