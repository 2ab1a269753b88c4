// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package key

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"

	"github.com/sage-x-project/go-httpsig/sigerr"
)

// FromNative adapts an already-constructed native private key handle
// (*rsa.PrivateKey, *ecdsa.PrivateKey, ed25519.PrivateKey, or a raw
// []byte HMAC secret) to a PrivateKeyInfo, validating that native's
// concrete type belongs to alg's key family. The public half of a pair
// also passes this check; Sign then rejects it with INVALID_KEY.
func FromNative(alg Algorithm, native any) (PrivateKeyInfo, error) {
	if alg == HMACSHA256 {
		secret, ok := native.([]byte)
		if !ok || len(secret) == 0 {
			return PrivateKeyInfo{}, sigerr.New(sigerr.CodeInvalidKey, "hmac-sha256 requires a non-empty []byte secret")
		}
		return PrivateKeyInfo{Algorithm: alg, HMACKey: secret}, nil
	}
	if err := checkNativeKeyType(alg, native); err != nil {
		return PrivateKeyInfo{}, err
	}
	return PrivateKeyInfo{Algorithm: alg, Key: native}, nil
}

// FromNativePublic adapts an already-constructed native public key
// handle (*rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey, or a raw
// []byte HMAC secret) to a PublicKeyInfo, validating that native's
// concrete type belongs to alg's key family. The private half of a
// pair also passes this check; Verify then rejects it with INVALID_KEY.
func FromNativePublic(alg Algorithm, native any) (PublicKeyInfo, error) {
	if alg == HMACSHA256 {
		secret, ok := native.([]byte)
		if !ok || len(secret) == 0 {
			return PublicKeyInfo{}, sigerr.New(sigerr.CodeInvalidKey, "hmac-sha256 requires a non-empty []byte secret")
		}
		return PublicKeyInfo{Algorithm: alg, HMACKey: secret}, nil
	}
	if err := checkNativeKeyType(alg, native); err != nil {
		return PublicKeyInfo{}, err
	}
	return PublicKeyInfo{Algorithm: alg, Key: native}, nil
}

// checkNativeKeyType reports whether native's concrete type is one
// Sign/Verify accept for alg, independent of public/private — both
// halves of an asymmetric pair are rejected or accepted together so
// the caller finds out about a mismatch here rather than at sign time.
func checkNativeKeyType(alg Algorithm, native any) error {
	switch alg {
	case RSAV15SHA256, RSAPSSSHA512:
		switch native.(type) {
		case *rsa.PrivateKey, *rsa.PublicKey:
			return nil
		}
	case ECDSAP256SHA256, ECDSAP384SHA384:
		switch native.(type) {
		case *ecdsa.PrivateKey, *ecdsa.PublicKey:
			return nil
		}
	case Ed25519:
		switch native.(type) {
		case ed25519.PrivateKey, ed25519.PublicKey:
			return nil
		}
	default:
		return sigerr.New(sigerr.CodeUnknownAlgorithm, "unknown algorithm %q", alg)
	}
	return sigerr.New(sigerr.CodeInvalidKey, "native key handle of type %T does not match algorithm %q", native, alg)
}
