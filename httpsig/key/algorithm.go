// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

// Package key adapts PKCS#8/X.509 base-64 key material (and raw HMAC
// secrets) to the six closed signature algorithms, and performs the
// actual sign/verify cryptographic operation for each.
package key

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"math/big"

	"github.com/sage-x-project/go-httpsig/sigerr"
)

// Algorithm identifies one of the six closed signature algorithms by
// its `alg` signature-parameter tag.
type Algorithm string

const (
	RSAV15SHA256    Algorithm = "rsa-v1_5-sha256"
	RSAPSSSHA512    Algorithm = "rsa-pss-sha512"
	ECDSAP256SHA256 Algorithm = "ecdsa-p256-sha256"
	ECDSAP384SHA384 Algorithm = "ecdsa-p384-sha384"
	Ed25519         Algorithm = "ed25519"
	HMACSHA256      Algorithm = "hmac-sha256"
)

// Known reports whether alg is one of the six closed algorithms.
func Known(alg Algorithm) bool {
	switch alg {
	case RSAV15SHA256, RSAPSSSHA512, ECDSAP256SHA256, ECDSAP384SHA384, Ed25519, HMACSHA256:
		return true
	default:
		return false
	}
}

// PublicKeyInfo pairs a parsed public key (or raw HMAC secret) with
// the algorithm the caller intends to use it for.
type PublicKeyInfo struct {
	Algorithm Algorithm
	Key       crypto.PublicKey
	HMACKey   []byte
}

// PrivateKeyInfo pairs a parsed private key (or raw HMAC secret) with
// the algorithm the caller intends to use it for.
type PrivateKeyInfo struct {
	Algorithm Algorithm
	Key       crypto.PrivateKey
	HMACKey   []byte
}

// Sign produces the raw signature bytes for base under priv's
// algorithm. ECDSA signatures are the fixed-width IEEE P1363 (r‖s)
// form, not ASN.1 DER.
func Sign(priv PrivateKeyInfo, base []byte) ([]byte, error) {
	switch priv.Algorithm {
	case RSAV15SHA256:
		rk, ok := priv.Key.(*rsa.PrivateKey)
		if !ok {
			return nil, sigerr.New(sigerr.CodeInvalidKey, "rsa-v1_5-sha256 requires an *rsa.PrivateKey")
		}
		h := sha256.Sum256(base)
		return rsa.SignPKCS1v15(rand.Reader, rk, crypto.SHA256, h[:])
	case RSAPSSSHA512:
		rk, ok := priv.Key.(*rsa.PrivateKey)
		if !ok {
			return nil, sigerr.New(sigerr.CodeInvalidKey, "rsa-pss-sha512 requires an *rsa.PrivateKey")
		}
		h := sha512.Sum512(base)
		return rsa.SignPSS(rand.Reader, rk, crypto.SHA512, h[:], &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash})
	case ECDSAP256SHA256:
		ek, ok := priv.Key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, sigerr.New(sigerr.CodeInvalidKey, "ecdsa-p256-sha256 requires an *ecdsa.PrivateKey")
		}
		h := sha256.Sum256(base)
		return signECDSAFixedWidth(ek, h[:], 32)
	case ECDSAP384SHA384:
		ek, ok := priv.Key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, sigerr.New(sigerr.CodeInvalidKey, "ecdsa-p384-sha384 requires an *ecdsa.PrivateKey")
		}
		h := sha512.Sum384(base)
		return signECDSAFixedWidth(ek, h[:], 48)
	case Ed25519:
		pk, ok := priv.Key.(ed25519.PrivateKey)
		if !ok {
			return nil, sigerr.New(sigerr.CodeInvalidKey, "ed25519 requires an ed25519.PrivateKey")
		}
		return ed25519.Sign(pk, base), nil
	case HMACSHA256:
		if len(priv.HMACKey) == 0 {
			return nil, sigerr.New(sigerr.CodeInvalidKey, "hmac-sha256 requires a non-empty HMAC secret")
		}
		mac := hmac.New(sha256.New, priv.HMACKey)
		mac.Write(base)
		return mac.Sum(nil), nil
	default:
		return nil, sigerr.New(sigerr.CodeUnknownAlgorithm, "unknown signing algorithm %q", priv.Algorithm)
	}
}

// Verify checks sig over base under pub's algorithm. Signature-byte
// comparison for HMAC runs in constant time.
func Verify(pub PublicKeyInfo, base, sig []byte) error {
	switch pub.Algorithm {
	case RSAV15SHA256:
		rk, ok := pub.Key.(*rsa.PublicKey)
		if !ok {
			return sigerr.New(sigerr.CodeInvalidKey, "rsa-v1_5-sha256 requires an *rsa.PublicKey")
		}
		h := sha256.Sum256(base)
		if err := rsa.VerifyPKCS1v15(rk, crypto.SHA256, h[:], sig); err != nil {
			return sigerr.Wrap(sigerr.CodeIncorrectSignature, err, "rsa-v1_5-sha256 verification failed")
		}
		return nil
	case RSAPSSSHA512:
		rk, ok := pub.Key.(*rsa.PublicKey)
		if !ok {
			return sigerr.New(sigerr.CodeInvalidKey, "rsa-pss-sha512 requires an *rsa.PublicKey")
		}
		h := sha512.Sum512(base)
		if err := rsa.VerifyPSS(rk, crypto.SHA512, h[:], sig, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash}); err != nil {
			return sigerr.Wrap(sigerr.CodeIncorrectSignature, err, "rsa-pss-sha512 verification failed")
		}
		return nil
	case ECDSAP256SHA256:
		ek, ok := pub.Key.(*ecdsa.PublicKey)
		if !ok {
			return sigerr.New(sigerr.CodeInvalidKey, "ecdsa-p256-sha256 requires an *ecdsa.PublicKey")
		}
		h := sha256.Sum256(base)
		return verifyECDSAFixedWidth(ek, h[:], sig, 32)
	case ECDSAP384SHA384:
		ek, ok := pub.Key.(*ecdsa.PublicKey)
		if !ok {
			return sigerr.New(sigerr.CodeInvalidKey, "ecdsa-p384-sha384 requires an *ecdsa.PublicKey")
		}
		h := sha512.Sum384(base)
		return verifyECDSAFixedWidth(ek, h[:], sig, 48)
	case Ed25519:
		pk, ok := pub.Key.(ed25519.PublicKey)
		if !ok {
			return sigerr.New(sigerr.CodeInvalidKey, "ed25519 requires an ed25519.PublicKey")
		}
		if !ed25519.Verify(pk, base, sig) {
			return sigerr.New(sigerr.CodeIncorrectSignature, "ed25519 verification failed")
		}
		return nil
	case HMACSHA256:
		if len(pub.HMACKey) == 0 {
			return sigerr.New(sigerr.CodeInvalidKey, "hmac-sha256 requires a non-empty HMAC secret")
		}
		mac := hmac.New(sha256.New, pub.HMACKey)
		mac.Write(base)
		want := mac.Sum(nil)
		if len(want) != len(sig) || subtle.ConstantTimeCompare(want, sig) != 1 {
			return sigerr.New(sigerr.CodeIncorrectSignature, "hmac-sha256 verification failed")
		}
		return nil
	default:
		return sigerr.New(sigerr.CodeUnknownAlgorithm, "unknown verification algorithm %q", pub.Algorithm)
	}
}

// signECDSAFixedWidth signs digest and renders r‖s left-padded to
// width bytes each, per the IEEE P1363 convention §4.D requires.
func signECDSAFixedWidth(priv *ecdsa.PrivateKey, digest []byte, width int) ([]byte, error) {
	r, s, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.CodeGeneric, err, "ecdsa sign failed")
	}
	out := make([]byte, 2*width)
	r.FillBytes(out[:width])
	s.FillBytes(out[width:])
	return out, nil
}

// verifyECDSAFixedWidth checks a P1363 r‖s signature of exactly
// 2*width bytes.
func verifyECDSAFixedWidth(pub *ecdsa.PublicKey, digest, sig []byte, width int) error {
	if len(sig) != 2*width {
		return sigerr.New(sigerr.CodeIncorrectSignature, "ecdsa signature must be %d bytes, got %d", 2*width, len(sig))
	}
	r := new(big.Int).SetBytes(sig[:width])
	s := new(big.Int).SetBytes(sig[width:])
	if !ecdsa.Verify(pub, digest, r, s) {
		return sigerr.New(sigerr.CodeIncorrectSignature, "ecdsa verification failed")
	}
	return nil
}
