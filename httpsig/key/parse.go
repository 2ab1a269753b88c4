// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package key

import (
	"crypto/x509"
	"encoding/base64"
	"strings"

	"github.com/sage-x-project/go-httpsig/sigerr"
)

// stripFraming removes optional "-----BEGIN ...-----"/"-----END
// ...-----" markers and all whitespace, leaving the bare base-64
// payload. This is the simple PKCS#8/X.509 base-64 framing the design
// supports — not a general PEM parser: multiple blocks, header
// fields, and non-base-64 PEM variants are out of scope.
func stripFraming(s string) string {
	var sb strings.Builder
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-----") {
			continue
		}
		sb.WriteString(line)
	}
	return sb.String()
}

func decodeBase64(s string) ([]byte, error) {
	payload := stripFraming(s)
	der, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.CodeInvalidKey, err, "key material is not valid base-64")
	}
	return der, nil
}

// ParsePublicKeyPEM parses a base-64 X.509 SubjectPublicKeyInfo input,
// tolerating optional BEGIN/END framing and embedded newlines.
func ParsePublicKeyPEM(alg Algorithm, s string) (PublicKeyInfo, error) {
	der, err := decodeBase64(s)
	if err != nil {
		return PublicKeyInfo{}, err
	}
	return ParsePublicKeyDER(alg, der)
}

// ParsePublicKeyDER parses raw X.509 SubjectPublicKeyInfo DER bytes
// for an asymmetric algorithm, or treats der as the raw HMAC secret
// when alg is HMACSHA256.
func ParsePublicKeyDER(alg Algorithm, der []byte) (PublicKeyInfo, error) {
	if alg == HMACSHA256 {
		return PublicKeyInfo{Algorithm: alg, HMACKey: der}, nil
	}
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		// Fall back to a bare PKCS#1 RSAPublicKey before giving up.
		// Keys whose SubjectPublicKeyInfo carries the RSASSA-PSS
		// algorithm identifier are not recognised by either parser and
		// fail with INVALID_KEY.
		if pk, pkcs1Err := x509.ParsePKCS1PublicKey(der); pkcs1Err == nil {
			return PublicKeyInfo{Algorithm: alg, Key: pk}, nil
		}
		return PublicKeyInfo{}, sigerr.Wrap(sigerr.CodeInvalidKey, err, "invalid public key material for %q", alg)
	}
	return PublicKeyInfo{Algorithm: alg, Key: pub}, nil
}

// ParsePrivateKeyPEM parses a base-64 PKCS#8 input, tolerating
// optional BEGIN/END framing and embedded newlines.
func ParsePrivateKeyPEM(alg Algorithm, s string) (PrivateKeyInfo, error) {
	der, err := decodeBase64(s)
	if err != nil {
		return PrivateKeyInfo{}, err
	}
	return ParsePrivateKeyDER(alg, der)
}

// ParsePrivateKeyDER parses raw PKCS#8 DER bytes for an asymmetric
// algorithm, or treats der as the raw HMAC secret when alg is
// HMACSHA256.
func ParsePrivateKeyDER(alg Algorithm, der []byte) (PrivateKeyInfo, error) {
	if alg == HMACSHA256 {
		return PrivateKeyInfo{Algorithm: alg, HMACKey: der}, nil
	}
	priv, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		if rk, pkcs1Err := x509.ParsePKCS1PrivateKey(der); pkcs1Err == nil {
			return PrivateKeyInfo{Algorithm: alg, Key: rk}, nil
		}
		if ek, ecErr := x509.ParseECPrivateKey(der); ecErr == nil {
			return PrivateKeyInfo{Algorithm: alg, Key: ek}, nil
		}
		return PrivateKeyInfo{}, sigerr.Wrap(sigerr.CodeInvalidKey, err, "invalid private key material for %q", alg)
	}
	return PrivateKeyInfo{Algorithm: alg, Key: priv}, nil
}

