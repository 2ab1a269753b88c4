// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package verifier

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/go-httpsig/httpsig/component"
	"github.com/sage-x-project/go-httpsig/httpsig/key"
	"github.com/sage-x-project/go-httpsig/httpsig/signer"
	"github.com/sage-x-project/go-httpsig/sigerr"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newSignedMessage(t *testing.T, created int64) (*component.Context, string, string, ed25519.PublicKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	ctx := component.NewContext()
	ctx.Method = "GET"
	ctx.TargetURI = "https://example.com/resource"
	ctx.AddHeader("Content-Type", "application/json")

	s := signer.NewSpec("sig1", key.PrivateKeyInfo{Algorithm: key.Ed25519, Key: priv}, ctx).
		Require(component.Derived("@method"), component.Header("content-type")).
		Created(created).
		KeyID("k1")
	result, err := signer.Sign(s)
	require.NoError(t, err)
	return ctx, result.SignatureInput, result.Signature, pub
}

func TestVerify_Succeeds(t *testing.T) {
	ctx, input, sig, pub := newSignedMessage(t, 1000)

	getter := func(keyid string) (key.PublicKeyInfo, error) {
		assert.Equal(t, "k1", keyid)
		return key.PublicKeyInfo{Algorithm: key.Ed25519, Key: pub}, nil
	}
	s := NewSpec(ctx, input, sig, getter).WithLabel("sig1").
		RequireComponents(component.Derived("@method"))
	result, err := Verify(s)
	require.NoError(t, err)
	assert.Equal(t, "sig1", result.Label)
}

func TestVerify_TamperedComponentValueFailsSignature(t *testing.T) {
	ctx, input, sig, pub := newSignedMessage(t, 1000)
	ctx.AddHeader("Content-Type", "text/plain")

	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Algorithm: key.Ed25519, Key: pub}, nil
	}
	s := NewSpec(ctx, input, sig, getter).WithLabel("sig1")
	_, err := Verify(s)
	require.Error(t, err)
	var sigErr *sigerr.Error
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, sigerr.CodeIncorrectSignature, sigErr.Code)
}

func TestVerify_MissingSignatureLabel(t *testing.T) {
	ctx, input, sig, pub := newSignedMessage(t, 1000)
	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Algorithm: key.Ed25519, Key: pub}, nil
	}
	s := NewSpec(ctx, input, sig, getter).WithLabel("no-such-label")
	_, err := Verify(s)
	require.Error(t, err)
	var sigErr *sigerr.Error
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, sigerr.CodeMissingSignature, sigErr.Code)
}

func TestVerify_RequiredComponentNotCovered(t *testing.T) {
	ctx, input, sig, pub := newSignedMessage(t, 1000)
	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Algorithm: key.Ed25519, Key: pub}, nil
	}
	s := NewSpec(ctx, input, sig, getter).WithLabel("sig1").
		RequireComponents(component.Derived("@authority"))
	_, err := Verify(s)
	require.Error(t, err)
	var sigErr *sigerr.Error
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, sigerr.CodeMissingComponent, sigErr.Code)
}

func TestVerify_RequiredParamMissing(t *testing.T) {
	ctx, input, sig, pub := newSignedMessage(t, 1000)
	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Algorithm: key.Ed25519, Key: pub}, nil
	}
	s := NewSpec(ctx, input, sig, getter).WithLabel("sig1").
		RequireParams("nonce")
	_, err := Verify(s)
	require.Error(t, err)
	var sigErr *sigerr.Error
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, sigerr.CodeMissingParameter, sigErr.Code)
}

func TestVerify_ForbiddenParamPresent(t *testing.T) {
	ctx, input, sig, pub := newSignedMessage(t, 1000)
	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Algorithm: key.Ed25519, Key: pub}, nil
	}
	s := NewSpec(ctx, input, sig, getter).WithLabel("sig1").
		ForbidParams("created")
	_, err := Verify(s)
	require.Error(t, err)
	var sigErr *sigerr.Error
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, sigerr.CodeUnauthorizedParameter, sigErr.Code)
}

func TestVerify_ExpiredWhenCreatedExceedsMaxAge(t *testing.T) {
	now := time.Unix(2000, 0)
	ctx, input, sig, pub := newSignedMessage(t, now.Unix()-120)
	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Algorithm: key.Ed25519, Key: pub}, nil
	}
	s := NewSpec(ctx, input, sig, getter).WithLabel("sig1")
	s.Clock = fixedClock{t: now}
	s.WithMaxAge(60 * time.Second)

	_, err := Verify(s)
	require.Error(t, err)
	var sigErr *sigerr.Error
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, sigerr.CodeExpired, sigErr.Code)
}

func TestVerify_FutureWhenCreatedExceedsMaxSkew(t *testing.T) {
	now := time.Unix(2000, 0)
	ctx, input, sig, pub := newSignedMessage(t, now.Unix()+120)
	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Algorithm: key.Ed25519, Key: pub}, nil
	}
	s := NewSpec(ctx, input, sig, getter).WithLabel("sig1")
	s.Clock = fixedClock{t: now}
	s.WithMaxSkew(30 * time.Second)

	_, err := Verify(s)
	require.Error(t, err)
	var sigErr *sigerr.Error
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, sigerr.CodeFuture, sigErr.Code)
}

func TestVerify_ExpiresParameterEnforced(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	ctx := component.NewContext()
	ctx.Method = "GET"
	ctx.TargetURI = "https://example.com/"

	s := signer.NewSpec("sig1", key.PrivateKeyInfo{Algorithm: key.Ed25519, Key: priv}, ctx).
		Require(component.Derived("@method")).
		Created(1000).
		Expires(1100).
		KeyID("k1")
	result, err := signer.Sign(s)
	require.NoError(t, err)

	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Algorithm: key.Ed25519, Key: pub}, nil
	}
	vs := NewSpec(ctx, result.SignatureInput, result.Signature, getter).WithLabel("sig1")
	vs.Clock = fixedClock{t: time.Unix(1200, 0)}

	_, err = Verify(vs)
	require.Error(t, err)
	var sigErr *sigerr.Error
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, sigerr.CodeExpired, sigErr.Code)
}

func TestVerify_KeyGetterErrorPreservesCause(t *testing.T) {
	ctx, input, sig, _ := newSignedMessage(t, 1000)
	cause := fmt.Errorf("no such key in store")
	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{}, cause
	}
	s := NewSpec(ctx, input, sig, getter).WithLabel("sig1")
	_, err := Verify(s)
	require.Error(t, err)
	var sigErr *sigerr.Error
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, sigerr.CodeKeyGetterError, sigErr.Code)
	assert.ErrorIs(t, err, cause)
}

func TestVerify_TagSelection(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ctx := component.NewContext()
	ctx.Method = "GET"
	ctx.TargetURI = "https://example.com/"

	s := signer.NewSpec("sig1", key.PrivateKeyInfo{Algorithm: key.Ed25519, Key: priv}, ctx).
		Require(component.Derived("@method")).
		Created(1000).
		Tag("app1").
		KeyID("k1")
	result, err := signer.Sign(s)
	require.NoError(t, err)

	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Algorithm: key.Ed25519, Key: pub}, nil
	}
	vs := NewSpec(ctx, result.SignatureInput, result.Signature, getter).WithTag("app1")
	res, err := Verify(vs)
	require.NoError(t, err)
	assert.Equal(t, "sig1", res.Label)
}

func TestVerify_AlgorithmFallsBackToAlgParameter(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ctx := component.NewContext()
	ctx.Method = "GET"
	ctx.TargetURI = "https://example.com/"

	s := signer.NewSpec("sig1", key.PrivateKeyInfo{Algorithm: key.Ed25519, Key: priv}, ctx).
		Require(component.Derived("@method")).
		Created(1000).
		VisibleAlgorithm(key.Ed25519).
		KeyID("k1")
	result, err := signer.Sign(s)
	require.NoError(t, err)

	// The key getter supplies the key but no algorithm hint; the
	// signed "alg" parameter must be consulted instead.
	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Key: pub}, nil
	}
	vs := NewSpec(ctx, result.SignatureInput, result.Signature, getter).WithLabel("sig1")
	res, err := Verify(vs)
	require.NoError(t, err)
	assert.Equal(t, "sig1", res.Label)
}

func TestVerify_NoAlgorithmAvailableFails(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ctx := component.NewContext()
	ctx.Method = "GET"
	ctx.TargetURI = "https://example.com/"

	s := signer.NewSpec("sig1", key.PrivateKeyInfo{Algorithm: key.Ed25519, Key: priv}, ctx).
		Require(component.Derived("@method")).
		Created(1000).
		KeyID("k1")
	result, err := signer.Sign(s)
	require.NoError(t, err)

	getter := func(string) (key.PublicKeyInfo, error) {
		return key.PublicKeyInfo{Key: pub}, nil
	}
	vs := NewSpec(ctx, result.SignatureInput, result.Signature, getter).WithLabel("sig1")
	_, err = Verify(vs)
	require.Error(t, err)
	var sigErr *sigerr.Error
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, sigerr.CodeIncorrectAlgorithm, sigErr.Code)
}
