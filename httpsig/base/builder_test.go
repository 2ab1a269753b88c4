// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/go-httpsig/httpsig/component"
)

func newCtx() *component.Context {
	ctx := component.NewContext()
	ctx.Method = "POST"
	ctx.TargetURI = "https://example.com/foo?param=value"
	ctx.AddHeader("Content-Type", "application/json")
	ctx.AddHeader("Content-Length", "18")
	return ctx
}

func TestBuilder_BuildProducesNewlineDelimitedLines(t *testing.T) {
	b := NewBuilder(newCtx())
	require.NoError(t, b.Add(component.Derived("@method")))
	require.NoError(t, b.Add(component.Header("content-type")))
	b.Params.SetCreated(1618884473)

	base := b.Build()
	want := "\"@method\": POST\n" +
		"\"content-type\": application/json\n" +
		`"@signature-params": ("@method" "content-type");created=1618884473`
	assert.Equal(t, want, base)
}

func TestBuilder_Add_PanicsOnDuplicateComponent(t *testing.T) {
	b := NewBuilder(newCtx())
	require.NoError(t, b.Add(component.Header("content-type")))
	assert.Panics(t, func() {
		_ = b.Add(component.Header("content-type"))
	})
}

func TestBuilder_Add_PropagatesResolutionError(t *testing.T) {
	b := NewBuilder(newCtx())
	err := b.Add(component.Header("x-missing"))
	require.Error(t, err)
}

func TestBuilder_TryAdd_SilentlyDropsMissingComponent(t *testing.T) {
	b := NewBuilder(newCtx())
	ok := b.TryAdd(component.Header("x-missing"))
	assert.False(t, ok)
	assert.Empty(t, b.Identifiers())
}

func TestBuilder_TryAdd_AddsWhenResolvable(t *testing.T) {
	b := NewBuilder(newCtx())
	ok := b.TryAdd(component.Header("content-length"))
	assert.True(t, ok)
	assert.Len(t, b.Identifiers(), 1)
}

func TestBuilder_ParamsOrderIsInsertionOrder(t *testing.T) {
	b := NewBuilder(newCtx())
	require.NoError(t, b.Add(component.Derived("@method")))
	b.Params.SetCreated(1000)
	require.NoError(t, b.Params.SetKeyID("test-key"))
	require.NoError(t, b.Params.SetAlg("ed25519"))

	il := b.SignatureParamsInnerList()
	assert.Equal(t, []string{"created", "keyid", "alg"}, il.Params.Keys())
}

func TestParams_AccessorsRoundTrip(t *testing.T) {
	p := NewParams()
	p.SetCreated(100)
	p.SetExpires(200)
	require.NoError(t, p.SetNonce("abc123"))
	require.NoError(t, p.SetAlg("hmac-sha256"))
	require.NoError(t, p.SetKeyID("k1"))
	require.NoError(t, p.SetTag("app"))

	created, ok := p.Created()
	assert.True(t, ok)
	assert.Equal(t, int64(100), created)

	expires, ok := p.Expires()
	assert.True(t, ok)
	assert.Equal(t, int64(200), expires)

	alg, ok := p.Alg()
	assert.True(t, ok)
	assert.Equal(t, "hmac-sha256", alg)

	keyid, ok := p.KeyID()
	assert.True(t, ok)
	assert.Equal(t, "k1", keyid)

	tag, ok := p.Tag()
	assert.True(t, ok)
	assert.Equal(t, "app", tag)

	assert.True(t, p.Has("nonce"))
	assert.False(t, p.Has("absent"))
}
