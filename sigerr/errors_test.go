// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package sigerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CarriesCodeAndMessage(t *testing.T) {
	err := New(CodeMissingComponent, "component %q is required", "@method")
	assert.Equal(t, CodeMissingComponent, err.Code)
	assert.Contains(t, err.Error(), "@method")
	assert.Contains(t, err.Error(), string(CodeMissingComponent))
}

func TestWrap_PreservesCauseThroughUnwrap(t *testing.T) {
	cause := errors.New("key store unavailable")
	err := Wrap(CodeKeyGetterError, cause, "key getter failed for keyid %q", "test-key-ed25519")

	var target *Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, CodeKeyGetterError, target.Code)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestError_AsInterface(t *testing.T) {
	var err error = New(CodeIncorrectSignature, "base mismatch")
	var target *Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, CodeIncorrectSignature, target.Code)
}
