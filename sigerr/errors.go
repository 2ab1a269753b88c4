// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

// Package sigerr carries the typed failure modes of signature base
// construction and the sign/verify engine.
package sigerr

import "fmt"

// Code is a closed enumeration of signature-engine failure modes.
type Code string

const (
	CodeMissingHeader           Code = "MISSING_HEADER"
	CodeMissingComponent        Code = "MISSING_COMPONENT"
	CodeMissingDictionaryKey    Code = "MISSING_DICTIONARY_KEY"
	CodeInvalidStructuredHeader Code = "INVALID_STRUCTURED_HEADER"
	CodeMissingSignature        Code = "MISSING_SIGNATURE"
	CodeMissingParameter        Code = "MISSING_PARAMETER"
	CodeUnauthorizedParameter   Code = "UNAUTHORIZED_PARAMETER"
	CodeExpired                 Code = "EXPIRED"
	CodeFuture                  Code = "FUTURE"
	CodeIncorrectAlgorithm      Code = "INCORRECT_ALGORITHM"
	CodeUnknownAlgorithm        Code = "UNKNOWN_ALGORITHM"
	CodeInvalidKey              Code = "INVALID_KEY"
	CodeKeyGetterError          Code = "KEY_GETTER_ERROR"
	CodeIncorrectSignature      Code = "INCORRECT_SIGNATURE"
	CodeGeneric                 Code = "GENERIC"
)

// Error is the signature family's typed failure. It always carries a
// Code from the closed enumeration above and may wrap an underlying
// cause — notably a caller's KeyGetter error, preserved as the Cause
// of a KEY_GETTER_ERROR.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("httpsig: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("httpsig: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error that preserves cause via Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}
