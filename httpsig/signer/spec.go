// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

// Package signer implements the sign half of the HTTP Message
// Signatures engine: resolving components, building the signature
// base, and emitting the Signature-Input and Signature header values.
package signer

import (
	"time"

	"github.com/google/uuid"

	"github.com/sage-x-project/go-httpsig/httpsig/component"
	"github.com/sage-x-project/go-httpsig/httpsig/key"
	"github.com/sage-x-project/go-httpsig/sigerr"
)

// Clock abstracts wall-clock access for CreatedNow, for testability.
type Clock interface {
	Now() time.Time
}

// systemClock is the default Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Spec describes one signature to produce: the label under which it is
// emitted, the signing key, the components to cover, and the
// signature parameters to attach.
type Spec struct {
	Label         string
	Key           key.PrivateKeyInfo
	Components    []component.Identifier
	UsedIfPresent []component.Identifier
	Context       *component.Context
	Clock         Clock

	created         *int64
	expires         *int64
	expiresAfterSet bool
	expiresAfterN   int64
	nonce           string
	hasNonce        bool
	alg             key.Algorithm
	visibleAlg      bool
	hasAlg          bool
	keyid           string
	hasKeyID        bool
	tag             string
	hasTag          bool
}

// NewSpec returns a Spec for label, signing with priv against ctx.
func NewSpec(label string, priv key.PrivateKeyInfo, ctx *component.Context) *Spec {
	return &Spec{Label: label, Key: priv, Context: ctx, Clock: systemClock{}}
}

// Require marks components that must resolve; a resolution failure
// fails the whole Sign call.
func (s *Spec) Require(ids ...component.Identifier) *Spec {
	s.Components = append(s.Components, ids...)
	return s
}

// UseIfPresent marks components that are included only when they
// resolve successfully; resolution failure silently drops them.
func (s *Spec) UseIfPresent(ids ...component.Identifier) *Spec {
	s.UsedIfPresent = append(s.UsedIfPresent, ids...)
	return s
}

// CreatedNow populates "created" with the current wall-clock second.
func (s *Spec) CreatedNow() *Spec {
	t := s.Clock.Now().Unix()
	s.created = &t
	return s
}

// Created sets an explicit "created" value, for reproducible tests and
// for resigning a message with a caller-chosen timestamp.
func (s *Spec) Created(unixSeconds int64) *Spec {
	s.created = &unixSeconds
	return s
}

// ExpiresAfter sets "expires" to created + n seconds. Sign fails unless
// "created" is set (by CreatedNow or Created, in any call order), and
// ExpiresAfter is mutually exclusive with Expires.
func (s *Spec) ExpiresAfter(n int64) *Spec {
	s.expiresAfterSet = true
	s.expiresAfterN = n
	return s
}

// Expires sets "expires" to an explicit Unix-second value, mutually
// exclusive with ExpiresAfter.
func (s *Spec) Expires(unixSeconds int64) *Spec {
	s.expires = &unixSeconds
	return s
}

// RandomNonce populates "nonce" with a random 128-bit value rendered
// as a v4 UUID string; compared only as opaque text by callers.
func (s *Spec) RandomNonce() *Spec {
	s.nonce = uuid.New().String()
	s.hasNonce = true
	return s
}

// Nonce sets an explicit "nonce" value.
func (s *Spec) Nonce(nonce string) *Spec {
	s.nonce = nonce
	s.hasNonce = true
	return s
}

// Algorithm selects the signing algorithm without emitting "alg".
func (s *Spec) Algorithm(a key.Algorithm) *Spec {
	s.alg = a
	s.hasAlg = true
	s.visibleAlg = false
	return s
}

// VisibleAlgorithm selects the signing algorithm and emits "alg".
func (s *Spec) VisibleAlgorithm(a key.Algorithm) *Spec {
	s.alg = a
	s.hasAlg = true
	s.visibleAlg = true
	return s
}

// KeyID sets the "keyid" parameter.
func (s *Spec) KeyID(keyid string) *Spec {
	s.keyid = keyid
	s.hasKeyID = true
	return s
}

// Tag sets the application "tag" parameter.
func (s *Spec) Tag(tag string) *Spec {
	s.tag = tag
	s.hasTag = true
	return s
}

func (s *Spec) resolveExpires() (int64, bool, error) {
	if s.expires != nil && s.expiresAfterSet {
		return 0, false, sigerr.New(sigerr.CodeGeneric, "Expires and ExpiresAfter are mutually exclusive")
	}
	if s.expires != nil {
		return *s.expires, true, nil
	}
	if s.expiresAfterSet {
		if s.created == nil {
			return 0, false, sigerr.New(sigerr.CodeGeneric, "ExpiresAfter requires created to be set")
		}
		return *s.created + s.expiresAfterN, true, nil
	}
	return 0, false, nil
}
