// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

// Package verifier implements the verify half of the HTTP Message
// Signatures engine: candidate selection from Signature-Input /
// Signature, parameter and component enforcement, freshness checks,
// and delegation to the key package for the cryptographic check.
package verifier

import (
	"time"

	"github.com/sage-x-project/go-httpsig/httpsig/component"
	"github.com/sage-x-project/go-httpsig/httpsig/key"
)

// Clock abstracts wall-clock access, letting tests supply a fixed
// "now" instead of racing the real clock.
type Clock interface {
	Now() time.Time
}

// systemClock is the default Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// KeyGetter resolves a keyid (empty when the signature carries none)
// to the public key material to verify against. Any error it returns
// is preserved as the cause of a KEY_GETTER_ERROR.
type KeyGetter func(keyid string) (key.PublicKeyInfo, error)

// Spec describes the verification policy for one Verify call.
type Spec struct {
	Context        *component.Context
	SignatureInput string
	Signature      string
	KeyGetter      KeyGetter
	Clock          Clock

	Label string
	Tag   string

	RequiredParams     []string
	ForbiddenParams    []string
	RequiredComponents []component.Identifier
	RequiredIfPresent  []component.Identifier

	MaxAge  time.Duration
	MaxSkew time.Duration
}

// NewSpec returns a Spec reading Signature-Input/Signature from
// sigInput/sig and resolving components against ctx.
func NewSpec(ctx *component.Context, sigInput, sig string, getter KeyGetter) *Spec {
	return &Spec{
		Context:        ctx,
		SignatureInput: sigInput,
		Signature:      sig,
		KeyGetter:      getter,
		Clock:          systemClock{},
	}
}

// WithLabel selects the candidate signature by its Signature-Input label.
func (s *Spec) WithLabel(label string) *Spec {
	s.Label = label
	return s
}

// WithTag requires the candidate's "tag" parameter to equal tag.
func (s *Spec) WithTag(tag string) *Spec {
	s.Tag = tag
	return s
}

// RequireParams marks signature parameters that must be present.
func (s *Spec) RequireParams(names ...string) *Spec {
	s.RequiredParams = append(s.RequiredParams, names...)
	return s
}

// ForbidParams marks signature parameters that must be absent.
func (s *Spec) ForbidParams(names ...string) *Spec {
	s.ForbiddenParams = append(s.ForbiddenParams, names...)
	return s
}

// RequireComponents marks components that must appear in the
// candidate's covered-components list.
func (s *Spec) RequireComponents(ids ...component.Identifier) *Spec {
	s.RequiredComponents = append(s.RequiredComponents, ids...)
	return s
}

// RequireIfPresent marks components that must be covered only when
// they resolve against the context at all.
func (s *Spec) RequireIfPresent(ids ...component.Identifier) *Spec {
	s.RequiredIfPresent = append(s.RequiredIfPresent, ids...)
	return s
}

// WithMaxAge rejects signatures whose "created" is older than d.
func (s *Spec) WithMaxAge(d time.Duration) *Spec {
	s.MaxAge = d
	return s
}

// WithMaxSkew rejects signatures whose "created" lies more than d in
// the future.
func (s *Spec) WithMaxSkew(d time.Duration) *Spec {
	s.MaxSkew = d
	return s
}
