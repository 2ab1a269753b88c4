// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

// Package base builds the newline-delimited HTTP Message Signatures
// signature base from an ordered sequence of resolved component values,
// and renders its trailing "@signature-params" line.
package base

import "github.com/sage-x-project/go-httpsig/sfv"

// Params is the ordered set of signature parameters ("created",
// "expires", "nonce", "alg", "keyid", "tag") carried as the
// "@signature-params" Inner List's own parameters. Keys are emitted in
// the order they were Set, so callers that must honor a fixed wire
// order (see signer.Sign) call the typed setters in that order.
type Params struct {
	p sfv.Parameters
}

// NewParams returns an empty Params.
func NewParams() Params {
	return Params{p: sfv.NewParameters()}
}

// SetCreated stores the "created" parameter as a Unix-second Integer.
func (p *Params) SetCreated(unixSeconds int64) {
	_ = p.p.Set("created", sfv.MustInteger(unixSeconds))
}

// SetExpires stores the "expires" parameter as a Unix-second Integer.
func (p *Params) SetExpires(unixSeconds int64) {
	_ = p.p.Set("expires", sfv.MustInteger(unixSeconds))
}

// SetNonce stores the "nonce" parameter as a Structured String.
func (p *Params) SetNonce(nonce string) error {
	v, err := sfv.NewString(nonce)
	if err != nil {
		return err
	}
	return p.p.Set("nonce", v)
}

// SetAlg stores the "alg" parameter as a Structured String.
func (p *Params) SetAlg(alg string) error {
	v, err := sfv.NewString(alg)
	if err != nil {
		return err
	}
	return p.p.Set("alg", v)
}

// SetKeyID stores the "keyid" parameter as a Structured String.
func (p *Params) SetKeyID(keyid string) error {
	v, err := sfv.NewString(keyid)
	if err != nil {
		return err
	}
	return p.p.Set("keyid", v)
}

// SetTag stores the "tag" parameter as a Structured String.
func (p *Params) SetTag(tag string) error {
	v, err := sfv.NewString(tag)
	if err != nil {
		return err
	}
	return p.p.Set("tag", v)
}

// Created returns the "created" parameter, if set.
func (p Params) Created() (int64, bool) {
	v, ok := p.p.Get("created")
	if !ok {
		return 0, false
	}
	i, err := v.Integer()
	return i, err == nil
}

// Expires returns the "expires" parameter, if set.
func (p Params) Expires() (int64, bool) {
	v, ok := p.p.Get("expires")
	if !ok {
		return 0, false
	}
	i, err := v.Integer()
	return i, err == nil
}

// Alg returns the "alg" parameter's text, if set.
func (p Params) Alg() (string, bool) {
	v, ok := p.p.Get("alg")
	if !ok {
		return "", false
	}
	s, err := v.String()
	return s, err == nil
}

// KeyID returns the "keyid" parameter's text, if set.
func (p Params) KeyID() (string, bool) {
	v, ok := p.p.Get("keyid")
	if !ok {
		return "", false
	}
	s, err := v.String()
	return s, err == nil
}

// Tag returns the "tag" parameter's text, if set.
func (p Params) Tag() (string, bool) {
	v, ok := p.p.Get("tag")
	if !ok {
		return "", false
	}
	s, err := v.String()
	return s, err == nil
}

// Has reports whether key was set.
func (p Params) Has(key string) bool {
	_, ok := p.p.Get(key)
	return ok
}

// sfParameters exposes the underlying ordered sfv.Parameters for
// rendering as the "@signature-params" Inner List's own parameters.
func (p Params) sfParameters() sfv.Parameters { return p.p }
