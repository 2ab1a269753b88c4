// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package signer

import (
	"github.com/sage-x-project/go-httpsig/httpsig/base"
	"github.com/sage-x-project/go-httpsig/httpsig/key"
	"github.com/sage-x-project/go-httpsig/sfv"
	"github.com/sage-x-project/go-httpsig/sigerr"
)

// Result is the outcome of a successful Sign call: the two header
// values to attach to the message, plus the exact base string that was
// signed (useful for logging and debugging, never required by callers).
type Result struct {
	SignatureInput string
	Signature      string
	Base           string
}

// Sign resolves s's required and used-if-present components, builds
// the signature base, signs it, and renders Signature-Input and
// Signature.
func Sign(s *Spec) (Result, error) {
	signAlg := s.Key.Algorithm
	if s.hasAlg {
		signAlg = s.alg
	}
	if !key.Known(signAlg) {
		return Result{}, sigerr.New(sigerr.CodeUnknownAlgorithm, "%q is not a recognized signature algorithm", signAlg)
	}

	b := base.NewBuilder(s.Context)
	for _, id := range s.Components {
		if err := b.Add(id); err != nil {
			return Result{}, err
		}
	}
	for _, id := range s.UsedIfPresent {
		b.TryAdd(id)
	}

	if s.created != nil {
		b.Params.SetCreated(*s.created)
	}
	if expires, ok, err := s.resolveExpires(); err != nil {
		return Result{}, err
	} else if ok {
		b.Params.SetExpires(expires)
	}
	if s.hasNonce {
		if err := b.Params.SetNonce(s.nonce); err != nil {
			return Result{}, sigerr.Wrap(sigerr.CodeGeneric, err, "invalid nonce")
		}
	}
	if s.visibleAlg {
		if err := b.Params.SetAlg(string(signAlg)); err != nil {
			return Result{}, sigerr.Wrap(sigerr.CodeGeneric, err, "invalid algorithm tag")
		}
	}
	if s.hasKeyID {
		if err := b.Params.SetKeyID(s.keyid); err != nil {
			return Result{}, sigerr.Wrap(sigerr.CodeGeneric, err, "invalid keyid")
		}
	}
	if s.hasTag {
		if err := b.Params.SetTag(s.tag); err != nil {
			return Result{}, sigerr.Wrap(sigerr.CodeGeneric, err, "invalid tag")
		}
	}

	baseStr := b.Build()

	signingKey := s.Key
	signingKey.Algorithm = signAlg
	sigBytes, err := key.Sign(signingKey, []byte(baseStr))
	if err != nil {
		return Result{}, err
	}

	sigDict := sfv.NewDictionary()
	if err := sigDict.Set(s.Label, sfv.NewItemMember(sfv.NewItem(sfv.NewByteSequence(sigBytes)))); err != nil {
		return Result{}, sigerr.Wrap(sigerr.CodeGeneric, err, "invalid signature label %q", s.Label)
	}

	inputDict := sfv.NewDictionary()
	if err := inputDict.Set(s.Label, sfv.NewInnerListMember(b.SignatureParamsInnerList())); err != nil {
		return Result{}, sigerr.Wrap(sigerr.CodeGeneric, err, "invalid signature label %q", s.Label)
	}

	return Result{
		SignatureInput: sfv.SerializeDictionary(inputDict),
		Signature:      sfv.SerializeDictionary(sigDict),
		Base:           baseStr,
	}, nil
}
