// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package verifier

import (
	"strings"

	"github.com/sage-x-project/go-httpsig/httpsig/component"
	"github.com/sage-x-project/go-httpsig/httpsig/key"
	"github.com/sage-x-project/go-httpsig/sfv"
	"github.com/sage-x-project/go-httpsig/sigerr"
)

// Result is the outcome of a successful Verify call.
type Result struct {
	Label      string
	Components []component.Identifier
	Base       string
}

// Verify parses the candidate signature named by s.Label/s.Tag out of
// s.SignatureInput/s.Signature, enforces s's policy, and checks the
// signature bytes against the key s.KeyGetter returns.
func Verify(s *Spec) (Result, error) {
	inputDict, err := sfv.ParseDictionary(s.SignatureInput)
	if err != nil {
		return Result{}, sigerr.Wrap(sigerr.CodeInvalidStructuredHeader, err, "Signature-Input is not a Structured Dictionary")
	}
	sigDict, err := sfv.ParseDictionary(s.Signature)
	if err != nil {
		return Result{}, sigerr.Wrap(sigerr.CodeInvalidStructuredHeader, err, "Signature is not a Structured Dictionary")
	}

	label, il, err := selectCandidate(inputDict, s.Label, s.Tag)
	if err != nil {
		return Result{}, err
	}

	sigMember, ok := sigDict.Get(label)
	if !ok {
		return Result{}, sigerr.New(sigerr.CodeMissingSignature, "Signature has no entry for label %q", label)
	}
	sigItem, err := sigMember.Item()
	if err != nil {
		return Result{}, sigerr.Wrap(sigerr.CodeMissingSignature, err, "Signature entry %q is not an Item", label)
	}
	sigBytes, err := sigItem.Value.ByteSequence()
	if err != nil {
		return Result{}, sigerr.Wrap(sigerr.CodeMissingSignature, err, "Signature entry %q is not a Byte Sequence", label)
	}

	for _, name := range s.RequiredParams {
		if _, ok := il.Params.Get(name); !ok {
			return Result{}, sigerr.New(sigerr.CodeMissingParameter, "required signature parameter %q is absent", name)
		}
	}
	for _, name := range s.ForbiddenParams {
		if _, ok := il.Params.Get(name); ok {
			return Result{}, sigerr.New(sigerr.CodeUnauthorizedParameter, "signature parameter %q is not permitted", name)
		}
	}

	ids := make([]component.Identifier, len(il.Items))
	for i, item := range il.Items {
		id, err := component.FromSFItem(item)
		if err != nil {
			return Result{}, sigerr.Wrap(sigerr.CodeInvalidStructuredHeader, err, "covered-components entry %d is not a component identifier", i)
		}
		ids[i] = id
	}

	for _, required := range s.RequiredComponents {
		if !containsIdentifier(ids, required) {
			return Result{}, sigerr.New(sigerr.CodeMissingComponent, "required component %s is not covered by the signature", required.String())
		}
	}
	for _, optional := range s.RequiredIfPresent {
		if _, err := component.Resolve(s.Context, optional); err == nil {
			if !containsIdentifier(ids, optional) {
				return Result{}, sigerr.New(sigerr.CodeMissingComponent, "component %s is present on the message but not covered by the signature", optional.String())
			}
		}
	}

	if err := checkFreshness(s, il.Params); err != nil {
		return Result{}, err
	}

	keyid, _ := paramString(il.Params, "keyid")
	pub, err := s.KeyGetter(keyid)
	if err != nil {
		return Result{}, sigerr.Wrap(sigerr.CodeKeyGetterError, err, "key getter failed for keyid %q", keyid)
	}

	alg := pub.Algorithm
	if alg == "" {
		if tag, ok := paramString(il.Params, "alg"); ok {
			alg = key.Algorithm(tag)
		}
	}
	if alg == "" {
		return Result{}, sigerr.New(sigerr.CodeIncorrectAlgorithm, "no algorithm supplied by the key getter or the %q parameter", "alg")
	}
	pub.Algorithm = alg

	base, err := rebuildBase(s.Context, ids, il)
	if err != nil {
		return Result{}, err
	}
	if err := key.Verify(pub, []byte(base), sigBytes); err != nil {
		return Result{}, err
	}

	return Result{Label: label, Components: ids, Base: base}, nil
}

func selectCandidate(dict sfv.Dictionary, label, tag string) (string, sfv.InnerList, error) {
	if label != "" {
		member, ok := dict.Get(label)
		if !ok {
			return "", sfv.InnerList{}, sigerr.New(sigerr.CodeMissingSignature, "Signature-Input has no entry for label %q", label)
		}
		il, err := member.InnerList()
		if err != nil {
			return "", sfv.InnerList{}, sigerr.Wrap(sigerr.CodeInvalidStructuredHeader, err, "Signature-Input entry %q is not an Inner List", label)
		}
		if tag != "" {
			if t, ok := paramString(il.Params, "tag"); !ok || t != tag {
				return "", sfv.InnerList{}, sigerr.New(sigerr.CodeMissingSignature, "Signature-Input entry %q does not carry tag %q", label, tag)
			}
		}
		return label, il, nil
	}

	if tag != "" {
		for _, k := range dict.Keys() {
			member, _ := dict.Get(k)
			il, err := member.InnerList()
			if err != nil {
				continue
			}
			if t, ok := paramString(il.Params, "tag"); ok && t == tag {
				return k, il, nil
			}
		}
		return "", sfv.InnerList{}, sigerr.New(sigerr.CodeMissingSignature, "no Signature-Input entry carries tag %q", tag)
	}

	return "", sfv.InnerList{}, sigerr.New(sigerr.CodeMissingSignature, "verification requires a Label or a Tag to select a candidate")
}

func paramString(p sfv.Parameters, key string) (string, bool) {
	v, ok := p.Get(key)
	if !ok {
		return "", false
	}
	switch v.Kind() {
	case sfv.KindString:
		s, err := v.String()
		return s, err == nil
	case sfv.KindToken:
		s, err := v.Token()
		return s, err == nil
	default:
		return "", false
	}
}

func containsIdentifier(ids []component.Identifier, want component.Identifier) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func checkFreshness(s *Spec, params sfv.Parameters) error {
	created, hasCreated := params.Get("created")
	now := s.Clock.Now().Unix()

	if hasCreated {
		createdSec, err := created.Integer()
		if err != nil {
			return sigerr.Wrap(sigerr.CodeInvalidStructuredHeader, err, "created parameter is not an Integer")
		}
		if s.MaxAge > 0 && now-createdSec > int64(s.MaxAge.Seconds()) {
			return sigerr.New(sigerr.CodeExpired, "signature created %d seconds ago exceeds maximum age", now-createdSec)
		}
		if s.MaxSkew > 0 && createdSec-now > int64(s.MaxSkew.Seconds()) {
			return sigerr.New(sigerr.CodeFuture, "signature created %d seconds in the future exceeds maximum skew", createdSec-now)
		}
	}

	if expires, ok := params.Get("expires"); ok {
		expiresSec, err := expires.Integer()
		if err != nil {
			return sigerr.Wrap(sigerr.CodeInvalidStructuredHeader, err, "expires parameter is not an Integer")
		}
		if now > expiresSec {
			return sigerr.New(sigerr.CodeExpired, "signature expired %d seconds ago", now-expiresSec)
		}
	}
	return nil
}

// rebuildBase reconstructs the exact base the signer would have built:
// one line per identifier in ids's order, resolved fresh against ctx,
// followed by the @signature-params line rendered from the candidate's
// own Inner List (preserving its original parameter order verbatim).
func rebuildBase(ctx *component.Context, ids []component.Identifier, il sfv.InnerList) (string, error) {
	var sb strings.Builder
	for _, id := range ids {
		value, err := component.Resolve(ctx, id)
		if err != nil {
			return "", err
		}
		sb.WriteString(id.String())
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteByte('\n')
	}
	sb.WriteString(`"@signature-params": `)
	sb.WriteString(sfv.SerializeInnerList(il))
	return sb.String(), nil
}
