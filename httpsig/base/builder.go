// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package base

import (
	"strings"

	"github.com/sage-x-project/go-httpsig/httpsig/component"
	"github.com/sage-x-project/go-httpsig/sfv"
)

// line is one resolved (identifier, value) pair of the base.
type line struct {
	id    component.Identifier
	value string
}

// Builder accumulates the ordered component lines of a signature base
// against a fixed Context, then renders the base string and the
// "@signature-params" Inner List.
type Builder struct {
	ctx    *component.Context
	lines  []line
	seen   map[string]bool
	Params Params
}

// NewBuilder returns a Builder resolving components against ctx.
func NewBuilder(ctx *component.Context) *Builder {
	return &Builder{ctx: ctx, seen: make(map[string]bool), Params: NewParams()}
}

// Add resolves id against the builder's context and appends it as the
// next base line. It panics if id was already added: a signature
// listing the same component twice is a programming error, not a
// recoverable input condition.
func (b *Builder) Add(id component.Identifier) error {
	key := id.String()
	if b.seen[key] {
		panic("httpsig/base: component " + key + " added more than once")
	}
	value, err := component.Resolve(b.ctx, id)
	if err != nil {
		return err
	}
	b.seen[key] = true
	b.lines = append(b.lines, line{id: id, value: value})
	return nil
}

// TryAdd resolves id and appends it like Add, but reports success
// instead of failing: callers use it for "used-if-present" components
// that should be silently dropped when their value cannot be resolved.
func (b *Builder) TryAdd(id component.Identifier) bool {
	key := id.String()
	if b.seen[key] {
		return false
	}
	value, err := component.Resolve(b.ctx, id)
	if err != nil {
		return false
	}
	b.seen[key] = true
	b.lines = append(b.lines, line{id: id, value: value})
	return true
}

// Identifiers returns the identifiers added so far, in order.
func (b *Builder) Identifiers() []component.Identifier {
	out := make([]component.Identifier, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.id
	}
	return out
}

// SignatureParamsInnerList renders the "@signature-params" value: an
// Inner List of the added identifiers carrying Params as its own
// parameters.
func (b *Builder) SignatureParamsInnerList() sfv.InnerList {
	items := make([]sfv.Item, len(b.lines))
	for i, l := range b.lines {
		items[i] = l.id.SFItem()
	}
	il := sfv.NewInnerList(items)
	il.Params = b.Params.sfParameters()
	return il
}

// Build renders the complete signature base: one line per added
// component followed by the trailing quoted "@signature-params" line.
func (b *Builder) Build() string {
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(l.id.String())
		sb.WriteString(": ")
		sb.WriteString(l.value)
		sb.WriteByte('\n')
	}
	sb.WriteString(`"@signature-params": `)
	sb.WriteString(sfv.SerializeInnerList(b.SignatureParamsInnerList()))
	return sb.String()
}
