// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package component

import (
	"strings"

	"github.com/sage-x-project/go-httpsig/sfv"
)

// Identifier names one signature component: a derived component such
// as "@method", or a lowercased HTTP field name. Header-only fields
// (Key, StructuredField, BinaryWrapped) and the related-request flag
// are carried alongside the name.
type Identifier struct {
	Name string

	// ParamName holds the parameter name for an "@query-param" identifier.
	ParamName string

	// Key selects a dictionary member of a Structured Field header.
	Key string

	// StructuredField requests the header's canonicalized structured-field form.
	StructuredField bool

	// BinaryWrapped requests the header's raw bytes wrapped as a Byte Sequence.
	BinaryWrapped bool

	// FromRelatedRequest marks this identifier as resolved against the
	// related-request context, rendered as the ";req" parameter.
	FromRelatedRequest bool
}

// Derived constructs a derived-component identifier, e.g. Derived("@method").
func Derived(name string) Identifier { return Identifier{Name: name} }

// Header constructs a plain header-component identifier, lowercasing name.
func Header(name string) Identifier { return Identifier{Name: strings.ToLower(name)} }

// QueryParam constructs an "@query-param" identifier selecting the
// named query parameter.
func QueryParam(name string) Identifier { return Identifier{Name: "@query-param", ParamName: name} }

// WithKey selects a dictionary member by key; only meaningful on a
// header identifier.
func (id Identifier) WithKey(key string) Identifier {
	id.Key = key
	return id
}

// WithStructuredField requests the structured-field-canonicalized form.
func (id Identifier) WithStructuredField() Identifier {
	id.StructuredField = true
	return id
}

// WithBinaryWrapped requests the binary-wrapped form.
func (id Identifier) WithBinaryWrapped() Identifier {
	id.BinaryWrapped = true
	return id
}

// WithRelatedRequest marks the identifier as resolved against the
// related-request context.
func (id Identifier) WithRelatedRequest() Identifier {
	id.FromRelatedRequest = true
	return id
}

// IsDerived reports whether this identifier names a derived component
// (its name is prefixed with "@").
func (id Identifier) IsDerived() bool {
	return strings.HasPrefix(id.Name, "@")
}

// SFItem renders the identifier as the sfv Item used both inside the
// "@signature-params" Inner List and as the quoted key of a signature
// base line: a Structured String value with parameters in the
// canonical (name, key, sf, bs, req) order — "tr" (trailers) is not
// implemented, consistent with the transport-layer non-goal.
func (id Identifier) SFItem() sfv.Item {
	bare, err := sfv.NewString(id.Name)
	if err != nil {
		// id.Name is always constructed internally from ASCII derived
		// names or lowercased header names, both valid sf-strings.
		panic(err)
	}
	item := sfv.NewItem(bare)
	if id.ParamName != "" {
		if v, err := sfv.NewString(id.ParamName); err == nil {
			_ = item.Params.Set("name", v)
		}
	}
	if id.Key != "" {
		if v, err := sfv.NewString(id.Key); err == nil {
			_ = item.Params.Set("key", v)
		}
	}
	if id.StructuredField {
		_ = item.Params.Set("sf", sfv.NewBoolean(true))
	}
	if id.BinaryWrapped {
		_ = item.Params.Set("bs", sfv.NewBoolean(true))
	}
	if id.FromRelatedRequest {
		_ = item.Params.Set("req", sfv.NewBoolean(true))
	}
	return item
}

// String renders the identifier in its canonical quoted form, e.g.
// `"@method"` or `"signature";key="sig1";req`.
func (id Identifier) String() string {
	return sfv.SerializeItem(id.SFItem())
}

// FromSFItem reconstructs the Identifier a "@signature-params" Inner
// List element describes: item's bare value must be a Structured
// String (the component name), and its parameters are read back as
// "name", "key", "sf", "bs", "req".
func FromSFItem(item sfv.Item) (Identifier, error) {
	name, err := item.Value.String()
	if err != nil {
		return Identifier{}, err
	}
	id := Identifier{Name: name}
	if v, ok := item.Params.Get("name"); ok {
		if s, err := v.String(); err == nil {
			id.ParamName = s
		}
	}
	if v, ok := item.Params.Get("key"); ok {
		if s, err := v.String(); err == nil {
			id.Key = s
		}
	}
	if v, ok := item.Params.Get("sf"); ok {
		if b, err := v.Boolean(); err == nil {
			id.StructuredField = b
		}
	}
	if v, ok := item.Params.Get("bs"); ok {
		if b, err := v.Boolean(); err == nil {
			id.BinaryWrapped = b
		}
	}
	if v, ok := item.Params.Get("req"); ok {
		if b, err := v.Boolean(); err == nil {
			id.FromRelatedRequest = b
		}
	}
	return id, nil
}
