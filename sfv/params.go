// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in errors.go.

package sfv

// Parameters is an ordered mapping from keys to scalar BareItems,
// carried by every Item and Inner List. Key order is preserved through
// parse -> serialize round trips; re-setting an existing key updates
// its value in place without moving it.
type Parameters struct {
	order  []string
	values map[string]BareItem
}

// NewParameters returns an empty Parameters map.
func NewParameters() Parameters {
	return Parameters{values: make(map[string]BareItem)}
}

// Len reports the number of parameters.
func (p Parameters) Len() int { return len(p.order) }

// Keys returns the parameter keys in serialization order.
func (p Parameters) Keys() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Get returns the value for key and whether it was present.
func (p Parameters) Get(key string) (BareItem, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Set validates key against the key grammar and stores value,
// preserving the key's original position if it already exists.
func (p *Parameters) Set(key string, value BareItem) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if p.values == nil {
		p.values = make(map[string]BareItem)
	}
	if _, exists := p.values[key]; !exists {
		p.order = append(p.order, key)
	}
	p.values[key] = value
	return nil
}
