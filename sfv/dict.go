// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in errors.go.

package sfv

// Dictionary is the top-level RFC 8941 Dictionary: an ordered mapping
// from lowercase keys to Members. Re-setting an existing key updates
// its value in place (the key's position does not move), matching
// draft-13 parsing semantics where "later duplicates replace earlier".
type Dictionary struct {
	order  []string
	values map[string]Member
}

// NewDictionary returns an empty Dictionary.
func NewDictionary() Dictionary {
	return Dictionary{values: make(map[string]Member)}
}

// Len reports the number of entries.
func (d Dictionary) Len() int { return len(d.order) }

// Keys returns the dictionary's keys in iteration order.
func (d Dictionary) Keys() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Get returns the member stored under key and whether it was present.
func (d Dictionary) Get(key string) (Member, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set validates key and stores member, preserving the key's original
// position on repeated calls.
func (d *Dictionary) Set(key string, member Member) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if d.values == nil {
		d.values = make(map[string]Member)
	}
	if _, exists := d.values[key]; !exists {
		d.order = append(d.order, key)
	}
	d.values[key] = member
	return nil
}

// AllIntegers returns every entry's Integer value keyed by dictionary
// key, failing fast with WRONG_ITEM_CLASS if any entry is an Inner
// List or a non-Integer Item.
func (d Dictionary) AllIntegers() (map[string]int64, error) {
	out := make(map[string]int64, len(d.order))
	for _, k := range d.order {
		m := d.values[k]
		item, err := m.Item()
		if err != nil {
			return nil, wrapErr(CodeWrongItemClass, err, "dictionary key %q is not an Item", k)
		}
		v, err := item.Value.Integer()
		if err != nil {
			return nil, wrapErr(CodeWrongItemClass, err, "dictionary key %q is not an Integer", k)
		}
		out[k] = v
	}
	return out, nil
}

// AllByteSequences returns every entry's Byte Sequence value keyed by
// dictionary key, failing fast with WRONG_ITEM_CLASS otherwise.
func (d Dictionary) AllByteSequences() (map[string][]byte, error) {
	out := make(map[string][]byte, len(d.order))
	for _, k := range d.order {
		m := d.values[k]
		item, err := m.Item()
		if err != nil {
			return nil, wrapErr(CodeWrongItemClass, err, "dictionary key %q is not an Item", k)
		}
		v, err := item.Value.ByteSequence()
		if err != nil {
			return nil, wrapErr(CodeWrongItemClass, err, "dictionary key %q is not a Byte Sequence", k)
		}
		out[k] = v
	}
	return out, nil
}
