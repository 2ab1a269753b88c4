// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in errors.go.

package sfv

// List is the top-level RFC 8941 List: an ordered sequence of Members
// (Items or Inner Lists).
type List []Member

// AllIntegers returns the Integer value of every member, failing fast
// with WRONG_ITEM_CLASS if any member is an Inner List or a non-Integer
// Item.
func (l List) AllIntegers() ([]int64, error) {
	out := make([]int64, 0, len(l))
	for idx, m := range l {
		item, err := m.Item()
		if err != nil {
			return nil, wrapErr(CodeWrongItemClass, err, "list member %d is not an Item", idx)
		}
		v, err := item.Value.Integer()
		if err != nil {
			return nil, wrapErr(CodeWrongItemClass, err, "list member %d is not an Integer", idx)
		}
		out = append(out, v)
	}
	return out, nil
}

// AllStrings returns the String value of every member, failing fast
// with WRONG_ITEM_CLASS otherwise.
func (l List) AllStrings() ([]string, error) {
	out := make([]string, 0, len(l))
	for idx, m := range l {
		item, err := m.Item()
		if err != nil {
			return nil, wrapErr(CodeWrongItemClass, err, "list member %d is not an Item", idx)
		}
		v, err := item.Value.String()
		if err != nil {
			return nil, wrapErr(CodeWrongItemClass, err, "list member %d is not a String", idx)
		}
		out = append(out, v)
	}
	return out, nil
}

// AllTokens returns the Token value of every member, failing fast with
// WRONG_ITEM_CLASS otherwise.
func (l List) AllTokens() ([]string, error) {
	out := make([]string, 0, len(l))
	for idx, m := range l {
		item, err := m.Item()
		if err != nil {
			return nil, wrapErr(CodeWrongItemClass, err, "list member %d is not an Item", idx)
		}
		v, err := item.Value.Token()
		if err != nil {
			return nil, wrapErr(CodeWrongItemClass, err, "list member %d is not a Token", idx)
		}
		out = append(out, v)
	}
	return out, nil
}
