// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in errors.go.

package sfv

// Item is a bare value plus its Parameters.
type Item struct {
	Value  BareItem
	Params Parameters
}

// NewItem wraps value with empty parameters.
func NewItem(value BareItem) Item {
	return Item{Value: value, Params: NewParameters()}
}

// InnerList is an ordered sequence of Items, itself carrying its own
// Parameters (distinct from any individual element's parameters).
type InnerList struct {
	Items  []Item
	Params Parameters
}

// NewInnerList wraps items with empty list-level parameters.
func NewInnerList(items []Item) InnerList {
	return InnerList{Items: items, Params: NewParameters()}
}

// Member is the sum type held by List elements and Dictionary values:
// either a bare Item or an InnerList.
type Member struct {
	inner    InnerList
	isInner  bool
	item     Item
	hasValue bool
}

// NewItemMember wraps an Item as a Member.
func NewItemMember(item Item) Member {
	return Member{item: item, hasValue: true}
}

// NewInnerListMember wraps an InnerList as a Member.
func NewInnerListMember(il InnerList) Member {
	return Member{inner: il, isInner: true, hasValue: true}
}

// IsInnerList reports whether this member holds an Inner List.
func (m Member) IsInnerList() bool { return m.isInner }

// Item returns the held Item, or WRONG_ITEM_CLASS if this member holds
// an Inner List.
func (m Member) Item() (Item, error) {
	if m.isInner {
		return Item{}, newErr(CodeWrongItemClass, "member is an Inner List, not an Item")
	}
	return m.item, nil
}

// InnerList returns the held Inner List, or WRONG_ITEM_CLASS if this
// member holds a bare Item.
func (m Member) InnerList() (InnerList, error) {
	if !m.isInner {
		return InnerList{}, newErr(CodeWrongItemClass, "member is an Item, not an Inner List")
	}
	return m.inner, nil
}
