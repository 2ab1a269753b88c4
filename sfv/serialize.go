// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in errors.go.

package sfv

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// SerializeBareItem renders v in its canonical RFC 8941 wire form.
func SerializeBareItem(v BareItem) string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindDecimal:
		return v.dec.String()
	case KindString:
		return serializeString(v.str)
	case KindToken:
		return v.str
	case KindByteSequence:
		return ":" + base64.StdEncoding.EncodeToString(v.bytes) + ":"
	case KindBoolean:
		if v.b {
			return "?1"
		}
		return "?0"
	default:
		return ""
	}
}

func serializeString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}

// SerializeParameters renders params in key order, e.g. `;a=1;b`.
// A Boolean-true value is abbreviated to the bare key.
func SerializeParameters(p Parameters) string {
	var sb strings.Builder
	for _, k := range p.order {
		sb.WriteByte(';')
		sb.WriteString(k)
		v := p.values[k]
		if v.kind == KindBoolean && v.b {
			continue
		}
		sb.WriteByte('=')
		sb.WriteString(SerializeBareItem(v))
	}
	return sb.String()
}

// SerializeItem renders an Item: its bare value followed by parameters.
func SerializeItem(item Item) string {
	return SerializeBareItem(item.Value) + SerializeParameters(item.Params)
}

// String renders the Item in canonical form.
func (item Item) String() string { return SerializeItem(item) }

// SerializeInnerList renders an Inner List: space-separated items
// wrapped in parentheses, followed by the list's own parameters.
func SerializeInnerList(il InnerList) string {
	parts := make([]string, len(il.Items))
	for i, it := range il.Items {
		parts[i] = SerializeItem(it)
	}
	return "(" + strings.Join(parts, " ") + ")" + SerializeParameters(il.Params)
}

// String renders the Inner List in canonical form.
func (il InnerList) String() string { return SerializeInnerList(il) }

// SerializeMember renders a List/Dictionary member (Item or Inner List).
func SerializeMember(m Member) string {
	if m.isInner {
		return SerializeInnerList(m.inner)
	}
	return SerializeItem(m.item)
}

// SerializeList renders a List: members joined by ", ".
func SerializeList(l List) string {
	parts := make([]string, len(l))
	for i, m := range l {
		parts[i] = SerializeMember(m)
	}
	return strings.Join(parts, ", ")
}

// String renders the List in canonical form.
func (l List) String() string { return SerializeList(l) }

// SerializeDictionary renders a Dictionary: `key` or `key=value` pairs
// joined by ", ", in key order. An entry whose value is a bare Item
// with Boolean value true is abbreviated to just the key (plus any of
// its own parameters).
func SerializeDictionary(d Dictionary) string {
	parts := make([]string, 0, len(d.order))
	for _, k := range d.order {
		m := d.values[k]
		if !m.isInner && m.item.Value.kind == KindBoolean && m.item.Value.b {
			parts = append(parts, k+SerializeParameters(m.item.Params))
			continue
		}
		parts = append(parts, k+"="+SerializeMember(m))
	}
	return strings.Join(parts, ", ")
}

// String renders the Dictionary in canonical form.
func (d Dictionary) String() string { return SerializeDictionary(d) }
