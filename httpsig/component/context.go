// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

// Package component resolves HTTP Message Signatures component
// identifiers (derived components and header fields) to their
// canonical string value against a message Context.
package component

import "strings"

// Context is the bundle of everything Resolve needs: the request
// method, target URI, status (for responses), and header values
// (lowercased names, each field-line occurrence kept separately and
// joined with ", " by HeaderValue), plus an optional nested context
// for the related request a response signature may refer to. Resolve
// only reads it.
type Context struct {
	Method    string
	TargetURI string
	Status    int
	headers   map[string][]string

	Related *Context
}

// NewContext returns an empty Context ready for AddHeader calls.
func NewContext() *Context {
	return &Context{headers: make(map[string][]string)}
}

// AddHeader appends value to name's list of occurrences, lowercasing
// name for case-insensitive storage. Multiple calls with the same name
// model multiple header field lines.
func (c *Context) AddHeader(name, value string) {
	if c.headers == nil {
		c.headers = make(map[string][]string)
	}
	lname := strings.ToLower(name)
	c.headers[lname] = append(c.headers[lname], value)
}

// HeaderValues returns every occurrence of name (lowercased), and
// whether the header is present at all.
func (c *Context) HeaderValues(name string) ([]string, bool) {
	vs, ok := c.headers[strings.ToLower(name)]
	return vs, ok
}

// HeaderValue returns the combined value of name: every occurrence
// joined with ", ", per RFC 9110 §5.3's field-combination rule.
func (c *Context) HeaderValue(name string) (string, bool) {
	vs, ok := c.headers[strings.ToLower(name)]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.Join(vs, ", "), true
}

// WithRelated attaches related as the nested context for a response
// signature's related-request components, returning c for chaining.
func (c *Context) WithRelated(related *Context) *Context {
	c.Related = related
	return c
}
