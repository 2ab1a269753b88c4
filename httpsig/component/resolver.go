// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in sfv/errors.go.

package component

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sage-x-project/go-httpsig/sfv"
	"github.com/sage-x-project/go-httpsig/sigerr"
)

var defaultPortByScheme = map[string]string{
	"http":  "80",
	"https": "443",
}

// Resolve computes id's canonical value against ctx, or fails with a
// *sigerr.Error (MISSING_HEADER, MISSING_COMPONENT,
// MISSING_DICTIONARY_KEY, or INVALID_STRUCTURED_HEADER).
func Resolve(ctx *Context, id Identifier) (string, error) {
	target := ctx
	if id.FromRelatedRequest {
		if ctx.Related == nil {
			return "", sigerr.New(sigerr.CodeMissingComponent, "identifier %s requires a related-request context", id.String())
		}
		target = ctx.Related
	}
	if id.IsDerived() {
		return resolveDerived(target, id)
	}
	return resolveHeader(target, id)
}

func resolveDerived(ctx *Context, id Identifier) (string, error) {
	switch id.Name {
	case "@method":
		if ctx.Method == "" {
			return "", sigerr.New(sigerr.CodeMissingComponent, "context has no method for @method")
		}
		return strings.ToUpper(ctx.Method), nil
	case "@target-uri":
		if ctx.TargetURI == "" {
			return "", sigerr.New(sigerr.CodeMissingComponent, "context has no target URI for @target-uri")
		}
		return ctx.TargetURI, nil
	case "@authority":
		u, err := parseTarget(ctx)
		if err != nil {
			return "", err
		}
		return authority(u), nil
	case "@scheme":
		u, err := parseTarget(ctx)
		if err != nil {
			return "", err
		}
		return strings.ToLower(u.Scheme), nil
	case "@request-target":
		u, err := parseTarget(ctx)
		if err != nil {
			return "", err
		}
		rt := u.Path
		if rt == "" {
			rt = "/"
		}
		if u.RawQuery != "" {
			rt += "?" + u.RawQuery
		}
		return rt, nil
	case "@path":
		u, err := parseTarget(ctx)
		if err != nil {
			return "", err
		}
		if u.Path == "" {
			return "/", nil
		}
		return u.Path, nil
	case "@query":
		u, err := parseTarget(ctx)
		if err != nil {
			return "", err
		}
		if !u.ForceQuery && u.RawQuery == "" {
			return "?", nil
		}
		return "?" + u.RawQuery, nil
	case "@query-param":
		u, err := parseTarget(ctx)
		if err != nil {
			return "", err
		}
		values := u.Query()[id.ParamName]
		if len(values) == 0 {
			return "", sigerr.New(sigerr.CodeMissingComponent, "query parameter %q is not present", id.ParamName)
		}
		return url.QueryEscape(values[0]), nil
	case "@status":
		if ctx.Status == 0 {
			return "", sigerr.New(sigerr.CodeMissingComponent, "context has no status for @status")
		}
		return strconv.Itoa(ctx.Status), nil
	default:
		return "", sigerr.New(sigerr.CodeMissingComponent, "unknown derived component %q", id.Name)
	}
}

func parseTarget(ctx *Context) (*url.URL, error) {
	if ctx.TargetURI == "" {
		return nil, sigerr.New(sigerr.CodeMissingComponent, "context has no target URI")
	}
	u, err := url.Parse(ctx.TargetURI)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.CodeMissingComponent, err, "target URI %q is not parseable", ctx.TargetURI)
	}
	return u, nil
}

func authority(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == "" {
		return host
	}
	if defaultPortByScheme[strings.ToLower(u.Scheme)] == port {
		return host
	}
	return host + ":" + port
}

func resolveHeader(ctx *Context, id Identifier) (string, error) {
	values, ok := ctx.HeaderValues(id.Name)
	if !ok || len(values) == 0 {
		return "", sigerr.New(sigerr.CodeMissingHeader, "header %q is not present", id.Name)
	}

	switch {
	case id.BinaryWrapped:
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = sfv.SerializeBareItem(sfv.NewByteSequence([]byte(v)))
		}
		return strings.Join(parts, ", "), nil

	case id.Key != "":
		combined := strings.Join(values, ", ")
		dict, err := sfv.ParseDictionary(combined)
		if err != nil {
			return "", sigerr.Wrap(sigerr.CodeInvalidStructuredHeader, err, "header %q is not a Structured Dictionary", id.Name)
		}
		member, ok := dict.Get(id.Key)
		if !ok {
			return "", sigerr.New(sigerr.CodeMissingDictionaryKey, "header %q has no dictionary key %q", id.Name, id.Key)
		}
		return sfv.SerializeMember(member), nil

	case id.StructuredField:
		combined := strings.Join(values, ", ")
		any, err := sfv.ParseAny(combined)
		if err != nil {
			return "", sigerr.Wrap(sigerr.CodeInvalidStructuredHeader, err, "header %q is not a Structured Field value", id.Name)
		}
		switch any.Kind {
		case sfv.AnyItemKind:
			return sfv.SerializeItem(any.Item), nil
		case sfv.AnyListKind:
			return sfv.SerializeList(any.List), nil
		default:
			return sfv.SerializeDictionary(any.Dictionary), nil
		}

	default:
		return joinFolded(values), nil
	}
}

// joinFolded combines multiple field-line occurrences with ", " and
// collapses internal line folds (CRLF/LF followed by whitespace) to a
// single space, per RFC 9110 §5.3.
func joinFolded(values []string) string {
	folded := make([]string, len(values))
	for i, v := range values {
		lines := strings.Split(strings.ReplaceAll(v, "\r\n", "\n"), "\n")
		for j, l := range lines {
			lines[j] = strings.Trim(l, " \t")
		}
		folded[i] = strings.TrimSpace(strings.Join(lines, " "))
	}
	return strings.Join(folded, ", ")
}
