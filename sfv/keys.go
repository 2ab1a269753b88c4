// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in errors.go.

package sfv

// isKeyLeadChar reports whether c may start a Dictionary or Parameter key.
func isKeyLeadChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || c == '*'
}

// isKeyChar reports whether c may appear after the first character of a key.
func isKeyChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
		c == '_' || c == '-' || c == '.' || c == '*'
}

// ValidateKey checks a string against the Dictionary/Parameter key
// grammar: lowercase letters, digits, and "_-.*", first character a
// lowercase letter or "*".
func ValidateKey(key string) error {
	if key == "" {
		return newErr(CodeInvalidKey, "key must not be empty")
	}
	if !isKeyLeadChar(key[0]) {
		return newErr(CodeInvalidKey, "key %q must start with a lowercase letter or '*'", key)
	}
	for i := 1; i < len(key); i++ {
		if !isKeyChar(key[i]) {
			return newErr(CodeInvalidKey, "key %q contains invalid character %q", key, key[i])
		}
	}
	return nil
}
