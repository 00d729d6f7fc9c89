// Package fsops is the persistence façade: it saves a payload verbatim to a
// path and loads it back, substituting EmptyList when the path is absent.
//
// Failures are *Error values carrying a Kind so callers can branch on the
// cause; their message is the underlying OS error's text.
package fsops
