// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the credential primitives of the request gateway.
//
// # Architecture
//
// This package isolates security-sensitive code from the domain logic:
//
//   - [ExtractBearer] pulls the token out of an Authorization header.
//   - [SSOVerifier] confirms the token with the remote identity service.
//   - [ClaimDecoder] turns the token payload into an [Identity].
//
// Trust is established by the remote verification; decoding never checks
// signatures. The gateway package composes these pieces per request.
package sec

import (
	"encoding/json"
	"errors"
	"sort"
)

// # Failure Taxonomy

var (
	// ErrNoCredential means the Authorization header is absent or not a Bearer credential.
	ErrNoCredential = errors.New("sec: bearer credential missing")

	// ErrInvalidToken means the identity service rejected the token.
	ErrInvalidToken = errors.New("sec: token rejected by identity service")

	// ErrServiceUnavailable means the identity service could not be reached or failed (5xx, timeout).
	ErrServiceUnavailable = errors.New("sec: identity service unavailable")

	// ErrMalformedResponse means the identity service answered with an undecodable body.
	ErrMalformedResponse = errors.New("sec: malformed identity service response")

	// ErrMalformedClaims means the token payload does not have the expected structure.
	ErrMalformedClaims = errors.New("sec: malformed token claims")
)

// # Identity

// Identity is the caller derived from decoded token claims.
//
// It lives for one request (or one realtime connection) and is never persisted.
type Identity struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	FullName    string        `json:"full_name"`
	Role        string        `json:"role"`
	Permissions PermissionSet `json:"permissions"`
}

// Can reports whether the identity's permitted-path set covers path.
func (identity *Identity) Can(path string) bool {
	if identity == nil {
		return false
	}
	return identity.Permissions.Has(path)
}

// PermissionSet is a set of permitted paths. Entries match exactly; "*" or
// "{id}" in an entry is literal text, never a wildcard.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from the given paths.
func NewPermissionSet(paths ...string) PermissionSet {
	set := make(PermissionSet, len(paths))
	for _, path := range paths {
		set[path] = struct{}{}
	}
	return set
}

// Has reports exact membership.
func (set PermissionSet) Has(path string) bool {
	_, ok := set[path]
	return ok
}

// Sorted returns the paths in lexical order.
func (set PermissionSet) Sorted() []string {
	paths := make([]string, 0, len(set))
	for path := range set {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// MarshalJSON renders the set as a sorted array.
func (set PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(set.Sorted())
}
