// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Configuration

// Config is the explicit authorization policy injected at construction.
type Config struct {
	// PublicPatterns are regular expressions matched against the whole
	// normalized path, in order. A match skips authentication entirely.
	PublicPatterns []string

	// APIPrefix is stripped from the path before the permission lookup.
	APIPrefix string
}

// DefaultPublicPatterns returns the built-in list of unauthenticated endpoints.
func DefaultPublicPatterns() []string {
	return []string{
		`/health`,
		`/ready`,
		`/api/v1/auth/logout`,
		`/api/v1/auth/register`,
		`/api/v1/auth/login`,
		`/api/v1/blog/posts`,
		`/api/v1/blog/posts/\d+/details`,
		`/api/v1/blog/posts/\d+/comments/list`,
		`/api/v1/blog/posts/\d+/likes/list`,
		`/api/v1/subscribe`,
		`/api/v1/ws/comments/\d+`,
	}
}

// # Policy

// Policy decides access from a path and an optional identity.
//
// It holds no per-request state and is safe for concurrent use.
type Policy struct {
	public    []*regexp.Regexp
	apiPrefix string
}

// NewPolicy compiles the public patterns as full-match expressions.
func NewPolicy(cfg Config) (*Policy, error) {
	compiled := make([]*regexp.Regexp, 0, len(cfg.PublicPatterns))
	for _, pattern := range cfg.PublicPatterns {
		expression, err := regexp.Compile(`^(?:` + pattern + `)$`)
		if err != nil {
			return nil, fmt.Errorf("gateway: invalid public pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, expression)
	}

	return &Policy{
		public:    compiled,
		apiPrefix: NormalizePath(cfg.APIPrefix),
	}, nil
}

// NormalizePath strips trailing slashes. The root path stays "/" and an
// empty path becomes "/".
func NormalizePath(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}

// IsPublic reports whether the normalized path fully matches a public pattern.
// Patterns are tried in configured order; the first match wins.
func (policy *Policy) IsPublic(path string) bool {
	for _, expression := range policy.public {
		if expression.MatchString(path) {
			return true
		}
	}
	return false
}

// PermissionKey is the path as it appears in permission lists: the normalized
// path without the versioned API prefix.
func (policy *Policy) PermissionKey(path string) string {
	if policy.apiPrefix == "/" {
		return path
	}

	rest, found := strings.CutPrefix(path, policy.apiPrefix)
	if !found {
		return path
	}

	// "/api/v10/x" must not be treated as "/api/v1" + "0/x".
	if rest != "" && !strings.HasPrefix(rest, "/") {
		return path
	}

	if rest == "" {
		return "/"
	}
	return rest
}

// Permits reports whether identity holds the permission for path.
func (policy *Policy) Permits(path string, identity *sec.Identity) bool {
	return identity.Can(policy.PermissionKey(path))
}

// Evaluate is the pure (path, identity) → decision function.
//
// Public paths are allowed without identity regardless of what the caller
// presented. Otherwise a nil identity is a missing credential and an identity
// without the path's permission is denied.
func (policy *Policy) Evaluate(path string, identity *sec.Identity) Decision {
	path = NormalizePath(path)

	if policy.IsPublic(path) {
		return allowed(nil)
	}

	if identity == nil {
		return denied(ReasonMissingCredential, nil, sec.ErrNoCredential)
	}

	if !policy.Permits(path, identity) {
		return denied(ReasonPermissionDenied, identity, fmt.Errorf("gateway: %q lacks %q", identity.ID, policy.PermissionKey(path)))
	}

	return allowed(identity)
}
