// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
)

// # Token Payload

// Claims is the payload the identity service embeds in its access tokens.
//
// Permissions arrive in two shapes: nested under the role and as a flat list.
// Both are merged by [ClaimDecoder.Decode].
type Claims struct {
	jwt.RegisteredClaims

	UserID      flexString `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        RoleClaim  `json:"role"`
	Permissions []string   `json:"permissions"`
}

// RoleClaim is the role granted to the user and the paths it unlocks.
type RoleClaim struct {
	Name        string            `json:"name"`
	Permissions []PermissionClaim `json:"permissions"`
}

// PermissionClaim is one permitted path inside a role.
type PermissionClaim struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts either a bare role name or the nested role object.
func (role *RoleClaim) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &role.Name)
	}

	type plain RoleClaim
	var decoded plain
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*role = RoleClaim(decoded)
	return nil
}

// flexString decodes a JSON string or number into its string form.
// The identity service emits numeric user ids; the platform treats ids as strings.
type flexString string

func (value *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*value = flexString(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*value = flexString(number.String())
	return nil
}

// # Decoder

// ClaimDecoder reads token payloads without validating signatures.
//
// It must only be called after the remote verifier accepted the token.
type ClaimDecoder struct {
	parser *jwt.Parser
}

// NewClaimDecoder creates a decoder. Registered-claim validation (exp, nbf)
// is left to the identity service.
func NewClaimDecoder() *ClaimDecoder {
	return &ClaimDecoder{parser: jwt.NewParser(jwt.WithoutClaimsValidation())}
}

// Decode converts the token payload into an [Identity].
//
// Any structural failure, including a missing user id, is reported as
// [ErrMalformedClaims].
func (decoder *ClaimDecoder) Decode(token string) (*Identity, error) {
	claims := &Claims{}
	if _, _, err := decoder.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedClaims, err)
	}

	userID := strings.TrimSpace(string(claims.UserID))
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrMalformedClaims)
	}

	return &Identity{
		ID:          userID,
		Email:       claims.Email,
		FullName:    claims.FullName,
		Role:        claims.Role.Name,
		Permissions: NewPermissionSet(claims.PermittedPaths()...),
	}, nil
}

// PermittedPaths flattens role and direct permissions into unique, non-empty
// paths without trailing slashes.
func (claims *Claims) PermittedPaths() []string {
	nested := lo.Map(claims.Role.Permissions, func(permission PermissionClaim, _ int) string {
		return permission.URL
	})

	all := lo.Map(append(nested, claims.Permissions...), func(path string, _ int) string {
		path = strings.TrimSpace(path)
		if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
			return trimmed
		}
		return path
	})
	return lo.Uniq(lo.Compact(all))
}
