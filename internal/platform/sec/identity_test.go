// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"encoding/json"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

/*
TestPermissionSet_Has matches whole paths only; placeholder-looking entries are literal.
*/
func TestPermissionSet_Has(t *testing.T) {
	set := sec.NewPermissionSet(
		"/blog/notifications",
		"/blog/posts/*/like",
		"/blog/{x}/notifications",
	)

	tests := []struct {
		path    string
		allowed bool
	}{
		{"/blog/notifications", true},
		{"/blog/posts/*/like", true},
		{"/blog/posts/12/like", false},
		{"/blog/anything/notifications", false},
		{"/blog/notifications/extra", false},
		{"/blog", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			identity := &sec.Identity{ID: "1", Permissions: set}
			assert.Equal(t, tt.allowed, identity.Can(tt.path))
		})
	}

	var nobody *sec.Identity
	assert.False(t, nobody.Can("/blog/notifications"))
}

/*
TestPermissionSet_JSON renders a stable sorted array.
*/
func TestPermissionSet_JSON(t *testing.T) {
	encoded, err := json.Marshal(sec.Identity{ID: "1", Permissions: sec.NewPermissionSet("/b", "/a")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","email":"","full_name":"","role":"","permissions":["/a","/b"]}`, string(encoded))
}

/*
TestClaimDecoder_TrailingSlashPermissions normalizes permission URLs like request paths.
*/
func TestClaimDecoder_TrailingSlashPermissions(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{
		"id":          "5",
		"permissions": []string{"/blog/notifications/", "/", " /ws/notifications "},
	})

	identity, err := sec.NewClaimDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/blog/notifications", "/ws/notifications"}, identity.Permissions.Sorted())
}
