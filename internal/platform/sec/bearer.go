// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"strings"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// ExtractBearer returns the token carried by an Authorization header value.
//
// The header must be exactly "Bearer <token>". Anything else, including an
// empty token, yields [ErrNoCredential]. The token is returned verbatim.
func ExtractBearer(header string) (string, error) {
	token, found := strings.CutPrefix(header, constants.BearerScheme)
	if !found || token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}
