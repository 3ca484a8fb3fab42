// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the time-ordered identifiers used for notifications and
realtime sessions.

Version 7 values sort by creation time, so notification rows stay clustered in
insertion order on the primary key index.
*/
package uuid

import "github.com/google/uuid"

// New returns a new UUIDv7 string.
//
// It panics when the system entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}
