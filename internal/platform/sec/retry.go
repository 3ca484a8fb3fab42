// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"errors"
	"time"
)

// RetryVerifier decorates a [Verifier] with bounded retries.
//
// Only [ErrServiceUnavailable] is retried; a rejected or malformed verdict is
// final. Waiting between attempts stops as soon as ctx is done.
type RetryVerifier struct {
	Next     Verifier
	Attempts int
	Delay    time.Duration
}

// Verify calls Next until it succeeds, fails permanently, or attempts run out.
func (retry *RetryVerifier) Verify(ctx context.Context, token string) (*VerifiedUser, error) {
	attempts := retry.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		user, err := retry.Next.Verify(ctx, token)
		if err == nil {
			return user, nil
		}

		lastErr = err
		if !errors.Is(err, ErrServiceUnavailable) || attempt == attempts-1 {
			break
		}

		timer := time.NewTimer(retry.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, lastErr
		case <-timer.C:
		}
	}

	return nil, lastErr
}
