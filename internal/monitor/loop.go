package monitor

import (
	"context"
	"time"
)

// every runs fn once per interval until ctx is done or fn fails. With
// immediate set, fn also runs before the first tick.
func every(ctx context.Context, interval time.Duration, immediate bool, fn func() error) error {
	if immediate {
		if ctx.Err() != nil {
			return nil
		}
		if err := fn(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := fn(); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}
