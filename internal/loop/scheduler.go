package loop

import (
	"context"
	"errors"
	"time"
)

// ErrQuit is returned by a frame callback to stop Run without an error.
var ErrQuit = errors.New("loop: quit")

// Run calls frame once per frameTime until ctx is cancelled or frame
// returns an error. A frame that overruns is followed immediately by the
// next one; missed frames are not made up.
func Run(ctx context.Context, frameTime time.Duration, frame func() error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()

		if err := frame(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed >= frameTime {
			continue
		}

		wait := time.NewTimer(frameTime - elapsed)
		select {
		case <-ctx.Done():
			wait.Stop()
			return nil
		case <-wait.C:
		}
	}
}
