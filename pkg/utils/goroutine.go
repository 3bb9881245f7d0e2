package utils

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang-stock-sentiment/pkg/logger"
)

// GoSafe runs fn in a new goroutine and swallows panics so one bad job cannot
// take the process down.
func GoSafe(fn func()) {
	go RunSafe(nil, fn)
}

// RunSafe runs fn on the caller goroutine and converts a panic into a log entry.
func RunSafe(log *logger.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if log != nil {
				log.Error("Recovered from panic",
					logger.StringField("panic", fmt.Sprint(r)),
					logger.StringField("stack", string(debug.Stack())))
			}
		}
	}()
	fn()
}

// ShouldContinue reports whether ctx is still alive, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		if log != nil {
			log.Warn("Context done, stopping work", logger.ErrorField(ctx.Err()))
		}
		return false
	default:
		return true
	}
}
