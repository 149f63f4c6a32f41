// Package goroutine provides panic-safe wrappers for background work.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/ufobot/ufobot/internal/shared/logger"
)

// SafeRun calls fn and logs, instead of propagating, any panic it raises.
// It reports whether fn returned normally.
func SafeRun(log logger.Interface, name string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			ok = false
		}
	}()
	fn()
	return true
}
