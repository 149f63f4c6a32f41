package goroutine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ufobot/ufobot/internal/shared/logger"
)

func TestSafeRun(t *testing.T) {
	log := logger.NewNopLogger()

	assert.True(t, SafeRun(log, "ok", func() {}))
	assert.False(t, SafeRun(log, "boom", func() { panic("cleanup exploded") }))
}
