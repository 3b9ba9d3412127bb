package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupWritesJSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	Setup(cfg)

	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestSetupPrettyDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	cfg.Pretty = true

	assert.NotPanics(t, func() { Setup(cfg) })
}

func TestWithRequestIDRoundTrips(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	logger := FromContext(ctx)

	var buf bytes.Buffer
	logger = logger.Output(&buf)
	logger.Info().Msg("hi")

	assert.Contains(t, buf.String(), "req-1")
}
