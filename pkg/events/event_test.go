package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConversionCompleted(t *testing.T) {
	e := ConversionCompleted("markdown_to_blocks", 3, 120, 1500*time.Millisecond)

	assert.Equal(t, TypeConversionCompleted, e.EventType())
	assert.Equal(t, 3, e.Payload()["block_count"])
	assert.Equal(t, int64(1500), e.Payload()["duration_ms"])
	assert.False(t, e.Timestamp().IsZero())
}

func TestConversionFailed(t *testing.T) {
	e := ConversionFailed("blocks_to_markdown", errors.New("bad json"))

	assert.Equal(t, TypeConversionFailed, e.EventType())
	assert.Equal(t, "bad json", e.Payload()["error"])
}
