package nats

import (
	"testing"
	"time"

	"notemark-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "conversions.conversion.completed", Subject(events.TypeConversionCompleted))
}

func TestDecode(t *testing.T) {
	event, err := decode("conversions.conversion.completed",
		[]byte(`{"block_count": 2, "occurred_at": "2024-05-01T10:00:00Z"}`))
	require.NoError(t, err)

	assert.Equal(t, events.TypeConversionCompleted, event.EventType())
	assert.Equal(t, float64(2), event.Payload()["block_count"])
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), event.Timestamp().UTC())
}

func TestDecode_InvalidPayload(t *testing.T) {
	_, err := decode("conversions.x", []byte("not json"))
	assert.Error(t, err)
}
