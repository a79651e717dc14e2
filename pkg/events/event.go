package events

import "time"

const (
	TypeConversionCompleted = "conversion.completed"
	TypeConversionFailed    = "conversion.failed"
)

// Event is anything published on the conversion bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// ConversionCompleted reports a successful conversion. direction is
// "markdown_to_blocks" or "blocks_to_markdown".
func ConversionCompleted(direction string, blockCount, outputBytes int, duration time.Duration) BaseEvent {
	now := time.Now()
	return BaseEvent{
		Type: TypeConversionCompleted,
		Data: map[string]interface{}{
			"direction":    direction,
			"block_count":  blockCount,
			"output_bytes": outputBytes,
			"duration_ms":  duration.Milliseconds(),
			"occurred_at":  now.Format(time.RFC3339),
		},
		OccurredAt: now,
	}
}

func ConversionFailed(direction string, err error) BaseEvent {
	now := time.Now()
	return BaseEvent{
		Type: TypeConversionFailed,
		Data: map[string]interface{}{
			"direction":   direction,
			"error":       err.Error(),
			"occurred_at": now.Format(time.RFC3339),
		},
		OccurredAt: now,
	}
}
