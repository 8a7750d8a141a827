package aggregator

import "time"

// ProgressEvent is one observable step of an aggregation run.
type ProgressEvent struct {
	Type      string         `json:"type"`    // start/file/warning/error/done
	Message   string         `json:"message"` // event message
	Data      map[string]any `json:"data,omitempty"`
	RunID     string         `json:"run_id"`
	Timestamp time.Time      `json:"timestamp"`
}

// ProgressFunc receives events synchronously, in run order. A nil func
// drops them.
type ProgressFunc func(ProgressEvent)

func (a *Aggregator) emit(eventType, message string, data map[string]any) {
	if a.onProgress == nil {
		return
	}
	a.onProgress(ProgressEvent{
		Type:      eventType,
		Message:   message,
		Data:      data,
		RunID:     a.runID,
		Timestamp: time.Now(),
	})
}
