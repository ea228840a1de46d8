// Package audit keeps an in-memory trail of key lifecycle actions. Events
// carry fingerprints and window metadata only — never seed, path, or key
// material.
package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action types for audit events
type Action string

const (
	ActionStart     Action = "start"
	ActionGenerate  Action = "generate"
	ActionSearch    Action = "search"
	ActionDerive    Action = "derive"
	ActionRotate    Action = "rotate"
	ActionTerminate Action = "terminate"
)

// ResourceType represents the kind of resource an action touched.
type ResourceType string

const (
	ResourceMaze   ResourceType = "maze"
	ResourcePath   ResourceType = "path"
	ResourceKey    ResourceType = "key"
	ResourceWindow ResourceType = "window"
	ResourceEngine ResourceType = "engine"
)

// Status represents the outcome of an action.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Event represents a single audit log entry.
type Event struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	EngineID     string         `json:"engine_id,omitempty"`
	WindowIndex  uint64         `json:"window_index"`
	Action       Action         `json:"action"`
	ResourceType ResourceType   `json:"resource_type"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Status       Status         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Filter represents filtering criteria for audit events.
type Filter struct {
	EngineID     string
	Action       Action
	ResourceType ResourceType
	Status       Status
	StartTime    *time.Time
	EndTime      *time.Time
}

// Logger is the interface for audit logging implementations.
type Logger interface {
	// Log records an audit event
	Log(event *Event) error

	// GetEventCount returns the number of events logged
	GetEventCount() int64
}

// AuditLogger manages audit events with a fixed-size circular buffer.
// Old events are overwritten once the buffer wraps.
type AuditLogger struct {
	events     []*Event
	bufferSize int
	index      int
	count      int
	total      int64
	mu         sync.RWMutex
}

// NewAuditLogger creates a new audit logger with the specified buffer size.
func NewAuditLogger(bufferSize int) *AuditLogger {
	return &AuditLogger{
		events:     make([]*Event, bufferSize),
		bufferSize: bufferSize,
	}
}

// Log records an audit event.
func (l *AuditLogger) Log(event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	l.events[l.index] = event
	l.index = (l.index + 1) % l.bufferSize
	l.total++

	if l.count < l.bufferSize {
		l.count++
	}

	return nil
}

// GetEvents retrieves buffered events in chronological order, applying
// the optional filter.
func (l *AuditLogger) GetEvents(filter *Filter) []*Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*Event, 0, l.count)
	for i := 0; i < l.count; i++ {
		idx := (l.index - l.count + i + l.bufferSize) % l.bufferSize
		event := l.events[idx]
		if event == nil {
			continue
		}
		if filter != nil && !filter.matches(event) {
			continue
		}
		result = append(result, event)
	}
	return result
}

func (f *Filter) matches(event *Event) bool {
	if f.EngineID != "" && event.EngineID != f.EngineID {
		return false
	}
	if f.Action != "" && event.Action != f.Action {
		return false
	}
	if f.ResourceType != "" && event.ResourceType != f.ResourceType {
		return false
	}
	if f.Status != "" && event.Status != f.Status {
		return false
	}
	if f.StartTime != nil && event.Timestamp.Before(*f.StartTime) {
		return false
	}
	if f.EndTime != nil && event.Timestamp.After(*f.EndTime) {
		return false
	}
	return true
}

// GetRecentEvents returns the N most recent events, newest first.
func (l *AuditLogger) GetRecentEvents(n int) []*Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > l.count {
		n = l.count
	}

	result := make([]*Event, 0, n)
	for i := 0; i < n; i++ {
		idx := (l.index - 1 - i + l.bufferSize) % l.bufferSize
		if l.events[idx] != nil {
			result = append(result, l.events[idx])
		}
	}
	return result
}

// GetEventCount returns the total number of events ever logged,
// including events already overwritten by the circular buffer.
func (l *AuditLogger) GetEventCount() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// NopLogger discards all events (useful for testing).
type NopLogger struct{}

func (NopLogger) Log(*Event) error     { return nil }
func (NopLogger) GetEventCount() int64 { return 0 }
