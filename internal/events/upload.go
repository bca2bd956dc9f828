package events

import "time"

// UploadEventType represents upload-specific event types.
type UploadEventType string

// Upload event type constants.
const (
	UploadEventStarted   UploadEventType = "started"
	UploadEventCompleted UploadEventType = "completed"
	UploadEventFailed    UploadEventType = "failed"
)

// UploadEvent reports the progress of a document upload.
type UploadEvent struct {
	Type      UploadEventType
	FileName  string
	Message   string // Server-provided status message, if any
	Err       error  // Set for UploadEventFailed
	Timestamp time.Time
}

// NewUploadStartedEvent creates an upload started event.
func NewUploadStartedEvent(fileName string) UploadEvent {
	return UploadEvent{
		Type:      UploadEventStarted,
		FileName:  fileName,
		Timestamp: time.Now(),
	}
}

// NewUploadCompletedEvent creates an upload completed event.
func NewUploadCompletedEvent(fileName, message string) UploadEvent {
	return UploadEvent{
		Type:      UploadEventCompleted,
		FileName:  fileName,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewUploadFailedEvent creates an upload failed event.
func NewUploadFailedEvent(fileName, message string, err error) UploadEvent {
	return UploadEvent{
		Type:      UploadEventFailed,
		FileName:  fileName,
		Message:   message,
		Err:       err,
		Timestamp: time.Now(),
	}
}
