// Package transfer runs document uploads off the UI loop and reports their
// progress as upload events on the pubsub hub.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/askbuddy/askbuddy/internal/api"
	"github.com/askbuddy/askbuddy/internal/debug"
	"github.com/askbuddy/askbuddy/internal/events"
	"github.com/askbuddy/askbuddy/internal/pubsub"
)

// ErrUnsupportedFile is returned before anything is read when the file kind
// is not one the server can embed.
var ErrUnsupportedFile = fmt.Errorf("unsupported file type (accepted: pdf, doc, docx, ppt, pptx)")

// Uploader validates documents and streams them to the gateway. One Enqueue
// call is one upload; progress is observable only through the hub's upload
// broker.
type Uploader struct {
	client *api.Client
	broker *pubsub.Broker[events.UploadEvent]
}

// NewUploader creates an uploader over the given gateway client.
func NewUploader(client *api.Client, broker *pubsub.Broker[events.UploadEvent]) *Uploader {
	return &Uploader{client: client, broker: broker}
}

// Enqueue validates the path synchronously and starts the upload in the
// background. Validation failures are returned to the caller; everything
// after that is reported through upload events.
func (u *Uploader) Enqueue(ctx context.Context, sessionToken, path string) error {
	fileName := filepath.Base(path)

	if !api.IsSupportedDocument(fileName) {
		return ErrUnsupportedFile
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", fileName, err)
	}

	u.broker.Publish(pubsub.EventStarted, events.NewUploadStartedEvent(fileName))

	go func() {
		defer f.Close()

		message, err := u.client.UploadFile(ctx, sessionToken, fileName, f)
		if err != nil {
			debug.Error("transfer", err, "uploading "+fileName)
			// Server rejections carry their message in the error detail.
			var apiErr *api.Error
			if errors.As(err, &apiErr) {
				message = apiErr.Detail
			}
			u.broker.Publish(pubsub.EventFailed, events.NewUploadFailedEvent(fileName, message, err))
			return
		}

		debug.Event("transfer", "uploaded", fileName)
		u.broker.Publish(pubsub.EventCompleted, events.NewUploadCompletedEvent(fileName, message))
	}()

	return nil
}
