package transfer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/askbuddy/askbuddy/internal/api"
	"github.com/askbuddy/askbuddy/internal/events"
	"github.com/askbuddy/askbuddy/internal/pubsub"
)

func writeTempDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitForEvent(t *testing.T, ch <-chan pubsub.Event[events.UploadEvent]) events.UploadEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev.Payload
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for upload event")
		return events.UploadEvent{}
	}
}

func TestUploaderEnqueue(t *testing.T) {
	t.Run("rejects unsupported file kinds before reading", func(t *testing.T) {
		broker := pubsub.NewBroker[events.UploadEvent]("upload")
		defer broker.Shutdown()
		uploader := NewUploader(api.NewClient("http://localhost:0"), broker)

		path := writeTempDoc(t, "notes.txt", "plain text")
		err := uploader.Enqueue(context.Background(), "T1", path)
		if !errors.Is(err, ErrUnsupportedFile) {
			t.Errorf("Enqueue() error = %v, want ErrUnsupportedFile", err)
		}
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		broker := pubsub.NewBroker[events.UploadEvent]("upload")
		defer broker.Shutdown()
		uploader := NewUploader(api.NewClient("http://localhost:0"), broker)

		err := uploader.Enqueue(context.Background(), "T1", "/does/not/exist.pdf")
		if err == nil {
			t.Error("Enqueue() accepted a missing file")
		}
	})

	t.Run("publishes started then completed with the server message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/upload-and-embed" {
				t.Errorf("path = %s", r.URL.Path)
			}
			w.Write([]byte(`{"message":"report.pdf embedded"}`))
		}))
		defer server.Close()

		broker := pubsub.NewBroker[events.UploadEvent]("upload")
		defer broker.Shutdown()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := broker.Subscribe(ctx)

		uploader := NewUploader(api.NewClient(server.URL), broker)
		path := writeTempDoc(t, "report.pdf", "%PDF-1.4")
		if err := uploader.Enqueue(context.Background(), "T1", path); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}

		started := waitForEvent(t, ch)
		if started.Type != events.UploadEventStarted || started.FileName != "report.pdf" {
			t.Errorf("first event = %+v, want started report.pdf", started)
		}

		completed := waitForEvent(t, ch)
		if completed.Type != events.UploadEventCompleted {
			t.Errorf("second event type = %s, want completed", completed.Type)
		}
		if completed.Message != "report.pdf embedded" {
			t.Errorf("server message = %q", completed.Message)
		}
	})

	t.Run("publishes failed with the server message on rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail":"file too large"}`))
		}))
		defer server.Close()

		broker := pubsub.NewBroker[events.UploadEvent]("upload")
		defer broker.Shutdown()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := broker.Subscribe(ctx)

		uploader := NewUploader(api.NewClient(server.URL), broker)
		path := writeTempDoc(t, "report.pdf", "%PDF-1.4")
		if err := uploader.Enqueue(context.Background(), "T1", path); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}

		_ = waitForEvent(t, ch) // started

		failed := waitForEvent(t, ch)
		if failed.Type != events.UploadEventFailed {
			t.Errorf("second event type = %s, want failed", failed.Type)
		}
		if failed.Err == nil {
			t.Error("failed event carries no error")
		}
		if failed.Message != "file too large" {
			t.Errorf("failed message = %q, want the server text", failed.Message)
		}
	})
}
