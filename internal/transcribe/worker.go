// Package transcribe runs the background transcription queue. Views enqueue
// a recording id; the worker picks it up, calls the AI gateway and writes
// the transcript back onto the recording. A failed job is logged and
// dropped, never fatal.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tekguyz/myplace/internal/store"
)

// queueKey holds the pending recording ids as a JSON array.
const queueKey = "transcribe-queue"

// Transcriber produces a transcript for an audio reference.
type Transcriber interface {
	Transcribe(ctx context.Context, audioRef string) (string, error)
}

// Enqueue adds a recording id to the pending queue. Enqueuing an id that is
// already pending is a no-op.
func Enqueue(s *store.Store, recordingID string) error {
	queue := store.Load(s, queueKey, []string{})
	for _, id := range queue {
		if id == recordingID {
			return nil
		}
	}
	return store.Put(s, queueKey, append(queue, recordingID))
}

// Pending returns the queued recording ids in order.
func Pending(s *store.Store) []string {
	return store.Load(s, queueKey, []string{})
}

// RecordingStore abstracts the recording operations the worker performs.
// Implemented by workspace.Workspace.
type RecordingStore interface {
	SetTranscript(id, transcript string) error
	RecordingAudioURL(id string) (string, error)
}

// Worker polls the queue until its context is cancelled.
type Worker struct {
	store       *store.Store
	recordings  RecordingStore
	transcriber Transcriber
	poll        time.Duration
	logger      *slog.Logger
}

// NewWorker creates a Worker. If pollInterval is <= 0, it defaults to 1s.
func NewWorker(s *store.Store, recordings RecordingStore, t Transcriber, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &Worker{
		store:       s,
		recordings:  recordings,
		transcriber: t,
		poll:        pollInterval,
		logger:      slog.Default(),
	}
}

// Run polls for queued transcriptions until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		done, err := w.RunOnce(ctx)
		if err != nil {
			w.logger.Error("transcription failed", "error", err)
		}
		if done {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.poll):
		}
	}
}

// RunOnce claims and processes a single queued recording. Returns true if a
// job was claimed (regardless of success). The job is removed from the
// queue up front: per app policy there are no retries, a failure simply
// leaves the recording without a transcript.
func (w *Worker) RunOnce(ctx context.Context) (bool, error) {
	queue := store.Load(w.store, queueKey, []string{})
	if len(queue) == 0 {
		return false, nil
	}

	id := queue[0]
	if err := store.Put(w.store, queueKey, queue[1:]); err != nil {
		return false, fmt.Errorf("dequeuing %s: %w", id, err)
	}

	audioURL, err := w.recordings.RecordingAudioURL(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Recording deleted while queued; nothing to do.
			w.logger.Debug("skipping transcription of deleted recording", "id", id)
			return true, nil
		}
		return true, fmt.Errorf("loading recording %s: %w", id, err)
	}

	transcript, err := w.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		return true, fmt.Errorf("transcribing %s: %w", id, err)
	}

	if err := w.recordings.SetTranscript(id, transcript); err != nil {
		return true, fmt.Errorf("saving transcript for %s: %w", id, err)
	}

	w.logger.Info("transcribed recording", "id", id)
	return true, nil
}
