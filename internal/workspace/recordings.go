package workspace

import (
	"fmt"
	"time"

	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/store"
)

// Recordings returns all voice memos, newest first.
func (w *Workspace) Recordings() []model.Recording {
	return store.Load(w.store, store.KeyRecordings, []model.Recording{})
}

// AddRecording prepends a captured voice memo. audioURL is stored as-is; an
// opaque reference whose lifetime is the caller's concern.
func (w *Workspace) AddRecording(name, audioURL string) (model.Recording, error) {
	if name == "" {
		name = fmt.Sprintf("Recording %s", time.Now().Format("1/2/2006, 3:04:05 PM"))
	}
	r := model.Recording{
		ID:        model.NewID("rec"),
		Name:      name,
		AudioURL:  audioURL,
		CreatedAt: model.NowMillis(),
	}
	recs := append([]model.Recording{r}, w.Recordings()...)
	return r, store.Put(w.store, store.KeyRecordings, recs)
}

// DeleteRecording removes a voice memo.
func (w *Workspace) DeleteRecording(id string) error {
	recs := w.Recordings()
	kept := recs[:0]
	found := false
	for _, r := range recs {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return store.ErrNotFound
	}
	return store.Put(w.store, store.KeyRecordings, kept)
}

// SetTranscript writes a transcript onto the recording with the given id.
func (w *Workspace) SetTranscript(id, transcript string) error {
	recs := w.Recordings()
	for i := range recs {
		if recs[i].ID == id {
			recs[i].Transcript = transcript
			return store.Put(w.store, store.KeyRecordings, recs)
		}
	}
	return store.ErrNotFound
}

// RecordingAudioURL returns the audio reference for the recording with the
// given id. Used by the transcription worker.
func (w *Workspace) RecordingAudioURL(id string) (string, error) {
	r, err := w.Recording(id)
	if err != nil {
		return "", err
	}
	return r.AudioURL, nil
}

// Recording looks up a single voice memo by id.
func (w *Workspace) Recording(id string) (model.Recording, error) {
	for _, r := range w.Recordings() {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Recording{}, store.ErrNotFound
}
