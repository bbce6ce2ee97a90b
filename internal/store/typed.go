package store

import (
	"encoding/json"
	"errors"
	"log/slog"
)

// Load reads the document under key and decodes it into T. A missing key or
// an undecodable document yields defaultValue: corrupt state is discarded in
// favor of staying available, never surfaced to the caller as an error.
func Load[T any](s *Store, key string, defaultValue T) T {
	raw, err := s.GetRaw(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("reading stored document", "key", key, "error", err)
		}
		return defaultValue
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("discarding malformed stored document", "key", key, "error", err)
		return defaultValue
	}
	return v
}

// Put serializes value and writes it under key, overwriting any prior value.
func Put[T any](s *Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.PutRaw(key, raw)
}
