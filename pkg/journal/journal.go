// Package journal provides a minimal append-only log used to make
// interrupted mutation sessions recoverable.
package journal

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Journal is a generic append-only log of items of type T backed by a single
// gob stream on disk. A session writes one journal; a later process can
// replay it with Replay even if the writer died mid-session.
type Journal[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Close() error
}

type journalImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// New creates (or truncates) a journal file at path.
func New[T any](path string) (Journal[T], error) {
	// #nosec G304 - path is an internal swap-directory location, not user input
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		slog.Error("failed to create journal", "path", path, "error", err)
		return nil, fmt.Errorf("create journal %s: %w", path, err)
	}

	slog.Debug("created journal", "path", path)

	return &journalImpl[T]{
		path:    path,
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Append implements Journal.
func (j *journalImpl[T]) Append(item T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.encoder.Encode(item); err != nil {
		slog.Error("failed to encode journal entry", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("encode journal entry: %w", err)
	}

	j.length++

	return nil
}

// Len implements Journal.
func (j *journalImpl[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

// Path implements Journal.
func (j *journalImpl[T]) Path() string {
	return j.path
}

// Close implements Journal.
func (j *journalImpl[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}

	if err := j.file.Close(); err != nil {
		slog.Error("failed to close journal", "path", j.path, "error", err)
		return err
	}

	j.file = nil

	return nil
}

// Replay reads every entry from the journal at path, in order, invoking fn
// for each. A journal cut short by a crash replays all fully written entries.
func Replay[T any](path string, fn func(index uint64, item T) error) error {
	// #nosec G304 - path is an internal swap-directory location, not user input
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open journal %s: %w", path, err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close journal", "path", path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for index := uint64(0); ; index++ {
		var item T

		if err := decoder.Decode(&item); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			// A torn final entry is expected after a crash; everything
			// before it has already been replayed.
			if errors.Is(err, io.ErrUnexpectedEOF) {
				slog.Warn("journal ends mid-entry", "path", path, "index", index)
				return nil
			}

			slog.Error("failed to decode journal entry", "path", path, "index", index, "error", err)

			return fmt.Errorf("decode journal entry %d: %w", index, err)
		}

		if err := fn(index, item); err != nil {
			return err
		}
	}
}
