package journal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string
	Count int
}

func journalPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.journal")
}

func TestJournal_AppendAndReplayInOrder(t *testing.T) {
	path := journalPath(t)

	j, err := New[entry](path)
	require.NoError(t, err)
	require.Equal(t, path, j.Path())

	written := []entry{{"a", 1}, {"b", 2}, {"c", 3}}
	for _, e := range written {
		require.NoError(t, j.Append(e))
	}

	require.Equal(t, uint64(3), j.Len())
	require.NoError(t, j.Close())

	var replayed []entry
	err = Replay(path, func(index uint64, item entry) error {
		require.Equal(t, uint64(len(replayed)), index)
		replayed = append(replayed, item)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, written, replayed)
}

func TestJournal_NewTruncatesPreviousSession(t *testing.T) {
	path := journalPath(t)

	j, err := New[entry](path)
	require.NoError(t, err)
	require.NoError(t, j.Append(entry{"stale", 1}))
	require.NoError(t, j.Close())

	j, err = New[entry](path)
	require.NoError(t, err)
	require.NoError(t, j.Append(entry{"fresh", 2}))
	require.NoError(t, j.Close())

	var replayed []entry
	require.NoError(t, Replay(path, func(_ uint64, item entry) error {
		replayed = append(replayed, item)
		return nil
	}))
	require.Equal(t, []entry{{"fresh", 2}}, replayed)
}

func TestJournal_ReplayToleratesTornFinalEntry(t *testing.T) {
	path := journalPath(t)

	j, err := New[entry](path)
	require.NoError(t, err)
	require.NoError(t, j.Append(entry{"complete", 1}))
	require.NoError(t, j.Append(entry{"torn", 2}))
	require.NoError(t, j.Close())

	// Chop off the tail of the last entry, as a crash mid-write would.
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content[:len(content)-3], 0o600))

	var replayed []entry
	err = Replay(path, func(_ uint64, item entry) error {
		replayed = append(replayed, item)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []entry{{"complete", 1}}, replayed)
}

func TestJournal_ReplayStopsOnCallbackError(t *testing.T) {
	path := journalPath(t)

	j, err := New[entry](path)
	require.NoError(t, err)
	require.NoError(t, j.Append(entry{"a", 1}))
	require.NoError(t, j.Append(entry{"b", 2}))
	require.NoError(t, j.Close())

	boom := errors.New("stop here")
	seen := 0
	err = Replay(path, func(_ uint64, _ entry) error {
		seen++
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, seen)
}

func TestJournal_ReplayMissingFileFails(t *testing.T) {
	err := Replay(filepath.Join(t.TempDir(), "absent.journal"), func(_ uint64, _ entry) error {
		return nil
	})
	require.Error(t, err)
}

func TestJournal_CloseIsIdempotent(t *testing.T) {
	j, err := New[entry](journalPath(t))
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())
}
