package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	m "github.com/agoda-com/muter/internal/model"
)

// SwapPath derives the backup location for a source file inside the swap
// working directory. It is a pure function of its inputs: the same file
// always resolves to the same backup path, and distinct files never share
// one. Flattening separators alone is ambiguous ("a/thing.go" and
// "a_thing.go" meet at "a_thing.go"), so the flattened name carries a digest
// of the full absolute path.
func SwapPath(absFile m.Path, swapDir m.Path) m.Path {
	flat := strings.TrimPrefix(string(absFile), string(filepath.Separator))

	if vol := filepath.VolumeName(string(absFile)); vol != "" {
		flat = strings.TrimPrefix(strings.TrimPrefix(flat, vol), string(filepath.Separator))
	}

	flat = strings.ReplaceAll(flat, string(filepath.Separator), "_")
	sum := sha256.Sum256([]byte(absFile))

	return m.Path(filepath.Join(string(swapDir), fmt.Sprintf("%s.%x", flat, sum[:4])))
}

// BuildSwapRecord resolves backup paths for every provided file. The record
// is computed once per discovered file set and reused for the whole session.
func BuildSwapRecord(files []m.Path, swapDir m.Path) (m.SwapRecord, error) {
	record := make(m.SwapRecord, len(files))

	for _, file := range files {
		abs, err := filepath.Abs(string(file))
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", file, err)
		}

		if _, ok := record[m.Path(abs)]; ok {
			continue
		}

		record[m.Path(abs)] = SwapPath(m.Path(abs), swapDir)
	}

	return record, nil
}

// FileSwapManager snapshots pristine file content before a mutation and
// restores it afterwards.
type FileSwapManager interface {
	// Backup copies the current bytes at originalPath to its resolved backup
	// path, overwriting any stale backup.
	Backup(originalPath m.Path) error

	// Restore copies bytes from the backup path back to originalPath,
	// overwriting mutated content.
	Restore(originalPath m.Path) error
}

// LocalFileSwapManager is the concrete FileSwapManager backed by a read-only
// SwapRecord. Both operations are safe to call repeatedly across cycles for
// the same path.
type LocalFileSwapManager struct {
	record m.SwapRecord
}

// NewLocalFileSwapManager constructs a LocalFileSwapManager over the record.
func NewLocalFileSwapManager(record m.SwapRecord) *LocalFileSwapManager {
	return &LocalFileSwapManager{record: record}
}

// Backup copies the pristine file content to its swap location.
func (s *LocalFileSwapManager) Backup(originalPath m.Path) error {
	swapPath, err := s.lookup(originalPath)
	if err != nil {
		return err
	}

	if err := copyFile(string(originalPath), string(swapPath)); err != nil {
		slog.Error("failed to back up file", "path", originalPath, "swap", swapPath, "error", err)
		return fmt.Errorf("backup %s: %w", originalPath, err)
	}

	return nil
}

// Restore copies the swap content back over the mutated file.
func (s *LocalFileSwapManager) Restore(originalPath m.Path) error {
	swapPath, err := s.lookup(originalPath)
	if err != nil {
		return err
	}

	if err := copyFile(string(swapPath), string(originalPath)); err != nil {
		slog.Error("failed to restore file", "path", originalPath, "swap", swapPath, "error", err)
		return fmt.Errorf("restore %s: %w", originalPath, err)
	}

	return nil
}

func (s *LocalFileSwapManager) lookup(originalPath m.Path) (m.Path, error) {
	swapPath, ok := s.record[originalPath]
	if !ok {
		return "", fmt.Errorf("no swap record for %s", originalPath)
	}

	return swapPath, nil
}

// copyFile copies a single file, preserving the source file mode.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	// #nosec G304 - src is an internal project file path, not user input
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is an internal destination path, not user input
	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(dst, info.Mode())
}
