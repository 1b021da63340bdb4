// Package store reads and writes the ConEmu settings file on disk.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jmylchreest/cetheme/internal/document"
)

// DefaultFileName is the settings file ConEmu reads from its configuration directory.
const DefaultFileName = "ConEmu.xml"

// ErrBackupExists is returned when today's backup file is already present.
var ErrBackupExists = errors.New("backup file already exists")

// MasterFile is the settings file inside a configuration directory.
type MasterFile struct {
	dir      string
	fileName string
}

// NewMasterFile creates a MasterFile. An empty fileName means DefaultFileName.
func NewMasterFile(dir, fileName string) *MasterFile {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &MasterFile{dir: dir, fileName: fileName}
}

// Dir returns the configuration directory.
func (m *MasterFile) Dir() string {
	return m.dir
}

// Path returns the full path of the settings file.
func (m *MasterFile) Path() string {
	return filepath.Join(m.dir, m.fileName)
}

// Load reads and parses the settings file.
func (m *MasterFile) Load() (*document.Document, error) {
	return document.Load(m.Path())
}

// Save replaces the settings file with doc. The document is written to a
// temporary file in the same directory and renamed over the original, so a
// failed write leaves the previous contents in place.
func (m *MasterFile) Save(doc *document.Document) error {
	data, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.Path(), err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(m.Path()); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(m.dir, "."+m.fileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, m.Path()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", m.Path(), err)
	}
	return nil
}

// BackupName returns the backup file name for the given day.
func BackupName(now time.Time) string {
	return "ConEmu_Backup_" + now.Format("20060102") + ".xml"
}

// Backup copies the settings file to ConEmu_Backup_<yyyyMMdd>.xml in the
// configuration directory and returns the backup path. An existing backup
// for the same day is never overwritten.
func (m *MasterFile) Backup(now time.Time) (string, error) {
	dest := filepath.Join(m.dir, BackupName(now))

	src, err := os.Open(m.Path())
	if err != nil {
		return dest, err
	}
	defer func() { _ = src.Close() }()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return dest, fmt.Errorf("%w: %s", ErrBackupExists, dest)
		}
		return dest, err
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return dest, fmt.Errorf("copy to %s: %w", dest, err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return dest, err
	}
	return dest, out.Close()
}
