package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/modhooks/internal/log"
)

// File suffixes for the backup and quarantine copies.
const (
	BackupSuffix     = ".bak"
	QuarantineSuffix = ".error"
)

// DefaultFileName is the settings file name inside the data directory.
const DefaultFileName = "ModdingApi.GlobalSettings.json"

// Store reads and writes one settings file.
type Store struct {
	path string
	sink log.Sink
}

// NewStore returns a store for the file at path. A nil sink discards
// reports.
func NewStore(path string, sink log.Sink) *Store {
	if sink == nil {
		sink = log.Nop()
	}
	return &Store{path: path, sink: sink}
}

// Path returns the settings file path.
func (s *Store) Path() string { return s.path }

// BackupPath returns the path of the previous generation.
func (s *Store) BackupPath() string { return s.path + BackupSuffix }

// Load reads the settings file. It never fails: a missing file yields
// defaults, and a file no reader understands is quarantined and replaced
// by defaults. Every fallback is reported to the sink.
func (s *Store) Load() GlobalSettings {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.sink.Info("no settings file, using defaults", "path", s.path)
		return Defaults()
	}
	if err != nil {
		s.sink.Fault(log.FaultSerialization, "read settings", err, "path", s.path)
		return Defaults()
	}

	g, cerr := decodeCanonical(data)
	if cerr == nil {
		return g
	}
	s.sink.Debug("canonical settings decode failed, trying legacy", "path", s.path, "error", cerr)

	g, lerr := decodeLegacy(data)
	if lerr == nil {
		s.sink.Info("loaded legacy settings, next save rewrites them", "path", s.path)
		return g
	}

	err = fmt.Errorf("%w: %w", ErrCorrupt, errors.Join(
		&ParseError{Path: s.path, Format: "canonical", Err: cerr},
		&ParseError{Path: s.path, Format: "legacy", Err: lerr},
	))
	dst, qerr := s.quarantine()
	if qerr != nil {
		s.sink.Fault(log.FaultCorruptState, "settings file unreadable and could not be quarantined", errors.Join(err, qerr), "path", s.path)
	} else {
		s.sink.Fault(log.FaultCorruptState, "settings file unreadable, quarantined", err, "path", s.path, "quarantine", dst)
	}
	return Defaults()
}

// quarantine moves the settings file to the first free "<path>.error",
// "<path>.error.1", ... name so earlier quarantined copies survive.
func (s *Store) quarantine() (string, error) {
	dst := s.path + QuarantineSuffix
	for i := 1; ; i++ {
		if _, err := os.Lstat(dst); errors.Is(err, fs.ErrNotExist) {
			break
		}
		dst = fmt.Sprintf("%s%s.%d", s.path, QuarantineSuffix, i)
	}
	return dst, os.Rename(s.path, dst)
}

// Save writes g in canonical form after rotating the current file to the
// backup path. The previous backup is removed first, so at most one
// backup exists.
func (s *Store) Save(g GlobalSettings) error {
	data, err := encode(g)
	if err != nil {
		s.sink.Fault(log.FaultSerialization, "encode settings", err)
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := s.rotate(); err != nil {
		s.sink.Fault(log.FaultSerialization, "rotate settings backup", err, "path", s.path)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.sink.Fault(log.FaultSerialization, "create settings directory", err, "path", s.path)
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.sink.Fault(log.FaultSerialization, "write settings", err, "path", s.path)
		return fmt.Errorf("write settings: %w", err)
	}
	s.sink.Debug("saved settings", "path", s.path)
	return nil
}

func (s *Store) rotate() error {
	bak := s.BackupPath()
	if err := os.Remove(bak); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove backup: %w", err)
	}
	if err := os.Rename(s.path, bak); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("back up settings: %w", err)
	}
	return nil
}
