package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ovalbit/eggtimer/internal/validate"
)

// DefaultPath is the per-user storage location.
const DefaultPath = "~/.local/share/eggtimer/recents.json"

// maxRecents caps the recently used custom durations kept on disk.
const maxRecents = 5

// Data represents the structure of the storage file. Only user
// preferences live here; countdown state is never persisted.
type Data struct {
	Recents     []string `json:"recents,omitempty" validate:"omitempty,dive,clock_hhmm"`
	InstallUUID string   `json:"install_uuid,omitempty" validate:"omitempty,uuid_rfc4122"`
}

// Storage handles the loading and saving of the storage file.
type Storage struct {
	Path string `validate:"required,filepath"`
	Data Data
}

// NewStorage creates a new Storage instance, loading existing data when
// present and generating an install UUID when missing.
func NewStorage(path string) (*Storage, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	s := &Storage{Path: expandedPath}

	if err := s.Load(); err != nil {
		// If the file doesn't exist, we can ignore the error.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if s.Data.InstallUUID == "" {
		s.Data.InstallUUID = uuid.NewString()
	}

	return s, nil
}

// NewOrExistingStorage returns existing storage if the file exists, or
// creates a new one otherwise. When creating a new storage, it writes
// the initial structure to disk immediately.
func NewOrExistingStorage(path string) (*Storage, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(expandedPath); err == nil {
		return NewStorage(path)
	} else if os.IsNotExist(err) {
		s, err := NewStorage(path)
		if err != nil {
			return nil, err
		}
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, err
}

// Load reads the storage file, validates it, and self-heals where
// possible: a broken install UUID is regenerated and malformed recent
// durations are dropped rather than failing the load.
func (s *Storage) Load() error {
	logrus.Debug("Loading storage file from: ", s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &s.Data); err != nil {
		return err
	}

	if err := validate.Struct(s.Data); err != nil {
		changed := false
		if s.Data.InstallUUID == "" || validate.Var(s.Data.InstallUUID, "uuid_rfc4122") != nil {
			s.Data.InstallUUID = uuid.NewString()
			changed = true
		}
		kept := make([]string, 0, len(s.Data.Recents))
		for _, r := range s.Data.Recents {
			if validate.Var(r, "clock_hhmm") != nil {
				logrus.Warnf("Dropping malformed recent duration %q from storage.", r)
				changed = true
				continue
			}
			kept = append(kept, r)
		}
		s.Data.Recents = kept
		if changed {
			if err := s.Save(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Save writes the storage data to the file.
func (s *Storage) Save() error {
	logrus.Debug("Saving storage file to: ", s.Path)
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.Data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.Path, data, 0o600)
}

// AddRecent records a confirmed custom duration, most recent first,
// deduplicated and capped at maxRecents. Callers persist with Save.
func (s *Storage) AddRecent(label string) {
	out := make([]string, 0, maxRecents)
	out = append(out, label)
	for _, r := range s.Data.Recents {
		if r == label {
			continue
		}
		out = append(out, r)
		if len(out) == maxRecents {
			break
		}
	}
	s.Data.Recents = out
}

// ClearRecents drops all recorded durations. Callers persist with Save.
func (s *Storage) ClearRecents() {
	s.Data.Recents = nil
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
