package sessionstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	tokenFile = "auth_token"
	userFile  = "auth_user.json"

	defaultAppDir = "pointagectl"
)

// FileStore implements Store on top of two files in a directory, mirroring
// the two localStorage keys the web portal uses. Files are written with
// owner-only permissions via a temp-file rename so readers never observe a
// partially written entry.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir. An empty dir
// selects the default per-user location (os.UserConfigDir + "pointagectl").
// The directory is created on first Save, not here.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Join(ErrPersist, err)
		}
		dir = filepath.Join(base, defaultAppDir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the session files.
func (s *FileStore) Dir() string { return s.dir }

// Save overwrites both entries.
func (s *FileStore) Save(ctx context.Context, token string, user []byte) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Join(ErrPersist, err)
	}
	if err := writeAtomic(filepath.Join(s.dir, tokenFile), []byte(token)); err != nil {
		return errors.Join(ErrPersist, err)
	}
	if err := writeAtomic(filepath.Join(s.dir, userFile), user); err != nil {
		return errors.Join(ErrPersist, err)
	}
	return nil
}

// Load returns the stored pair. Missing files are reported as empty values.
func (s *FileStore) Load(ctx context.Context) (string, []byte, error) {
	token, err := readOptional(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return "", nil, errors.Join(ErrLoad, err)
	}
	user, err := readOptional(filepath.Join(s.dir, userFile))
	if err != nil {
		return "", nil, errors.Join(ErrLoad, err)
	}
	if len(user) == 0 {
		user = nil
	}
	return strings.TrimSpace(string(token)), user, nil
}

// Clear removes both entries. Absent files are ignored.
func (s *FileStore) Clear(ctx context.Context) error {
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return errors.Join(ErrPersist, err)
		}
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
