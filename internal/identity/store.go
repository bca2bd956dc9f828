package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/sjson"
)

// Store persists the identity across restarts.
type Store interface {
	Load() (Identity, error)
	Save(Identity) error
	Clear() error
}

// identityFile is the on-disk shape. Field names match the server's wire
// vocabulary so the file reads the same as a login response.
type identityFile struct {
	SessionToken string `json:"session_token"`
	Username     string `json:"username"`
}

// FileStore keeps the identity in a JSON file. Writes are surgical: only
// the two identity keys are touched, so any other keys a future version
// adds to the file survive.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted identity. A missing file is not an error; it
// means nobody is logged in.
func (s *FileStore) Load() (Identity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Identity{}, nil
		}
		return Identity{}, fmt.Errorf("reading identity file: %w", err)
	}

	var f identityFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Identity{}, fmt.Errorf("parsing identity file: %w", err)
	}

	return Identity{Token: f.SessionToken, Username: f.Username}, nil
}

// Save writes the identity, creating the file and its directory if needed.
func (s *FileStore) Save(id Identity) error {
	data, err := s.read()
	if err != nil {
		return err
	}

	data, err = sjson.SetBytes(data, "session_token", id.Token)
	if err != nil {
		return fmt.Errorf("setting session_token: %w", err)
	}
	data, err = sjson.SetBytes(data, "username", id.Username)
	if err != nil {
		return fmt.Errorf("setting username: %w", err)
	}

	return s.write(data)
}

// Clear removes the identity keys from the file. The file itself is kept so
// unrelated keys survive a logout.
func (s *FileStore) Clear() error {
	data, err := s.read()
	if err != nil {
		return err
	}

	data, err = sjson.DeleteBytes(data, "session_token")
	if err != nil {
		return fmt.Errorf("deleting session_token: %w", err)
	}
	data, err = sjson.DeleteBytes(data, "username")
	if err != nil {
		return fmt.Errorf("deleting username: %w", err)
	}

	return s.write(data)
}

func (s *FileStore) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []byte("{}"), nil
		}
		return nil, fmt.Errorf("reading identity file: %w", err)
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	return data, nil
}

func (s *FileStore) write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating identity directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing identity file: %w", err)
	}
	return nil
}
