package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const defaultPath = "sheet.json"

// Store keeps every sheet value in one JSON object file, rewritten on each change.
type Store struct {
	filename string
	mu       sync.Mutex
}

// NewStore returns a store backed by filename. The file is created with an empty
// object if it does not exist yet.
func NewStore(filename string) (*Store, error) {
	if strings.TrimSpace(filename) == "" {
		filename = defaultPath
	}

	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		if dir := filepath.Dir(filename); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(filename, []byte("{}"), 0o644); err != nil {
			return nil, fmt.Errorf("create %s: %w", filename, err)
		}
	} else if err != nil {
		return nil, err
	}

	return &Store{filename: filename}, nil
}

func (s *Store) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *Store) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.filename, err)
	}
	values := make(map[string]string)
	if len(strings.TrimSpace(string(data))) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.filename, err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

// write replaces the file through a temporary sibling so a crash never leaves a
// half-written object behind.
func (s *Store) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.filename); err != nil {
		return fmt.Errorf("replace %s: %w", s.filename, err)
	}
	return nil
}
