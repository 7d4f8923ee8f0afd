package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tycho-core/console-app/pkg/logging"
)

// defaultRootDir is the directory under home holding vendor directories.
const defaultRootDir = ".config"

// fileDocument is the on-disk layout of one namespace.
type fileDocument struct {
	Entries map[string]string `yaml:"entries,omitempty"`
}

// FileStore keeps each namespace in <root>/<vendor>/<app>.yaml.
type FileStore struct {
	mu   sync.RWMutex
	root string
}

// NewFileStore creates a FileStore rooted at ~/.config.
func NewFileStore() (*FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine home directory: %w", err)
	}
	return NewFileStoreWithRoot(filepath.Join(homeDir, defaultRootDir)), nil
}

// NewFileStoreWithRoot creates a FileStore rooted at root.
func NewFileStoreWithRoot(root string) *FileStore {
	return &FileStore{root: root}
}

// Path returns the file backing ns.
func (s *FileStore) Path(ns Namespace) string {
	return filepath.Join(s.root, ns.Vendor, ns.App+".yaml")
}

func (s *FileStore) Enumerate(ctx context.Context, ns Namespace) ([]Entry, error) {
	if err := ns.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists, err := s.loadLocked(ns)
	if err != nil {
		return nil, err
	}
	if !exists {
		logging.Debug("Store", "creating empty namespace %s at %s", ns, s.Path(ns))
		if err := s.saveLocked(ns, doc); err != nil {
			return nil, err
		}
	}

	return entriesFromMap(doc.Entries), nil
}

func (s *FileStore) Get(ctx context.Context, ns Namespace, name string) (string, bool, error) {
	if err := ns.Validate(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, _, err := s.loadLocked(ns)
	if err != nil {
		return "", false, err
	}
	value, ok := doc.Entries[name]
	return value, ok, nil
}

func (s *FileStore) Set(ctx context.Context, ns Namespace, name, value string) error {
	if err := ns.Validate(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _, err := s.loadLocked(ns)
	if err != nil {
		return err
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]string)
	}
	doc.Entries[name] = value
	return s.saveLocked(ns, doc)
}

func (s *FileStore) Unset(ctx context.Context, ns Namespace, name string) (bool, error) {
	if err := ns.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists, err := s.loadLocked(ns)
	if err != nil || !exists {
		return false, err
	}
	if _, ok := doc.Entries[name]; !ok {
		return false, nil
	}
	delete(doc.Entries, name)
	return true, s.saveLocked(ns, doc)
}

// loadLocked reads the namespace file. A missing file yields an empty
// document and exists=false.
func (s *FileStore) loadLocked(ns Namespace) (*fileDocument, bool, error) {
	data, err := os.ReadFile(s.Path(ns))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &fileDocument{}, false, nil
		}
		return nil, false, fmt.Errorf("failed to read store file: %w", err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, true, fmt.Errorf("failed to parse store file %s: %w", s.Path(ns), err)
	}
	return &doc, true, nil
}

func (s *FileStore) saveLocked(ns Namespace, doc *fileDocument) error {
	path := s.Path(ns)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal store file: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}
