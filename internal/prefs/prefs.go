// Package prefs persists the passenger's details between runs so the booking
// and trips screens can prefill them.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const DefaultLanguage = "en"

type Preferences struct {
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone"`
	Language string `yaml:"language"`
}

func Defaults() Preferences {
	return Preferences{Language: DefaultLanguage}
}

// Store reads and writes Preferences in a YAML file.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns the stored preferences. A missing file yields Defaults.
func (s *Store) Load() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// UpdateNameAndPhone stores the contact details used for the last booking.
func (s *Store) UpdateNameAndPhone(name, phone string) (Preferences, error) {
	return s.update(func(p *Preferences) {
		p.Name = strings.TrimSpace(name)
		p.Phone = strings.TrimSpace(phone)
	})
}

func (s *Store) UpdateLanguage(code string) (Preferences, error) {
	return s.update(func(p *Preferences) {
		p.Language = strings.ToLower(strings.TrimSpace(code))
	})
}

func (s *Store) update(fn func(p *Preferences)) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.loadLocked()
	if err != nil {
		return Preferences{}, err
	}
	fn(&p)
	if p.Language == "" {
		p.Language = DefaultLanguage
	}
	if err := s.writeLocked(p); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

func (s *Store) loadLocked() (Preferences, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("read preferences: %w", err)
	}

	p := Defaults()
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Preferences{}, fmt.Errorf("parse preferences %s: %w", s.path, err)
	}
	if strings.TrimSpace(p.Language) == "" {
		p.Language = DefaultLanguage
	}
	return p, nil
}

// writeLocked replaces the file through a temp file in the same directory so
// a crash never leaves half a document behind.
func (s *Store) writeLocked(p Preferences) error {
	out, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".preferences-*.yaml")
	if err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
