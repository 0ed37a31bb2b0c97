// Package contexts stores named treeport server endpoints for treeportctl.
package contexts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const (
	// DefaultConfigDir is the directory under $XDG_CONFIG_HOME.
	DefaultConfigDir = "treeportctl"
	// ConfigFileName is the name of the contexts file.
	ConfigFileName = "config.json"

	filePermissions = 0o600
	dirPermissions  = 0o700
)

var (
	// ErrNoCurrentContext indicates no context is selected.
	ErrNoCurrentContext = errors.New("no current context set")
	// ErrContextNotFound indicates the named context does not exist.
	ErrContextNotFound = errors.New("context not found")
)

// Context is one named server.
type Context struct {
	ServerURL string `json:"server_url"`
}

// Preferences hold per-user output defaults.
type Preferences struct {
	DefaultOutput string `json:"default_output,omitempty"` // table, json, yaml
	Color         string `json:"color,omitempty"`          // auto, always, never
}

// Config is the on-disk layout of the contexts file.
type Config struct {
	CurrentContext string              `json:"current_context"`
	Contexts       map[string]*Context `json:"contexts"`
	Preferences    Preferences         `json:"preferences,omitempty"`
}

// Store reads and writes the contexts file.
type Store struct {
	fs         afero.Fs
	configPath string
	config     *Config
}

// NewStore opens the contexts file at its default location on disk.
func NewStore() (*Store, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(afero.NewOsFs(), configPath)
}

// NewStoreAt opens the contexts file at path on fs. A missing file yields
// an empty store; it is created on the first write.
func NewStoreAt(fs afero.Fs, path string) (*Store, error) {
	store := &Store{fs: fs, configPath: path}

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		store.config = &Config{}
		if err := json.Unmarshal(data, store.config); err != nil {
			return nil, fmt.Errorf("invalid contexts file %s: %w", path, err)
		}
		if store.config.Contexts == nil {
			store.config.Contexts = make(map[string]*Context)
		}
	case os.IsNotExist(err):
		store.config = &Config{Contexts: make(map[string]*Context)}
	default:
		return nil, err
	}

	return store, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/treeportctl/config.json, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, DefaultConfigDir, ConfigFileName), nil
}

func (s *Store) save() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.configPath), dirPermissions); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, s.configPath, data, filePermissions)
}

// Current returns the selected context.
func (s *Store) Current() (*Context, error) {
	if s.config.CurrentContext == "" {
		return nil, ErrNoCurrentContext
	}
	return s.Get(s.config.CurrentContext)
}

// CurrentName returns the selected context name, or "".
func (s *Store) CurrentName() string {
	return s.config.CurrentContext
}

func (s *Store) Get(name string) (*Context, error) {
	ctx, ok := s.config.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContextNotFound, name)
	}
	return ctx, nil
}

// Names returns all context names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.config.Contexts))
	for name := range s.config.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set creates or replaces a context. The first context added becomes current.
func (s *Store) Set(name, serverURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("context name cannot be empty")
	}
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if serverURL == "" {
		return errors.New("server URL cannot be empty")
	}

	s.config.Contexts[name] = &Context{ServerURL: serverURL}
	if s.config.CurrentContext == "" {
		s.config.CurrentContext = name
	}
	return s.save()
}

// Use selects an existing context.
func (s *Store) Use(name string) error {
	if _, err := s.Get(name); err != nil {
		return err
	}
	s.config.CurrentContext = name
	return s.save()
}

// Rename renames a context, keeping it current if it was.
func (s *Store) Rename(oldName, newName string) error {
	ctx, err := s.Get(oldName)
	if err != nil {
		return err
	}
	if _, exists := s.config.Contexts[newName]; exists {
		return fmt.Errorf("context %q already exists", newName)
	}

	delete(s.config.Contexts, oldName)
	s.config.Contexts[newName] = ctx
	if s.config.CurrentContext == oldName {
		s.config.CurrentContext = newName
	}
	return s.save()
}

// Delete removes a context. Deleting the current context leaves none selected.
func (s *Store) Delete(name string) error {
	if _, err := s.Get(name); err != nil {
		return err
	}

	delete(s.config.Contexts, name)
	if s.config.CurrentContext == name {
		s.config.CurrentContext = ""
	}
	return s.save()
}

func (s *Store) Preferences() Preferences {
	return s.config.Preferences
}

func (s *Store) SetPreferences(prefs Preferences) error {
	s.config.Preferences = prefs
	return s.save()
}

// Path returns the location of the contexts file.
func (s *Store) Path() string {
	return s.configPath
}
