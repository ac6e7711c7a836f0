// Package profiles loads YAML setting bundles from the profiles directory and
// applies them to the interpreter. Default profiles ship embedded and are
// written to disk on first use or on reset.
package profiles

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/interpreter/pkg/agent"
	oierrors "github.com/odvcencio/interpreter/pkg/errors"
	"github.com/odvcencio/interpreter/pkg/paths"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultProfile is applied when no profile or mode is selected.
const DefaultProfile = "default.yaml"

// Store resolves and applies profiles under a directory.
type Store struct {
	dir string
}

// NewStore returns a store over dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the profiles directory.
func (s *Store) Dir() string { return s.dir }

// DefaultNames lists the embedded default profiles.
func DefaultNames() []string {
	entries, err := fs.ReadDir(defaultsFS, "defaults")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func defaultContent(name string) ([]byte, bool) {
	data, err := defaultsFS.ReadFile("defaults/" + name)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Apply loads nameOrPath and writes its settings onto interp.
func (s *Store) Apply(interp *agent.Interpreter, nameOrPath string) error {
	p, path, err := s.Load(nameOrPath)
	if err != nil {
		return err
	}
	if err := p.ApplyTo(interp); err != nil {
		return oierrors.Wrap(err, oierrors.ErrCodeProfileLoad, "applying profile").
			WithContext("path", path)
	}
	return nil
}

// Load resolves and parses a profile, returning it with its path.
func (s *Store) Load(nameOrPath string) (*Profile, string, error) {
	path, err := s.Resolve(nameOrPath)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, oierrors.Wrap(err, oierrors.ErrCodeProfileLoad, "reading profile").
			WithContext("path", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, path, oierrors.Wrap(err, oierrors.ErrCodeProfileLoad, "parsing profile").
			WithContext("path", path).
			WithRemediation("fix the file or run --reset_profile " + filepath.Base(path))
	}
	return p, path, nil
}

// Resolve maps a profile reference to a file. Paths are used as given;
// bare names are looked up in the profiles directory with or without a
// .yaml/.yml extension. A missing default profile is written from the
// embedded copy first.
func (s *Store) Resolve(nameOrPath string) (string, error) {
	ref := strings.TrimSpace(nameOrPath)
	if ref == "" {
		ref = DefaultProfile
	}

	if isPath(ref) {
		path, err := paths.ExpandHome(ref)
		if err != nil {
			return "", oierrors.Wrap(err, oierrors.ErrCodeProfileLoad, "resolving profile path")
		}
		if _, err := os.Stat(path); err != nil {
			return "", notFound(ref, err)
		}
		return path, nil
	}

	for _, candidate := range candidates(ref) {
		path := filepath.Join(s.dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	for _, candidate := range candidates(ref) {
		if _, ok := defaultContent(candidate); ok {
			if err := s.Reset(candidate); err != nil {
				return "", err
			}
			return filepath.Join(s.dir, candidate), nil
		}
	}
	return "", notFound(ref, os.ErrNotExist)
}

func isPath(ref string) bool {
	return filepath.IsAbs(ref) || strings.ContainsRune(ref, '/') ||
		strings.ContainsRune(ref, filepath.Separator) || strings.HasPrefix(ref, "~")
}

func candidates(name string) []string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return []string{name}
	}
	return []string{name, name + ".yaml", name + ".yml"}
}

func notFound(ref string, err error) error {
	return oierrors.Wrap(err, oierrors.ErrCodeProfileLoad, "profile not found").
		WithContext("profile", ref).
		WithUserMessage(fmt.Sprintf("Profile `%s` not found.", ref)).
		WithRemediation("run --profiles to open the profiles directory")
}

// Reset rewrites one default profile from its embedded copy.
func (s *Store) Reset(name string) error {
	name = strings.TrimSpace(name)
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	data, ok := defaultContent(name)
	if !ok {
		return oierrors.Newf(oierrors.ErrCodeProfileReset, "no default profile named %q", name).
			WithRemediation("default profiles: " + strings.Join(DefaultNames(), ", "))
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return oierrors.Wrap(err, oierrors.ErrCodeProfileReset, "creating profiles directory")
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return oierrors.Wrap(err, oierrors.ErrCodeProfileReset, "writing profile").
			WithContext("profile", name)
	}
	return nil
}

// ResetAll rewrites every default profile.
func (s *Store) ResetAll() error {
	var errs []error
	for _, name := range DefaultNames() {
		if err := s.Reset(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
