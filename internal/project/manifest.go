package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project manifest file looked up at the source root.
const ManifestName = "hat.toml"

// Manifest describes a hat.toml [package] section.
type Manifest struct {
	Name  string
	Root  string
	Entry string
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing in hat.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageRootMissing indicates that [package].root is missing or empty.
	ErrPackageRootMissing = errors.New("missing [package].root")
)

type manifestFile struct {
	Package struct {
		Name  string `toml:"name"`
		Root  string `toml:"root"`
		Entry string `toml:"entry"`
	} `toml:"package"`
}

// LoadManifest parses a hat.toml [package] section.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	root := strings.TrimSpace(cfg.Package.Root)
	if root == "" {
		root = "."
	}
	return Manifest{
		Name:  strings.TrimSpace(cfg.Package.Name),
		Root:  root,
		Entry: strings.TrimSpace(cfg.Package.Entry),
	}, nil
}

// FindManifest walks up from startDir to locate hat.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// SourceRoot resolves the directory holding .hat sources for a project
// starting at startDir. Without a manifest the start directory itself is
// the root.
func SourceRoot(startDir string) (string, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil {
		return "", err
	}
	if !ok {
		if startDir == "" {
			startDir = "."
		}
		return filepath.Abs(startDir)
	}
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return "", err
	}
	projectDir := filepath.Dir(manifestPath)
	root := filepath.Clean(filepath.FromSlash(m.Root))
	if filepath.IsAbs(root) {
		return "", fmt.Errorf("%s: invalid [package].root %q: must be relative", manifestPath, m.Root)
	}
	rootPath := filepath.Join(projectDir, root)
	if !pathWithin(projectDir, rootPath) {
		return "", fmt.Errorf("%s: invalid [package].root %q: escapes project root", manifestPath, m.Root)
	}
	return rootPath, nil
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
