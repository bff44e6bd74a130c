package project

import (
	"os"
	"path/filepath"
	"testing"

	"hatc/internal/diag"
	"hatc/internal/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDiscoverSortedModulePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "zeta.hat"), "const z : u32 = 1")
	writeFile(t, filepath.Join(root, "colors", "rgb.hat"), "type rgb { r:u32 }")
	writeFile(t, filepath.Join(root, "colors", "hsv.hat"), "type hsv { h:u32 }")
	writeFile(t, filepath.Join(root, "README.md"), "not a source file")

	fset := source.NewFileSet()
	bag := diag.NewBag(16)
	files, ok := Discover(root, fset, diag.BagReporter{Bag: bag})
	if !ok || bag.HasErrors() {
		t.Fatalf("discover failed: %v", bag.Items())
	}
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	want := [][]string{
		{"colors", "hsv"},
		{"colors", "rgb"},
		{"zeta"},
	}
	for i, f := range files {
		got := f.Path
		if len(got) != len(want[i]) {
			t.Fatalf("file %d path = %v, want %v", i, got, want[i])
		}
		for j := range got {
			if got[j] != want[i][j] {
				t.Fatalf("file %d path = %v, want %v", i, got, want[i])
			}
		}
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	fset := source.NewFileSet()
	bag := diag.NewBag(16)
	_, ok := Discover(filepath.Join(t.TempDir(), "nope"), fset, diag.BagReporter{Bag: bag})
	if ok {
		t.Fatalf("expected failure for missing root")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SourceNotFound {
		t.Fatalf("expected SourceNotFound, got %v", bag.Items())
	}
}

func TestDiscoverInvalidSegmentSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.hat"), "const a : u32 = 1")
	writeFile(t, filepath.Join(root, "bad_name.hat"), "const b : u32 = 2")

	fset := source.NewFileSet()
	bag := diag.NewBag(16)
	files, ok := Discover(root, fset, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("discover failed entirely: %v", bag.Items())
	}
	if len(files) != 1 || files[0].Path[0] != "good" {
		t.Fatalf("files = %+v", files)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.UnreadableFile {
		t.Fatalf("expected UnreadableFile for bad_name.hat, got %v", bag.Items())
	}
}

func TestDiscoverUnreadableFileSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alpha.hat"), "const a : u32 = 1")
	writeFile(t, filepath.Join(root, "locked.hat"), "const b : u32 = 2")
	writeFile(t, filepath.Join(root, "omega.hat"), "const c : u32 = 3")
	if err := os.Chmod(filepath.Join(root, "locked.hat"), 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	fset := source.NewFileSet()
	bag := diag.NewBag(16)
	files, ok := Discover(root, fset, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("discover failed entirely: %v", bag.Items())
	}
	if len(files) != 2 {
		t.Fatalf("files = %+v, want the two readable modules", files)
	}
	if files[0].Path[0] != "alpha" || files[1].Path[0] != "omega" {
		t.Fatalf("files = %+v", files)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.UnreadableFile {
		t.Fatalf("expected one UnreadableFile for locked.hat, got %v", bag.Items())
	}
}

func TestManifestSourceRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hat.toml"), "[package]\nname = \"demo\"\nroot = \"src\"\n")
	writeFile(t, filepath.Join(dir, "src", "app.hat"), "main { }")

	root, err := SourceRoot(filepath.Join(dir, "src"))
	if err != nil {
		t.Fatalf("SourceRoot: %v", err)
	}
	if root != filepath.Join(dir, "src") {
		t.Fatalf("root = %q, want %q", root, filepath.Join(dir, "src"))
	}
}

func TestManifestMissingPackage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hat.toml"), "[build]\njobs = 4\n")
	if _, err := LoadManifest(filepath.Join(dir, "hat.toml")); err == nil {
		t.Fatalf("expected error for manifest without [package]")
	}
}
