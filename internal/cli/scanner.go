package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/toyz/axondoc/internal/errors"
)

const recursiveSuffix = "/..."

// DirectoryScanner resolves directory arguments to the package directories
// that hold Go files
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories returns the absolute package directories named by rootDirs.
// A "dir/..." pattern includes every nested package; a plain directory names
// only itself. The result is sorted and free of duplicates.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	visited := make(map[string]bool)
	var packageDirs []string

	for _, rootDir := range rootDirs {
		recursive := false
		if rootDir == "..." || strings.HasSuffix(rootDir, recursiveSuffix) {
			recursive = true
			rootDir = strings.TrimSuffix(strings.TrimSuffix(rootDir, "..."), "/")
			if rootDir == "" {
				rootDir = "."
			}
		}

		absDir, err := filepath.Abs(rootDir)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve", rootDir, err)
		}

		info, err := os.Stat(absDir)
		if err != nil {
			return nil, errors.WrapFileSystemError("scan", rootDir, err)
		}
		if !info.IsDir() {
			return nil, errors.New(errors.FileSystemErrorCode, "not a directory: "+rootDir).
				WithContext("path", rootDir)
		}

		dirs, err := s.scan(absDir, recursive, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, dirs...)
	}

	slices.Sort(packageDirs)
	return packageDirs, nil
}

func (s *DirectoryScanner) scan(dir string, recursive bool, visited map[string]bool) ([]string, error) {
	if visited[dir] {
		return nil, nil
	}
	visited[dir] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", dir, err)
	}

	var packageDirs []string
	if hasGoFiles(entries) {
		packageDirs = append(packageDirs, dir)
	}
	if !recursive {
		return packageDirs, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() || skipDirectory(entry.Name()) {
			continue
		}
		subDirs, err := s.scan(filepath.Join(dir, entry.Name()), true, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, subDirs...)
	}

	return packageDirs, nil
}

// skipDirectory reports whether the go tool would ignore a directory
func skipDirectory(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func hasGoFiles(entries []os.DirEntry) bool {
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			return true
		}
	}
	return false
}
