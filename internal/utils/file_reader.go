package utils

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

// FileReader reads and parses Go source files, caching results until the
// file on disk changes
type FileReader struct {
	fileSet      *token.FileSet
	astCache     *Cache[string, *ast.File]
	contentCache *Cache[string, string]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		fileSet:      token.NewFileSet(),
		astCache:     NewCache[string, *ast.File](),
		contentCache: NewCache[string, string](),
	}
}

// ParseGoFile parses a Go source file with comments and returns the AST
func (fr *FileReader) ParseGoFile(filePath string) (*ast.File, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return nil, err
	}

	if cached, exists := fr.astCache.GetWithFileValidation(cleanPath, cleanPath); exists {
		return cached, nil
	}

	file, err := parser.ParseFile(fr.fileSet, cleanPath, nil, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go file %s: %w", filepath.Base(cleanPath), err)
	}

	// a stat failure only means the next call parses again
	_ = fr.astCache.SetWithFileInfo(cleanPath, file, cleanPath)

	return file, nil
}

// ParseGoSource parses Go source code held in memory
func (fr *FileReader) ParseGoSource(filename string, source []byte) (*ast.File, error) {
	file, err := parser.ParseFile(fr.fileSet, filename, source, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go source: %w", err)
	}
	return file, nil
}

// ReadFile reads a file and returns its contents as a string with caching
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return "", err
	}

	if cached, exists := fr.contentCache.GetWithFileValidation(cleanPath, cleanPath); exists {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
	}

	contentStr := string(content)
	_ = fr.contentCache.SetWithFileInfo(cleanPath, contentStr, cleanPath)

	return contentStr, nil
}

// FileSet returns the token.FileSet used by this reader
func (fr *FileReader) FileSet() *token.FileSet {
	return fr.fileSet
}

// ClearCache clears all cached files
func (fr *FileReader) ClearCache() {
	fr.astCache.Clear()
	fr.contentCache.Clear()
}

// CacheStats returns the number of cached ASTs and cached file contents
func (fr *FileReader) CacheStats() (astFiles, contentFiles int) {
	return fr.astCache.Size(), fr.contentCache.Size()
}

func (fr *FileReader) validateAndCleanPath(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	cleanPath := filepath.Clean(filePath)

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", cleanPath)
	}

	return cleanPath, nil
}
