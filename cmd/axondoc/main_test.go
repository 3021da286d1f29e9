package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

const handlerFile = `package api

import "github.com/labstack/echo/v4"

// Search products.
// @queryParam q string Search text
// @queryParam {int} limit Page size (optional). Example: 20
//axon::route GET /products
func Search(c echo.Context) error {
	return nil
}
`

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/catalog\n\ngo 1.22\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "api"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "api", "search.go"), []byte(handlerFile), 0o644))
	return root
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-help"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "Usage:")
	assert.Contains(t, stderr.String(), "-format")
	assert.Contains(t, stderr.String(), "directory-paths")
}

func TestRun_NoArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "At least one directory path is required")
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-nope"}, &stdout, &stderr))
}

func TestRun_BadFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-format", "xml", writeProject(t)}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "expected yaml or json, got xml")
}

func TestRun_YAMLToStdout(t *testing.T) {
	root := writeProject(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-quiet", root + "/..."}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	info := doc["info"].(map[string]interface{})
	assert.Equal(t, "example.com/catalog", info["title"])
	assert.Empty(t, stderr.String())
}

func TestRun_JSONToFile(t *testing.T) {
	root := writeProject(t)
	output := filepath.Join(t.TempDir(), "openapi.json")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-format", "json", "-output", output, "-title", "Catalog", filepath.Join(root, "api")}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Routes documented: 1")

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var doc struct {
		Info  struct{ Title string }
		Paths map[string]map[string]struct {
			OperationID string `json:"operationId"`
			Parameters  []struct {
				Name     string
				Required bool
				Example  interface{}
			}
		}
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Catalog", doc.Info.Title)

	op := doc.Paths["/products"]["get"]
	assert.Equal(t, "api.Search", op.OperationID)
	require.Len(t, op.Parameters, 2)
	assert.Equal(t, "q", op.Parameters[0].Name)
	assert.True(t, op.Parameters[0].Required)
	assert.Equal(t, "limit", op.Parameters[1].Name)
	assert.False(t, op.Parameters[1].Required)
	assert.Equal(t, float64(20), op.Parameters[1].Example)
}

func TestRun_MissingDirectory(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{filepath.Join(t.TempDir(), "missing")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Documentation failed")
}
