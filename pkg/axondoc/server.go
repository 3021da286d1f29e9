package axondoc

import (
	"context"
	"strings"
)

const (
	// JSONFile and YAMLFile are the file names a document is served under
	JSONFile = "openapi.json"
	YAMLFile = "openapi.yaml"

	JSONContentType = "application/json; charset=utf-8"
	YAMLContentType = "application/yaml; charset=utf-8"
)

// DocumentServer defines the contract for web servers that publish a document
type DocumentServer interface {
	// Mount serves doc at <prefix>/openapi.json and <prefix>/openapi.yaml
	Mount(prefix string, doc *Document) error

	// Server lifecycle
	Start(addr string) error
	Stop(ctx context.Context) error

	// Name returns the framework name
	Name() string
}

// Rendered holds a document rendered in both served formats
type Rendered struct {
	JSON []byte
	YAML []byte
}

// Prerender renders doc once so handlers only copy bytes
func Prerender(doc *Document) (*Rendered, error) {
	jsonData, err := doc.JSON()
	if err != nil {
		return nil, err
	}
	yamlData, err := doc.YAML()
	if err != nil {
		return nil, err
	}
	return &Rendered{JSON: jsonData, YAML: yamlData}, nil
}

// MountPaths returns the JSON and YAML paths for a mount prefix
func MountPaths(prefix string) (jsonPath, yamlPath string) {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		prefix = ""
	}
	return prefix + "/" + JSONFile, prefix + "/" + YAMLFile
}
