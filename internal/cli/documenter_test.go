package cli

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/axondoc/internal/errors"
	"github.com/toyz/axondoc/internal/utils"
)

const userHandlers = `package handlers

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type UserHandler struct{}

// List users with paging.
// @queryParam sort string Sort order (optional)
// @queryParam email Filter by email. Example: a@b.io
//axon::route GET /users
func (h *UserHandler) List(c echo.Context, db *gorm.DB, page int, limit *int) error {
	return nil
}

//axon::route GET /users/{id:int}
func (h *UserHandler) Get(c echo.Context, id int, fields string) error {
	return nil
}

//axon::route GET /users
func (h *UserHandler) ListAgain(c echo.Context) error {
	return nil
}

func helper(page int) {}
`

func writeModule(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":                 "module example.com/shop\n\ngo 1.22\n",
		"handlers/users.go":      userHandlers,
		"handlers/users_test.go": "package handlers\n\n//axon::route GET /test\nfunc TestOnly(q string) {}\n",
	})
	return root
}

func TestDocumenter_Run(t *testing.T) {
	root := writeModule(t)

	var out, errOut bytes.Buffer
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	diagnostics.SetOutput(&out, &errOut)

	documenter := NewDocumenter(diagnostics)
	doc, err := documenter.Run(Config{
		Directories: []string{root + "/..."},
		Resources:   []string{"gorm.DB"},
		Version:     "1.2.0",
	})
	require.NoError(t, err)

	assert.Equal(t, "example.com/shop", doc.Info.Title)
	assert.Equal(t, "1.2.0", doc.Info.Version)
	require.Len(t, doc.Paths, 2)

	list := doc.Paths["/users"].Get
	require.NotNil(t, list)
	assert.Equal(t, "handlers.UserHandler.List", list.OperationID)
	assert.Equal(t, "List users with paging.", list.Summary)

	names := make([]string, len(list.Parameters))
	for i, param := range list.Parameters {
		names[i] = param.Name
	}
	assert.Equal(t, []string{"page", "limit", "sort", "email"}, names)
	assert.True(t, list.Parameters[0].Required)
	assert.False(t, list.Parameters[1].Required)
	assert.Equal(t, "a@b.io", list.Parameters[3].Example)

	get := doc.Paths["/users/{id}"].Get
	require.NotNil(t, get)
	require.Len(t, get.Parameters, 2)
	assert.Equal(t, "id", get.Parameters[0].Name)
	assert.Equal(t, "path", get.Parameters[0].In)
	assert.Equal(t, "fields", get.Parameters[1].Name)
	assert.Equal(t, "query", get.Parameters[1].In)

	summary := documenter.GetSummary()
	assert.Equal(t, 1, summary.PackagesScanned)
	assert.Equal(t, 2, summary.RoutesDocumented)
	assert.Equal(t, 5, summary.QueryParameters)
	assert.Equal(t, []string{"handlers.UserHandler.ListAgain"}, summary.SkippedRoutes)

	assert.Contains(t, errOut.String(), "[WARN] skipping handlers.UserHandler.ListAgain")
	assert.Contains(t, out.String(), "Scanning:")
}

func TestDocumenter_ResourceNotRegistered(t *testing.T) {
	root := writeModule(t)

	doc, err := NewDocumenter(nil).Run(Config{
		Directories: []string{filepath.Join(root, "handlers")},
		Title:       "Shop",
	})
	require.NoError(t, err)
	assert.Equal(t, "Shop", doc.Info.Title)

	// *gorm.DB is neither scalar nor tagged, so it stays out either way
	params := doc.Paths["/users"].Get.Parameters
	for _, param := range params {
		assert.NotEqual(t, "db", param.Name)
	}
}

func TestDocumenter_Errors(t *testing.T) {
	_, err := NewDocumenter(nil).Run(Config{Directories: []string{filepath.Join(t.TempDir(), "missing")}})
	require.Error(t, err)
	assert.Equal(t, errors.FileSystemErrorCode, errors.GetCode(err))

	root := t.TempDir()
	writeTree(t, root, map[string]string{"broken.go": "package broken\nfunc ("})
	_, err = NewDocumenter(nil).Run(Config{Directories: []string{root}, Title: "Broken"})
	require.Error(t, err)
	assert.Equal(t, errors.SyntaxErrorCode, errors.GetCode(err))

	_, err = NewDocumenter(nil).Run(Config{Directories: []string{root}, Resources: []string{""}, Title: "x"})
	assert.Error(t, err)
}

func TestDocumenter_TitleWithoutGoMod(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"inventory/items.go": "package inventory\n\n//axon::route GET /items\nfunc List(page int) error { return nil }\n",
	})

	var out, errOut bytes.Buffer
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticWarn)
	diagnostics.SetOutput(&out, &errOut)

	doc, err := NewDocumenter(diagnostics).Run(Config{Directories: []string{filepath.Join(root, "inventory")}})
	require.NoError(t, err)

	assert.Equal(t, "inventory", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/items")
	assert.Contains(t, errOut.String(), `[WARN] no go.mod found`)
	assert.Contains(t, errOut.String(), `using "inventory" as the title`)
}

func TestModuleResolver(t *testing.T) {
	root := writeModule(t)
	resolver := NewModuleResolver(nil)

	name, err := resolver.ResolveModuleName("", filepath.Join(root, "handlers"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/shop", name)

	name, err = resolver.ResolveModuleName("custom/module", root)
	require.NoError(t, err)
	assert.Equal(t, "custom/module", name)
}

func TestSplitPattern(t *testing.T) {
	tests := []struct {
		arg, dir, pattern string
	}{
		{"./...", ".", "./..."},
		{"...", ".", "./..."},
		{"/src/app/...", "/src/app", "./..."},
		{"./internal/api", "./internal/api", "."},
	}

	for _, tt := range tests {
		dir, pattern := splitPattern(tt.arg)
		assert.Equal(t, tt.dir, dir, tt.arg)
		assert.Equal(t, tt.pattern, pattern, tt.arg)
	}
}

func TestDocumenter_LoadPackages(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not available")
	}

	const search = "package api\n\n// @queryParam q string Search text\n//axon::route GET /search\nfunc Search(page int) error { return nil }\n"
	const ignored = "//go:build ignore\n\npackage api\n\n//axon::route GET /ignored\nfunc Ignored(page int) error { return nil }\n"

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":               "module example.com/plain\n\ngo 1.22\n",
		"api/search.go":        search,
		"api/ignored_other.go": ignored,
	})

	documenter := NewDocumenter(nil)
	doc, err := documenter.Run(Config{Directories: []string{root + "/..."}, LoadPackages: true})
	require.NoError(t, err)

	assert.Equal(t, "example.com/plain", doc.Info.Title)
	assert.Equal(t, 1, documenter.GetSummary().PackagesScanned)
	require.Contains(t, doc.Paths, "/search")
	assert.NotContains(t, doc.Paths, "/ignored")
	assert.Len(t, doc.Paths["/search"].Get.Parameters, 2)
}
