package parser

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/axondoc/internal/errors"
	"github.com/toyz/axondoc/internal/models"
)

const handlerSource = `package handlers

import (
	"context"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{}

// List returns users.
// @queryParam sort string Sort order (optional)
//axon::route GET /users
func (h *UserHandler) List(c echo.Context, page int, sort *string, tags ...string) error {
	return nil
}

//axon::route get /users/{id:int} -Middleware=Auth
func (h UserHandler) Get(c echo.Context, id int) error {
	return nil
}

func Search(ctx context.Context, q string, _ int, limit int) error {
	return nil
}

type Repo[T any] struct{}

func (r *Repo[T]) List(filter map[string]string, fn func(int) error) {}
`

func parseFixture(t *testing.T) *Parser {
	t.Helper()
	p := NewParser()
	_, err := p.ParseSource("handlers.go", handlerSource)
	require.NoError(t, err)
	return p
}

func paramNames(params []models.ParameterDescriptor) []string {
	names := make([]string, len(params))
	for i, param := range params {
		names[i] = param.Name
	}
	return names
}

func TestParser_ParseSource(t *testing.T) {
	p := NewParser()
	callables, err := p.ParseSource("handlers.go", handlerSource)
	require.NoError(t, err)
	require.Len(t, callables, 4)

	list := callables[0]
	assert.Equal(t, "List", list.Name)
	assert.Equal(t, "UserHandler", list.Receiver)
	assert.Equal(t, "handlers", list.Package)
	assert.Equal(t, "UserHandler.List", list.QualifiedName())
	assert.Equal(t, "handlers.go", list.File)
	assert.Equal(t, 14, list.Line)
	assert.Contains(t, list.Doc, "@queryParam sort string Sort order (optional)")

	assert.Equal(t, []string{"c", "page", "sort", "tags"}, paramNames(list.Parameters))
	assert.Equal(t, models.TypeToken("echo.Context"), list.Parameters[0].DeclaredType)
	assert.Equal(t, models.TypeToken("*string"), list.Parameters[2].DeclaredType)
	assert.True(t, list.Parameters[2].Optional)
	assert.Equal(t, models.TypeToken("[]string"), list.Parameters[3].DeclaredType)
	assert.True(t, list.Parameters[3].Optional)
	assert.False(t, list.Parameters[1].Optional)
	for _, param := range list.Parameters {
		assert.Equal(t, models.OriginSignature, param.Origin)
	}
}

func TestParser_SkipsBlankParameters(t *testing.T) {
	p := parseFixture(t)

	search, err := p.Lookup("Search")
	require.NoError(t, err)
	assert.Equal(t, "", search.Receiver)
	assert.Equal(t, []string{"ctx", "q", "limit"}, paramNames(search.Parameters))
}

func TestParser_RouteAnnotations(t *testing.T) {
	p := parseFixture(t)

	routes := p.Routes()
	require.Len(t, routes, 2)

	assert.Equal(t, "UserHandler.List", routes[0].QualifiedName())
	assert.Equal(t, &models.RouteInfo{Method: "GET", Path: "/users"}, routes[0].Route)

	assert.Equal(t, "UserHandler.Get", routes[1].QualifiedName())
	assert.Equal(t, &models.RouteInfo{Method: "GET", Path: "/users/{id:int}"}, routes[1].Route)
}

func TestParser_Lookup(t *testing.T) {
	p := parseFixture(t)

	tests := []struct {
		target   string
		expected string
	}{
		{"UserHandler.List", "UserHandler.List"},
		{"handlers.UserHandler.Get", "UserHandler.Get"},
		{"handlers.Search", "Search"},
		{"  Search ", "Search"},
		{"Get", "UserHandler.Get"},
		{"Repo.List", "Repo.List"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			callable, err := p.Lookup(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, callable.QualifiedName())
		})
	}
}

func TestParser_LookupErrors(t *testing.T) {
	p := parseFixture(t)

	_, err := p.Lookup("Missing")
	require.Error(t, err)
	assert.True(t, errors.IsResolution(err))

	_, err = p.Lookup("List")
	require.Error(t, err)
	var resolution *errors.ResolutionError
	require.True(t, errors.As(err, &resolution))
	assert.Equal(t, []string{"handlers.Repo.List", "handlers.UserHandler.List"}, resolution.Candidates)
}

func TestParser_TypeStrings(t *testing.T) {
	p := parseFixture(t)

	list, err := p.Lookup("Repo.List")
	require.NoError(t, err)
	assert.Equal(t, "Repo", list.Receiver)
	require.Len(t, list.Parameters, 2)
	assert.Equal(t, models.TypeToken("map[string]string"), list.Parameters[0].DeclaredType)
	assert.Equal(t, models.TypeToken("func(int) error"), list.Parameters[1].DeclaredType)
}

func TestParser_ParseSourceSyntaxError(t *testing.T) {
	p := NewParser()
	_, err := p.ParseSource("broken.go", "package broken\nfunc (")
	require.Error(t, err)
	assert.Equal(t, errors.SyntaxErrorCode, errors.GetCode(err))
}

func TestParser_ReindexingIsStable(t *testing.T) {
	p := parseFixture(t)

	again, err := p.ParseSource("handlers.go", handlerSource)
	require.NoError(t, err)
	assert.Len(t, again, 4)
	assert.Len(t, p.Callables(), 4)
}

func TestParser_ParseDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte(handlerSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package handlers\n\n//axon::route POST /items\nfunc Create(name string) {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_test.go"), []byte("package handlers\n\nfunc Helper() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not go"), 0o644))

	p := NewParser()
	callables, err := p.ParseDirectory(dir)
	require.NoError(t, err)
	assert.Len(t, callables, 5)

	_, err = p.Lookup("Helper")
	assert.Error(t, err)

	routes := p.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, "Create", routes[0].Name)
}

func TestParser_ParseDirectoryMissing(t *testing.T) {
	p := NewParser()
	_, err := p.ParseDirectory(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, errors.FileSystemErrorCode, errors.GetCode(err))
}

func TestParser_ConcurrentLookup(t *testing.T) {
	p := parseFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			callable, err := p.Lookup("UserHandler.Get")
			if assert.NoError(t, err) {
				assert.Equal(t, "Get", callable.Name)
			}
		}()
	}
	wg.Wait()
}

func TestPathParameters(t *testing.T) {
	assert.Equal(t, []string{"id", "postId"}, PathParameters("/users/{id:int}/posts/:postId"))
	assert.Empty(t, PathParameters("/health"))
}
