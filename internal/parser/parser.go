package parser

import (
	"fmt"
	"go/ast"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/toyz/axondoc/internal/errors"
	"github.com/toyz/axondoc/internal/models"
	"github.com/toyz/axondoc/internal/utils"
	"github.com/toyz/axondoc/pkg/axondoc"
)

// Parser indexes the functions and methods of Go source files and serves
// them as callables. It is safe for concurrent use.
type Parser struct {
	fileReader *utils.FileReader

	mu        sync.RWMutex
	callables []*models.Callable
	seenFiles map[string]bool
}

// NewParser creates a new parser with its own file reader
func NewParser() *Parser {
	return NewParserWithReader(utils.NewFileReader())
}

// NewParserWithReader creates a parser sharing an existing file reader
func NewParserWithReader(fileReader *utils.FileReader) *Parser {
	return &Parser{
		fileReader: fileReader,
		seenFiles:  make(map[string]bool),
	}
}

// ParseSource parses source code held in memory and indexes its callables
func (p *Parser) ParseSource(filename, source string) ([]*models.Callable, error) {
	file, err := p.fileReader.ParseGoSource(filename, []byte(source))
	if err != nil {
		return nil, errors.WrapParseError(filename, err)
	}
	return p.index(filename, file), nil
}

// ParseDirectory parses every non-test .go file directly inside dir
func (p *Parser) ParseDirectory(dir string) ([]*models.Callable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", dir, err)
	}

	var found []*models.Callable
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, goFileSuffix) || strings.HasSuffix(name, testFileSuffix) {
			continue
		}

		path := filepath.Join(dir, name)
		file, err := p.fileReader.ParseGoFile(path)
		if err != nil {
			return nil, errors.WrapParseError(path, err)
		}
		found = append(found, p.index(path, file)...)
	}

	return found, nil
}

// LoadPackages resolves patterns such as "./..." relative to dir with the go
// tool and indexes the callables of every matched package
func (p *Parser) LoadPackages(dir string, patterns ...string) ([]*models.Callable, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
		Dir:  dir,
		Fset: p.fileReader.FileSet(),
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.WrapFileSystemError("load packages in", dir, err)
	}

	loadErrors := errors.NewMultipleErrors()
	var found []*models.Callable
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			loadErrors.Add(errors.NewSyntaxError(pkgErr.Error()))
		}
		for _, file := range pkg.Syntax {
			fileName := p.fileReader.FileSet().Position(file.Package).Filename
			found = append(found, p.index(fileName, file)...)
		}
	}

	return found, loadErrors.ErrOrNil()
}

// index records the callables declared in file. A file indexed twice keeps
// its first result.
func (p *Parser) index(fileName string, file *ast.File) []*models.Callable {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.seenFiles[fileName] {
		return p.callablesIn(fileName)
	}
	p.seenFiles[fileName] = true

	found := p.extractCallables(fileName, file)
	p.callables = append(p.callables, found...)
	return found
}

func (p *Parser) callablesIn(fileName string) []*models.Callable {
	var found []*models.Callable
	for _, callable := range p.callables {
		if callable.File == fileName {
			found = append(found, callable)
		}
	}
	return found
}

// extractCallables walks the top-level function declarations of file
func (p *Parser) extractCallables(fileName string, file *ast.File) []*models.Callable {
	var found []*models.Callable

	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Name == nil {
			continue
		}

		callable := &models.Callable{
			Name:       funcDecl.Name.Name,
			Package:    file.Name.Name,
			Receiver:   p.receiverName(funcDecl),
			Parameters: p.signatureParameters(funcDecl.Type),
			Doc:        docText(funcDecl.Doc),
			File:       fileName,
			Line:       p.fileReader.FileSet().Position(funcDecl.Pos()).Line,
		}
		callable.Route = parseRouteAnnotation(funcDecl.Doc)

		found = append(found, callable)
	}

	return found
}

// receiverName returns the receiver's base type name without pointer or
// type arguments
func (p *Parser) receiverName(funcDecl *ast.FuncDecl) string {
	if funcDecl.Recv == nil || len(funcDecl.Recv.List) == 0 {
		return ""
	}

	expr := funcDecl.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return p.getTypeString(expr)
		}
	}
}

// signatureParameters lists named parameters in declaration order. Pointer
// and variadic parameters are optional.
func (p *Parser) signatureParameters(funcType *ast.FuncType) []models.ParameterDescriptor {
	if funcType == nil || funcType.Params == nil {
		return nil
	}

	var params []models.ParameterDescriptor
	for _, field := range funcType.Params.List {
		typeStr := p.getTypeString(field.Type)
		_, isPointer := field.Type.(*ast.StarExpr)
		_, isVariadic := field.Type.(*ast.Ellipsis)

		for _, name := range field.Names {
			if name.Name == "" || name.Name == "_" {
				continue
			}
			params = append(params, models.ParameterDescriptor{
				Name:         name.Name,
				DeclaredType: models.TypeToken(typeStr),
				Optional:     isPointer || isVariadic,
				Origin:       models.OriginSignature,
			})
		}
	}
	return params
}

// Lookup resolves target to a callable. target may be "Func", "Type.Method",
// or either form prefixed with the package name. A bare method name resolves
// when it is unique.
func (p *Parser) Lookup(target string) (*models.Callable, error) {
	target = strings.TrimSpace(target)

	p.mu.RLock()
	defer p.mu.RUnlock()

	matchers := []func(*models.Callable) bool{
		func(c *models.Callable) bool { return c.QualifiedName() == target },
		func(c *models.Callable) bool { return c.Package+"."+c.QualifiedName() == target },
		func(c *models.Callable) bool { return c.Name == target },
	}

	for _, match := range matchers {
		var hits []*models.Callable
		for _, callable := range p.callables {
			if match(callable) {
				hits = append(hits, callable)
			}
		}

		switch len(hits) {
		case 0:
			continue
		case 1:
			return hits[0], nil
		default:
			return nil, errors.NewAmbiguousResolutionError(target, describe(hits))
		}
	}

	return nil, errors.NewResolutionError(target)
}

// Callables returns every indexed callable in the order it was indexed
func (p *Parser) Callables() []*models.Callable {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Clone(p.callables)
}

// Routes returns the callables carrying a route annotation, ordered by file
// and then by line
func (p *Parser) Routes() []*models.Callable {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var routes []*models.Callable
	for _, callable := range p.callables {
		if callable.Route != nil {
			routes = append(routes, callable)
		}
	}

	slices.SortStableFunc(routes, func(a, b *models.Callable) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		return a.Line - b.Line
	})
	return routes
}

// PathParameters returns the parameter names bound by a route path
func PathParameters(path string) []string {
	return axondoc.RoutePath(path).ParameterNames()
}

func describe(callables []*models.Callable) []string {
	names := make([]string, len(callables))
	for i, callable := range callables {
		names[i] = callable.Package + "." + callable.QualifiedName()
	}
	slices.Sort(names)
	return names
}

// docText joins the raw comment lines of a doc comment
func docText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}
	lines := make([]string, len(group.List))
	for i, comment := range group.List {
		lines[i] = comment.Text
	}
	return strings.Join(lines, "\n")
}

// parseRouteAnnotation reads "//axon::route METHOD /path" from a doc comment
func parseRouteAnnotation(group *ast.CommentGroup) *models.RouteInfo {
	if group == nil {
		return nil
	}

	for _, comment := range group.List {
		text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
		rest, ok := strings.CutPrefix(text, AnnotationPrefix+AnnotationTypeRoute)
		if !ok {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) < 2 || !strings.HasPrefix(fields[1], "/") {
			continue
		}
		return &models.RouteInfo{
			Method: strings.ToUpper(fields[0]),
			Path:   fields[1],
		}
	}
	return nil
}

// getTypeString renders a type expression as Go source text
func (p *Parser) getTypeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + p.getTypeString(t.X)
	case *ast.SelectorExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name + "." + t.Sel.Name
		}
		return t.Sel.Name
	case *ast.ArrayType:
		if t.Len != nil {
			return "[" + p.getTypeString(t.Len) + "]" + p.getTypeString(t.Elt)
		}
		return "[]" + p.getTypeString(t.Elt)
	case *ast.Ellipsis:
		return "[]" + p.getTypeString(t.Elt)
	case *ast.MapType:
		return "map[" + p.getTypeString(t.Key) + "]" + p.getTypeString(t.Value)
	case *ast.IndexExpr:
		return p.getTypeString(t.X) + "[" + p.getTypeString(t.Index) + "]"
	case *ast.IndexListExpr:
		args := make([]string, len(t.Indices))
		for i, index := range t.Indices {
			args[i] = p.getTypeString(index)
		}
		return p.getTypeString(t.X) + "[" + strings.Join(args, ", ") + "]"
	case *ast.BasicLit:
		return t.Value
	case *ast.ParenExpr:
		return p.getTypeString(t.X)
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return "interface{}"
		}
		return "interface{...}"
	case *ast.StructType:
		return "struct{...}"
	case *ast.FuncType:
		return "func" + p.fieldListString(t.Params) + p.resultsString(t.Results)
	case *ast.ChanType:
		switch t.Dir {
		case ast.SEND:
			return "chan<- " + p.getTypeString(t.Value)
		case ast.RECV:
			return "<-chan " + p.getTypeString(t.Value)
		default:
			return "chan " + p.getTypeString(t.Value)
		}
	default:
		return fmt.Sprintf("%T", expr)
	}
}

func (p *Parser) fieldListString(fields *ast.FieldList) string {
	if fields == nil {
		return "()"
	}
	var parts []string
	for _, field := range fields.List {
		typeStr := p.getTypeString(field.Type)
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			parts = append(parts, typeStr)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *Parser) resultsString(results *ast.FieldList) string {
	if results == nil || len(results.List) == 0 {
		return ""
	}
	if len(results.List) == 1 && len(results.List[0].Names) <= 1 {
		return " " + p.getTypeString(results.List[0].Type)
	}
	return " " + p.fieldListString(results)
}

