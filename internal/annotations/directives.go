package annotations

import (
	"slices"
	"strings"

	"github.com/toyz/axondoc/internal/models"
)

// Directive kinds, lower-cased
const (
	KindQueryParam = "queryparam"
	KindPathParam  = "pathparam"
	KindURLParam   = "urlparam"
	KindExample    = "example"
)

const inlineExampleMarker = "example:"

// typeWords are the bare words accepted as a type token in the
// "@queryParam name type description" form. They match in any case except
// the proseWords, which only count when written in lower case.
var typeWords = map[string]struct{}{
	"string": {}, "str": {}, "text": {},
	"int": {}, "integer": {}, "int8": {}, "int16": {}, "int32": {}, "int64": {},
	"uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {},
	"float": {}, "float32": {}, "float64": {}, "double": {}, "number": {}, "numeric": {},
	"bool": {}, "boolean": {},
	"array": {}, "object": {}, "mixed": {},
	"date": {}, "datetime": {}, "date-time": {}, "time": {}, "timestamp": {},
}

// proseWords are type words that also open ordinary descriptions
// ("Number of items", "Date of birth")
var proseWords = map[string]struct{}{
	"number": {}, "numeric": {}, "text": {}, "array": {}, "object": {}, "mixed": {},
	"date": {}, "time": {}, "timestamp": {},
}

// Block is everything a comment block documents about a callable's parameters
type Block struct {
	// QueryParams holds every @queryParam occurrence in source order,
	// duplicates included
	QueryParams []models.RawDirective
	// PathParams holds names marked by @pathParam or @urlParam
	PathParams models.NameSet
	// Examples maps a name to the first @example value given for it
	Examples map[string]string
}

// QueryParam returns the first @queryParam directive for name
func (b Block) QueryParam(name string) (models.RawDirective, bool) {
	for _, directive := range b.QueryParams {
		if directive.Name == name {
			return directive, true
		}
	}
	return models.RawDirective{}, false
}

// HasQueryParam reports whether name is tagged by a @queryParam directive
func (b Block) HasQueryParam(name string) bool {
	_, ok := b.QueryParam(name)
	return ok
}

// IsPathParam reports whether name is marked as path-bound
func (b Block) IsPathParam(name string) bool {
	return b.PathParams.Has(name)
}

// Example returns the @example value for name
func (b Block) Example(name string) (string, bool) {
	value, ok := b.Examples[name]
	return value, ok
}

// DirectiveParser extracts parameter directives from comment blocks.
// It is safe for concurrent use.
type DirectiveParser struct {
	grammar *grammar
}

// NewDirectiveParser creates a directive parser
func NewDirectiveParser() *DirectiveParser {
	return &DirectiveParser{grammar: newGrammar()}
}

var defaultParser = NewDirectiveParser()

// ParseDirectives parses text with the shared default parser
func ParseDirectives(text string) Block {
	return defaultParser.Parse(text)
}

// Parse scans a raw comment block. It never fails: malformed directives
// are skipped and empty input yields an empty block.
func (p *DirectiveParser) Parse(text string) Block {
	block := Block{
		PathParams: models.NewNameSet(),
		Examples:   make(map[string]string),
	}
	if strings.TrimSpace(text) == "" {
		return block
	}

	segments := splitSegments(normalizeBlock(text))

	braced := p.scanBraced(segments)
	bare := p.scanBare(segments)
	block.QueryParams = mergeByOffset(braced, bare)

	for _, seg := range segments {
		switch seg.kind {
		case KindPathParam, KindURLParam:
			if name, ok := p.headerName(seg.body); ok {
				block.PathParams.Add(name)
			}
		case KindExample:
			name, rest, ok := p.grammar.parseBare(seg.body)
			if !ok {
				continue
			}
			value := collapseSpace(trimSeparator(rest))
			if value == "" {
				continue
			}
			if _, seen := block.Examples[name]; !seen {
				block.Examples[name] = value
			}
		}
	}

	return block
}

// scanBraced collects "@queryParam {type} name description" directives
func (p *DirectiveParser) scanBraced(segments []segment) []models.RawDirective {
	var directives []models.RawDirective
	for _, seg := range segments {
		if seg.kind != KindQueryParam || !startsBraced(seg.body) {
			continue
		}
		typeToken, name, rest, ok := p.grammar.parseBraced(seg.body)
		if !ok {
			continue
		}
		directives = append(directives, newDirective(name, typeToken, rest, seg.offset))
	}
	return directives
}

// scanBare collects "@queryParam name [type] description" directives
func (p *DirectiveParser) scanBare(segments []segment) []models.RawDirective {
	var directives []models.RawDirective
	for _, seg := range segments {
		if seg.kind != KindQueryParam || startsBraced(seg.body) {
			continue
		}
		name, rest, ok := p.grammar.parseBare(seg.body)
		if !ok {
			continue
		}
		typeToken, rest := splitTypeWord(trimSeparator(rest))
		directives = append(directives, newDirective(name, typeToken, rest, seg.offset))
	}
	return directives
}

// headerName reads the name of a @pathParam style directive in either form
func (p *DirectiveParser) headerName(body string) (string, bool) {
	if startsBraced(body) {
		_, name, _, ok := p.grammar.parseBraced(body)
		return name, ok
	}
	name, _, ok := p.grammar.parseBare(body)
	return name, ok
}

func newDirective(name, typeToken, rest string, offset int) models.RawDirective {
	description, example := splitInlineExample(trimSeparator(rest))
	return models.RawDirective{
		Name:           name,
		RawType:        typeToken,
		RawDescription: description,
		RawExample:     example,
		Required:       indexFold(description, "optional") < 0,
		Offset:         offset,
	}
}

// trimSeparator drops one punctuation mark standing between a name and its
// description, as in "page: Page number" or "page - Page number"
func trimSeparator(text string) string {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if trimmed == "" || !strings.ContainsRune(".:,;-", rune(trimmed[0])) {
		return text
	}
	if len(trimmed) == 1 || strings.ContainsRune(" \t\r\n", rune(trimmed[1])) {
		return trimmed[1:]
	}
	return text
}

// splitInlineExample cuts an "Example: value" fragment out of the description
func splitInlineExample(text string) (string, *string) {
	at := indexFold(text, inlineExampleMarker)
	if at < 0 {
		return collapseSpace(text), nil
	}
	description := collapseSpace(text[:at])
	value := collapseSpace(text[at+len(inlineExampleMarker):])
	if value == "" {
		return description, nil
	}
	return description, &value
}

// splitTypeWord takes the first word of rest as a type token when every
// alternative of it is a known type word
func splitTypeWord(rest string) (string, string) {
	trimmed := strings.TrimLeft(rest, " \t\r\n")
	end := strings.IndexAny(trimmed, " \t\r\n")
	if end < 0 {
		end = len(trimmed)
	}
	word := trimmed[:end]
	if !isTypeWord(word) {
		return "", rest
	}
	return word, trimmed[end:]
}

func isTypeWord(word string) bool {
	if word == "" {
		return false
	}
	for _, alternative := range strings.Split(word, "|") {
		if alternative == "" {
			return false
		}
		if strings.HasPrefix(alternative, "[]") || strings.HasSuffix(alternative, "[]") {
			continue
		}
		if !isTypeAlternative(alternative) {
			return false
		}
	}
	return true
}

func isTypeAlternative(word string) bool {
	lower := strings.ToLower(word)
	if _, ok := typeWords[lower]; !ok {
		return false
	}
	if _, prose := proseWords[lower]; prose {
		return word == lower
	}
	return true
}

func startsBraced(body string) bool {
	return strings.HasPrefix(strings.TrimLeft(body, " \t\r\n"), "{")
}

// mergeByOffset combines both passes into one source-ordered list
func mergeByOffset(passes ...[]models.RawDirective) []models.RawDirective {
	var merged []models.RawDirective
	for _, pass := range passes {
		merged = append(merged, pass...)
	}
	slices.SortStableFunc(merged, func(a, b models.RawDirective) int {
		return a.Offset - b.Offset
	})
	return merged
}

// Summary returns the free text of a comment block that precedes the first
// directive. axon:: annotation lines are skipped.
func Summary(text string) string {
	normalized := normalizeBlock(text)
	if segments := splitSegments(normalized); len(segments) > 0 {
		normalized = normalized[:segments[0].offset]
	}
	return collapseSpace(normalized)
}
