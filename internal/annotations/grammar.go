package annotations

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// headerLexer tokenises a directive body. Identifiers may be Unicode and
// may hold dotted segments, but never end in a dot. The final Other rule
// matches any single non-space rune so arbitrary description text never
// fails to lex.
var headerLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_\-\[\]]*(?:\.[\p{L}\p{N}_][\p{L}\p{N}_\-\[\]]*)*`},
	{Name: "Punct", Pattern: `[{}|]`},
	{Name: "Other", Pattern: `\S`},
})

// bracedHeader is the "{type} name" form
type bracedHeader struct {
	Type   string `parser:"'{' @( Ident | '|' | Other )* '}'"`
	Name   string `parser:"@Ident"`
	EndPos lexer.Position
}

// bareHeader is the "name" form; a bare type word after the name is resolved
// by the caller because it cannot be told apart from description text here
type bareHeader struct {
	Name   string `parser:"@Ident"`
	EndPos lexer.Position
}

// grammar holds the compiled participle parsers for both surface forms
type grammar struct {
	braced *participle.Parser[bracedHeader]
	bare   *participle.Parser[bareHeader]
}

func newGrammar() *grammar {
	return &grammar{
		braced: participle.MustBuild[bracedHeader](
			participle.Lexer(headerLexer),
			participle.Elide("Whitespace"),
		),
		bare: participle.MustBuild[bareHeader](
			participle.Lexer(headerLexer),
			participle.Elide("Whitespace"),
		),
	}
}

// parseBraced matches the braced form at the start of body and returns the
// type, the name and the remaining text
func (g *grammar) parseBraced(body string) (typeToken, name, rest string, ok bool) {
	header, err := g.braced.ParseString("", body, participle.AllowTrailing(true))
	if err != nil || header.Name == "" {
		return "", "", "", false
	}
	return header.Type, header.Name, remainder(body, header.EndPos), true
}

// parseBare matches a leading name and returns it with the remaining text
func (g *grammar) parseBare(body string) (name, rest string, ok bool) {
	header, err := g.bare.ParseString("", body, participle.AllowTrailing(true))
	if err != nil || header.Name == "" {
		return "", "", false
	}
	return header.Name, remainder(body, header.EndPos), true
}

func remainder(body string, end lexer.Position) string {
	if end.Offset < 0 || end.Offset >= len(body) {
		return ""
	}
	return body[end.Offset:]
}
