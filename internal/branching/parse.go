package branching

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// predicate is the only supported expression form:
//
//	[referenced_field] = 1
//	[referenced_field] = '1'
//
// AND, OR and negation are rejected.
type predicate struct {
	Pos   lexer.Position
	Ref   string `"[" @Ident "]"`
	Value string `"=" @(Int | String)`
}

var predicateLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "String", Pattern: `("(\\"|[^"])*")|('(\\'|[^'])*')`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Punct", Pattern: `[\[\]=]`},
	{Name: "Whitespace", Pattern: `[ \r\n\t]+`},
})

var predicateParser = participle.MustBuild[predicate](
	participle.Lexer(predicateLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

// Parse compiles one raw expression into the referenced field name and the
// expected integer code.
func Parse(expr string) (ref string, expected int, err error) {
	p, err := predicateParser.ParseString("", expr)
	if err != nil {
		return "", 0, err
	}

	// Whitespace inside quotes is ignored: '1 ' and ' 1' both mean 1.
	raw := strings.Join(strings.Fields(p.Value), "")
	expected, err = strconv.Atoi(raw)
	if err != nil {
		return "", 0, fmt.Errorf("expected value %q is not an integer", p.Value)
	}
	return p.Ref, expected, nil
}
