package query

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer shared by the SELECT parser and the bare predicate parser.
var sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(SELECT|DISTINCT|FROM|WHERE|GROUP|ORDER|BY|AS|ASC|DESC|LIMIT|AND|OR|TRUE|FALSE|NULL|CONTAINS)\b`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `[-+]?\d*\.?\d+`},
	{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
	{Name: "Operator", Pattern: `>=|<=|!=|[=<>]`},
	{Name: "Punct", Pattern: `[,()*]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var selectParser = participle.MustBuild[ASTSelect](
	participle.Lexer(sqlLexer),
	participle.Unquote("String"),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

var whereParser = participle.MustBuild[ASTExpression](
	participle.Lexer(sqlLexer),
	participle.Unquote("String"),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseQuery parses a full SELECT statement.
//
//	SELECT [DISTINCT] * | field [AS alias] | FUNC(field) [AS alias], ...
//	  [FROM table | (subquery)]
//	  [WHERE predicate]
//	  [GROUP BY field, ...]
//	  [ORDER BY field [ASC|DESC], ...]
//	  [LIMIT n]
func ParseQuery(input string) (*SelectQuery, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty query")
	}
	ast, err := selectParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return ast.ToSelectQuery(), nil
}

// ParseWhere parses a bare predicate expression such as
// "age > 25 AND (status = 'active' OR status = 'trial')".
func ParseWhere(input string) (Expression, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty expression")
	}
	ast, err := whereParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	expr := ast.ToExpression()
	if expr == nil {
		return nil, fmt.Errorf("empty expression")
	}
	return expr, nil
}

// IsWhereExpression reports whether input parses as a bare predicate. The
// CLI uses it to route loose arguments.
func IsWhereExpression(input string) bool {
	_, err := ParseWhere(input)
	return err == nil
}
