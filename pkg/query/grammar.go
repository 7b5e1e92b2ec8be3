package query

import (
	"fmt"
	"strings"
)

// AST for the participle parser.

type ASTSelect struct {
	Distinct bool              `parser:"'SELECT' @'DISTINCT'?"`
	Star     bool              `parser:"( @'*'"`
	Fields   []*ASTSelectField `parser:"| @@ (',' @@)* )"`
	From     *ASTFromClause    `parser:"('FROM' @@)?"`
	Where    *ASTExpression    `parser:"('WHERE' @@)?"`
	GroupBy  []string          `parser:"('GROUP' 'BY' @Ident (',' @Ident)*)?"`
	OrderBy  []*ASTOrderField  `parser:"('ORDER' 'BY' @@ (',' @@)*)?"`
	Limit    *int              `parser:"('LIMIT' @Number)?"`
}

type ASTSelectField struct {
	Func  *ASTFunction `parser:"( @@"`
	Field string       `parser:"| @Ident )"`
	Alias string       `parser:"('AS' @Ident)?"`
}

type ASTFunction struct {
	Name string  `parser:"@Ident '('"`
	Star bool    `parser:"( @'*'"`
	Arg  string  `parser:"| @Ident"`
	Sep  *string `parser:"(',' @String)? ) ')'"`
}

type ASTFromClause struct {
	TableName *string    `parser:"(@Ident | @String)"`
	SubQuery  *ASTSelect `parser:"| '(' @@ ')'"`
}

type ASTOrderField struct {
	Field string `parser:"@Ident"`
	Desc  bool   `parser:"(@'DESC' | 'ASC')?"`
}

type ASTExpression struct {
	Or []*ASTOrCondition `parser:"@@ ('OR' @@)*"`
}

type ASTOrCondition struct {
	And []*ASTCondition `parser:"@@ ('AND' @@)*"`
}

type ASTCondition struct {
	Grouped *ASTExpression      `parser:"  '(' @@ ')'"`
	Simple  *ASTSimpleCondition `parser:"| @@"`
}

type ASTSimpleCondition struct {
	Field string      `parser:"@Ident"`
	Op    string      `parser:"@('=' | '!=' | '>=' | '<=' | '>' | '<' | 'CONTAINS')"`
	Value *ASTLiteral `parser:"@@"`
}

type ASTLiteral struct {
	Number *float64 `parser:"  @Number"`
	StrVal *string  `parser:"| @String"`
	Bool   *bool    `parser:"| @('TRUE' | 'FALSE')"`
	Null   bool     `parser:"| @'NULL'"`
}

func (l *ASTLiteral) ToValue() interface{} {
	switch {
	case l.Number != nil:
		return *l.Number
	case l.StrVal != nil:
		return *l.StrVal
	case l.Bool != nil:
		return *l.Bool
	default:
		return nil
	}
}

// Helpers mapping the AST onto the executable query form.

func (s *ASTSelect) ToSelectQuery() *SelectQuery {
	sq := &SelectQuery{
		Star:     s.Star,
		Distinct: s.Distinct,
		GroupBy:  s.GroupBy,
		Limit:    -1,
	}

	for _, f := range s.Fields {
		field := Field{Alias: f.Alias}
		if f.Func != nil {
			field.Aggregate = strings.ToUpper(f.Func.Name)
			field.Name = f.Func.Arg
			field.Star = f.Func.Star
			if f.Func.Sep != nil {
				field.Sep = *f.Func.Sep
			} else {
				field.Sep = ", "
			}
		} else {
			field.Name = f.Field
		}
		sq.Fields = append(sq.Fields, field)
	}

	if s.From != nil {
		if s.From.TableName != nil {
			sq.From = *s.From.TableName
		} else if s.From.SubQuery != nil {
			sq.FromQuery = s.From.SubQuery.ToSelectQuery()
		}
	}

	if s.Where != nil {
		sq.Filter = s.Where.ToExpression()
	}

	for _, o := range s.OrderBy {
		sq.OrderBy = append(sq.OrderBy, OrderField{Field: o.Field, Desc: o.Desc})
	}

	if s.Limit != nil {
		sq.Limit = *s.Limit
	}

	return sq
}

// SelectQuery is the parsed form of a SELECT statement, ready for planning.
type SelectQuery struct {
	Fields    []Field
	Star      bool
	Distinct  bool
	From      string
	FromQuery *SelectQuery
	Filter    Expression
	GroupBy   []string
	OrderBy   []OrderField
	Limit     int // -1 when absent
}

// Field is one selected column, possibly computed by an aggregate function.
type Field struct {
	Name      string
	Alias     string
	Aggregate string // COUNT, SUM, ... empty for a plain column
	Star      bool   // COUNT(*)
	Sep       string // STRJOIN separator
}

// OutName is the column name the field produces in the output.
func (f Field) OutName() string {
	if f.Alias != "" {
		return f.Alias
	}
	if f.Aggregate != "" {
		if f.Star {
			return strings.ToLower(f.Aggregate)
		}
		return strings.ToLower(f.Aggregate) + "_" + f.Name
	}
	return f.Name
}

func (f Field) String() string {
	s := f.Name
	if f.Star {
		s = "*"
	}
	if f.Aggregate != "" {
		s = fmt.Sprintf("%s(%s)", f.Aggregate, s)
	}
	if f.Alias != "" {
		s += " AS " + f.Alias
	}
	return s
}

// OrderField is one ORDER BY key.
type OrderField struct {
	Field string
	Desc  bool
}

func (o OrderField) String() string {
	if o.Desc {
		return o.Field + " DESC"
	}
	return o.Field
}

// Map the expression AST onto the Expression interface.

func (e *ASTExpression) ToExpression() Expression {
	if len(e.Or) == 0 {
		return nil
	}
	var expr Expression = e.Or[0].ToExpression()
	for i := 1; i < len(e.Or); i++ {
		expr = &OrExpression{
			Left:  expr,
			Right: e.Or[i].ToExpression(),
		}
	}
	return expr
}

func (o *ASTOrCondition) ToExpression() Expression {
	if len(o.And) == 0 {
		return nil
	}
	var expr Expression = o.And[0].ToExpression()
	for i := 1; i < len(o.And); i++ {
		expr = &AndExpression{
			Left:  expr,
			Right: o.And[i].ToExpression(),
		}
	}
	return expr
}

func (c *ASTCondition) ToExpression() Expression {
	if c.Grouped != nil {
		return c.Grouped.ToExpression()
	}
	if c.Simple != nil {
		return &Condition{
			Field: c.Simple.Field,
			Op:    strings.ToUpper(c.Simple.Op),
			Value: c.Simple.Value.ToValue(),
		}
	}
	return nil
}
