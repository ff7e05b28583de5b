// Package parser implements a recursive-descent, precedence-climbing parser
// for the CEL expression grammar; each parse method's comment gives the
// production it implements.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/libdbm/gocel/ast"
	"github.com/libdbm/gocel/celerr"
	"github.com/libdbm/gocel/lexer"
	"github.com/libdbm/gocel/types"
)

var macroMethods = ast.MacroNames

// Parser is a single-lookahead recursive-descent parser that peeks further
// ahead through the lexer's buffer in two places: one extra token to tell
// struct literals from map literals, and a walk over a `.IDENT` chain (as
// long as the chain runs) to tell qualified type names from plain field
// selections.
type Parser struct {
	lex     *lexer.Lexer
	current lexer.Token
}

// New constructs a parser over the given CEL source text.
func New(input string) *Parser {
	l := lexer.New(input)
	return &Parser{lex: l, current: l.Next()}
}

// Parse parses a complete expression and returns the resulting AST, or a
// *celerr.SyntaxError if the input is malformed.
func Parse(input string) (result ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*celerr.SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()

	p := New(input)
	result = p.parseExpr()
	if p.current.Type != lexer.EOF {
		panic(celerr.NewSyntaxError(
			"Unexpected token after expression: "+p.current.Text,
			p.current.Line, p.current.Column,
		))
	}
	return result, nil
}

// expr := conditionalOr ( '?' conditionalOr ':' expr )?
func (p *Parser) parseExpr() ast.Node {
	condition := p.parseConditionalOr()

	if p.match(lexer.QUESTION) {
		then := p.parseConditionalOr()
		p.expect(lexer.COLON)
		otherwise := p.parseExpr()
		return &ast.Conditional{Condition: condition, Then: then, Else: otherwise}
	}

	return condition
}

// conditionalOr := conditionalAnd ( '||' conditionalAnd )*
func (p *Parser) parseConditionalOr() ast.Node {
	left := p.parseConditionalAnd()
	for p.match(lexer.OR) {
		right := p.parseConditionalAnd()
		left = &ast.Binary{Op: ast.OR, Left: left, Right: right}
	}
	return left
}

// conditionalAnd := relation ( '&&' relation )*
func (p *Parser) parseConditionalAnd() ast.Node {
	left := p.parseRelation()
	for p.match(lexer.AND) {
		right := p.parseRelation()
		left = &ast.Binary{Op: ast.AND, Left: left, Right: right}
	}
	return left
}

// relation := addition ( relop addition )*  (left-associative, flat: chained
// comparisons associate left, a < b < c parses as (a < b) < c)
func (p *Parser) parseRelation() ast.Node {
	left := p.parseAddition()
	for isRelationalOp(p.current.Type) {
		op := toBinaryOp(p.current.Type)
		p.advance()
		right := p.parseAddition()
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left
}

// addition := multiplication ( ('+'|'-') multiplication )*
func (p *Parser) parseAddition() ast.Node {
	left := p.parseMultiplication()
	for p.current.Type == lexer.PLUS || p.current.Type == lexer.MINUS {
		op := ast.ADD
		if p.current.Type == lexer.MINUS {
			op = ast.SUB
		}
		p.advance()
		right := p.parseMultiplication()
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left
}

// multiplication := unary ( ('*'|'/'|'%') unary )*
func (p *Parser) parseMultiplication() ast.Node {
	left := p.parseUnary()
	for p.current.Type == lexer.STAR || p.current.Type == lexer.SLASH || p.current.Type == lexer.PERCENT {
		var op ast.BinaryOp
		switch p.current.Type {
		case lexer.STAR:
			op = ast.MUL
		case lexer.SLASH:
			op = ast.DIV
		case lexer.PERCENT:
			op = ast.MOD
		}
		p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left
}

// unary := ('!'|'-') unary | member
func (p *Parser) parseUnary() ast.Node {
	if p.current.Type == lexer.BANG {
		p.advance()
		return &ast.Unary{Op: ast.NOT, Operand: p.parseUnary()}
	}
	if p.current.Type == lexer.MINUS {
		p.advance()
		return &ast.Unary{Op: ast.NEGATE, Operand: p.parseUnary()}
	}
	return p.parseMember()
}

// member := primary ( '.' IDENT ( '(' argList ')' )? | '[' expr ']' )*
func (p *Parser) parseMember() ast.Node {
	expr := p.parsePrimary()

	for {
		switch {
		case p.current.Type == lexer.DOT:
			p.advance()
			field := p.expectIdentifier()

			if p.current.Type == lexer.LPAREN {
				p.advance()
				args := p.parseExprList(lexer.RPAREN)
				p.expect(lexer.RPAREN)
				expr = &ast.Call{Target: expr, Function: field, Args: args, IsMacro: macroMethods[field]}
			} else {
				expr = &ast.Select{Operand: expr, Field: field}
			}

		case p.current.Type == lexer.LBRACKET:
			p.advance()
			index := p.parseExpr()
			p.expect(lexer.RBRACKET)
			expr = &ast.Index{Operand: expr, Index: index}

		default:
			return expr
		}
	}
}

// primary := literal
//
//	| '[' list ']'
//	| '{' mapOrStruct '}'
//	| '(' expr ')'
//	| '.' IDENT callArgs?
//	| IDENT ( callArgs | qualifiedStructLiteral | structLiteral )?
func (p *Parser) parsePrimary() ast.Node {
	if isLiteralToken(p.current.Type) {
		return p.parseLiteral()
	}

	if p.current.Type == lexer.LBRACKET {
		return p.parseListLiteral()
	}

	if p.current.Type == lexer.LBRACE {
		return p.parseMapOrStructLiteral("")
	}

	if p.current.Type == lexer.LPAREN {
		p.advance()
		expr := p.parseExpr()
		p.expect(lexer.RPAREN)
		return expr
	}

	if p.current.Type == lexer.DOT {
		p.advance()
		field := p.expectIdentifier()

		if p.current.Type == lexer.LPAREN {
			p.advance()
			args := p.parseExprList(lexer.RPAREN)
			p.expect(lexer.RPAREN)
			return &ast.Call{Target: nil, Function: field, Args: args}
		}
		return &ast.Select{Operand: nil, Field: field}
	}

	if p.current.Type == lexer.IDENT {
		name := p.current.Text
		p.advance()

		if p.current.Type == lexer.LPAREN {
			p.advance()
			args := p.parseExprList(lexer.RPAREN)
			p.expect(lexer.RPAREN)
			return &ast.Call{Target: nil, Function: name, Args: args}
		}

		if p.current.Type == lexer.DOT && p.isQualifiedStructLiteral() {
			qualified := p.parseQualifiedIdent(name)
			return p.parseMapOrStructLiteral(qualified)
		}

		if p.current.Type == lexer.LBRACE {
			return p.parseMapOrStructLiteral(name)
		}

		return &ast.Identifier{Name: name}
	}

	panic(celerr.NewSyntaxError("Unexpected token: "+p.current.Text, p.current.Line, p.current.Column))
}

// listLiteral := '[' exprList? ','? ']'
func (p *Parser) parseListLiteral() ast.Node {
	p.expect(lexer.LBRACKET)

	var elements []ast.Node
	if p.current.Type != lexer.RBRACKET {
		elements = p.parseExprList(lexer.RBRACKET)
		if p.current.Type == lexer.COMMA {
			p.advance()
		}
	}

	p.expect(lexer.RBRACKET)
	return &ast.ListExpr{Elements: elements}
}

// parseMapOrStructLiteral parses a brace-enclosed literal. typeName is ""
// for an unqualified `{...}`; otherwise it is the (possibly qualified) type
// name that preceded the brace, which forces struct interpretation.
func (p *Parser) parseMapOrStructLiteral(typeName string) ast.Node {
	p.expect(lexer.LBRACE)

	if p.current.Type == lexer.RBRACE {
		p.advance()
		if typeName != "" {
			return &ast.Struct{TypeName: typeName}
		}
		return &ast.MapExpr{}
	}

	isStruct := typeName != "" ||
		(p.current.Type == lexer.IDENT && p.lex.Peek(1).Type == lexer.COLON)

	if isStruct {
		fields := p.parseFieldInits()
		if p.current.Type == lexer.COMMA {
			p.advance()
		}
		p.expect(lexer.RBRACE)
		return &ast.Struct{TypeName: typeName, Fields: fields}
	}

	entries := p.parseMapInits()
	if p.current.Type == lexer.COMMA {
		p.advance()
	}
	p.expect(lexer.RBRACE)
	return &ast.MapExpr{Entries: entries}
}

// parseExprList parses a comma-separated expression list, honoring an
// optional trailing comma before the terminator token.
func (p *Parser) parseExprList(terminator lexer.TokenType) []ast.Node {
	var exprs []ast.Node

	if p.current.Type == terminator {
		return exprs
	}

	exprs = append(exprs, p.parseExpr())
	for p.current.Type == lexer.COMMA {
		p.advance()
		if p.current.Type == terminator {
			break
		}
		exprs = append(exprs, p.parseExpr())
	}

	return exprs
}

func (p *Parser) parseMapInits() []ast.MapEntry {
	var entries []ast.MapEntry
	entries = append(entries, p.parseMapInit())
	for p.current.Type == lexer.COMMA {
		p.advance()
		if p.current.Type == lexer.RBRACE {
			break
		}
		entries = append(entries, p.parseMapInit())
	}
	return entries
}

func (p *Parser) parseMapInit() ast.MapEntry {
	key := p.parseExpr()
	p.expect(lexer.COLON)
	value := p.parseExpr()
	return ast.MapEntry{Key: key, Value: value}
}

func (p *Parser) parseFieldInits() []ast.FieldInitializer {
	var fields []ast.FieldInitializer
	fields = append(fields, p.parseFieldInit())
	for p.current.Type == lexer.COMMA {
		p.advance()
		if p.current.Type == lexer.RBRACE {
			break
		}
		fields = append(fields, p.parseFieldInit())
	}
	return fields
}

func (p *Parser) parseFieldInit() ast.FieldInitializer {
	field := p.expectIdentifier()
	p.expect(lexer.COLON)
	value := p.parseExpr()
	return ast.FieldInitializer{Field: field, Value: value}
}

func (p *Parser) parseQualifiedIdent(first string) string {
	var sb strings.Builder
	sb.WriteString(first)
	for p.current.Type == lexer.DOT {
		p.advance()
		sb.WriteByte('.')
		sb.WriteString(p.expectIdentifier())
	}
	return sb.String()
}

func (p *Parser) parseLiteral() ast.Node {
	tok := p.current
	p.advance()

	switch tok.Type {
	case lexer.NULL:
		return &ast.Literal{Value: nil, Kind: ast.LiteralNull}
	case lexer.TRUE:
		return &ast.Literal{Value: true, Kind: ast.LiteralBool}
	case lexer.FALSE:
		return &ast.Literal{Value: false, Kind: ast.LiteralBool}
	case lexer.INT:
		return &ast.Literal{Value: parseIntLiteral(tok), Kind: ast.LiteralInt}
	case lexer.UINT:
		return &ast.Literal{Value: types.Uint(parseUintLiteral(tok)), Kind: ast.LiteralUint}
	case lexer.DOUBLE:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			panic(celerr.NewSyntaxError("Invalid double literal: "+tok.Text, tok.Line, tok.Column))
		}
		return &ast.Literal{Value: v, Kind: ast.LiteralDouble}
	case lexer.STRING:
		return &ast.Literal{Value: decodeStringLiteral(tok.Text), Kind: ast.LiteralString}
	case lexer.BYTES:
		return &ast.Literal{Value: []byte(decodeBytesLiteral(tok.Text)), Kind: ast.LiteralBytes}
	default:
		panic(celerr.NewSyntaxError("Not a literal: "+tok.Text, tok.Line, tok.Column))
	}
}

func parseIntLiteral(tok lexer.Token) int64 {
	text := tok.Text
	var v int64
	var err error
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		var u uint64
		u, err = strconv.ParseUint(text[2:], 16, 64)
		v = int64(u)
	} else {
		v, err = strconv.ParseInt(text, 10, 64)
	}
	if err != nil {
		panic(celerr.NewSyntaxError("Invalid integer literal: "+text, tok.Line, tok.Column))
	}
	return v
}

func parseUintLiteral(tok lexer.Token) uint64 {
	text := tok.Text[:len(tok.Text)-1] // drop u/U suffix
	var v uint64
	var err error
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		v, err = strconv.ParseUint(text[2:], 16, 64)
	} else {
		v, err = strconv.ParseUint(text, 10, 64)
	}
	if err != nil {
		panic(celerr.NewSyntaxError("Invalid unsigned integer literal: "+text, tok.Line, tok.Column))
	}
	return v
}

func isLiteralToken(t lexer.TokenType) bool {
	switch t {
	case lexer.NULL, lexer.TRUE, lexer.FALSE, lexer.INT, lexer.UINT, lexer.DOUBLE, lexer.STRING, lexer.BYTES:
		return true
	default:
		return false
	}
}

func isRelationalOp(t lexer.TokenType) bool {
	switch t {
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE, lexer.EQ, lexer.NE, lexer.IN:
		return true
	default:
		return false
	}
}

func toBinaryOp(t lexer.TokenType) ast.BinaryOp {
	switch t {
	case lexer.LT:
		return ast.LT
	case lexer.LE:
		return ast.LE
	case lexer.GT:
		return ast.GT
	case lexer.GE:
		return ast.GE
	case lexer.EQ:
		return ast.EQ
	case lexer.NE:
		return ast.NE
	case lexer.IN:
		return ast.IN
	default:
		panic(fmt.Sprintf("toBinaryOp: not a relational token: %v", t))
	}
}

func (p *Parser) match(t lexer.TokenType) bool {
	if p.current.Type == t {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t lexer.TokenType) {
	if p.current.Type != t {
		panic(celerr.NewSyntaxError(
			fmt.Sprintf("Expected %s but found %s", t, p.current.Type),
			p.current.Line, p.current.Column,
		))
	}
	p.advance()
}

func (p *Parser) expectIdentifier() string {
	if p.current.Type != lexer.IDENT {
		panic(celerr.NewSyntaxError(
			"Expected identifier but found "+p.current.Text,
			p.current.Line, p.current.Column,
		))
	}
	name := p.current.Text
	p.advance()
	return name
}

func (p *Parser) advance() {
	p.current = p.lex.Next()
}

// isQualifiedStructLiteral looks ahead past a `.IDENT` sequence to decide
// whether the current position begins `Type.Name{...}` (a qualified struct
// literal) or an ordinary field selection. Called with p.current == DOT.
func (p *Parser) isQualifiedStructLiteral() bool {
	lookahead := 1
	tok := p.lex.Peek(lookahead)

	if tok.Type != lexer.IDENT {
		return false
	}

	lookahead++
	tok = p.lex.Peek(lookahead)

	for tok.Type == lexer.DOT {
		lookahead++
		tok = p.lex.Peek(lookahead)
		if tok.Type != lexer.IDENT {
			return false
		}
		lookahead++
		tok = p.lex.Peek(lookahead)
	}

	return tok.Type == lexer.LBRACE
}
