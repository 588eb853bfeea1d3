// Package parser implements the recursive-descent parser for the restricted
// NohLang expression grammar. The grammar is a deliberate whitelist: literals,
// list/tuple/map literals, identifier references, indexing, unary and binary
// arithmetic, comparisons with chaining, and short-circuit boolean operators.
// Everything else — attribute access, call syntax, assignment, comprehensions —
// fails to parse, which the evaluator reports as an unsafe expression.
package parser

import (
	"fmt"
	"strconv"

	"github.com/nohlang/go-noh/internal/ast"
	"github.com/nohlang/go-noh/internal/lexer"
)

// Operator precedence levels, lowest first: or < and < not < comparison < sum
// < product < power < index. A leading sign parses its operand at just below
// power level (see parsePrefixExpression), so it binds tighter than product
// but looser than power: -2 ** 2 is -(2 ** 2). PREFIX is not used by the
// parser.
const (
	LOWEST  = iota
	OR      // or
	AND     // and
	NOTPREC // not x
	COMPARE // == != < <= > >=
	SUM     // + -
	PRODUCT // * / %
	POWER   // ** (right-associative)
	PREFIX  // -x +x
	INDEX   // a[i]
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:       OR,
	lexer.AND:      AND,
	lexer.EQ:       COMPARE,
	lexer.NOT_EQ:   COMPARE,
	lexer.LT:       COMPARE,
	lexer.LE:       COMPARE,
	lexer.GT:       COMPARE,
	lexer.GE:       COMPARE,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.PERCENT:  PRODUCT,
	lexer.POWER:    POWER,
	lexer.LBRACKET: INDEX,
}

func getPrecedence(tt lexer.TokenType) int {
	if p, ok := precedences[tt]; ok {
		return p
	}
	return LOWEST
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser parses a single expression into its AST.
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []string

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New creates a parser over the given expression text.
func New(input string) *Parser {
	p := &Parser{l: lexer.New(input)}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentifier,
		lexer.INT:      p.parseIntegerLiteral,
		lexer.FLOAT:    p.parseFloatLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.TRUE:     p.parseBooleanLiteral,
		lexer.FALSE:    p.parseBooleanLiteral,
		lexer.NONE:     p.parseNullLiteral,
		lexer.MINUS:    p.parsePrefixExpression,
		lexer.PLUS:     p.parsePrefixExpression,
		lexer.NOT:      p.parseNotExpression,
		lexer.LPAREN:   p.parseGroupedOrTuple,
		lexer.LBRACKET: p.parseListLiteral,
		lexer.LBRACE:   p.parseMapLiteral,
	}
	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseInfixExpression,
		lexer.MINUS:    p.parseInfixExpression,
		lexer.ASTERISK: p.parseInfixExpression,
		lexer.SLASH:    p.parseInfixExpression,
		lexer.PERCENT:  p.parseInfixExpression,
		lexer.POWER:    p.parseInfixExpression,
		lexer.EQ:       p.parseCompareExpression,
		lexer.NOT_EQ:   p.parseCompareExpression,
		lexer.LT:       p.parseCompareExpression,
		lexer.LE:       p.parseCompareExpression,
		lexer.GT:       p.parseCompareExpression,
		lexer.GE:       p.parseCompareExpression,
		lexer.AND:      p.parseBoolOpExpression,
		lexer.OR:       p.parseBoolOpExpression,
		lexer.LBRACKET: p.parseIndexExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the parse errors collected so far.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *Parser) expectPeek(tt lexer.TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.addError("열 %d: %v 토큰이 필요하지만 %q 발견", p.peekToken.Column, tt, p.peekToken.Literal)
	return false
}

// ParseExpression parses the whole input as one expression and requires that
// nothing but EOF follows it.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	expr := p.parseExpression(LOWEST)
	if expr == nil || len(p.errors) > 0 {
		return nil, fmt.Errorf("%s", p.firstError())
	}
	if p.peekToken.Type != lexer.EOF {
		return nil, fmt.Errorf("열 %d: 표현식 뒤에 예상치 못한 토큰 %q", p.peekToken.Column, p.peekToken.Literal)
	}
	return expr, nil
}

func (p *Parser) firstError() string {
	if len(p.errors) > 0 {
		return p.errors[0]
	}
	return "표현식 파싱 실패"
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefixFn, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.addError("열 %d: 지원되지 않는 토큰 %q", p.curToken.Column, p.curToken.Literal)
		return nil
	}
	leftExp := prefixFn()

	for leftExp != nil && precedence < getPrecedence(p.peekToken.Type) {
		infixFn, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return leftExp
		}
		p.nextToken()
		leftExp = infixFn(leftExp)
	}
	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Name: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError("정수 리터럴 파싱 실패: %q", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError("실수 리터럴 파싱 실패: %q", p.curToken.Literal)
		return nil
	}
	return &ast.FloatLiteral{Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Value: p.curToken.Type == lexer.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	operator := p.curToken.Literal
	p.nextToken()
	// Power binds tighter than a leading sign: -2 ** 2 is -(2 ** 2).
	right := p.parseExpression(POWER - 1)
	if right == nil {
		return nil
	}
	return &ast.PrefixExpression{Operator: operator, Right: right}
}

// parseNotExpression parses "not x". It binds looser than comparison, so
// "not a == b" negates the whole comparison.
func (p *Parser) parseNotExpression() ast.Expression {
	p.nextToken()
	right := p.parseExpression(NOTPREC)
	if right == nil {
		return nil
	}
	return &ast.PrefixExpression{Operator: "not", Right: right}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	operator := p.curToken.Literal
	precedence := getPrecedence(p.curToken.Type)
	if p.curToken.Type == lexer.POWER {
		// Right-associative: 2 ** 3 ** 2 is 2 ** (3 ** 2).
		precedence--
	}
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.InfixExpression{Operator: operator, Left: left, Right: right}
}

// parseCompareExpression collects a comparison chain such as a < b <= c into a
// single node so the evaluator can apply pairwise chaining semantics.
func (p *Parser) parseCompareExpression(left ast.Expression) ast.Expression {
	expr := &ast.CompareExpression{Left: left}
	for {
		op := p.curToken.Literal
		p.nextToken()
		right := p.parseExpression(COMPARE)
		if right == nil {
			return nil
		}
		expr.Ops = append(expr.Ops, op)
		expr.Comparators = append(expr.Comparators, right)
		if getPrecedence(p.peekToken.Type) != COMPARE {
			return expr
		}
		p.nextToken()
	}
}

// parseBoolOpExpression collects an and/or chain. Mixed chains are handled by
// precedence: "a and b or c" becomes or(and(a, b), c).
func (p *Parser) parseBoolOpExpression(left ast.Expression) ast.Expression {
	operator := p.curToken.Literal
	precedence := getPrecedence(p.curToken.Type)
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	if chain, ok := left.(*ast.BoolOpExpression); ok && chain.Operator == operator {
		chain.Values = append(chain.Values, right)
		return chain
	}
	return &ast.BoolOpExpression{Operator: operator, Values: []ast.Expression{left, right}}
}

// parseGroupedOrTuple parses "(expr)" as grouping and "(a, b)" or "()" as a
// tuple literal. A trailing comma forces a tuple: "(1,)".
func (p *Parser) parseGroupedOrTuple() ast.Expression {
	if p.peekToken.Type == lexer.RPAREN {
		p.nextToken()
		return &ast.TupleLiteral{}
	}
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	if p.peekToken.Type == lexer.RPAREN {
		p.nextToken()
		return first
	}
	if p.peekToken.Type != lexer.COMMA {
		p.addError("열 %d: ')' 또는 ','가 필요하지만 %q 발견", p.peekToken.Column, p.peekToken.Literal)
		return nil
	}
	elements := []ast.Expression{first}
	for p.peekToken.Type == lexer.COMMA {
		p.nextToken()
		if p.peekToken.Type == lexer.RPAREN {
			break
		}
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		elements = append(elements, el)
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return &ast.TupleLiteral{Elements: elements}
}

func (p *Parser) parseListLiteral() ast.Expression {
	list := &ast.ListLiteral{}
	if p.peekToken.Type == lexer.RBRACKET {
		p.nextToken()
		return list
	}
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	list.Elements = append(list.Elements, first)
	for p.peekToken.Type == lexer.COMMA {
		p.nextToken()
		if p.peekToken.Type == lexer.RBRACKET {
			break
		}
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		list.Elements = append(list.Elements, el)
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return list
}

func (p *Parser) parseMapLiteral() ast.Expression {
	m := &ast.MapLiteral{}
	for p.peekToken.Type != lexer.RBRACE {
		p.nextToken()
		key := p.parseExpression(LOWEST)
		if key == nil {
			return nil
		}
		if !p.expectPeek(lexer.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		m.Pairs = append(m.Pairs, ast.MapPair{Key: key, Value: value})
		if p.peekToken.Type == lexer.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return m
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	p.nextToken()
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return &ast.IndexExpression{Left: left, Index: index}
}
