// Package parser implements the Pratt/precedence-climbing parser that
// turns a token.Tokenizer stream into an ast.Node tree.
package parser

import (
	"github.com/fhirpath-go/fhirpath/ast"
	"github.com/fhirpath-go/fhirpath/token"
)

// Parser recursively descends through the twelve precedence levels of
// the FHIRPath grammar, one method per level, rather than a generic
// operator-precedence loop — this keeps each level's associativity and
// token set explicit and easy to audit.
type Parser struct {
	tz   *token.Tokenizer
	buf  []token.Token // lookahead queue
	prev token.Position
}

// Parse tokenizes and parses src into a single expression AST. It is
// the package's only entry point; parsing is fully synchronous.
func Parse(src string) (ast.Node, error) {
	p := &Parser{tz: token.New(src)}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok.Kind != token.EOF {
		return nil, unexpected(tok.Pos, "unexpected trailing token "+tok.Kind.String())
	}
	return expr, nil
}

// --- token stream plumbing -------------------------------------------------

func (p *Parser) fill(n int) error {
	for len(p.buf) <= n {
		tok, err := p.tz.Next()
		if err != nil {
			return err
		}
		p.buf = append(p.buf, tok)
	}
	return nil
}

func (p *Parser) peek(n int) (token.Token, error) {
	if err := p.fill(n); err != nil {
		return token.Token{}, err
	}
	return p.buf[n], nil
}

func (p *Parser) advance() (token.Token, error) {
	tok, err := p.peek(0)
	if err != nil {
		return token.Token{}, err
	}
	p.buf = p.buf[1:]
	p.prev = tok.Pos
	return tok, nil
}

func (p *Parser) at(k token.Kind) bool {
	tok, err := p.peek(0)
	return err == nil && tok.Kind == k
}

func (p *Parser) expect(k token.Kind, context string) (token.Token, error) {
	tok, err := p.peek(0)
	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind != k {
		return token.Token{}, unexpected(tok.Pos, context+": expected "+k.String()+", found "+tok.Kind.String())
	}
	return p.advance()
}

// --- precedence levels, lowest (1, implies) to highest (12, invocation) ---

func (p *Parser) parseExpression() (ast.Node, error) { return p.parseImplies() }

// Level 1: implies — right associative, so the right-hand side
// recurses back into parseImplies rather than parseOr.
func (p *Parser) parseImplies() (ast.Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.at(token.KwImplies) {
		pos, _ := p.advance()
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOp(pos.Pos, ast.OpImplies, left, right), nil
	}
	return left, nil
}

// Level 2: or, xor.
func (p *Parser) parseOr() (ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, _ := p.peek(0)
		var op ast.BinaryOperator
		switch tok.Kind {
		case token.KwOr:
			op = ast.OpOr
		case token.KwXor:
			op = ast.OpXor
		default:
			return left, nil
		}
		pos, _ := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(pos.Pos, op, left, right)
	}
}

// Level 3: and.
func (p *Parser) parseAnd() (ast.Node, error) {
	left, err := p.parseMembership()
	if err != nil {
		return nil, err
	}
	for p.at(token.KwAnd) {
		pos, _ := p.advance()
		right, err := p.parseMembership()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(pos.Pos, ast.OpAnd, left, right)
	}
	return left, nil
}

// Level 4: in, contains.
func (p *Parser) parseMembership() (ast.Node, error) {
	left, err := p.parseType()
	if err != nil {
		return nil, err
	}
	for {
		tok, _ := p.peek(0)
		var op ast.BinaryOperator
		switch tok.Kind {
		case token.KwIn:
			op = ast.OpIn
		case token.KwContains:
			op = ast.OpContains
		default:
			return left, nil
		}
		pos, _ := p.advance()
		right, err := p.parseType()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(pos.Pos, op, left, right)
	}
}

// Level 5: is, as, in the keyword form `expr is Type` / `expr as Type`.
// The method form `expr.is(Type)` is parsed by parsePostfix as an
// ordinary method call and never reaches here; no function named `is`
// or `as` is registered, so that form fails as an unknown function.
func (p *Parser) parseType() (ast.Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for {
		tok, _ := p.peek(0)
		switch tok.Kind {
		case token.KwIs:
			pos, _ := p.advance()
			name, err := p.parseTypeSpecifier()
			if err != nil {
				return nil, err
			}
			left = ast.NewTypeCheck(pos.Pos, left, name)
		case token.KwAs:
			pos, _ := p.advance()
			name, err := p.parseTypeSpecifier()
			if err != nil {
				return nil, err
			}
			left = ast.NewTypeCast(pos.Pos, left, name)
		default:
			return left, nil
		}
	}
}

// parseTypeSpecifier reads a possibly-qualified type name: `Patient`,
// `FHIR.Patient`, `System.Boolean`.
func (p *Parser) parseTypeSpecifier() (string, error) {
	tok, err := p.expect(token.Identifier, "parsing type specifier")
	if err != nil {
		return "", err
	}
	name := tok.Text
	for p.at(token.Dot) {
		if next, _ := p.peek(1); next.Kind != token.Identifier {
			break
		}
		p.advance()
		ident, _ := p.advance()
		name += "." + ident.Text
	}
	return name, nil
}

// Level 8: union.
func (p *Parser) parseUnion() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.at(token.Pipe) {
		pos, _ := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(pos.Pos, ast.OpUnion, left, right)
	}
	return left, nil
}

// Level 7: inequality.
func (p *Parser) parseInequality() (ast.Node, error) {
	left, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	for {
		tok, _ := p.peek(0)
		var op ast.BinaryOperator
		switch tok.Kind {
		case token.Lt:
			op = ast.OpLt
		case token.Gt:
			op = ast.OpGt
		case token.LtEq:
			op = ast.OpLtEq
		case token.GtEq:
			op = ast.OpGtEq
		default:
			return left, nil
		}
		pos, _ := p.advance()
		right, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(pos.Pos, op, left, right)
	}
}

// Level 6: equality.
func (p *Parser) parseEquality() (ast.Node, error) {
	left, err := p.parseInequality()
	if err != nil {
		return nil, err
	}
	for {
		tok, _ := p.peek(0)
		var op ast.BinaryOperator
		switch tok.Kind {
		case token.Eq:
			op = ast.OpEq
		case token.NotEq:
			op = ast.OpNotEq
		case token.Equivalent:
			op = ast.OpEquivalent
		case token.NotEquivalent:
			op = ast.OpNotEquivalent
		default:
			return left, nil
		}
		pos, _ := p.advance()
		right, err := p.parseInequality()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(pos.Pos, op, left, right)
	}
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		tok, _ := p.peek(0)
		var op ast.BinaryOperator
		switch tok.Kind {
		case token.Plus:
			op = ast.OpAdd
		case token.Minus:
			op = ast.OpSub
		case token.Ampersand:
			op = ast.OpConcat
		default:
			return left, nil
		}
		pos, _ := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(pos.Pos, op, left, right)
	}
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, _ := p.peek(0)
		var op ast.BinaryOperator
		switch tok.Kind {
		case token.Star:
			op = ast.OpMul
		case token.Slash:
			op = ast.OpDiv
		case token.KwDiv:
			op = ast.OpIntDiv
		case token.KwMod:
			op = ast.OpMod
		default:
			return left, nil
		}
		pos, _ := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(pos.Pos, op, left, right)
	}
}

// Level 11: unary +/-.
func (p *Parser) parseUnary() (ast.Node, error) {
	tok, _ := p.peek(0)
	switch tok.Kind {
	case token.Plus:
		pos, _ := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(pos.Pos, ast.OpPlus, operand), nil
	case token.Minus:
		pos, _ := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(pos.Pos, ast.OpNeg, operand), nil
	default:
		return p.parsePostfix()
	}
}

// Level 12: invocation (`.name`, `.name(args)`) and indexing (`[expr]`),
// applied left-to-right after a primary expression.
func (p *Parser) parsePostfix() (ast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, _ := p.peek(0)
		switch tok.Kind {
		case token.Dot:
			p.advance()
			expr, err = p.parseInvocation(expr)
			if err != nil {
				return nil, err
			}
		case token.LBracket:
			pos, _ := p.advance()
			indexExpr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket, "parsing index expression"); err != nil {
				return nil, err
			}
			expr = ast.NewIndex(pos.Pos, expr, indexExpr)
		default:
			return expr, nil
		}
	}
}

// parseInvocation parses the `.identifier` or `.identifier(args)`
// segment following a consumed dot, attaching it to receiver.
func (p *Parser) parseInvocation(receiver ast.Node) (ast.Node, error) {
	nameTok, err := p.identifierLike("parsing invocation")
	if err != nil {
		return nil, err
	}
	if p.at(token.LParen) {
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return ast.NewMethodCall(nameTok.Pos, receiver, nameTok.Text, args), nil
	}
	return ast.NewPath(nameTok.Pos, receiver, ast.NewIdentifier(nameTok.Pos, nameTok.Text)), nil
}

// identifierLike accepts an Identifier token or any keyword that is
// also a legal (unquoted) member name in invocation position, e.g.
// `.where(...)`, `.is(...)`, `.as(...)`, `.contains(...)`.
func (p *Parser) identifierLike(context string) (token.Token, error) {
	tok, err := p.peek(0)
	if err != nil {
		return token.Token{}, err
	}
	switch tok.Kind {
	case token.Identifier, token.KwWhere, token.KwSelect, token.KwAll,
		token.KwFirst, token.KwLast, token.KwTail, token.KwSkip, token.KwTake,
		token.KwDistinct, token.KwCount, token.KwOfType, token.KwDefine,
		token.KwEmpty, token.KwIs, token.KwAs, token.KwIn, token.KwContains,
		token.KwDiv, token.KwMod, token.KwAnd, token.KwOr, token.KwXor,
		token.KwNot, token.KwImplies, token.KwTrue, token.KwFalse:
		return p.advance()
	default:
		return token.Token{}, unexpected(tok.Pos, context+": expected identifier, found "+tok.Kind.String())
	}
}

func (p *Parser) parseArgList() ([]ast.Node, error) {
	if _, err := p.expect(token.LParen, "parsing argument list"); err != nil {
		return nil, err
	}
	var args []ast.Node
	if !p.at(token.RParen) {
		for {
			arg, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RParen, "parsing argument list"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseArgument parses one function argument, recognizing the lambda
// forms: `where($this > 1)` produces a plain expression node (evaluated
// per-element by the function's Lambda-kind evaluator), while an
// explicit `x => expr`, as in `select(x => x.value)`, yields an
// *ast.Lambda.
func (p *Parser) parseArgument() (ast.Node, error) {
	if lambda, ok, err := p.tryParseLambda(); err != nil {
		return nil, err
	} else if ok {
		return lambda, nil
	}
	return p.parseExpression()
}

// tryParseLambda attempts the three explicit lambda productions
// (single-param, multi-param parenthesized, anonymous `=>`), without
// consuming input on failure so the caller can fall back to a plain
// expression parse.
func (p *Parser) tryParseLambda() (ast.Node, bool, error) {
	// Buffer a candidate parameter list and the token after it before
	// taking the mark: restoring the mark only rewinds p.buf, so a token
	// fetched from the tokenizer after it would be lost.
	for n := 0; ; n++ {
		tok, err := p.peek(n)
		if err != nil {
			break
		}
		if tok.Kind == token.RParen || (n == 0 && tok.Kind == token.Identifier) {
			p.peek(n + 1)
			break
		}
		if tok.Kind != token.Identifier && tok.Kind != token.Comma && !(n == 0 && tok.Kind == token.LParen) {
			break
		}
	}
	start := len(p.buf)
	mark := *p

	// `=> body` (anonymous shorthand)
	if p.at(token.Arrow) {
		pos, _ := p.advance()
		body, err := p.parseExpression()
		if err != nil {
			return nil, false, err
		}
		return ast.NewLambda(pos.Pos, nil, body), true, nil
	}

	// `identifier => body`
	if p.at(token.Identifier) {
		next, err := p.peek(1)
		if err == nil && next.Kind == token.Arrow {
			nameTok, _ := p.advance()
			p.advance() // =>
			body, err := p.parseExpression()
			if err != nil {
				return nil, false, err
			}
			return ast.NewLambda(nameTok.Pos, []string{nameTok.Text}, body), true, nil
		}
	}

	// `(p1, p2, ...) => body` or `() => body`
	if p.at(token.LParen) {
		if params, ok, err := p.tryParseParenParamList(); err != nil {
			return nil, false, err
		} else if ok {
			if p.at(token.Arrow) {
				pos, _ := p.advance()
				body, err := p.parseExpression()
				if err != nil {
					return nil, false, err
				}
				return ast.NewLambda(pos.Pos, params, body), true, nil
			}
		}
		*p = mark
		p.buf = p.buf[:start]
	}

	*p = mark
	p.buf = p.buf[:start]
	return nil, false, nil
}

// tryParseParenParamList speculatively parses `(id, id, ...)` as a
// lambda parameter list. It restores parser state and returns ok=false
// if the parenthesized content is not a bare identifier list — that
// content is then reparsed as an ordinary parenthesized expression.
func (p *Parser) tryParseParenParamList() (params []string, ok bool, err error) {
	mark := *p
	markBufLen := len(p.buf)

	restore := func() {
		*p = mark
		p.buf = p.buf[:markBufLen]
	}

	p.advance() // (
	if p.at(token.RParen) {
		p.advance()
		return nil, true, nil
	}
	for {
		tok, e := p.peek(0)
		if e != nil {
			restore()
			return nil, false, nil
		}
		if tok.Kind != token.Identifier {
			restore()
			return nil, false, nil
		}
		p.advance()
		params = append(params, tok.Text)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if !p.at(token.RParen) {
		restore()
		return nil, false, nil
	}
	p.advance()
	return params, true, nil
}

// parsePrimary handles literals, identifiers (bare or invoked),
// parenthesized expressions, unary already handled above, variable
// references, `{}`, and the lambda forms.
func (p *Parser) parsePrimary() (ast.Node, error) {
	if lambda, ok, err := p.tryParseLambda(); err != nil {
		return nil, err
	} else if ok {
		return lambda, nil
	}

	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case token.Integer:
		p.advance()
		return ast.NewLiteral(tok.Pos, ast.IntegerLiteral, tok.Text), nil
	case token.Decimal:
		p.advance()
		return ast.NewLiteral(tok.Pos, ast.DecimalLiteral, tok.Text), nil
	case token.String:
		p.advance()
		return ast.NewLiteral(tok.Pos, ast.StringLiteral, tok.Text), nil
	case token.Boolean:
		p.advance()
		return ast.NewLiteral(tok.Pos, ast.BoolLiteral, tok.Text), nil
	case token.Date:
		p.advance()
		return ast.NewLiteral(tok.Pos, ast.DateLiteral, tok.Text), nil
	case token.DateTime:
		p.advance()
		return ast.NewLiteral(tok.Pos, ast.DateTimeLiteral, tok.Text), nil
	case token.Time:
		p.advance()
		return ast.NewLiteral(tok.Pos, ast.TimeLiteral, tok.Text), nil
	case token.Quantity:
		p.advance()
		return ast.NewQuantityLiteral(tok.Pos, tok.Text, tok.Unit), nil
	case token.DollarThis:
		p.advance()
		return ast.NewVariable(tok.Pos, ast.ThisVariable, ""), nil
	case token.DollarIndex:
		p.advance()
		return ast.NewVariable(tok.Pos, ast.IndexVariable, ""), nil
	case token.DollarTotal:
		p.advance()
		return ast.NewVariable(tok.Pos, ast.TotalVariable, ""), nil
	case token.ContextVariable:
		p.advance()
		return ast.NewVariable(tok.Pos, ast.ContextVariable, tok.Text), nil
	case token.LBrace:
		p.advance()
		if _, err := p.expect(token.RBrace, "parsing empty collection literal"); err != nil {
			return nil, err
		}
		return ast.EmptyCollection(tok.Pos), nil
	case token.LParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "parsing parenthesized expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case token.Identifier, token.KwEmpty, token.KwWhere, token.KwSelect, token.KwAll,
		token.KwFirst, token.KwLast, token.KwTail, token.KwSkip, token.KwTake,
		token.KwDistinct, token.KwCount, token.KwOfType, token.KwDefine:
		p.advance()
		name := tok.Text
		if p.at(token.LParen) {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return ast.NewFunctionCall(tok.Pos, name, args), nil
		}
		return ast.NewIdentifier(tok.Pos, name), nil
	default:
		return nil, unexpected(tok.Pos, "parsing primary expression")
	}
}
