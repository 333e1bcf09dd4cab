package parser

import (
	"strconv"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/token"
)

// binaryPrec returns the precedence for infix operators; 0 means "not a
// binary operator".
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return 1
	case token.AndAnd:
		return 2
	case token.Pipe:
		return 3
	case token.Caret:
		return 4
	case token.Amp:
		return 5
	case token.EqEq, token.BangEq:
		return 6
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return 7
	case token.Shl, token.Shr:
		return 8
	case token.Plus, token.Minus:
		return 9
	case token.Star, token.Slash, token.Percent:
		return 10
	default:
		return 0
	}
}

// parseExpr parses a full expression including assignment. It never
// returns nil; malformed input produces an empty identifier node the
// analyzer skips.
func (p *Parser) parseExpr() ast.Expr {
	start := p.cur().Span
	left := p.parseBinary(1)

	if p.cur().IsAssignOp() {
		op := p.advance().Kind
		value := p.parseExpr() // right associative
		return &ast.AssignExpr{Op: op, Target: left, Value: value, Span: p.spanFrom(start)}
	}
	return left
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	start := p.cur().Span
	left := p.parseUnary()

	for {
		prec := binaryPrec(p.cur().Kind)
		if prec < minPrec || prec == 0 {
			return left
		}
		op := p.advance().Kind
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: p.spanFrom(start)}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.Bang, token.Minus, token.Tilde, token.PlusPlus, token.MinusMinus:
		op := p.advance().Kind
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: op, Operand: operand, Span: p.spanFrom(start)}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	start := p.cur().Span
	x := p.parsePrimary()

	for {
		switch p.cur().Kind {
		case token.Dot:
			p.advance()
			nameTok, ok := p.expect(token.Ident)
			if !ok {
				return x
			}
			x = &ast.MemberExpr{
				Object:   x,
				Name:     nameTok.Text,
				NameSpan: nameTok.Span,
				Span:     p.spanFrom(start),
			}
		case token.LParen:
			p.advance()
			call := &ast.CallExpr{Callee: x}
			for !p.at(token.RParen) && !p.at(token.EOF) {
				call.Args = append(call.Args, p.parseExpr())
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
			}
			p.expect(token.RParen)
			call.Span = p.spanFrom(start)
			x = call
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBracket)
			x = &ast.IndexExpr{Object: x, Index: idx, Span: p.spanFrom(start)}
		case token.PlusPlus, token.MinusMinus:
			op := p.advance().Kind
			x = &ast.UnaryExpr{Op: op, Operand: x, Postfix: true, Span: p.spanFrom(start)}
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return &ast.IdentExpr{Name: tok.Text, Span: tok.Span}
	case token.KwThis:
		p.advance()
		return &ast.ThisExpr{Span: tok.Span}
	case token.KwSuper:
		p.advance()
		return &ast.SuperExpr{Span: tok.Span}
	case token.KwNull:
		p.advance()
		return &ast.NullLit{Span: tok.Span}
	case token.KwTrue:
		p.advance()
		return &ast.BoolLit{Value: true, Span: tok.Span}
	case token.KwFalse:
		p.advance()
		return &ast.BoolLit{Value: false, Span: tok.Span}
	case token.IntLit:
		p.advance()
		value, _ := parseIntText(tok.Text)
		return &ast.IntLit{Text: tok.Text, Value: value, Span: tok.Span}
	case token.FloatLit:
		p.advance()
		value, _ := strconv.ParseFloat(tok.Text, 64)
		return &ast.FloatLit{Text: tok.Text, Value: value, Span: tok.Span}
	case token.StringLit:
		p.advance()
		return &ast.StringLit{Value: tok.Text, Span: tok.Span}
	case token.KwNew:
		return p.parseNew()
	case token.LParen:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RParen)
		return x
	default:
		p.errorf(diag.SynUnexpectedToken, tok.Span, "unexpected %s in expression", tok.Kind)
		return &ast.IdentExpr{Name: "", Span: tok.Span}
	}
}

func (p *Parser) parseNew() ast.Expr {
	start := p.cur().Span
	p.advance() // new

	typ := p.parseType()
	expr := &ast.NewExpr{Type: typ}
	if _, ok := p.accept(token.LParen); ok {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			expr.Args = append(expr.Args, p.parseExpr())
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RParen)
	}
	expr.Span = p.spanFrom(start)
	return expr
}

func parseIntText(text string) (int64, error) {
	if len(text) > 2 && (text[1] == 'x' || text[1] == 'X') {
		return strconv.ParseInt(text[2:], 16, 64)
	}
	return strconv.ParseInt(text, 10, 64)
}
