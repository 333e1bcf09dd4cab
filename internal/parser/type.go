package parser

import (
	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/source"
	"enscript/internal/token"
)

var typeModifierKinds = map[token.Kind]ast.Modifiers{
	token.KwRef:       ast.ModRef,
	token.KwConst:     ast.ModConst,
	token.KwStatic:    ast.ModStatic,
	token.KwAutoptr:   ast.ModAutoptr,
	token.KwOwned:     ast.ModOwned,
	token.KwNotNull:   ast.ModNotNull,
	token.KwOut:       ast.ModOut,
	token.KwInout:     ast.ModInout,
	token.KwPrivate:   ast.ModPrivate,
	token.KwProtected: ast.ModProtected,
	token.KwOverride:  ast.ModOverride,
	token.KwNative:    ast.ModNative,
	token.KwProto:     ast.ModProto,
	token.KwModded:    ast.ModModded,
}

// parseModifiers consumes any run of modifier keywords.
func (p *Parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for {
		if flag, ok := typeModifierKinds[p.cur().Kind]; ok {
			mods |= flag
			p.advance()
			continue
		}
		return mods
	}
}

func (p *Parser) atTypeStart() bool {
	switch p.cur().Kind {
	case token.Ident, token.KwVoid, token.KwAuto,
		token.KwRef, token.KwConst, token.KwAutoptr, token.KwOwned,
		token.KwNotNull, token.KwOut, token.KwInout:
		return true
	default:
		return false
	}
}

// parseType parses a full type descriptor. Reports an error and returns nil
// when no type is present.
func (p *Parser) parseType() *ast.TypeNode {
	t := p.tryParseType()
	if t == nil {
		p.errorf(diag.SynExpectType, p.cur().Span, "expected a type, found %s", p.cur().Kind)
	}
	return t
}

// tryParseType attempts a type parse, restoring the cursor on failure.
func (p *Parser) tryParseType() *ast.TypeNode {
	save := p.pos
	start := p.cur().Span

	var mods ast.Modifiers
	for {
		switch p.cur().Kind {
		case token.KwRef, token.KwConst, token.KwAutoptr, token.KwOwned,
			token.KwNotNull, token.KwOut, token.KwInout:
			mods |= typeModifierKinds[p.cur().Kind]
			p.advance()
			continue
		}
		break
	}

	var node *ast.TypeNode
	switch p.cur().Kind {
	case token.KwVoid:
		tok := p.advance()
		node = &ast.TypeNode{Kind: ast.TypeRef, Name: "void", Span: tok.Span}
	case token.KwAuto:
		tok := p.advance()
		node = &ast.TypeNode{Kind: ast.TypeAuto, Span: tok.Span}
	case token.Ident:
		tok := p.advance()
		node = &ast.TypeNode{Kind: ast.TypeRef, Name: tok.Text, Span: tok.Span}
		if p.at(token.Lt) {
			args, ok := p.tryParseTypeArgs()
			if !ok {
				p.pos = save
				return nil
			}
			node.Args = args
		}
	default:
		p.pos = save
		return nil
	}

	node.Modifiers |= mods

	for p.at(token.LBracket) && p.peek(1).Kind == token.RBracket {
		p.advance()
		p.advance()
		node = &ast.TypeNode{Kind: ast.TypeArray, Elem: node, Span: node.Span}
	}

	node.Span = p.spanFrom(start)
	return node
}

// tryParseTypeArgs parses `<T, U>` after a name. The cursor must be on '<'.
func (p *Parser) tryParseTypeArgs() ([]*ast.TypeNode, bool) {
	save := p.pos
	p.advance() // '<'

	var args []*ast.TypeNode
	for {
		arg := p.tryParseType()
		if arg == nil {
			p.pos = save
			return nil, false
		}
		args = append(args, arg)
		if _, ok := p.accept(token.Comma); ok {
			continue
		}
		if _, ok := p.accept(token.Gt); ok {
			return args, true
		}
		// `>>` closing two nested generic lists arrives as a single token;
		// split it in place: the first '>' closes this list, the rewritten
		// token carries the second.
		if p.at(token.Shr) {
			sp := p.cur().Span
			p.toks[p.pos] = token.Token{
				Kind: token.Gt,
				Span: source.Span{File: sp.File, Start: sp.Start + 1, End: sp.End},
				Text: ">",
			}
			return args, true
		}
		p.pos = save
		return nil, false
	}
}
