package parser

import (
	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/source"
	"enscript/internal/token"
)

func (p *Parser) parseTopLevel() ast.Decl {
	start := p.cur().Span
	mods := p.parseModifiers()

	switch p.cur().Kind {
	case token.KwClass:
		return p.parseClass(mods, start)
	case token.KwEnum:
		return p.parseEnum(mods, start)
	case token.KwTypedef:
		return p.parseTypedef(start)
	case token.Semicolon:
		p.advance()
		return nil
	case token.EOF:
		return nil
	default:
		return p.parseFuncOrVar(mods, start, nil)
	}
}

// parseClass parses one class fragment, modded or not. The cursor is on the
// `class` keyword.
func (p *Parser) parseClass(mods ast.Modifiers, start source.Span) ast.Decl {
	p.advance() // class

	nameTok, ok := p.expect(token.Ident)
	if !ok {
		p.syncTo(false, token.LBrace, token.Semicolon)
	}

	cls := &ast.ClassDecl{
		Name:      nameTok.Text,
		Modifiers: mods,
		NameSpan:  nameTok.Span,
	}

	// generic parameters: class Param2<Class T1, Class T2>
	if p.at(token.Lt) {
		p.advance()
		for {
			// each parameter is written `Class T`; the constraint word is
			// optional in older scripts
			if p.at(token.KwClass) {
				p.advance()
			}
			if tok, ok := p.accept(token.Ident); ok {
				cls.GenericParams = append(cls.GenericParams, tok.Text)
			} else {
				p.errorf(diag.SynExpectIdent, p.cur().Span, "expected generic parameter name, found %s", p.cur().Kind)
				p.syncTo(false, token.Gt, token.LBrace)
			}
			if _, ok := p.accept(token.Comma); ok {
				continue
			}
			break
		}
		p.expect(token.Gt)
	}

	// base class: `extends Base` or the legacy `: Base` form
	if p.at(token.KwExtends) || p.at(token.Colon) {
		p.advance()
		if base := p.parseType(); base != nil {
			cls.BaseType = base
			cls.BaseName = base.Name
		} else {
			p.syncTo(false, token.LBrace, token.Semicolon)
		}
	}

	if _, ok := p.accept(token.LBrace); ok {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			memberStart := p.pos
			if m := p.parseClassMember(cls); m != nil {
				cls.Members = append(cls.Members, m)
			}
			for _, d := range p.pendingDecls {
				cls.Members = append(cls.Members, d)
			}
			p.pendingDecls = p.pendingDecls[:0]
			if p.pos == memberStart {
				p.advance()
			}
		}
		p.expect(token.RBrace)
	}
	p.accept(token.Semicolon)

	cls.Span = p.spanFrom(start)
	return cls
}

// parseClassMember parses one field or method inside owner.
func (p *Parser) parseClassMember(owner *ast.ClassDecl) ast.Decl {
	start := p.cur().Span
	mods := p.parseModifiers()

	if p.at(token.Semicolon) {
		p.advance()
		return nil
	}
	return p.parseFuncOrVar(mods, start, owner)
}

// parseFuncOrVar parses `Type Name(...)` into a function/method or
// `Type Name [= init][, Name2 ...];` into variable declarations. For a
// multi-variable declaration only the first is returned as the member list
// entry chain; callers receive them one at a time via a queued slice.
func (p *Parser) parseFuncOrVar(mods ast.Modifiers, start source.Span, owner *ast.ClassDecl) ast.Decl {
	typ := p.parseType()
	if typ == nil {
		p.syncTo(true, token.Semicolon, token.RBrace)
		return nil
	}

	nameTok, ok := p.expect(token.Ident)
	if !ok {
		p.syncTo(true, token.Semicolon)
		return nil
	}

	if p.at(token.LParen) {
		return p.parseFuncRest(mods, typ, nameTok, start, owner)
	}

	// variable / field declaration, possibly a comma list
	first := &ast.VarDecl{
		Name:      nameTok.Text,
		Type:      typ,
		Modifiers: mods,
		Owner:     owner,
		NameSpan:  nameTok.Span,
	}
	if _, ok := p.accept(token.Assign); ok {
		first.Init = p.parseExpr()
	}
	first.Span = p.spanFrom(start)

	var extra []*ast.VarDecl
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		extraTok, ok := p.expect(token.Ident)
		if !ok {
			break
		}
		d := &ast.VarDecl{
			Name:      extraTok.Text,
			Type:      typ,
			Modifiers: mods,
			Owner:     owner,
			NameSpan:  extraTok.Span,
		}
		if _, ok := p.accept(token.Assign); ok {
			d.Init = p.parseExpr()
		}
		d.Span = p.spanFrom(extraTok.Span)
		extra = append(extra, d)
	}
	p.expectSemicolon()

	// additional declarators are queued so the caller can keep source order
	p.pendingDecls = append(p.pendingDecls, extra...)
	return first
}

// parseFuncRest parses the parameter list and body after `Type Name`.
func (p *Parser) parseFuncRest(mods ast.Modifiers, ret *ast.TypeNode, nameTok token.Token, start source.Span, owner *ast.ClassDecl) ast.Decl {
	fn := &ast.FuncDecl{
		Name:       nameTok.Text,
		ReturnType: ret,
		Modifiers:  mods,
		Owner:      owner,
		NameSpan:   nameTok.Span,
	}

	p.advance() // '('
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param := p.parseParam()
		if param == nil {
			p.syncTo(false, token.Comma, token.RParen)
		} else {
			fn.Params = append(fn.Params, param)
		}
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen)

	if p.at(token.LBrace) {
		fn.Body = p.parseBlock()
	} else {
		p.expectSemicolon()
	}

	fn.Span = p.spanFrom(start)
	return fn
}

func (p *Parser) parseParam() *ast.ParamDecl {
	start := p.cur().Span
	typ := p.tryParseType()
	if typ == nil {
		p.errorf(diag.SynExpectType, p.cur().Span, "expected parameter type, found %s", p.cur().Kind)
		return nil
	}
	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return nil
	}
	param := &ast.ParamDecl{
		Name:      nameTok.Text,
		Type:      typ,
		Modifiers: typ.Modifiers,
		NameSpan:  nameTok.Span,
	}
	if _, ok := p.accept(token.Assign); ok {
		param.Default = p.parseExpr()
	}
	param.Span = p.spanFrom(start)
	return param
}

// parseEnum parses `enum Name [: Base] { A, B = 2 }`.
func (p *Parser) parseEnum(mods ast.Modifiers, start source.Span) ast.Decl {
	p.advance() // enum

	nameTok, ok := p.expect(token.Ident)
	if !ok {
		p.syncTo(false, token.LBrace, token.Semicolon)
	}
	e := &ast.EnumDecl{
		Name:      nameTok.Text,
		Modifiers: mods,
		NameSpan:  nameTok.Span,
	}

	if _, ok := p.accept(token.Colon); ok {
		if base, ok := p.expect(token.Ident); ok {
			e.BaseName = base.Text
		}
	}

	if _, ok := p.accept(token.LBrace); ok {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			memTok, ok := p.accept(token.Ident)
			if !ok {
				p.errorf(diag.SynExpectIdent, p.cur().Span, "expected enum member name, found %s", p.cur().Kind)
				p.syncTo(false, token.Comma, token.RBrace)
				p.accept(token.Comma)
				continue
			}
			member := &ast.EnumMemberDecl{
				Name:     memTok.Text,
				Owner:    e,
				NameSpan: memTok.Span,
			}
			if _, ok := p.accept(token.Assign); ok {
				member.Value = p.parseExpr()
			}
			member.Span = p.spanFrom(memTok.Span)
			e.Members = append(e.Members, member)
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RBrace)
	}
	p.accept(token.Semicolon)

	e.Span = p.spanFrom(start)
	return e
}

// parseTypedef parses `typedef Target Name;`.
func (p *Parser) parseTypedef(start source.Span) ast.Decl {
	p.advance() // typedef

	target := p.parseType()
	if target == nil {
		p.syncTo(true, token.Semicolon)
		return nil
	}
	nameTok, ok := p.expect(token.Ident)
	if !ok {
		p.syncTo(true, token.Semicolon)
		return nil
	}
	p.expectSemicolon()

	return &ast.TypedefDecl{
		Name:     nameTok.Text,
		Target:   target,
		Span:     p.spanFrom(start),
		NameSpan: nameTok.Span,
	}
}
