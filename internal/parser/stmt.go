package parser

import (
	"enscript/internal/ast"
	"enscript/internal/source"
	"enscript/internal/token"
)

func (p *Parser) parseBlock() *ast.BlockStmt {
	start := p.cur().Span
	p.expect(token.LBrace)

	block := &ast.BlockStmt{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmtStart := p.pos
		if s := p.parseStmt(); s != nil {
			block.Stmts = append(block.Stmts, s)
		}
		if p.pos == stmtStart {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	block.Span = p.spanFrom(start)
	return block
}

func (p *Parser) parseStmt() ast.Stmt {
	start := p.cur().Span

	switch p.cur().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return nil
	case token.KwReturn:
		p.advance()
		ret := &ast.ReturnStmt{}
		if !p.at(token.Semicolon) {
			ret.Value = p.parseExpr()
		}
		p.expectSemicolon()
		ret.Span = p.spanFrom(start)
		return ret
	case token.KwIf:
		return p.parseIf(start)
	case token.KwWhile:
		return p.parseWhile(start)
	case token.KwFor:
		return p.parseFor(start)
	case token.KwForeach:
		return p.parseForeach(start)
	case token.KwSwitch:
		return p.parseSwitch(start)
	case token.KwBreak:
		p.advance()
		p.expectSemicolon()
		return &ast.BreakStmt{Span: p.spanFrom(start)}
	case token.KwContinue:
		p.advance()
		p.expectSemicolon()
		return &ast.ContinueStmt{Span: p.spanFrom(start)}
	case token.KwDelete:
		p.advance()
		x := p.parseExpr()
		p.expectSemicolon()
		return &ast.DeleteStmt{X: x, Span: p.spanFrom(start)}
	}

	// local declaration or expression statement
	if decl := p.tryParseLocalDecl(start); decl != nil {
		return decl
	}

	x := p.parseExpr()
	p.expectSemicolon()
	if x == nil {
		return nil
	}
	return &ast.ExprStmt{X: x, Span: p.spanFrom(start)}
}

// tryParseLocalDecl recognizes `Type name [= init][, name2 ...];` using the
// token buffer for backtracking. Returns nil when the statement is not a
// declaration.
func (p *Parser) tryParseLocalDecl(start source.Span) ast.Stmt {
	if !p.atTypeStart() {
		return nil
	}
	save := p.pos

	typ := p.tryParseType()
	if typ == nil || !p.at(token.Ident) {
		p.pos = save
		return nil
	}
	// `name (` is a call, not a declaration
	if p.peek(1).Kind == token.LParen {
		p.pos = save
		return nil
	}

	stmt := &ast.VarDeclStmt{}
	for {
		nameTok, ok := p.expect(token.Ident)
		if !ok {
			break
		}
		d := &ast.VarDecl{
			Name:      nameTok.Text,
			Type:      typ,
			Modifiers: typ.Modifiers,
			NameSpan:  nameTok.Span,
		}
		if _, ok := p.accept(token.Assign); ok {
			d.Init = p.parseExpr()
		}
		d.Span = p.spanFrom(nameTok.Span)
		stmt.Decls = append(stmt.Decls, d)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expectSemicolon()
	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseIf(start source.Span) ast.Stmt {
	p.advance() // if
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)

	then := p.parseStmt()
	stmt := &ast.IfStmt{Cond: cond, Then: then}
	if _, ok := p.accept(token.KwElse); ok {
		stmt.Else = p.parseStmt()
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseWhile(start source.Span) ast.Stmt {
	p.advance() // while
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	body := p.parseStmt()
	return &ast.WhileStmt{Cond: cond, Body: body, Span: p.spanFrom(start)}
}

func (p *Parser) parseFor(start source.Span) ast.Stmt {
	p.advance() // for
	p.expect(token.LParen)

	stmt := &ast.ForStmt{}
	if !p.at(token.Semicolon) {
		if decl := p.tryParseLocalDecl(p.cur().Span); decl != nil {
			stmt.Init = decl
		} else {
			x := p.parseExpr()
			p.expectSemicolon()
			stmt.Init = &ast.ExprStmt{X: x, Span: x.Pos()}
		}
	} else {
		p.advance()
	}

	if !p.at(token.Semicolon) {
		stmt.Cond = p.parseExpr()
	}
	p.expectSemicolon()

	if !p.at(token.RParen) {
		stmt.Post = p.parseExpr()
	}
	p.expect(token.RParen)

	stmt.Body = p.parseStmt()
	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseForeach(start source.Span) ast.Stmt {
	p.advance() // foreach
	p.expect(token.LParen)

	stmt := &ast.ForeachStmt{}
	for {
		varStart := p.cur().Span
		typ := p.parseType()
		nameTok, ok := p.expect(token.Ident)
		if typ == nil || !ok {
			p.syncTo(false, token.Colon, token.RParen)
			break
		}
		stmt.Vars = append(stmt.Vars, &ast.VarDecl{
			Name:      nameTok.Text,
			Type:      typ,
			Modifiers: typ.Modifiers,
			Span:      p.spanFrom(varStart),
			NameSpan:  nameTok.Span,
		})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.Colon)
	stmt.Iterable = p.parseExpr()
	p.expect(token.RParen)
	stmt.Body = p.parseStmt()
	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseSwitch(start source.Span) ast.Stmt {
	p.advance() // switch
	p.expect(token.LParen)
	tag := p.parseExpr()
	p.expect(token.RParen)
	p.expect(token.LBrace)

	stmt := &ast.SwitchStmt{Tag: tag}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		caseStart := p.cur().Span
		clause := &ast.CaseClause{}

		switch p.cur().Kind {
		case token.KwCase:
			p.advance()
			clause.Values = append(clause.Values, p.parseExpr())
			p.expect(token.Colon)
		case token.KwDefault:
			p.advance()
			p.expect(token.Colon)
		default:
			p.advance()
			continue
		}

		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
			stmtStart := p.pos
			if s := p.parseStmt(); s != nil {
				clause.Body = append(clause.Body, s)
			}
			if p.pos == stmtStart {
				p.advance()
			}
		}
		clause.Span = p.spanFrom(caseStart)
		stmt.Cases = append(stmt.Cases, clause)
	}
	p.expect(token.RBrace)
	stmt.Span = p.spanFrom(start)
	return stmt
}
