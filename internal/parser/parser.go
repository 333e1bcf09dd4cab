// Package parser builds the syntax tree consumed by the analyzer.
//
// Parsing is fail-soft: syntax errors are reported through the diag
// reporter and the parser recovers at the next synchronization point, so a
// partial tree is always produced. The analyzer operates on whatever
// parsed and fails open for the rest.
package parser

import (
	"fmt"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/lexer"
	"enscript/internal/source"
	"enscript/internal/token"
)

type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	reporter diag.Reporter
	// pendingDecls queues the extra declarators of comma lists like
	// `int a, b;` parsed at top level.
	pendingDecls []*ast.VarDecl
}

// New tokenizes the whole file up front; the token buffer gives the
// declaration/expression disambiguation cheap backtracking.
func New(file *source.File, reporter diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	lx := lexer.New(file, reporter)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &Parser{file: file, toks: toks, reporter: reporter}
}

// ParseFile parses the whole file into an ast.File.
func (p *Parser) ParseFile() *ast.File {
	f := &ast.File{
		FileID: p.file.ID,
		Path:   p.file.Path,
		Span:   source.Span{File: p.file.ID, Start: 0, End: uint32(len(p.file.Content))},
	}
	for !p.at(token.EOF) {
		start := p.pos
		if d := p.parseTopLevel(); d != nil {
			f.Decls = append(f.Decls, d)
		}
		for _, d := range p.pendingDecls {
			f.Decls = append(f.Decls, d)
		}
		p.pendingDecls = p.pendingDecls[:0]
		if p.pos == start {
			// no progress: drop the offending token
			p.advance()
		}
	}
	return f
}

// --- token cursor helpers ---

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

// accept consumes the token when it matches.
func (p *Parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes the token or reports an error at the current position.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	p.errorf(diag.SynUnexpectedToken, p.cur().Span, "expected %s, found %s", kind, p.cur().Kind)
	return token.Token{}, false
}

func (p *Parser) expectSemicolon() {
	if _, ok := p.accept(token.Semicolon); !ok {
		p.errorf(diag.SynExpectSemicolon, p.cur().Span, "expected ';', found %s", p.cur().Kind)
	}
}

func (p *Parser) errorf(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportError(p.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

// syncTo skips tokens until one of the kinds (or EOF); the matching token
// is consumed when consume is true.
func (p *Parser) syncTo(consume bool, kinds ...token.Kind) {
	for !p.at(token.EOF) {
		for _, k := range kinds {
			if p.at(k) {
				if consume {
					p.advance()
				}
				return
			}
		}
		p.advance()
	}
}

// spanFrom builds a span from the start of tok to the end of the previous
// token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	end := start
	if p.pos > 0 {
		end = p.toks[p.pos-1].Span
	}
	return source.Span{File: start.File, Start: start.Start, End: end.End}
}
