// Package lexer turns script source into tokens. Comments and preprocessor
// lines are skipped as trivia; the analyzer has no use for them.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"enscript/internal/diag"
	"enscript/internal/source"
	"enscript/internal/token"
)

type Lexer struct {
	file     *source.File
	off      uint32
	reporter diag.Reporter
	look     *token.Token // single token lookahead buffer
}

func New(file *source.File, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{file: file, reporter: reporter}
}

// Peek returns the next significant token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()

	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.spanFrom(lx.off)}
	}

	start := lx.off
	ch := lx.peekByte()

	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword(start)
	case ch >= '0' && ch <= '9':
		return lx.scanNumber(start)
	case ch == '"':
		return lx.scanString(start)
	case ch == '.' && lx.peekAt(1) >= '0' && lx.peekAt(1) <= '9':
		return lx.scanNumber(start)
	default:
		return lx.scanOperator(start)
	}
}

// skipTrivia consumes whitespace, comments and preprocessor lines.
func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		ch := lx.peekByte()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			lx.off++
		case ch == '/' && lx.peekAt(1) == '/':
			for !lx.eof() && lx.peekByte() != '\n' {
				lx.off++
			}
		case ch == '/' && lx.peekAt(1) == '*':
			lx.off += 2
			for !lx.eof() {
				if lx.peekByte() == '*' && lx.peekAt(1) == '/' {
					lx.off += 2
					break
				}
				lx.off++
			}
		case ch == '#':
			// #ifdef / #define / #include lines are not analyzed
			for !lx.eof() && lx.peekByte() != '\n' {
				lx.off++
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword(start uint32) token.Token {
	for !lx.eof() && isIdentContinue(lx.peekByte()) {
		lx.off++
	}
	text := lx.text(start)
	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: lx.spanFrom(start), Text: text}
	}
	return token.Token{Kind: token.Ident, Span: lx.spanFrom(start), Text: text}
}

func (lx *Lexer) scanNumber(start uint32) token.Token {
	isFloat := false

	if lx.peekByte() == '0' && (lx.peekAt(1) == 'x' || lx.peekAt(1) == 'X') {
		lx.off += 2
		for !lx.eof() && isHexDigit(lx.peekByte()) {
			lx.off++
		}
		text := lx.text(start)
		if _, err := strconv.ParseInt(text[2:], 16, 64); err != nil {
			lx.reportBadNumber(start, text)
			return token.Token{Kind: token.Invalid, Span: lx.spanFrom(start), Text: text}
		}
		return token.Token{Kind: token.IntLit, Span: lx.spanFrom(start), Text: text}
	}

	for !lx.eof() {
		ch := lx.peekByte()
		switch {
		case ch >= '0' && ch <= '9':
			lx.off++
		case ch == '.' && !isFloat && lx.peekAt(1) != '.':
			isFloat = true
			lx.off++
		case (ch == 'e' || ch == 'E') && (lx.peekAt(1) >= '0' && lx.peekAt(1) <= '9' || lx.peekAt(1) == '-' || lx.peekAt(1) == '+'):
			isFloat = true
			lx.off += 2
		default:
			goto done
		}
	}
done:
	text := lx.text(start)
	if isFloat {
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			lx.reportBadNumber(start, text)
			return token.Token{Kind: token.Invalid, Span: lx.spanFrom(start), Text: text}
		}
		return token.Token{Kind: token.FloatLit, Span: lx.spanFrom(start), Text: text}
	}
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		lx.reportBadNumber(start, text)
		return token.Token{Kind: token.Invalid, Span: lx.spanFrom(start), Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: lx.spanFrom(start), Text: text}
}

func (lx *Lexer) scanString(start uint32) token.Token {
	lx.off++ // opening quote
	var b strings.Builder
	for {
		if lx.eof() || lx.peekByte() == '\n' {
			diag.ReportError(lx.reporter, diag.LexUnterminatedString, lx.spanFrom(start),
				"unterminated string literal").Emit()
			return token.Token{Kind: token.Invalid, Span: lx.spanFrom(start), Text: b.String()}
		}
		ch := lx.peekByte()
		if ch == '"' {
			lx.off++
			return token.Token{Kind: token.StringLit, Span: lx.spanFrom(start), Text: b.String()}
		}
		if ch == '\\' && !lx.atEnd(1) {
			lx.off++
			switch esc := lx.peekByte(); esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '"', '\'':
				b.WriteByte(esc)
			default:
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
			lx.off++
			continue
		}
		b.WriteByte(ch)
		lx.off++
	}
}

var twoByteOps = map[string]token.Kind{
	"+=": token.PlusAssign, "-=": token.MinusAssign, "*=": token.StarAssign,
	"/=": token.SlashAssign, "==": token.EqEq, "!=": token.BangEq,
	"<=": token.LtEq, ">=": token.GtEq, "<<": token.Shl, ">>": token.Shr,
	"&&": token.AndAnd, "||": token.OrOr, "++": token.PlusPlus, "--": token.MinusMinus,
}

var oneByteOps = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '=': token.Assign, '!': token.Bang, '<': token.Lt,
	'>': token.Gt, '&': token.Amp, '|': token.Pipe, '^': token.Caret,
	'~': token.Tilde, '?': token.Question, ':': token.Colon,
	';': token.Semicolon, ',': token.Comma, '.': token.Dot,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

func (lx *Lexer) scanOperator(start uint32) token.Token {
	if !lx.atEnd(1) {
		two := string(lx.file.Content[lx.off : lx.off+2])
		if kind, ok := twoByteOps[two]; ok {
			lx.off += 2
			return token.Token{Kind: kind, Span: lx.spanFrom(start), Text: two}
		}
	}
	ch := lx.peekByte()
	if kind, ok := oneByteOps[ch]; ok {
		lx.off++
		return token.Token{Kind: kind, Span: lx.spanFrom(start), Text: string(ch)}
	}

	lx.off++
	diag.ReportError(lx.reporter, diag.LexUnknownChar, lx.spanFrom(start),
		fmt.Sprintf("unknown character %q", ch)).Emit()
	return token.Token{Kind: token.Invalid, Span: lx.spanFrom(start), Text: string(ch)}
}

func (lx *Lexer) reportBadNumber(start uint32, text string) {
	diag.ReportError(lx.reporter, diag.LexBadNumber, lx.spanFrom(start),
		fmt.Sprintf("malformed numeric literal %q", text)).Emit()
}

func (lx *Lexer) eof() bool {
	return int(lx.off) >= len(lx.file.Content)
}

func (lx *Lexer) atEnd(n uint32) bool {
	return int(lx.off+n) >= len(lx.file.Content)
}

func (lx *Lexer) peekByte() byte {
	return lx.file.Content[lx.off]
}

func (lx *Lexer) peekAt(n uint32) byte {
	if lx.atEnd(n) {
		return 0
	}
	return lx.file.Content[lx.off+n]
}

func (lx *Lexer) text(start uint32) string {
	return string(lx.file.Content[start:lx.off])
}

func (lx *Lexer) spanFrom(start uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: lx.off}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
