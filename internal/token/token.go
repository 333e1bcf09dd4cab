package token

import (
	"enscript/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, string or null
// literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwNull, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsModifier reports whether the token is a declaration modifier keyword.
func (t Token) IsModifier() bool {
	switch t.Kind {
	case KwStatic, KwConst, KwPrivate, KwProtected, KwOverride, KwRef,
		KwAutoptr, KwOwned, KwNative, KwProto, KwOut, KwInout, KwNotNull,
		KwModded:
		return true
	default:
		return false
	}
}

// IsAssignOp reports whether the token is an assignment operator.
func (t Token) IsAssignOp() bool {
	switch t.Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
