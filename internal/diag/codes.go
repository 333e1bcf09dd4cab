package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier with a stable string form.
type Code uint16

const (
	// UnknownCode is the fallback for unclassified findings.
	UnknownCode Code = 0

	// Lexical.
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntax.
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynUnclosedDelimiter Code = 2003
	SynExpectType        Code = 2004
	SynExpectIdent       Code = 2005

	// Semantic rules.
	SemUndeclaredFunction   Code = 3001
	SemUndeclaredMethod     Code = 3002
	SemUndeclaredVariable   Code = 3003
	SemUndeclaredType       Code = 3004
	SemUndeclaredEnumMember Code = 3005
	SemUndeclaredBaseClass  Code = 3006
	SemStaticMismatch       Code = 3007
	SemTypeMismatch         Code = 3008
	SemNarrowingConversion  Code = 3009
	SemRefModifier          Code = 3010
	SemMissingOverride      Code = 3011
	SemOverrideAccess       Code = 3012
	SemShadowedVariable     Code = 3013
	SemRedeclaredVariable   Code = 3014
)

var codeDescription = map[Code]string{
	UnknownCode:             "unknown diagnostic",
	LexUnknownChar:          "unknown character",
	LexUnterminatedString:   "unterminated string literal",
	LexBadNumber:            "malformed numeric literal",
	SynUnexpectedToken:      "unexpected token",
	SynExpectSemicolon:      "missing semicolon",
	SynUnclosedDelimiter:    "unclosed delimiter",
	SynExpectType:           "expected a type",
	SynExpectIdent:          "expected an identifier",
	SemUndeclaredFunction:   "call to undeclared function",
	SemUndeclaredMethod:     "call to undeclared method",
	SemUndeclaredVariable:   "use of undeclared variable",
	SemUndeclaredType:       "reference to undeclared type",
	SemUndeclaredEnumMember: "reference to undeclared enum member",
	SemUndeclaredBaseClass:  "undeclared base class",
	SemStaticMismatch:       "static/instance access mismatch",
	SemTypeMismatch:         "incompatible types",
	SemNarrowingConversion:  "lossy numeric conversion",
	SemRefModifier:          "incorrect use of ref modifier",
	SemMissingOverride:      "missing override modifier",
	SemOverrideAccess:       "override access modifier mismatch",
	SemShadowedVariable:     "variable shadows outer declaration",
	SemRedeclaredVariable:   "variable redeclared in the same scope",
}

// ID returns the stable textual identifier, e.g. "SEM3008".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
