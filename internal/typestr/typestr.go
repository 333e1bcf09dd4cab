// Package typestr implements parsing and normalization of type descriptor
// strings: generic argument splitting, modifier stripping, and builtin type
// classification.
package typestr

import (
	"strings"
)

// leading type-position modifiers, stripped in this order.
var typeModifiers = []string{"ref", "const", "static", "autoptr", "owned", "notnull"}

// StripModifiers removes leading type-position modifiers and returns the
// bare descriptor plus the set of stripped modifier words.
func StripModifiers(s string) (string, []string) {
	s = strings.TrimSpace(s)
	var stripped []string
	for {
		found := false
		for _, mod := range typeModifiers {
			if s == mod {
				// a bare modifier is not a type
				continue
			}
			if strings.HasPrefix(s, mod) && len(s) > len(mod) && isBoundary(s[len(mod)]) {
				stripped = append(stripped, mod)
				s = strings.TrimSpace(s[len(mod):])
				found = true
				break
			}
		}
		if !found {
			return s, stripped
		}
	}
}

func isBoundary(b byte) bool {
	return b == ' ' || b == '\t'
}

// ParseGenericType splits a descriptor into its base name and generic
// argument list. Leading modifiers are stripped first; the argument list is
// taken between the first '<' and the last '>'.
//
//	"ref map<string, ref array<int>>" -> "map", ["string", "ref array<int>"]
//	"PlayerBase"                      -> "PlayerBase", nil
func ParseGenericType(s string) (base string, args []string) {
	s, _ = StripModifiers(s)
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return strings.TrimSpace(s), nil
	}
	close := strings.LastIndexByte(s, '>')
	if close < open {
		// unbalanced: treat everything before '<' as the base
		return strings.TrimSpace(s[:open]), nil
	}
	base = strings.TrimSpace(s[:open])
	args = SplitGenericArguments(s[open+1 : close])
	return base, args
}

// SplitGenericArguments splits a generic argument list on top-level commas
// only, tracking angle-bracket depth so nested generics survive intact.
//
//	"string, map<string,int>" -> ["string", "map<string,int>"]
func SplitGenericArguments(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var (
		args  []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(s[start:]))
	return args
}

// BaseName returns the descriptor's base name with modifiers and
// generic arguments stripped: "ref map<string,int>" -> "map".
func BaseName(s string) string {
	base, _ := ParseGenericType(s)
	return base
}

// NormalizeTypeName removes incidental whitespace around '<', '>' and ','
// so descriptors compare stably regardless of authoring style.
//
//	"map< string , int >" -> "map<string,int>"
func NormalizeTypeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t':
			pendingSpace = b.Len() > 0
		case '<', '>', ',':
			pendingSpace = false
			b.WriteByte(c)
		default:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteByte(c)
		}
	}
	return strings.TrimSpace(b.String())
}
