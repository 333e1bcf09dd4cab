package ast

import "strings"

// Modifiers is a bitset of declaration and type-position modifiers.
type Modifiers uint16

const (
	ModStatic Modifiers = 1 << iota
	ModConst
	ModPrivate
	ModProtected
	ModOverride
	ModRef
	ModAutoptr
	ModOwned
	ModNative
	ModProto
	ModOut
	ModInout
	ModNotNull
	ModModded
)

func (m Modifiers) Has(flag Modifiers) bool {
	return m&flag != 0
}

// IsStaticLike reports whether the declaration is accessed through the class
// name rather than an instance. Constants count as static.
func (m Modifiers) IsStaticLike() bool {
	return m.Has(ModStatic) || m.Has(ModConst)
}

func (m Modifiers) IsPrivate() bool   { return m.Has(ModPrivate) }
func (m Modifiers) IsProtected() bool { return m.Has(ModProtected) }

var modifierNames = []struct {
	flag Modifiers
	name string
}{
	{ModModded, "modded"},
	{ModPrivate, "private"},
	{ModProtected, "protected"},
	{ModStatic, "static"},
	{ModOverride, "override"},
	{ModConst, "const"},
	{ModRef, "ref"},
	{ModAutoptr, "autoptr"},
	{ModOwned, "owned"},
	{ModNative, "native"},
	{ModProto, "proto"},
	{ModOut, "out"},
	{ModInout, "inout"},
	{ModNotNull, "notnull"},
}

func (m Modifiers) String() string {
	if m == 0 {
		return ""
	}
	var parts []string
	for _, e := range modifierNames {
		if m.Has(e.flag) {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, " ")
}
