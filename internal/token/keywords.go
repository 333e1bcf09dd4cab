package token

var keywords = map[string]Kind{
	"class":     KwClass,
	"extends":   KwExtends,
	"modded":    KwModded,
	"enum":      KwEnum,
	"typedef":   KwTypedef,
	"static":    KwStatic,
	"const":     KwConst,
	"private":   KwPrivate,
	"protected": KwProtected,
	"override":  KwOverride,
	"ref":       KwRef,
	"autoptr":   KwAutoptr,
	"owned":     KwOwned,
	"native":    KwNative,
	"proto":     KwProto,
	"out":       KwOut,
	"inout":     KwInout,
	"notnull":   KwNotNull,
	"new":       KwNew,
	"delete":    KwDelete,
	"this":      KwThis,
	"super":     KwSuper,
	"null":      KwNull,
	"NULL":      KwNull,
	"true":      KwTrue,
	"false":     KwFalse,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"for":       KwFor,
	"foreach":   KwForeach,
	"while":     KwWhile,
	"switch":    KwSwitch,
	"case":      KwCase,
	"default":   KwDefault,
	"break":     KwBreak,
	"continue":  KwContinue,
	"auto":      KwAuto,
	"void":      KwVoid,
}

// LookupKeyword returns the keyword kind for ident. Keywords are case
// sensitive except for the legacy NULL spelling.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
