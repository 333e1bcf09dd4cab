package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal (decimal or 0x hex).
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a double-quoted string literal.
	StringLit

	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwExtends represents the 'extends' keyword.
	KwExtends // extends
	// KwModded represents the 'modded' class-reopening keyword.
	KwModded // modded
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwTypedef represents the 'typedef' keyword.
	KwTypedef // typedef
	// KwStatic represents the 'static' modifier.
	KwStatic // static
	// KwConst represents the 'const' modifier.
	KwConst // const
	// KwPrivate represents the 'private' modifier.
	KwPrivate // private
	// KwProtected represents the 'protected' modifier.
	KwProtected // protected
	// KwOverride represents the 'override' modifier.
	KwOverride // override
	// KwRef represents the 'ref' strong-reference modifier.
	KwRef // ref
	// KwAutoptr represents the 'autoptr' modifier.
	KwAutoptr // autoptr
	// KwOwned represents the 'owned' modifier.
	KwOwned // owned
	// KwNative represents the 'native' modifier.
	KwNative // native
	// KwProto represents the 'proto' modifier.
	KwProto // proto
	// KwOut represents the 'out' parameter modifier.
	KwOut // out
	// KwInout represents the 'inout' parameter modifier.
	KwInout // inout
	// KwNew represents the 'new' keyword.
	KwNew // new
	// KwDelete represents the 'delete' keyword.
	KwDelete // delete
	// KwThis represents the 'this' keyword.
	KwThis // this
	// KwSuper represents the 'super' keyword.
	KwSuper // super
	// KwNull represents the 'null' / 'NULL' literal.
	KwNull // null
	// KwTrue represents the 'true' literal.
	KwTrue // true
	// KwFalse represents the 'false' literal.
	KwFalse // false
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwForeach represents the 'foreach' keyword.
	KwForeach // foreach
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwSwitch represents the 'switch' keyword.
	KwSwitch // switch
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwAuto represents the 'auto' type keyword.
	KwAuto // auto
	// KwVoid represents the 'void' type keyword.
	KwVoid // void
	// KwNotNull represents the 'notnull' parameter modifier.
	KwNotNull // notnull

	// Plus through Tilde are operators and punctuation.
	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Shr           // >>
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	AndAnd        // &&
	OrOr          // ||
	PlusPlus      // ++
	MinusMinus    // --
	Question      // ?
	Colon         // :
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
)

var kindNames = map[Kind]string{
	Invalid: "invalid", EOF: "eof", Ident: "identifier",
	IntLit: "int literal", FloatLit: "float literal", StringLit: "string literal",
	KwClass: "'class'", KwExtends: "'extends'", KwModded: "'modded'",
	KwEnum: "'enum'", KwTypedef: "'typedef'", KwStatic: "'static'",
	KwConst: "'const'", KwPrivate: "'private'", KwProtected: "'protected'",
	KwOverride: "'override'", KwRef: "'ref'", KwAutoptr: "'autoptr'",
	KwOwned: "'owned'", KwNative: "'native'", KwProto: "'proto'",
	KwOut: "'out'", KwInout: "'inout'", KwNew: "'new'", KwDelete: "'delete'",
	KwThis: "'this'", KwSuper: "'super'", KwNull: "'null'", KwTrue: "'true'",
	KwFalse: "'false'", KwReturn: "'return'", KwIf: "'if'", KwElse: "'else'",
	KwFor: "'for'", KwForeach: "'foreach'", KwWhile: "'while'",
	KwSwitch: "'switch'", KwCase: "'case'", KwDefault: "'default'",
	KwBreak: "'break'", KwContinue: "'continue'", KwAuto: "'auto'",
	KwVoid: "'void'", KwNotNull: "'notnull'",
	Plus: "'+'", Minus: "'-'", Star: "'*'", Slash: "'/'", Percent: "'%'",
	Assign: "'='", PlusAssign: "'+='", MinusAssign: "'-='", StarAssign: "'*='",
	SlashAssign: "'/='", EqEq: "'=='", Bang: "'!'", BangEq: "'!='",
	Lt: "'<'", LtEq: "'<='", Gt: "'>'", GtEq: "'>='", Shl: "'<<'", Shr: "'>>'",
	Amp: "'&'", Pipe: "'|'", Caret: "'^'", Tilde: "'~'", AndAnd: "'&&'",
	OrOr: "'||'", PlusPlus: "'++'", MinusMinus: "'--'", Question: "'?'",
	Colon: "':'", Semicolon: "';'", Comma: "','", Dot: "'.'",
	LParen: "'('", RParen: "')'", LBrace: "'{'", RBrace: "'}'",
	LBracket: "'['", RBracket: "']'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
