package hier

import (
	"enscript/internal/ast"
	"enscript/internal/typestr"
)

// builtinMethod describes one entry of the fixed container method
// table. Type strings use the placeholders T (element), K (key) and
// V (value), substituted from the use site's generic arguments.
type builtinMethod struct {
	ret    string
	params []string
}

var arrayMethods = map[string]builtinMethod{
	"Get":        {ret: "T", params: []string{"int"}},
	"Set":        {ret: "void", params: []string{"int", "T"}},
	"Insert":     {ret: "int", params: []string{"T"}},
	"InsertAt":   {ret: "void", params: []string{"T", "int"}},
	"Remove":     {ret: "void", params: []string{"int"}},
	"RemoveItem": {ret: "bool", params: []string{"T"}},
	"Find":       {ret: "int", params: []string{"T"}},
	"Count":      {ret: "int"},
	"Clear":      {ret: "void"},
	"IsEmpty":    {ret: "bool"},
}

var mapMethods = map[string]builtinMethod{
	"Get":        {ret: "V", params: []string{"K"}},
	"Set":        {ret: "void", params: []string{"K", "V"}},
	"Insert":     {ret: "bool", params: []string{"K", "V"}},
	"Remove":     {ret: "bool", params: []string{"K"}},
	"Contains":   {ret: "bool", params: []string{"K"}},
	"GetKey":     {ret: "K", params: []string{"int"}},
	"GetElement": {ret: "V", params: []string{"int"}},
	"Count":      {ret: "int"},
	"Clear":      {ret: "void"},
}

var setMethods = map[string]builtinMethod{
	"Get":        {ret: "T", params: []string{"int"}},
	"Insert":     {ret: "int", params: []string{"T"}},
	"Remove":     {ret: "void", params: []string{"int"}},
	"RemoveItem": {ret: "bool", params: []string{"T"}},
	"Find":       {ret: "int", params: []string{"T"}},
	"Contains":   {ret: "bool", params: []string{"T"}},
	"Count":      {ret: "int"},
	"Clear":      {ret: "void"},
}

func containerTable(base string) map[string]builtinMethod {
	switch base {
	case "array":
		return arrayMethods
	case "map":
		return mapMethods
	case "set":
		return setMethods
	default:
		return nil
	}
}

// lookupBuiltinMember resolves a member on a builtin container type.
// The method table is closed: a name outside it is genuinely missing.
func lookupBuiltinMember(base string, args []*ast.TypeNode, member string) (*Lookup, Status) {
	table := containerTable(base)
	if table == nil {
		return nil, StatusUnknown
	}
	m, ok := table[member]
	if !ok {
		return nil, StatusMissing
	}

	b := containerBindings(base, args)
	fn := &ast.FuncDecl{
		Name:       member,
		ReturnType: substitutePlaceholder(m.ret, b),
	}
	l := &Lookup{Member: fn, Type: fn.ReturnType}
	for i, p := range m.params {
		pd := &ast.ParamDecl{
			Name: paramName(i),
			Type: substitutePlaceholder(p, b),
		}
		fn.Params = append(fn.Params, pd)
		l.ParamTypes = append(l.ParamTypes, pd.Type)
	}
	return l, StatusFound
}

func containerBindings(base string, args []*ast.TypeNode) Bindings {
	wildcard := &ast.TypeNode{Kind: ast.TypeAuto}
	b := Bindings{}
	switch base {
	case "map":
		b["K"], b["V"] = wildcard, wildcard
		if len(args) > 0 && args[0] != nil {
			b["K"] = args[0]
		}
		if len(args) > 1 && args[1] != nil {
			b["V"] = args[1]
		}
	default:
		b["T"] = wildcard
		if len(args) > 0 && args[0] != nil {
			b["T"] = args[0]
		}
	}
	return b
}

func substitutePlaceholder(s string, b Bindings) *ast.TypeNode {
	if repl, ok := b[s]; ok {
		return repl
	}
	return typestr.ParseType(s)
}

func paramName(i int) string {
	names := [...]string{"a", "b", "c", "d"}
	if i < len(names) {
		return names[i]
	}
	return "arg"
}
