package rules

// DefaultRules returns one instance of every builtin rule.
func DefaultRules() []Rule {
	return []Rule{
		NewUndeclaredEnumMember(),
		NewStaticMismatch(),
		NewUndeclaredMethod(),
		NewUndeclaredFunction(),
		NewUndeclaredVariable(),
		NewUndeclaredType(),
		NewUndeclaredBaseClass(),
		NewTypeMismatch(),
		NewNarrowingConversion(),
		NewRefModifier(),
		NewMissingOverride(),
		NewOverrideAccess(),
		NewShadowedVariable(),
		NewRedeclaredVariable(),
	}
}

// NewDefaultRegistry returns a registry loaded with the builtin rules.
func NewDefaultRegistry() *Registry {
	rg := NewRegistry()
	for _, r := range DefaultRules() {
		rg.Register(r)
	}
	return rg
}
