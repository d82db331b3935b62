package resolver

// Resolver classifies a raw type token taken from a UDT declaration.
type Resolver interface {
	Resolve(token string) Resolution
}

// Rule tries to classify one type token.
type Rule interface {
	Name() string
	Try(token string) (Resolution, bool)
}

type resolverImpl struct {
	rules []Rule
}

// New builds resolver with rule chain.
func New(rules ...Rule) Resolver {
	return &resolverImpl{rules: rules}
}

func (r *resolverImpl) Resolve(token string) Resolution {
	for _, rule := range r.rules {
		if res, ok := rule.Try(token); ok {
			return res
		}
	}
	return Resolution{Token: token, Kind: KindUnknown}
}
