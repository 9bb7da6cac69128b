package abacus

// PromotionPath is a sequence of conversions taking a number of one type to
// another. An empty path is the identity.
type PromotionPath []PromoteFunc

// Apply converts x along the path.
func (p PromotionPath) Apply(x Number) (Number, error) {
	for _, f := range p {
		var err error
		x, err = f(x)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

// PromotionResult is a list of numbers converted to a common type.
type PromotionResult struct {
	// Type is the common type, or nil if there were no values.
	Type *NumberType
	// Values are the converted numbers in their original order.
	Values []Number
}

type typePair struct {
	from, to string
}

// Promoter converts numbers of different types to a common type. It caches a
// path between every pair of enabled types when its registry loads.
//
// Only direct promotions are used. For a value of type A to be promoted to
// type B, A must declare a promotion to B by name.
type Promoter struct {
	reg   *Registry
	paths map[typePair]PromotionPath
}

// NewPromoter creates a promoter which listens to reg to keep its cache
// current.
func NewPromoter(reg *Registry) *Promoter {
	p := &Promoter{reg: reg}
	reg.AddListener(p)
	return p
}

// OnLoad computes paths between the registry's number types.
func (p *Promoter) OnLoad(r *Registry) {
	types := r.Types()
	p.paths = make(map[typePair]PromotionPath, len(types)*len(types))
	for _, a := range types {
		for _, b := range types {
			if a.Priority > b.Priority {
				continue
			}
			k := typePair{a.Name, b.Name}
			if a == b {
				p.paths[k] = PromotionPath{}
				continue
			}
			if f := a.Promotions[b.Name]; f != nil {
				p.paths[k] = PromotionPath{f}
			}
		}
	}
}

// OnUnload clears the cache.
func (p *Promoter) OnUnload(r *Registry) {
	p.paths = nil
}

// Path returns the cached path from one type to another.
func (p *Promoter) Path(from, to *NumberType) (PromotionPath, bool) {
	path, ok := p.paths[typePair{from.Name, to.Name}]
	return path, ok
}

// Promote converts values to the type with the highest priority among them.
// If several types share the highest priority, the first one seen wins.
func (p *Promoter) Promote(values ...Number) (PromotionResult, error) {
	if len(values) == 0 {
		return PromotionResult{}, nil
	}
	types := make([]*NumberType, len(values))
	var target *NumberType
	for i, v := range values {
		t, err := p.reg.TypeOf(v)
		if err != nil {
			return PromotionResult{}, err
		}
		types[i] = t
		if target == nil || t.Priority > target.Priority {
			target = t
		}
	}
	r := PromotionResult{Type: target, Values: make([]Number, len(values))}
	for i, v := range values {
		if types[i] == target {
			r.Values[i] = v
			continue
		}
		path, ok := p.Path(types[i], target)
		if !ok {
			return PromotionResult{}, &PromotionError{From: types[i].Name, To: target.Name}
		}
		x, err := path.Apply(v)
		if err != nil {
			return PromotionResult{}, err
		}
		r.Values[i] = x
	}
	return r, nil
}
