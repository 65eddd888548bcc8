package learner

import (
	"github.com/snowdj/evalharness/core/model"
	"github.com/snowdj/evalharness/pkg/errors"
)

// Factory builds a learner from a validated configuration.
type Factory func(cfg Config) model.Learner

// Registry maps algorithm names to factories and their recognized parameter
// specs. It is an explicit injected mapping; nothing is resolved by
// reflection at call time.
type Registry struct {
	factories map[string]Factory
	specs     map[string][]ParamSpec
}

// NewRegistry returns a registry pre-loaded with the built-in learners:
// "mean", "linreg", "knn" and "cart".
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		specs:     make(map[string][]ParamSpec),
	}
	r.Register("mean", nil, func(Config) model.Learner {
		return NewMeanRegressor()
	})
	r.Register("linreg", nil, func(Config) model.Learner {
		return NewLinearRegression()
	})
	r.Register("knn", []ParamSpec{
		{Name: "k", Min: 1, Max: 1000, Integer: true},
	}, func(cfg Config) model.Learner {
		return NewKNNRegressor(int(cfg.param("k", 5)))
	})
	r.Register("cart", []ParamSpec{
		{Name: "max_depth", Min: 1, Max: 64, Integer: true},
		{Name: "min_split", Min: 2, Max: 10000, Integer: true},
	}, func(cfg Config) model.Learner {
		return NewCARTRegressor(int(cfg.param("max_depth", 8)), int(cfg.param("min_split", 5)))
	})
	return r
}

// Register adds an algorithm under name with its recognized parameter specs.
// Registering an existing name replaces it.
func (r *Registry) Register(name string, specs []ParamSpec, factory Factory) {
	r.factories[name] = factory
	r.specs[name] = specs
}

// Has reports whether an algorithm is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Specs returns the recognized parameter specs of an algorithm.
func (r *Registry) Specs(name string) []ParamSpec {
	return r.specs[name]
}

// New validates cfg and constructs the learner. Unknown algorithms, unknown
// parameter names and out-of-range values are configuration errors; they can
// never surface later as a runtime failure during fitting.
func (r *Registry) New(cfg Config) (model.Learner, error) {
	factory, ok := r.factories[cfg.Algorithm]
	if !ok {
		return nil, errors.NewConfigError("Registry.New", "algorithm", "unknown algorithm", cfg.Algorithm)
	}

	specs := r.specs[cfg.Algorithm]
	for name, value := range cfg.Params {
		spec, found := findSpec(specs, name)
		if !found {
			return nil, errors.NewConfigError("Registry.New", name, "not a recognized parameter of "+cfg.Algorithm, value)
		}
		if err := spec.Validate("Registry.New", value); err != nil {
			return nil, err
		}
	}

	return factory(cfg), nil
}

func findSpec(specs []ParamSpec, name string) (ParamSpec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return ParamSpec{}, false
}
