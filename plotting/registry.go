package plotting

// Registry is an ordered collection of named plots. Re-registering a
// name replaces the plot but keeps its original position, so figure
// order is stable across reconfiguration.
type Registry struct {
	names  []string
	byName map[string]*CustomPlot
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]*CustomPlot{}}
}

// Add registers plot under name, replacing any previous registration.
func (r *Registry) Add(name string, plot *CustomPlot) {
	if _, ok := r.byName[name]; !ok {
		r.names = append(r.names, name)
	}
	r.byName[name] = plot
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Get returns the plot registered under name.
func (r *Registry) Get(name string) (*CustomPlot, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered plots.
func (r *Registry) Len() int {
	return len(r.byName)
}

// combinedInto returns the names of plots that draw onto target's figure,
// in registration order.
func (r *Registry) combinedInto(target string) []string {
	var out []string
	for _, name := range r.names {
		if r.byName[name].CombineTo == target {
			out = append(out, name)
		}
	}
	return out
}
