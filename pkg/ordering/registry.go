package ordering

import (
	"github.com/matzehuels/relabel/pkg/arrangement"
	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/perm"
)

// Natural keeps the current numbering. It is the baseline every other
// orderer is compared against.
type Natural struct{}

func (Natural) Name() string { return "natural" }

func (Natural) Order(g *csr.Graph) ([]int, error) { return perm.Identity(g.VertexCount()), nil }

// EdgesBound wraps [arrangement.EdgesBound].
type EdgesBound struct{}

func (EdgesBound) Name() string { return "edges" }

func (EdgesBound) Bound(g *csr.Graph) (int, error) { return arrangement.EdgesBound(g), nil }

// DegreeBound wraps [arrangement.DegreeBound].
type DegreeBound struct{}

func (DegreeBound) Name() string { return "degree" }

func (DegreeBound) Bound(g *csr.Graph) (int, error) { return arrangement.DegreeBound(g), nil }

// Registry maps names to orderers and bounders. Names keep registration
// order. A Registry is not safe for concurrent registration, but lookups on
// a fully built registry may run concurrently.
type Registry struct {
	orderers     map[string]Orderer
	bounders     map[string]Bounder
	orderNames   []string
	bounderNames []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		orderers: make(map[string]Orderer),
		bounders: make(map[string]Bounder),
	}
}

// Options tunes the plugins registered by DefaultRegistry.
type Options struct {
	MaxSpectralVertices int
	LeafSize            int
	MortonBits          int
}

// DefaultRegistry registers every built-in orderer and bounder.
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	for _, o := range []Orderer{
		Natural{},
		BFS{Start: StartFirst},
		BFS{Start: StartLast},
		CuthillMcKee{Start: StartFirst},
		CuthillMcKee{Start: StartLast},
		Reverse{Orderer: CuthillMcKee{Start: StartFirst}},
		Reverse{Orderer: CuthillMcKee{Start: StartLast}},
		Fiedler{MaxVertices: opts.MaxSpectralVertices},
		NestedDissection{LeafSize: opts.LeafSize},
		Morton{Bits: opts.MortonBits},
	} {
		mustRegister(r.Register(o))
	}
	for _, b := range []Bounder{
		EdgesBound{},
		DegreeBound{},
		Spectral{MaxVertices: opts.MaxSpectralVertices},
	} {
		mustRegister(r.RegisterBounder(b))
	}
	return r
}

func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

// Register adds o under o.Name().
func (r *Registry) Register(o Orderer) error {
	name := o.Name()
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	if _, ok := r.orderers[name]; ok {
		return errors.New(errors.ErrCodeInvalidInput, "orderer %q already registered", name)
	}
	r.orderers[name] = o
	r.orderNames = append(r.orderNames, name)
	return nil
}

// RegisterBounder adds b under b.Name().
func (r *Registry) RegisterBounder(b Bounder) error {
	name := b.Name()
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	if _, ok := r.bounders[name]; ok {
		return errors.New(errors.ErrCodeInvalidInput, "bound %q already registered", name)
	}
	r.bounders[name] = b
	r.bounderNames = append(r.bounderNames, name)
	return nil
}

// Lookup returns the orderer registered as name, or NOT_FOUND.
func (r *Registry) Lookup(name string) (Orderer, error) {
	if o, ok := r.orderers[name]; ok {
		return o, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "unknown orderer %q", name)
}

// LookupBounder returns the bounder registered as name, or NOT_FOUND.
func (r *Registry) LookupBounder(name string) (Bounder, error) {
	if b, ok := r.bounders[name]; ok {
		return b, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "unknown bound %q", name)
}

// Names lists orderer names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.orderNames...)
}

// BounderNames lists bounder names in registration order.
func (r *Registry) BounderNames() []string {
	return append([]string(nil), r.bounderNames...)
}

// Orderers resolves names in order, failing on the first unknown one.
func (r *Registry) Orderers(names []string) ([]Orderer, error) {
	out := make([]Orderer, 0, len(names))
	for _, name := range names {
		o, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Bounders resolves names in order, failing on the first unknown one.
func (r *Registry) Bounders(names []string) ([]Bounder, error) {
	out := make([]Bounder, 0, len(names))
	for _, name := range names {
		b, err := r.LookupBounder(name)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
