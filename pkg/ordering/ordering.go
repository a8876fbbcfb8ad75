package ordering

import (
	"fmt"

	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/perm"
)

// Orderer computes a relabeling of a graph.
// Order returns newToOld: result[i] is the old label of new vertex i.
type Orderer interface {
	Name() string
	Order(g *csr.Graph) ([]int, error)
}

// Bounder computes a lower bound on the linear arrangement cost of every
// numbering of a graph.
type Bounder interface {
	Name() string
	Bound(g *csr.Graph) (int, error)
}

// Capability is implemented by plugins that only serve some graphs.
// Available returns an ORDERER_UNAVAILABLE error when g is out of scope.
type Capability interface {
	Available(g *csr.Graph) error
}

// Available reports whether p can serve g. Plugins without a Capability
// check are always available.
func Available(p any, g *csr.Graph) error {
	if c, ok := p.(Capability); ok {
		return c.Available(g)
	}
	return nil
}

// Run checks availability and then runs o. Errors other than
// ORDERER_UNAVAILABLE are wrapped as ORDERER_FAILED, and a result that is not
// a permutation of the vertices counts as a failure. A panic inside o is
// reported as ORDERER_FAILED.
func Run(o Orderer, g *csr.Graph) (p []int, err error) {
	defer recoverPlugin("orderer", o.Name(), &err)
	if err := Available(o, g); err != nil {
		return nil, unavailable(o.Name(), err)
	}
	p, err = o.Order(g)
	if err != nil {
		if errors.Is(err, errors.ErrCodeOrdererUnavailable) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeOrdererFailed, err, "orderer %s", o.Name())
	}
	if len(p) != g.VertexCount() {
		return nil, errors.New(errors.ErrCodeOrdererFailed,
			"orderer %s returned %d labels for %d vertices", o.Name(), len(p), g.VertexCount())
	}
	if err := perm.Validate(p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOrdererFailed, err, "orderer %s", o.Name())
	}
	return p, nil
}

// RunBound is Run for bounders.
func RunBound(b Bounder, g *csr.Graph) (lb int, err error) {
	defer recoverPlugin("bound", b.Name(), &err)
	if err := Available(b, g); err != nil {
		return 0, unavailable(b.Name(), err)
	}
	lb, err = b.Bound(g)
	if err != nil {
		if errors.Is(err, errors.ErrCodeOrdererUnavailable) {
			return 0, err
		}
		return 0, errors.Wrap(errors.ErrCodeOrdererFailed, err, "bound %s", b.Name())
	}
	return lb, nil
}

func recoverPlugin(kind, name string, err *error) {
	if v := recover(); v != nil {
		*err = errors.New(errors.ErrCodeOrdererFailed, "%s %s panicked: %v", kind, name, v)
	}
}

func unavailable(name string, err error) error {
	if errors.Is(err, errors.ErrCodeOrdererUnavailable) {
		return err
	}
	return errors.Wrap(errors.ErrCodeOrdererUnavailable, err, "%s", name)
}

// Start selects the vertex a traversal begins at.
type Start int

const (
	// StartFirst begins at vertex 0.
	StartFirst Start = iota
	// StartLast begins at vertex n-1.
	StartLast
)

// Vertex resolves s for a graph with n vertices.
func (s Start) Vertex(n int) int {
	if s == StartLast {
		return n - 1
	}
	return 0
}

func (s Start) String() string {
	switch s {
	case StartFirst:
		return "first"
	case StartLast:
		return "last"
	default:
		return fmt.Sprintf("Start(%d)", int(s))
	}
}

// ParseStart parses "first" or "last".
func ParseStart(s string) (Start, error) {
	switch s {
	case "first", "0":
		return StartFirst, nil
	case "last", "n-1":
		return StartLast, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "unknown start %q (want first or last)", s)
	}
}
