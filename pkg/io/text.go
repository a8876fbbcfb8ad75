package io

import (
	"bufio"
	"io"
	"strconv"

	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
)

// Options controls ReadGraph.
type Options struct {
	// Coordinates makes ReadGraph read 3n coordinates after the adjacency.
	Coordinates bool
}

// Hard limits on the header values. Slices start at most preallocHint long
// and grow as values are actually read, so a header that promises more data
// than the input holds fails without a large allocation.
const (
	maxVertices  = 1 << 28
	maxAdjacency = 1 << 30
	preallocHint = 1 << 16
)

// tokenReader walks whitespace-separated tokens.
type tokenReader struct {
	sc  *bufio.Scanner
	pos int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) next(what string) (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", what)
		}
		return "", errors.New(errors.ErrCodeInvalidFormat, "unexpected end of input reading %s (after %d values)", what, t.pos)
	}
	t.pos++
	return t.sc.Text(), nil
}

func (t *tokenReader) readInt(what string) (int, error) {
	s, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "%s: %q is not an integer", what, s)
	}
	return v, nil
}

func (t *tokenReader) readFloat(what string) (float64, error) {
	s, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "%s: %q is not a number", what, s)
	}
	return v, nil
}

// ReadGraph decodes a graph in the text format from r and validates it.
// ReadGraph does not close r. Trailing input after the last expected value
// is ignored.
func ReadGraph(r io.Reader, opts Options) (*csr.Graph, error) {
	t := newTokenReader(r)

	n, err := t.readInt("vertex count")
	if err != nil {
		return nil, err
	}
	if n < 1 || n > maxVertices {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "vertex count %d out of range [1,%d]", n, maxVertices)
	}

	off := make([]int, 1, min(n+1, preallocHint))
	for i := 1; i <= n; i++ {
		o, err := t.readInt("offsets")
		if err != nil {
			return nil, err
		}
		if o < off[i-1] {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "offsets decrease at vertex %d (%d > %d)", i-1, off[i-1], o)
		}
		off = append(off, o)
	}
	if off[n] > maxAdjacency {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "adjacency length %d exceeds %d", off[n], maxAdjacency)
	}

	adj := make([]int, 0, min(off[n], preallocHint))
	for range off[n] {
		v, err := t.readInt("adjacency")
		if err != nil {
			return nil, err
		}
		adj = append(adj, v)
	}

	g, err := csr.Build(off, adj)
	if err != nil {
		return nil, err
	}
	if !opts.Coordinates {
		return g, nil
	}

	coords, err := readPoints(t, n)
	if err != nil {
		return nil, err
	}
	return g.WithCoordinates(coords)
}

// WriteGraph writes g in the text format, one number per line. Coordinates
// are not written; use WriteCoordinates.
func WriteGraph(w io.Writer, g *csr.Graph) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	line := func(v int) {
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	n := g.VertexCount()
	line(n)
	off := g.Offsets()
	for _, o := range off[1:] {
		line(o)
	}
	for u := range n {
		for _, v := range g.NeighborSlice(u) {
			line(v)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write graph")
	}
	return nil
}

// WriteCoordinates writes g's coordinates, one vertex per line. It returns
// INVALID_INPUT if g has none.
func WriteCoordinates(w io.Writer, g *csr.Graph) error {
	if !g.HasCoordinates() {
		return errors.New(errors.ErrCodeInvalidInput, "graph has no coordinates")
	}
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, p := range g.Coordinates() {
		buf = buf[:0]
		for axis, x := range p {
			if axis > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write coordinates")
	}
	return nil
}

// ReadCoordinates reads n coordinate triples from r.
func ReadCoordinates(r io.Reader, n int) ([]csr.Point, error) {
	return readPoints(newTokenReader(r), n)
}

func readPoints(t *tokenReader, n int) ([]csr.Point, error) {
	coords := make([]csr.Point, 0, min(max(n, 0), preallocHint))
	for range n {
		var p csr.Point
		for axis := range 3 {
			v, err := t.readFloat("coordinates")
			if err != nil {
				return nil, err
			}
			p[axis] = v
		}
		coords = append(coords, p)
	}
	return coords, nil
}
