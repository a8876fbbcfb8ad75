package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
)

// Document is the JSON form of a graph.
type Document struct {
	Offsets     []int       `json:"offsets"`
	Adjacency   []int       `json:"adjacency"`
	Coordinates []csr.Point `json:"coordinates,omitempty"`
}

// Graph validates d and builds the graph it describes.
func (d Document) Graph() (*csr.Graph, error) {
	adj := d.Adjacency
	if adj == nil {
		adj = []int{}
	}
	g, err := csr.New(d.Offsets, adj)
	if err != nil {
		return nil, err
	}
	if d.Coordinates == nil {
		return g, nil
	}
	return g.WithCoordinates(d.Coordinates)
}

// NewDocument captures g, including coordinates if it has them.
func NewDocument(g *csr.Graph) Document {
	d := Document{Offsets: g.Offsets(), Adjacency: g.Adjacency()}
	if g.HasCoordinates() {
		d.Coordinates = g.Coordinates()
	}
	return d
}

// ReadJSON decodes a JSON graph document from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*csr.Graph, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	return d.Graph()
}

// WriteJSON encodes g as an indented JSON document.
func WriteJSON(w io.Writer, g *csr.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(g)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// ReadGraphFile reads the graph at path. Paths ending in ".json" are read
// with ReadJSON (opts is ignored), everything else with ReadGraph.
func ReadGraphFile(path string, opts Options) (*csr.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	if isJSON(path) {
		return ReadJSON(f)
	}
	return ReadGraph(f, opts)
}

// WriteGraphFile writes g to path, choosing the format by extension like
// ReadGraphFile. In text form coordinates are appended after the adjacency
// so that ReadGraphFile with Options.Coordinates reads them back.
func WriteGraphFile(path string, g *csr.Graph) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(errors.ErrCodeInternal, cerr, "close %s", path)
		}
	}()

	if isJSON(path) {
		return WriteJSON(f, g)
	}
	if err := WriteGraph(f, g); err != nil {
		return err
	}
	if g.HasCoordinates() {
		return WriteCoordinates(f, g)
	}
	return nil
}
